package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/mazmorra/internal/entity"
	"github.com/samdwyer/mazmorra/internal/gamedata"
	"github.com/samdwyer/mazmorra/internal/telemetry"
	"github.com/samdwyer/mazmorra/internal/world"
)

// maxMessages bounds the session message log.
const maxMessages = 100

// Session is one play-through: a freshly generated dungeon, its player and
// the messages produced so far. Both front ends drive the game through it.
type Session struct {
	ID   string
	Seed int64

	dungeon  *world.Dungeon
	logger   *slog.Logger
	span     trace.Span
	messages []string
	moves    int
	ended    bool
}

// NewSession generates a new dungeon from cfg and places a fresh player at
// the configured start cell.
func NewSession(ctx context.Context, cfg Config, catalog *gamedata.Catalog, logger *slog.Logger) (*Session, error) {
	seed := cfg.ResolveSeed()
	if logger == nil {
		logger = slog.Default()
	}

	player := entity.NewPlayer(entity.DefaultHealth, entity.DefaultAttack, cfg.StartX, cfg.StartY)
	opts := []world.Option{world.WithLogger(logger)}
	if catalog != nil {
		opts = append(opts, world.WithCatalog(catalog))
	}
	d, err := world.NewDungeon(cfg.Size, player, NewRand(seed), opts...)
	if err != nil {
		return nil, fmt.Errorf("new dungeon: %w", err)
	}
	return newSession(ctx, d, seed, logger, true)
}

// newSession opens the session span around d, generating it first when
// generate is set.
func newSession(ctx context.Context, d *world.Dungeon, seed int64, logger *slog.Logger, generate bool) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	logger = logger.With("session", id)

	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.session")
	span.SetAttributes(
		attribute.String("session.id", id),
		attribute.Int64("seed", seed),
		attribute.Int("dungeon.size", d.Size),
	)

	if generate {
		if err := d.Generate(ctx); err != nil {
			span.RecordError(err)
			span.End()
			return nil, fmt.Errorf("generate dungeon: %w", err)
		}
	}

	logger.Info("session started", "seed", seed, "size", d.Size,
		"enemies", d.EnemyCount(), "items", d.ItemCount())

	return &Session{
		ID:      id,
		Seed:    seed,
		dungeon: d,
		logger:  logger,
		span:    span,
	}, nil
}

// Dungeon returns the session's dungeon.
func (s *Session) Dungeon() *world.Dungeon { return s.dungeon }

// Player returns the session's player.
func (s *Session) Player() *entity.Player { return s.dungeon.Player() }

// Status returns the session's terminal state.
func (s *Session) Status() world.Status { return s.dungeon.Status() }

// IsOver reports whether the player has escaped or died.
func (s *Session) IsOver() bool { return s.dungeon.IsOver() }

// Messages returns a copy of the message log, oldest first.
func (s *Session) Messages() []string {
	out := make([]string, len(s.messages))
	copy(out, s.messages)
	return out
}

// Move applies one movement command and returns the lines it produced. The
// closing win or loss line is appended on the move that ends the session.
func (s *Session) Move(ctx context.Context, token string) []string {
	wasOver := s.IsOver()
	result := s.dungeon.Move(s.context(ctx), token)
	if result.Moved {
		s.moves++
	}

	lines := DescribeMove(result)
	if !wasOver && s.IsOver() {
		lines = append(lines, ResultMessage(s.Status()))
		s.logger.Info("session finished", "status", s.Status().String(), "moves", s.moves)
	}
	s.record(lines...)
	return lines
}

// UseItem consumes the item at the 1-based choice. Choice 0 cancels and
// produces no message. An out-of-range choice returns entity.ErrInvalidIndex
// along with the notice to show.
func (s *Session) UseItem(ctx context.Context, choice int) (string, error) {
	res, err := s.dungeon.UseItem(s.context(ctx), choice)
	switch {
	case errors.Is(err, entity.ErrInvalidIndex):
		s.record(MsgInvalidIndex)
		return MsgInvalidIndex, err
	case errors.Is(err, world.ErrSessionOver):
		s.record(MsgSessionOver)
		return MsgSessionOver, err
	case err != nil:
		return "", err
	case res.Cancelled:
		return "", nil
	}
	line := DescribeUse(res.Effect)
	s.record(line)
	return line, nil
}

// End closes the session span. Safe to call more than once.
func (s *Session) End() {
	if s.ended {
		return
	}
	s.ended = true
	p := s.Player()
	s.span.SetAttributes(
		attribute.String("status", s.Status().String()),
		attribute.Int("moves", s.moves),
		attribute.Int("player.health", p.Health),
		attribute.Int("player.attack", p.Attack),
	)
	s.span.End()
}

// context parents command spans under the session span.
func (s *Session) context(ctx context.Context) context.Context {
	return trace.ContextWithSpan(ctx, s.span)
}

func (s *Session) record(lines ...string) {
	s.messages = append(s.messages, lines...)
	if over := len(s.messages) - maxMessages; over > 0 {
		s.messages = append(s.messages[:0], s.messages[over:]...)
	}
}
