package game

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/samdwyer/mazmorra/internal/entity"
	"github.com/samdwyer/mazmorra/internal/world"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// blankSession wraps an all-floor dungeon with no occupants.
func blankSession(t *testing.T, size int) *Session {
	t.Helper()
	player := entity.NewPlayer(entity.DefaultHealth, entity.DefaultAttack, 0, 0)
	d, err := world.NewDungeon(size, player, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	s, err := newSession(context.Background(), d, 1, quietLogger(), false)
	require.NoError(t, err)
	t.Cleanup(s.End)
	return s
}

func TestNewSessionGenerates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.Size = 10

	s1, err := NewSession(context.Background(), cfg, nil, quietLogger())
	require.NoError(t, err)
	defer s1.End()
	s2, err := NewSession(context.Background(), cfg, nil, quietLogger())
	require.NoError(t, err)
	defer s2.End()

	assert.Equal(t, int64(42), s1.Seed)
	assert.Equal(t, 5, s1.Dungeon().EnemyCount())
	assert.Equal(t, 5, s1.Dungeon().ItemCount())
	assert.Equal(t, s1.Dungeon().String(), s2.Dungeon().String())
	assert.NotEqual(t, s1.ID, s2.ID)

	p := s1.Player()
	assert.Equal(t, entity.DefaultHealth, p.Health)
	assert.Equal(t, entity.DefaultAttack, p.Attack)
	x, y := p.Position()
	assert.Equal(t, [2]int{0, 0}, [2]int{x, y})
}

func TestNewSessionRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Size = 1
	_, err := NewSession(context.Background(), cfg, nil, quietLogger())
	assert.ErrorIs(t, err, world.ErrSizeTooSmall)
}

func TestSessionMoveMessages(t *testing.T) {
	s := blankSession(t, 3)
	ctx := context.Background()
	require.NoError(t, s.Dungeon().SetTile(0, 1, world.TileWall))

	assert.Empty(t, s.Move(ctx, "e"))
	assert.Equal(t, []string{MsgInvalidDirection}, s.Move(ctx, "x"))
	assert.Equal(t, []string{MsgOutOfBounds}, s.Move(ctx, "n"))
	s.Move(ctx, "o")
	assert.Equal(t, []string{MsgWall}, s.Move(ctx, "s"))

	assert.Equal(t, []string{MsgInvalidDirection, MsgOutOfBounds, MsgWall}, s.Messages())
}

func TestSessionCombatWin(t *testing.T) {
	s := blankSession(t, 3)
	require.NoError(t, s.Dungeon().PlaceEnemy(1, 0, entity.NewEnemy("Goblin", 20, 5)))

	lines := s.Move(context.Background(), "e")

	assert.Equal(t, []string{
		"¡Te has encontrado con un Goblin!",
		"Has atacado a Goblin y le has causado 10 puntos de daño. Salud restante: 10",
		"Goblin te ha atacado y causado 5 puntos de daño. Salud actual: 95",
		"Has atacado a Goblin y le has causado 10 puntos de daño. Salud restante: 0",
		"Has derrotado a Goblin.",
	}, lines)
	assert.Equal(t, 95, s.Player().Health)
	assert.Nil(t, s.Dungeon().EnemyAt(1, 0))
	assert.False(t, s.IsOver())
}

func TestSessionCombatLoss(t *testing.T) {
	s := blankSession(t, 3)
	s.Player().Health = 5
	require.NoError(t, s.Dungeon().PlaceEnemy(1, 0, entity.NewEnemy("Goblin", 20, 5)))

	lines := s.Move(context.Background(), "e")

	require.NotEmpty(t, lines)
	assert.Equal(t, "Has sido derrotado por Goblin.", lines[len(lines)-2])
	assert.Equal(t, MsgLost, lines[len(lines)-1])
	assert.True(t, s.IsOver())
	assert.Equal(t, world.StatusLost, s.Status())

	x, y := s.Player().Position()
	assert.Equal(t, [2]int{0, 0}, [2]int{x, y}, "a lost fight does not move the player")
}

func TestSessionReachExit(t *testing.T) {
	s := blankSession(t, 2)
	ctx := context.Background()

	assert.Empty(t, s.Move(ctx, "E"))
	assert.Equal(t, []string{MsgExitFound, MsgWon}, s.Move(ctx, "S"))
	assert.Equal(t, world.StatusWon, s.Status())

	// Further commands only report that the game is over.
	assert.Equal(t, []string{MsgSessionOver}, s.Move(ctx, "n"))
}

func TestSessionUseItem(t *testing.T) {
	s := blankSession(t, 3)
	ctx := context.Background()
	require.NoError(t, s.Dungeon().PlaceItem(1, 0, entity.NewPotion("Poción de Salud", 20)))

	assert.Equal(t, []string{"Has agregado Poción de Salud a tu inventario."}, s.Move(ctx, "e"))
	s.Player().Health = 80

	msg, err := s.UseItem(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, msg)
	assert.Equal(t, 1, s.Player().InventorySize())

	msg, err = s.UseItem(ctx, 2)
	assert.ErrorIs(t, err, entity.ErrInvalidIndex)
	assert.Equal(t, MsgInvalidIndex, msg)

	msg, err = s.UseItem(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Has usado una Poción de Salud y has restaurado 20 puntos de salud. Salud actual: 100", msg)
	assert.Equal(t, 100, s.Player().Health)
	assert.Zero(t, s.Player().InventorySize())
}

func TestSessionSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	s := blankSession(t, 3)
	s.Move(context.Background(), "e")
	s.End()
	s.End()

	var session sdktrace.ReadOnlySpan
	var moves []sdktrace.ReadOnlySpan
	for _, span := range recorder.Ended() {
		switch span.Name() {
		case "game.session":
			session = span
		case "dungeon.move":
			moves = append(moves, span)
		}
	}
	require.NotNil(t, session)
	require.Len(t, moves, 1)
	assert.Equal(t, session.SpanContext().SpanID(), moves[0].Parent().SpanID())
	assert.Len(t, recorder.Ended(), 2, "End is idempotent")
}
