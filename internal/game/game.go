package game

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/mazmorra/internal/entity"
	"github.com/samdwyer/mazmorra/internal/gamedata"
	"github.com/samdwyer/mazmorra/internal/telemetry"
	"github.com/samdwyer/mazmorra/internal/ui"
)

// Game is the full-screen front end. It owns the screen and switches between
// the menu, the map and the inventory.
type Game struct {
	cfg      Config
	catalog  *gamedata.Catalog
	logger   *slog.Logger
	screen   *ui.Screen
	renderer *ui.Renderer
	session  *Session
	state    State
	notice   string // Shown on text screens, cleared by the next key
	choice   string // Digits typed on the inventory screen
	running  bool
}

// New creates a game on the terminal.
func New(cfg Config, catalog *gamedata.Catalog, logger *slog.Logger) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(cfg, catalog, logger, screen), nil
}

// NewWithScreen creates a game drawing to an already initialized screen.
func NewWithScreen(cfg Config, catalog *gamedata.Catalog, logger *slog.Logger, screen *ui.Screen) *Game {
	if logger == nil {
		logger = slog.Default()
	}
	return &Game{
		cfg:      cfg,
		catalog:  catalog,
		logger:   logger,
		screen:   screen,
		renderer: ui.NewRenderer(screen, catalog, cfg.Colors),
		state:    StateMenu,
		running:  true,
	}
}

// State returns the current screen.
func (g *Game) State() State { return g.state }

// Session returns the current session, nil before the first game starts.
func (g *Game) Session() *Session { return g.session }

// Running reports whether the main loop should continue.
func (g *Game) Running() bool { return g.running }

// Run executes the main game loop.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.run")
	defer span.End()
	defer g.endSession()

	for g.running {
		g.draw()

		ev := g.screen.PollEvent()
		if ev == nil {
			break
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			g.HandleKey(ctx, ev)
		case *tcell.EventResize:
			g.screen.Sync()
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the screen.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}

// HandleKey applies one key press to the current state.
func (g *Game) HandleKey(ctx context.Context, ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyCtrlC {
		g.running = false
		return
	}

	switch g.state {
	case StateMenu:
		g.handleMenu(ctx, ev)
	case StateInstructions:
		g.state = StateMenu
	case StateExplore:
		g.handleExplore(ctx, ev)
	case StateInventory:
		g.handleInventory(ctx, ev)
	case StateResult:
		g.endSession()
		g.state = StateMenu
	}
}

func (g *Game) handleMenu(ctx context.Context, ev *tcell.EventKey) {
	g.notice = ""
	if ev.Key() == tcell.KeyEscape {
		g.running = false
		return
	}
	if ev.Key() != tcell.KeyRune {
		return
	}
	switch ev.Rune() {
	case '1':
		g.startSession(ctx)
	case '2':
		g.state = StateInstructions
	case '3', 'q', 'Q':
		g.running = false
	default:
		g.notice = MsgInvalidOption
	}
}

func (g *Game) startSession(ctx context.Context) {
	g.endSession()
	s, err := NewSession(ctx, g.cfg, g.catalog, g.logger)
	if err != nil {
		g.logger.Error("session could not start", "error", err)
		g.notice = err.Error()
		return
	}
	g.session = s
	g.state = StateExplore
}

func (g *Game) endSession() {
	if g.session != nil {
		g.session.End()
	}
}

func (g *Game) handleExplore(ctx context.Context, ev *tcell.EventKey) {
	var token string
	switch ev.Key() {
	case tcell.KeyEscape:
		g.endSession()
		g.state = StateMenu
		return
	case tcell.KeyUp:
		token = "n"
	case tcell.KeyDown:
		token = "s"
	case tcell.KeyRight:
		token = "e"
	case tcell.KeyLeft:
		token = "o"
	case tcell.KeyRune:
		r := ev.Rune()
		switch r {
		case 'i', 'I':
			g.choice = ""
			g.state = StateInventory
			return
		case 'q', 'Q':
			g.endSession()
			g.state = StateMenu
			return
		}
		token = string(r)
	default:
		return
	}

	g.session.Move(ctx, token)
	if g.session.IsOver() {
		g.state = StateResult
	}
}

func (g *Game) handleInventory(ctx context.Context, ev *tcell.EventKey) {
	g.notice = ""
	switch ev.Key() {
	case tcell.KeyEscape:
		g.state = StateExplore
		return
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if n := len(g.choice); n > 0 {
			g.choice = g.choice[:n-1]
		}
		return
	case tcell.KeyEnter:
		g.submitChoice(ctx)
		return
	case tcell.KeyRune:
	default:
		return
	}

	r := ev.Rune()
	if !unicode.IsDigit(r) {
		g.choice = ""
		g.notice = MsgNotANumber
		return
	}
	g.choice += string(r)
	// A single digit is unambiguous while the inventory has fewer than ten items.
	if g.session.Player().InventorySize() < 10 {
		g.submitChoice(ctx)
	}
}

func (g *Game) submitChoice(ctx context.Context) {
	if g.choice == "" {
		return
	}
	choice, err := strconv.Atoi(g.choice)
	g.choice = ""
	if err != nil {
		g.notice = MsgNotANumber
		return
	}
	msg, err := g.session.UseItem(ctx, choice)
	if errors.Is(err, entity.ErrInvalidIndex) {
		g.notice = msg
		return
	}
	g.state = StateExplore
}

func (g *Game) draw() {
	switch g.state {
	case StateMenu:
		g.renderer.RenderText(withNotice(MenuLines(), g.notice), PromptMenu)
	case StateInstructions:
		g.renderer.RenderText(InstructionLines(), PromptContinue)
	case StateExplore:
		g.renderer.Render(g.session.Dungeon(), ui.HUD{
			Status:   StatusLine(g.session.Player()),
			Messages: g.session.Messages(),
			Prompt:   PromptMove,
		})
	case StateInventory:
		lines := withNotice(InventoryLines(g.session.Player()), g.notice)
		g.renderer.RenderText(lines, PromptInventory+g.choice)
	case StateResult:
		g.renderer.Render(g.session.Dungeon(), ui.HUD{
			Status:   StatusLine(g.session.Player()),
			Messages: g.session.Messages(),
			Prompt:   PromptContinue,
		})
	}
}

func withNotice(lines []string, notice string) []string {
	if notice == "" {
		return lines
	}
	out := make([]string, 0, len(lines)+2)
	out = append(out, lines...)
	return append(out, "", notice)
}
