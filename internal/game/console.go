package game

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/samdwyer/mazmorra/internal/entity"
	"github.com/samdwyer/mazmorra/internal/gamedata"
)

// ErrInputClosed is returned when the input stream ends mid-game.
var ErrInputClosed = errors.New("input closed")

// Console is the line-oriented front end: it prints the map as text and
// reads one command per line.
type Console struct {
	cfg     Config
	catalog *gamedata.Catalog
	logger  *slog.Logger
	in      *bufio.Scanner
	out     io.Writer
}

// NewConsole creates a console reading commands from in and writing to out.
func NewConsole(cfg Config, catalog *gamedata.Catalog, logger *slog.Logger, in io.Reader, out io.Writer) *Console {
	if logger == nil {
		logger = slog.Default()
	}
	return &Console{
		cfg:     cfg,
		catalog: catalog,
		logger:  logger,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// Run shows the main menu until the player leaves. Running out of input is
// not an error: the console prints a notice and returns nil.
func (c *Console) Run(ctx context.Context) error {
	err := c.menu(ctx)
	if errors.Is(err, ErrInputClosed) {
		c.println("")
		c.println(MsgInputClosed)
		c.logger.Info("input closed")
		return nil
	}
	return err
}

func (c *Console) menu(ctx context.Context) error {
	for {
		c.printLines(MenuLines())
		c.print(PromptMenu)

		line, err := c.readLine()
		if err != nil {
			return err
		}
		switch strings.TrimSpace(line) {
		case "1":
			if err := c.play(ctx); err != nil {
				return err
			}
		case "2":
			c.printLines(InstructionLines())
		case "3":
			c.println(MsgGoodbye)
			return nil
		default:
			c.println(MsgInvalidOption)
		}
	}
}

// play runs one session to completion.
func (c *Console) play(ctx context.Context) error {
	s, err := NewSession(ctx, c.cfg, c.catalog, c.logger)
	if err != nil {
		return err
	}
	defer s.End()

	for !s.IsOver() {
		c.printMap(s)
		c.println(StatusLine(s.Player()))
		c.print(PromptMove)

		line, err := c.readLine()
		if err != nil {
			return err
		}
		token := strings.TrimSpace(line)
		if strings.EqualFold(token, "i") {
			if err := c.inventory(ctx, s); err != nil {
				return err
			}
			continue
		}
		c.printLines(s.Move(ctx, token))
	}
	return nil
}

// inventory lists the items and keeps asking until an item is used or the
// player enters 0.
func (c *Console) inventory(ctx context.Context, s *Session) error {
	c.printLines(InventoryLines(s.Player()))
	for {
		c.print(PromptInventory)
		line, err := c.readLine()
		if err != nil {
			return err
		}
		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			c.println(MsgNotANumber)
			continue
		}
		if choice < 0 {
			c.println(MsgInvalidIndex)
			continue
		}
		msg, err := s.UseItem(ctx, choice)
		if errors.Is(err, entity.ErrInvalidIndex) {
			c.println(msg)
			continue
		}
		if msg != "" {
			c.println(msg)
		}
		return nil
	}
}

func (c *Console) printMap(s *Session) {
	if c.cfg.Colors {
		c.print(s.Dungeon().ColorString())
		return
	}
	c.print(s.Dungeon().String())
}

func (c *Console) readLine() (string, error) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", ErrInputClosed
	}
	return c.in.Text(), nil
}

func (c *Console) print(s string) {
	fmt.Fprint(c.out, s)
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *Console) printLines(lines []string) {
	for _, l := range lines {
		c.println(l)
	}
}
