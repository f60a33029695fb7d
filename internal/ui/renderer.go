package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/mazmorra/internal/gamedata"
	"github.com/samdwyer/mazmorra/internal/world"
)

// Screen rows reserved below the map: a status line, the message log and a prompt.
const (
	messageRows = 6
	hudRows     = messageRows + 2
)

// HUD is the text drawn under the map.
type HUD struct {
	Status   string   // e.g. "Salud: 100 | Ataque: 10"
	Messages []string // Most recent last; only the tail that fits is drawn
	Prompt   string
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen  *Screen
	catalog *gamedata.Catalog
	colors  bool
	camera  *Camera
}

// NewRenderer creates a new renderer for the given screen. Glyph colors come
// from the catalog; colors=false draws everything in the default style.
func NewRenderer(screen *Screen, catalog *gamedata.Catalog, colors bool) *Renderer {
	return &Renderer{
		screen:  screen,
		catalog: catalog,
		colors:  colors,
		camera:  NewCamera(0, 0),
	}
}

// Camera returns the viewport used by the last Render call.
func (r *Renderer) Camera() *Camera {
	return r.camera
}

// Render draws the visible part of the dungeon, centered on the player, then the HUD.
func (r *Renderer) Render(d *world.Dungeon, hud HUD) {
	r.screen.Clear()

	w, h := r.screen.Size()
	viewH := h - hudRows
	if viewH < 1 {
		viewH = 1
	}
	r.camera.ViewWidth, r.camera.ViewHeight = w, viewH
	px, py := d.Player().Position()
	r.camera.Center(px, py, d.Size)

	for y := 0; y < d.Size; y++ {
		for x := 0; x < d.Size; x++ {
			sx, sy, visible := r.camera.WorldToScreen(x, y)
			if !visible {
				continue
			}
			g := d.GlyphAt(x, y)
			r.screen.SetContent(sx, sy, g.Rune(), r.glyphStyle(g))
		}
	}

	rows := d.Size
	if rows > viewH {
		rows = viewH
	}
	r.drawHUD(rows, hud)
	r.screen.Show()
}

// RenderText draws plain lines from the top of the screen with a prompt
// under them. Used for menus, instructions and result screens.
func (r *Renderer) RenderText(lines []string, prompt string) {
	r.screen.Clear()
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, line := range lines {
		r.RenderMessage(line, i, style)
	}
	r.RenderMessage(prompt, len(lines)+1, style.Bold(true))
	r.screen.Show()
}

// drawHUD draws the status line at row top, then messages and the prompt.
func (r *Renderer) drawHUD(top int, hud HUD) {
	base := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	r.RenderMessage(hud.Status, top, base.Bold(true))

	msgs := hud.Messages
	if len(msgs) > messageRows {
		msgs = msgs[len(msgs)-messageRows:]
	}
	for i, msg := range msgs {
		r.RenderMessage(msg, top+1+i, base.Foreground(tcell.ColorSilver))
	}
	r.RenderMessage(hud.Prompt, top+1+messageRows, base)
}

// glyphStyle returns the style for a display token.
func (r *Renderer) glyphStyle(g world.Glyph) tcell.Style {
	style := tcell.StyleDefault
	if !r.colors || r.catalog == nil {
		return style
	}
	style = style.Foreground(r.catalog.GlyphColor(g.Rune()))
	if g == world.GlyphPlayer {
		style = style.Bold(true)
	}
	return style
}

// RenderMessage displays a message on row y, truncated to the screen width.
func (r *Renderer) RenderMessage(msg string, y int, style tcell.Style) {
	r.screen.DrawText(0, y, msg, style)
}
