package world

import (
	"strings"

	"github.com/samdwyer/mazmorra/internal/gamedata"
)

// GlyphAt returns the display token for one cell. The player marker wins
// over the exit, which wins over occupants and terrain.
func (d *Dungeon) GlyphAt(x, y int) Glyph {
	switch {
	case x == d.player.X && y == d.player.Y:
		return GlyphPlayer
	case d.IsExit(x, y):
		return GlyphExit
	case d.enemies[y][x] != nil:
		return GlyphEnemy
	case d.items[y][x] != nil:
		return GlyphItem
	case d.tiles[y][x] == TileWall:
		return GlyphWall
	default:
		return GlyphFloor
	}
}

// Render returns the display grid, indexed [y][x].
func (d *Dungeon) Render() [][]Glyph {
	grid := make([][]Glyph, d.Size)
	for y := range grid {
		grid[y] = make([]Glyph, d.Size)
		for x := range grid[y] {
			grid[y][x] = d.GlyphAt(x, y)
		}
	}
	return grid
}

// String draws the map one row per line, each cell followed by a space.
func (d *Dungeon) String() string {
	return d.draw(nil)
}

// ColorString draws the map like String, wrapping each glyph in the
// catalog's ANSI color.
func (d *Dungeon) ColorString() string {
	return d.draw(d.catalog)
}

func (d *Dungeon) draw(catalog *gamedata.Catalog) string {
	var sb strings.Builder
	for y := 0; y < d.Size; y++ {
		for x := 0; x < d.Size; x++ {
			s := string(d.GlyphAt(x, y).Rune())
			if catalog != nil {
				s = gamedata.Colorize(s, catalog.GlyphANSI(rune(d.GlyphAt(x, y))))
			}
			sb.WriteString(s)
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
