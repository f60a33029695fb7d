// Package world provides dungeon generation and map management.
package world

// Tile represents the terrain of a single map cell.
type Tile rune

const (
	// TileWall represents an impassable wall tile.
	TileWall Tile = '#'
	// TileFloor represents a passable floor tile.
	TileFloor Tile = '.'
	// TileExit is the way out. It is passable.
	TileExit Tile = 'S'
)

// IsPassable returns true if the tile can be walked on.
func (t Tile) IsPassable() bool {
	return t == TileFloor || t == TileExit
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}

// Glyph is a display token produced by Render.
type Glyph rune

const (
	GlyphWall   Glyph = '#'
	GlyphFloor  Glyph = '.'
	GlyphExit   Glyph = 'S'
	GlyphEnemy  Glyph = 'E'
	GlyphItem   Glyph = 'O'
	GlyphPlayer Glyph = 'J'
)

// Rune returns the glyph's display character.
func (g Glyph) Rune() rune {
	return rune(g)
}
