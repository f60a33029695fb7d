package gamedata

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// CatalogFileName is the embedded data file holding every content table.
const CatalogFileName = "catalog.json"

// WeaponDef is one row of the weapon table.
type WeaponDef struct {
	Name        string `json:"name"`
	AttackBonus int    `json:"attackBonus"` // Permanent attack increase when used
}

// PotionDef is one row of the potion table.
type PotionDef struct {
	Name    string `json:"name"`
	Restore int    `json:"restore"` // Health restored when used
}

// EnemyDef defines an enemy type loaded from JSON.
type EnemyDef struct {
	ID     string `json:"id"`     // Unique identifier (e.g., "goblin")
	Name   string `json:"name"`   // Display name (e.g., "Goblin")
	Glyph  string `json:"glyph"`  // Single character for rendering (e.g., "E")
	Color  string `json:"color"`  // Hex color code (e.g., "#FF5555")
	HP     int    `json:"hp"`     // Starting hit points
	Attack int    `json:"attack"` // Fixed attack power
}

// GlyphRune returns the glyph as a rune for rendering.
func (e *EnemyDef) GlyphRune() rune {
	if len(e.Glyph) == 0 {
		return '?'
	}
	return rune(e.Glyph[0])
}

// GlyphDef maps a map token to its display colors.
type GlyphDef struct {
	Glyph string `json:"glyph"`
	Name  string `json:"name"`
	Color string `json:"color"` // Hex color for the tcell renderer
	ANSI  string `json:"ansi"`  // Escape sequence for the line console, empty for none
}

// TCellColor returns the color as a tcell.Color.
func (g *GlyphDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(g.Color)
	if err != nil {
		return tcell.ColorWhite // fallback
	}
	return color
}

// CatalogFile represents the structure of catalog.json.
type CatalogFile struct {
	Weapons []WeaponDef `json:"weapons"`
	Potions []PotionDef `json:"potions"`
	Enemies []EnemyDef  `json:"enemies"`
	Glyphs  []GlyphDef  `json:"glyphs"`
}

// validate checks the invariants generation relies on.
func (f *CatalogFile) validate() error {
	if len(f.Weapons) == 0 {
		return fmt.Errorf("%s: no weapons defined", CatalogFileName)
	}
	if len(f.Potions) == 0 {
		return fmt.Errorf("%s: no potions defined", CatalogFileName)
	}
	if len(f.Enemies) == 0 {
		return fmt.Errorf("%s: no enemies defined", CatalogFileName)
	}
	for _, e := range f.Enemies {
		if e.HP <= 0 {
			return fmt.Errorf("%s: enemy %q has non-positive hp %d", CatalogFileName, e.ID, e.HP)
		}
	}
	for _, g := range f.Glyphs {
		if len([]rune(g.Glyph)) != 1 {
			return fmt.Errorf("%s: glyph %q must be a single character", CatalogFileName, g.Glyph)
		}
		if _, err := ParseHexColor(g.Color); err != nil {
			return fmt.Errorf("%s: glyph %q: %w", CatalogFileName, g.Glyph, err)
		}
	}
	return nil
}
