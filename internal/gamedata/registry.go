package gamedata

import (
	"io/fs"
	"math/rand"

	"github.com/gdamore/tcell/v2"
)

// Catalog holds the loaded content tables. It is read-only after loading;
// every accessor hands out copies so callers cannot mutate the tables.
type Catalog struct {
	weapons []WeaponDef
	potions []PotionDef
	enemies []EnemyDef
	glyphs  map[rune]GlyphDef
}

// NewCatalog creates a catalog from a decoded catalog file.
func NewCatalog(file CatalogFile) (*Catalog, error) {
	if err := file.validate(); err != nil {
		return nil, err
	}
	c := &Catalog{
		weapons: append([]WeaponDef(nil), file.Weapons...),
		potions: append([]PotionDef(nil), file.Potions...),
		enemies: append([]EnemyDef(nil), file.Enemies...),
		glyphs:  make(map[rune]GlyphDef, len(file.Glyphs)),
	}
	for _, g := range file.Glyphs {
		c.glyphs[[]rune(g.Glyph)[0]] = g
	}
	return c, nil
}

// LoadCatalog loads the embedded catalog.json.
func LoadCatalog() (*Catalog, error) {
	return LoadCatalogFS(dataFS)
}

// LoadCatalogFS loads catalog.json from fsys.
func LoadCatalogFS(fsys fs.FS) (*Catalog, error) {
	file, err := LoadFS[CatalogFile](fsys, CatalogFileName)
	if err != nil {
		return nil, err
	}
	return NewCatalog(file)
}

// MustLoadCatalog loads the embedded catalog, panicking on error.
func MustLoadCatalog() *Catalog {
	catalog, err := LoadCatalog()
	if err != nil {
		panic(err)
	}
	return catalog
}

// Weapons returns the weapon table in file order.
func (c *Catalog) Weapons() []WeaponDef {
	return append([]WeaponDef(nil), c.weapons...)
}

// Potions returns the potion table in file order.
func (c *Catalog) Potions() []PotionDef {
	return append([]PotionDef(nil), c.potions...)
}

// RandomWeapon draws uniformly from the weapon table.
func (c *Catalog) RandomWeapon(rng *rand.Rand) WeaponDef {
	return c.weapons[rng.Intn(len(c.weapons))]
}

// RandomPotion draws uniformly from the potion table.
func (c *Catalog) RandomPotion(rng *rand.Rand) PotionDef {
	return c.potions[rng.Intn(len(c.potions))]
}

// DefaultEnemy returns the first enemy definition. Every generated enemy uses it.
func (c *Catalog) DefaultEnemy() EnemyDef {
	return c.enemies[0]
}

// EnemyByID returns the enemy definition with the given ID.
func (c *Catalog) EnemyByID(id string) (EnemyDef, bool) {
	for _, e := range c.enemies {
		if e.ID == id {
			return e, true
		}
	}
	return EnemyDef{}, false
}

// Glyph returns the display definition for a map token.
func (c *Catalog) Glyph(r rune) (GlyphDef, bool) {
	g, ok := c.glyphs[r]
	return g, ok
}

// GlyphColor returns the tcell color for a map token, or the default color.
func (c *Catalog) GlyphColor(r rune) tcell.Color {
	g, ok := c.glyphs[r]
	if !ok {
		return tcell.ColorDefault
	}
	return g.TCellColor()
}

// GlyphANSI returns the console escape sequence for a map token, or "".
func (c *Catalog) GlyphANSI(r rune) string {
	return c.glyphs[r].ANSI
}
