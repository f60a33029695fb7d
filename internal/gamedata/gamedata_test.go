package gamedata

import (
	"math/rand"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalogWeaponTable(t *testing.T) {
	catalog, err := LoadCatalog()
	require.NoError(t, err)

	want := []WeaponDef{
		{"Espada de Hierro", 5},
		{"Hacha de Batalla", 7},
		{"Lanza de Acero", 6},
		{"Arco Largo", 4},
		{"Daga Envenenada", 5},
		{"Martillo de Guerra", 8},
		{"Espada Larga", 6},
		{"Maza Pesada", 7},
		{"Bastón Mágico", 5},
		{"Espada Legendaria", 10},
	}
	assert.Equal(t, want, catalog.Weapons())
}

func TestLoadCatalogPotionTable(t *testing.T) {
	catalog := MustLoadCatalog()

	want := []PotionDef{
		{"Poción de Salud Menor", 10},
		{"Poción de Salud", 20},
		{"Poción de Salud Mayor", 30},
		{"Poción de Salud Superior", 40},
		{"Elixir de Vida", 50},
	}
	assert.Equal(t, want, catalog.Potions())
}

func TestDefaultEnemyIsGoblin(t *testing.T) {
	catalog := MustLoadCatalog()

	goblin := catalog.DefaultEnemy()
	assert.Equal(t, "goblin", goblin.ID)
	assert.Equal(t, "Goblin", goblin.Name)
	assert.Equal(t, 20, goblin.HP)
	assert.Equal(t, 5, goblin.Attack)
	assert.Equal(t, 'E', goblin.GlyphRune())

	byID, ok := catalog.EnemyByID("goblin")
	require.True(t, ok)
	assert.Equal(t, goblin, byID)

	_, ok = catalog.EnemyByID("dragon")
	assert.False(t, ok)
}

func TestCatalogAccessorsReturnCopies(t *testing.T) {
	catalog := MustLoadCatalog()

	weapons := catalog.Weapons()
	weapons[0].AttackBonus = 99
	potions := catalog.Potions()
	potions[0].Restore = 99

	assert.Equal(t, 5, catalog.Weapons()[0].AttackBonus)
	assert.Equal(t, 10, catalog.Potions()[0].Restore)
}

func TestRandomDrawsAreDeterministic(t *testing.T) {
	catalog := MustLoadCatalog()

	rng1 := rand.New(rand.NewSource(12345))
	rng2 := rand.New(rand.NewSource(12345))

	for i := 0; i < 20; i++ {
		if w1, w2 := catalog.RandomWeapon(rng1), catalog.RandomWeapon(rng2); w1 != w2 {
			t.Errorf("weapon draw %d mismatch: %v != %v", i, w1, w2)
		}
		if p1, p2 := catalog.RandomPotion(rng1), catalog.RandomPotion(rng2); p1 != p2 {
			t.Errorf("potion draw %d mismatch: %v != %v", i, p1, p2)
		}
	}
}

func TestGlyphs(t *testing.T) {
	catalog := MustLoadCatalog()

	for _, r := range []rune{'J', 'E', 'O', '#', 'S', '.'} {
		_, ok := catalog.Glyph(r)
		assert.True(t, ok, "glyph %q missing", r)
	}
	assert.Equal(t, "\u001b[96m", catalog.GlyphANSI('J'))
	assert.Equal(t, "", catalog.GlyphANSI('.'))
	assert.Equal(t, "", catalog.GlyphANSI('?'))

	red, err := ParseHexColor("#FF5555")
	require.NoError(t, err)
	assert.Equal(t, red, catalog.GlyphColor('E'))
}

func TestLoadCatalogFSRejectsBadData(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{`},
		{"unknown field", `{"weapons":[],"potions":[],"enemies":[],"glyphs":[],"armor":[]}`},
		{"no weapons", `{"weapons":[],"potions":[{"name":"p","restore":1}],"enemies":[{"id":"g","name":"G","hp":1}]}`},
		{"no potions", `{"weapons":[{"name":"w","attackBonus":1}],"potions":[],"enemies":[{"id":"g","name":"G","hp":1}]}`},
		{"no enemies", `{"weapons":[{"name":"w","attackBonus":1}],"potions":[{"name":"p","restore":1}],"enemies":[]}`},
		{"dead enemy", `{"weapons":[{"name":"w","attackBonus":1}],"potions":[{"name":"p","restore":1}],"enemies":[{"id":"g","name":"G","hp":0}]}`},
		{"bad glyph color", `{"weapons":[{"name":"w","attackBonus":1}],"potions":[{"name":"p","restore":1}],"enemies":[{"id":"g","name":"G","hp":1}],"glyphs":[{"glyph":"E","color":"red"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{CatalogFileName: &fstest.MapFile{Data: []byte(tt.data)}}
			_, err := LoadCatalogFS(fsys)
			assert.Error(t, err)
		})
	}

	_, err := LoadCatalogFS(fstest.MapFS{})
	assert.Error(t, err, "missing file should fail")
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"#FF0000", true},
		{"FF0000", true},
		{"#00FF00", true},
		{"#0000FF", true},
		{"#FFFFFF", true},
		{"#000000", true},
		{"invalid", false},
		{"#GGGGGG", false},
		{"#FFF", false}, // Too short
	}

	for _, tt := range tests {
		_, err := ParseHexColor(tt.input)
		if tt.valid && err != nil {
			t.Errorf("ParseHexColor(%q) should be valid, got error: %v", tt.input, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ParseHexColor(%q) should be invalid, got no error", tt.input)
		}
	}
}

func TestColorize(t *testing.T) {
	assert.Equal(t, "E", Colorize("E", ""))
	assert.Equal(t, "\u001b[91mE"+ANSIReset, Colorize("E", "\u001b[91m"))
}
