package entity

// ItemKind identifies the variant behind an Item.
type ItemKind int

const (
	KindWeapon ItemKind = iota
	KindPotion
)

// String returns a human-readable kind name.
func (k ItemKind) String() string {
	switch k {
	case KindWeapon:
		return "weapon"
	case KindPotion:
		return "potion"
	default:
		return "unknown"
	}
}

// Item is something a player can carry and consume. The set of variants is
// closed: Weapon and Potion are the only implementations.
type Item interface {
	Name() string
	Kind() ItemKind
	// Apply applies the item's effect to p and reports what changed.
	Apply(p *Player) Effect

	sealed()
}

// Effect describes the result of consuming an item.
type Effect struct {
	Item   string   // Item name
	Kind   ItemKind // Variant that was consumed
	Amount int      // Attack gained or health restored
	Health int      // Player health after the effect
	Attack int      // Player attack after the effect
}

// Weapon permanently raises the holder's attack when used.
type Weapon struct {
	name        string
	AttackBonus int
}

// NewWeapon creates a weapon with the given attack increase.
func NewWeapon(name string, attackBonus int) *Weapon {
	return &Weapon{name: name, AttackBonus: attackBonus}
}

func (w *Weapon) Name() string   { return w.name }
func (w *Weapon) Kind() ItemKind { return KindWeapon }
func (w *Weapon) sealed()        {}

// Apply raises the player's attack by AttackBonus.
func (w *Weapon) Apply(p *Player) Effect {
	p.RaiseAttack(w.AttackBonus)
	return Effect{Item: w.name, Kind: KindWeapon, Amount: w.AttackBonus, Health: p.Health, Attack: p.Attack}
}

// Potion restores health when used. There is no health ceiling.
type Potion struct {
	name    string
	Restore int
}

// NewPotion creates a potion restoring the given amount of health.
func NewPotion(name string, restore int) *Potion {
	return &Potion{name: name, Restore: restore}
}

func (p *Potion) Name() string   { return p.name }
func (p *Potion) Kind() ItemKind { return KindPotion }
func (p *Potion) sealed()        {}

// Apply heals the player by Restore.
func (p *Potion) Apply(pl *Player) Effect {
	healed := pl.Heal(p.Restore)
	return Effect{Item: p.name, Kind: KindPotion, Amount: healed, Health: pl.Health, Attack: pl.Attack}
}
