package entity

import (
	"errors"
	"strconv"

	"github.com/samdwyer/mazmorra/internal/combat"
)

// Starting stats for a new adventurer.
const (
	DefaultHealth = 100
	DefaultAttack = 10
)

// PlayerName is the name the player goes by in combat results.
const PlayerName = "Jugador"

// ErrInvalidIndex is returned when an inventory index is out of range.
var ErrInvalidIndex = errors.New("invalid inventory index")

// Player is the adventurer controlled by the user.
type Player struct {
	Health int // Alive while > 0; healing has no upper bound
	Attack int // Only ever raised
	X, Y   int // Current position in the dungeon

	inventory []Item
}

// NewPlayer creates a player with an empty inventory.
func NewPlayer(health, attack, x, y int) *Player {
	return &Player{
		Health: health,
		Attack: attack,
		X:      x,
		Y:      y,
	}
}

// Position returns the current x, y coordinates.
func (p *Player) Position() (int, int) {
	return p.X, p.Y
}

// Move updates the player position by the given delta.
func (p *Player) Move(dx, dy int) {
	p.X += dx
	p.Y += dy
}

// GetName returns the player's display name.
func (p *Player) GetName() string { return PlayerName }

// IsAlive returns true if the player has health remaining.
func (p *Player) IsAlive() bool { return p.Health > 0 }

// GetHP returns current health.
func (p *Player) GetHP() int { return p.Health }

// GetAttack returns the player's attack power.
func (p *Player) GetAttack() int { return p.Attack }

// TakeDamage reduces health and returns actual damage taken.
func (p *Player) TakeDamage(amount int) int {
	return takeDamage(&p.Health, amount)
}

// Heal restores health and returns the amount restored.
func (p *Player) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	p.Health += amount
	return amount
}

// RaiseAttack increases attack power. Non-positive amounts are ignored.
func (p *Player) RaiseAttack(amount int) {
	if amount > 0 {
		p.Attack += amount
	}
}

// AddItem appends item to the inventory. The caller gives up ownership.
func (p *Player) AddItem(item Item) {
	p.inventory = append(p.inventory, item)
}

// Inventory returns the carried items in pickup order.
func (p *Player) Inventory() []Item {
	return append([]Item(nil), p.inventory...)
}

// InventorySize returns the number of carried items.
func (p *Player) InventorySize() int {
	return len(p.inventory)
}

// UseItem applies the item at the zero-based index and removes it from the
// inventory. An out-of-range index fails with ErrInvalidIndex and changes nothing.
func (p *Player) UseItem(index int) (Effect, error) {
	if index < 0 || index >= len(p.inventory) {
		return Effect{}, ErrInvalidIndex
	}
	item := p.inventory[index]
	effect := item.Apply(p)
	p.inventory = append(p.inventory[:index], p.inventory[index+1:]...)
	return effect, nil
}

// InventoryListing enumerates item names starting at 1, e.g. "1. Arco Largo".
// An empty inventory yields an empty slice.
func (p *Player) InventoryListing() []string {
	lines := make([]string, 0, len(p.inventory))
	for i, item := range p.inventory {
		lines = append(lines, strconv.Itoa(i+1)+". "+item.Name())
	}
	return lines
}

// Ensure Player implements combat.Combatant
var _ combat.Combatant = (*Player)(nil)
