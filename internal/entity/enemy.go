// Package entity provides the player, the monsters and the usable items.
package entity

import (
	"github.com/samdwyer/mazmorra/internal/combat"
	"github.com/samdwyer/mazmorra/internal/gamedata"
)

// Enemy represents a hostile creature in the dungeon. Enemies never move;
// their position is the cell of the dungeon that holds them.
type Enemy struct {
	ID     string // Definition identifier (e.g., "goblin")
	Name   string // Display name (e.g., "Goblin")
	Symbol rune   // Display symbol
	HP     int    // Current hit points
	Attack int    // Fixed attack power
}

// NewEnemy creates an enemy with explicit stats.
func NewEnemy(name string, hp, attack int) *Enemy {
	return &Enemy{
		ID:     name,
		Name:   name,
		Symbol: 'E',
		HP:     hp,
		Attack: attack,
	}
}

// NewEnemyFromDef creates a new enemy from a data-driven definition.
func NewEnemyFromDef(def gamedata.EnemyDef) *Enemy {
	return &Enemy{
		ID:     def.ID,
		Name:   def.Name,
		Symbol: def.GlyphRune(),
		HP:     def.HP,
		Attack: def.Attack,
	}
}

// GetName returns the enemy's name.
func (e *Enemy) GetName() string { return e.Name }

// IsAlive returns true if the enemy has HP remaining.
func (e *Enemy) IsAlive() bool { return e.HP > 0 }

// GetHP returns current HP.
func (e *Enemy) GetHP() int { return e.HP }

// GetAttack returns the enemy's attack power.
func (e *Enemy) GetAttack() int { return e.Attack }

// TakeDamage reduces HP and returns actual damage taken.
func (e *Enemy) TakeDamage(amount int) int {
	return takeDamage(&e.HP, amount)
}

// takeDamage lowers *hp by amount without going below zero.
func takeDamage(hp *int, amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > *hp {
		actual = *hp
	}
	*hp -= actual
	return actual
}

// Ensure Enemy implements combat.Combatant
var _ combat.Combatant = (*Enemy)(nil)
