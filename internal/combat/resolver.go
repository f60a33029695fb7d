// Package combat provides the turn-based combat system.
package combat

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/mazmorra/internal/telemetry"
)

// ErrStalemate is returned when neither side can deal damage, so the fight
// would never end.
var ErrStalemate = errors.New("combat: neither combatant can deal damage")

// Combatant is the interface for any entity that can participate in combat.
// Both the player and enemies implement this interface.
type Combatant interface {
	GetName() string
	IsAlive() bool
	GetHP() int
	GetAttack() int

	TakeDamage(amount int) int // Returns actual damage taken
}

// State is the state of an encounter.
type State int

const (
	// StateInCombat means both sides are still standing.
	StateInCombat State = iota
	// StatePlayerWon means the defender fell.
	StatePlayerWon
	// StatePlayerLost means the attacker fell.
	StatePlayerLost
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateInCombat:
		return "in_combat"
	case StatePlayerWon:
		return "player_won"
	case StatePlayerLost:
		return "player_lost"
	default:
		return "unknown"
	}
}

// Round records one exchange. The defender only strikes back when it
// survived the attacker's blow.
type Round struct {
	Number         int
	AttackerDamage int // Damage dealt by the attacker
	DefenderHP     int // Defender health after the blow
	Retaliated     bool
	DefenderDamage int // Damage dealt back, zero when not retaliated
	AttackerHP     int // Attacker health at the end of the round
}

// Result contains the outcome of a finished encounter.
type Result struct {
	Attacker string
	Defender string
	Outcome  State
	Rounds   []Round
}

// Encounter is the state machine for a single fight between the player
// (attacker) and one enemy (defender).
type Encounter struct {
	attacker Combatant
	defender Combatant
	state    State
	rounds   []Round
}

// NewEncounter starts an encounter in StateInCombat. An encounter with a
// combatant that is already down starts finished: a dead attacker has lost,
// a dead defender has been beaten.
func NewEncounter(attacker, defender Combatant) *Encounter {
	state := StateInCombat
	switch {
	case !attacker.IsAlive():
		state = StatePlayerLost
	case !defender.IsAlive():
		state = StatePlayerWon
	}
	return &Encounter{
		attacker: attacker,
		defender: defender,
		state:    state,
	}
}

// State returns the current encounter state.
func (e *Encounter) State() State {
	return e.state
}

// Step plays one round and returns the new state. Stepping a finished
// encounter does nothing.
func (e *Encounter) Step() State {
	if e.state != StateInCombat {
		return e.state
	}

	round := Round{Number: len(e.rounds) + 1}
	round.AttackerDamage = e.defender.TakeDamage(e.attacker.GetAttack())
	round.DefenderHP = e.defender.GetHP()

	if !e.defender.IsAlive() {
		round.AttackerHP = e.attacker.GetHP()
		e.rounds = append(e.rounds, round)
		e.state = StatePlayerWon
		return e.state
	}

	round.Retaliated = true
	round.DefenderDamage = e.attacker.TakeDamage(e.defender.GetAttack())
	round.AttackerHP = e.attacker.GetHP()
	e.rounds = append(e.rounds, round)

	if !e.attacker.IsAlive() {
		e.state = StatePlayerLost
	}
	return e.state
}

// Result returns a snapshot of the encounter so far.
func (e *Encounter) Result() Result {
	return Result{
		Attacker: e.attacker.GetName(),
		Defender: e.defender.GetName(),
		Outcome:  e.state,
		Rounds:   append([]Round(nil), e.rounds...),
	}
}

// Resolver runs encounters to completion.
type Resolver struct {
	logger *slog.Logger
}

// NewResolver creates a new resolver. A nil logger uses slog.Default().
func NewResolver(logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{logger: logger}
}

// Resolve fights until one side falls. There is no retreat and no item use
// mid-fight. The attacker always strikes first each round.
func (r *Resolver) Resolve(ctx context.Context, attacker, defender Combatant) (Result, error) {
	tracer := telemetry.Tracer("combat")
	_, span := tracer.Start(ctx, "combat.resolve")
	defer span.End()

	span.SetAttributes(
		attribute.String("defender", defender.GetName()),
		attribute.Int("attacker_hp", attacker.GetHP()),
		attribute.Int("defender_hp", defender.GetHP()),
	)

	if attacker.GetAttack() <= 0 && defender.GetAttack() <= 0 && attacker.IsAlive() && defender.IsAlive() {
		span.SetAttributes(attribute.Bool("stalemate", true))
		return Result{}, ErrStalemate
	}

	enc := NewEncounter(attacker, defender)
	for enc.State() == StateInCombat {
		enc.Step()
	}

	result := enc.Result()
	span.SetAttributes(
		attribute.String("outcome", result.Outcome.String()),
		attribute.Int("rounds", len(result.Rounds)),
		attribute.Int("attacker_hp_remaining", attacker.GetHP()),
	)
	r.logger.Debug("combat resolved",
		"defender", result.Defender,
		"outcome", result.Outcome.String(),
		"rounds", len(result.Rounds),
		"attacker_hp", attacker.GetHP(),
	)
	return result, nil
}
