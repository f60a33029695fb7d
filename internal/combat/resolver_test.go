package combat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCombatant is a test implementation of the Combatant interface.
type mockCombatant struct {
	name   string
	hp     int
	attack int
	hits   int // Number of times TakeDamage was called with a positive amount
}

func newMockCombatant(name string, hp, attack int) *mockCombatant {
	return &mockCombatant{name: name, hp: hp, attack: attack}
}

func (m *mockCombatant) GetName() string { return m.name }
func (m *mockCombatant) IsAlive() bool   { return m.hp > 0 }
func (m *mockCombatant) GetHP() int      { return m.hp }
func (m *mockCombatant) GetAttack() int  { return m.attack }

func (m *mockCombatant) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	m.hits++
	actual := amount
	if actual > m.hp {
		actual = m.hp
	}
	m.hp -= actual
	return actual
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateInCombat, "in_combat"},
		{StatePlayerWon, "player_won"},
		{StatePlayerLost, "player_lost"},
		{State(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.expected {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.expected)
		}
	}
}

func TestResolvePlayerVsGoblin(t *testing.T) {
	player := newMockCombatant("Jugador", 100, 10)
	goblin := newMockCombatant("Goblin", 20, 5)

	result, err := NewResolver(nil).Resolve(context.Background(), player, goblin)
	require.NoError(t, err)

	assert.Equal(t, StatePlayerWon, result.Outcome)
	assert.Equal(t, "Jugador", result.Attacker)
	assert.Equal(t, "Goblin", result.Defender)
	require.Len(t, result.Rounds, 2)

	assert.Equal(t, Round{Number: 1, AttackerDamage: 10, DefenderHP: 10, Retaliated: true, DefenderDamage: 5, AttackerHP: 95}, result.Rounds[0])
	assert.Equal(t, Round{Number: 2, AttackerDamage: 10, DefenderHP: 0, AttackerHP: 95}, result.Rounds[1])

	assert.Equal(t, 95, player.hp)
	assert.Equal(t, 0, goblin.hp)
}

func TestResolveRoundCount(t *testing.T) {
	// The defender falls after ceil(He/Ap) blows and never strikes on the
	// round it dies, so it retaliates exactly ceil(He/Ap)-1 times.
	tests := []struct {
		attack, enemyHP int
		wantRounds      int
	}{
		{10, 20, 2},
		{10, 21, 3},
		{7, 20, 3},
		{25, 20, 1},
		{1, 5, 5},
	}

	for _, tt := range tests {
		player := newMockCombatant("Jugador", 1000, tt.attack)
		enemy := newMockCombatant("Goblin", tt.enemyHP, 5)

		result, err := NewResolver(nil).Resolve(context.Background(), player, enemy)
		require.NoError(t, err)

		assert.Equal(t, StatePlayerWon, result.Outcome)
		assert.Len(t, result.Rounds, tt.wantRounds, "attack=%d hp=%d", tt.attack, tt.enemyHP)
		assert.Equal(t, tt.wantRounds-1, player.hits, "retaliations for attack=%d hp=%d", tt.attack, tt.enemyHP)
		assert.False(t, result.Rounds[len(result.Rounds)-1].Retaliated)
	}
}

func TestResolvePlayerLoses(t *testing.T) {
	player := newMockCombatant("Jugador", 8, 1)
	ogre := newMockCombatant("Ogro", 50, 5)

	result, err := NewResolver(nil).Resolve(context.Background(), player, ogre)
	require.NoError(t, err)

	assert.Equal(t, StatePlayerLost, result.Outcome)
	require.Len(t, result.Rounds, 2)
	assert.Equal(t, 0, player.hp)
	assert.Equal(t, 48, ogre.hp)
	assert.True(t, ogre.IsAlive())
}

func TestResolveStalemate(t *testing.T) {
	player := newMockCombatant("Jugador", 10, 0)
	statue := newMockCombatant("Estatua", 10, 0)

	_, err := NewResolver(nil).Resolve(context.Background(), player, statue)
	assert.ErrorIs(t, err, ErrStalemate)
	assert.Equal(t, 10, player.hp)
	assert.Equal(t, 10, statue.hp)
}

func TestResolveAlreadyDeadDefender(t *testing.T) {
	player := newMockCombatant("Jugador", 10, 10)
	corpse := newMockCombatant("Goblin", 0, 5)

	result, err := NewResolver(nil).Resolve(context.Background(), player, corpse)
	require.NoError(t, err)

	assert.Equal(t, StatePlayerWon, result.Outcome)
	assert.Empty(t, result.Rounds)
	assert.Equal(t, 10, player.hp)
}

func TestEncounterStep(t *testing.T) {
	player := newMockCombatant("Jugador", 100, 10)
	goblin := newMockCombatant("Goblin", 20, 5)

	enc := NewEncounter(player, goblin)
	require.Equal(t, StateInCombat, enc.State())

	assert.Equal(t, StateInCombat, enc.Step())
	assert.Equal(t, 10, goblin.hp)
	assert.Equal(t, 95, player.hp)

	assert.Equal(t, StatePlayerWon, enc.Step())

	// Finished encounters are inert.
	assert.Equal(t, StatePlayerWon, enc.Step())
	assert.Len(t, enc.Result().Rounds, 2)
	assert.Equal(t, 95, player.hp)
}

func TestNewEncounterWithFallenCombatant(t *testing.T) {
	tests := []struct {
		name     string
		attacker *mockCombatant
		defender *mockCombatant
		want     State
	}{
		{"dead attacker", newMockCombatant("Jugador", 0, 10), newMockCombatant("Goblin", 20, 5), StatePlayerLost},
		{"dead defender", newMockCombatant("Jugador", 100, 10), newMockCombatant("Goblin", 0, 5), StatePlayerWon},
		{"both dead", newMockCombatant("Jugador", 0, 10), newMockCombatant("Goblin", 0, 5), StatePlayerLost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := NewEncounter(tt.attacker, tt.defender)
			assert.Equal(t, tt.want, enc.State())
			assert.Equal(t, tt.want, enc.Step(), "finished encounters do not step")
			assert.Empty(t, enc.Result().Rounds)
			assert.Zero(t, tt.attacker.hits+tt.defender.hits)

			result, err := NewResolver(nil).Resolve(context.Background(), tt.attacker, tt.defender)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Outcome)
		})
	}
}
