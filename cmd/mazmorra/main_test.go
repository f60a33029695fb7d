package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/mazmorra/internal/world"
)

func playCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "mazmorra"}
	addPlayFlags(cmd)
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd
}

func TestLoadConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("MAZMORRA_SEED", "1")
	t.Setenv("MAZMORRA_SIZE", "20")
	t.Setenv("MAZMORRA_PLAIN", "false")

	cfg, err := loadConfig(playCommand(t, "--seed", "99", "--plain", "--no-color"))
	require.NoError(t, err)

	assert.Equal(t, int64(99), cfg.Seed)
	assert.Equal(t, 20, cfg.Size, "unset flags keep the environment value")
	assert.True(t, cfg.Plain)
	assert.False(t, cfg.Colors)
}

func TestLoadConfigFlagFixesInvalidEnv(t *testing.T) {
	t.Setenv("MAZMORRA_SIZE", "1")

	cfg, err := loadConfig(playCommand(t, "--size", "10"))
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Size)

	_, err = loadConfig(playCommand(t))
	assert.ErrorIs(t, err, world.ErrSizeTooSmall, "without the flag the env value is validated")
}

func TestLoadConfigRejectsBadSize(t *testing.T) {
	_, err := loadConfig(playCommand(t, "--size", "1"))
	assert.ErrorIs(t, err, world.ErrSizeTooSmall)
}

func TestInstructionsCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := &cobra.Command{Use: "instructions"}
	cmd.SetOut(&out)

	runInstructions(cmd, nil)

	assert.Contains(t, out.String(), "=== Instrucciones ===")
	assert.Contains(t, out.String(), "'n' - Norte")
}
