package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/samdwyer/mazmorra/internal/game"
	"github.com/samdwyer/mazmorra/internal/gamedata"
	"github.com/samdwyer/mazmorra/internal/telemetry"
)

const (
	flagSeed    = "seed"
	flagSize    = "size"
	flagPlain   = "plain"
	flagNoColor = "no-color"
	flagLogFile = "log-file"
)

func runPlay(cmd *cobra.Command, _ []string) error {
	// Load .env file for local development. A missing file is fine.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := game.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeLog(); err != nil {
			log.Printf("Error closing log file: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if cfg.Telemetry {
		shutdown, err := telemetry.Setup(ctx, cfg.TelemetryConfig())
		if err != nil {
			log.Printf("Warning: telemetry setup failed: %v", err)
			log.Printf("Game will run without observability")
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	}

	catalog, err := gamedata.LoadCatalog()
	if err != nil {
		return fmt.Errorf("load game data: %w", err)
	}

	if cfg.Plain {
		return game.NewConsole(cfg, catalog, logger, os.Stdin, os.Stdout).Run(ctx)
	}

	g, err := game.New(cfg, catalog, logger)
	if err != nil {
		return fmt.Errorf("initialize screen: %w", err)
	}
	runErr := g.Run(ctx)
	g.Close()
	if runErr != nil && ctx.Err() == nil {
		return runErr
	}
	fmt.Println(game.MsgGoodbye)
	return nil
}

// loadConfig reads the environment, applies any flags that were set and
// validates the result once.
func loadConfig(cmd *cobra.Command) (game.Config, error) {
	cfg, err := game.LoadConfig()
	if err != nil {
		return game.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed(flagSeed) {
		cfg.Seed, _ = flags.GetInt64(flagSeed)
	}
	if flags.Changed(flagSize) {
		cfg.Size, _ = flags.GetInt(flagSize)
	}
	if flags.Changed(flagPlain) {
		cfg.Plain, _ = flags.GetBool(flagPlain)
	}
	if flags.Changed(flagNoColor) {
		noColor, _ := flags.GetBool(flagNoColor)
		cfg.Colors = !noColor
	}
	if flags.Changed(flagLogFile) {
		cfg.LogFile, _ = flags.GetString(flagLogFile)
	}
	return cfg, cfg.Validate()
}

func runInstructions(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()
	for _, line := range game.InstructionLines() {
		fmt.Fprintln(out, line)
	}
}
