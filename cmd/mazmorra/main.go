// Package main is the entry point for Aventura en la Mazmorra.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mazmorra",
	Short: "Aventura en la Mazmorra",
	Long: `Aventura en la Mazmorra is a turn-based dungeon crawler. Find the exit
in the bottom-right corner, fight the goblins in your way and pick up
weapons and potions.`,
	SilenceUsage: true,
	RunE:         runPlay,
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the game (default)",
	Args:  cobra.NoArgs,
	RunE:  runPlay,
}

var instructionsCmd = &cobra.Command{
	Use:   "instructions",
	Short: "Print how to play and exit",
	Args:  cobra.NoArgs,
	Run:   runInstructions,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	addPlayFlags(rootCmd)
	addPlayFlags(playCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(instructionsCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Int64(flagSeed, 0, "random seed for dungeon generation (0 picks one)")
	flags.Int(flagSize, 0, "side length of the dungeon")
	flags.Bool(flagPlain, false, "use the line-oriented console instead of the full-screen view")
	flags.Bool(flagNoColor, false, "disable colors")
	flags.String(flagLogFile, "", "write structured logs to this file")
}
