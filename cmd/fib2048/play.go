package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/fib2048/internal/core"
	"github.com/vovakirdan/fib2048/internal/games/fib2048"
	"github.com/vovakirdan/fib2048/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in the current terminal.

Controls:
  Arrows/WASD  - Slide tiles
  R            - Restart with a new board
  Ctrl+S       - Save a screenshot to ~/.fib2048/screenshots
  Q/Ctrl+C     - Quit

Examples:
  fib2048 play
  fib2048 play --seed 42
  fib2048 play --config ./my-fib2048.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.Display.TickRate,
		Seed:     flagSeed,
	}

	if err := tui.Run(fib2048.New(cfg), rc); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
