package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fib2048/internal/config"
	"github.com/vovakirdan/fib2048/internal/core"
	"github.com/vovakirdan/fib2048/internal/games/fib2048"
)

var (
	flagMoves string
	flagTrace bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Apply a sequence of moves and print the board",
	Long: `Start a game without a UI, apply the given moves in order and print the
resulting board. Moves are letters: U(p), D(own), L(eft), R(ight).

Examples:
  fib2048 sim --moves LURD --seed 7
  fib2048 sim --moves LLLL --seed 7 --trace`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagMoves, "moves", "", "Moves to apply, e.g. LURD")
	simCmd.Flags().BoolVar(&flagTrace, "trace", false, "Print the board after every move")
}

func runSim(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return simulate(cmd.OutOrStdout(), cfg, seed, flagMoves, flagTrace)
}

// simulate plays moves on a fresh game and writes the board to w.
// All moves are parsed before any is applied.
func simulate(w io.Writer, cfg config.Config, seed int64, moves string, trace bool) error {
	dirs := make([]fib2048.Direction, 0, len(moves))
	for i, r := range moves {
		dir, err := fib2048.ParseDirection(string(r))
		if err != nil {
			return fmt.Errorf("move %d: %w", i+1, err)
		}
		dirs = append(dirs, dir)
	}

	g := fib2048.New(cfg)
	g.Reset(core.RuntimeConfig{Seed: seed})
	if err := g.Err(); err != nil {
		return err
	}

	fmt.Fprintf(w, "seed %d\n", seed)
	if trace {
		fmt.Fprintf(w, "start\n%s", g.Board())
	}

	for _, dir := range dirs {
		res, err := g.Move(dir)
		if err != nil {
			return fmt.Errorf("move %s: %w", dir, err)
		}
		if trace {
			fmt.Fprintf(w, "%s changed=%t merges=%d\n%s", dir, res.Changed, res.Merges, g.Board())
		}
	}

	st := g.State()
	if !trace {
		fmt.Fprint(w, g.Board())
	}
	fmt.Fprintf(w, "moves %d, tiles %d, max %d\n", st.Moves, st.Tiles, st.MaxTile)
	return nil
}
