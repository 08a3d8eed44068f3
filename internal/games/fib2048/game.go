// Package fib2048 implements 2048 with Fibonacci tiles: two tiles merge when
// their positions in the Fibonacci sequence are adjacent, or when both are 1.
package fib2048

import (
	"math/rand"

	"github.com/vovakirdan/fib2048/internal/config"
	"github.com/vovakirdan/fib2048/internal/core"
)

// ID identifies the game in logs and screenshot file names.
const ID = "fib2048"

// Game drives a Board from platform input frames.
type Game struct {
	cfg     config.Config
	runtime core.RuntimeConfig
	rng     *rand.Rand
	board   *Board
	tick    uint64
	moves   int
	last    MoveResult

	tooSmall bool
	fault    error // Broken board invariant; the game stops accepting input
}

// New creates a game using cfg. Call Reset before the first Step.
func New(cfg config.Config) *Game {
	return &Game{cfg: cfg}
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Fibonacci 2048"
}

// Reset starts a new game: fresh RNG from the seed, empty board, seed tiles.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.runtime = rc
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.board = NewBoard(g.rng)
	g.tick = 0
	g.moves = 0
	g.last = MoveResult{}
	g.fault = nil

	lo, hi := g.cfg.Board.InitialTilesMin, g.cfg.Board.InitialTilesMax
	count := lo
	if hi > lo {
		count += g.rng.Intn(hi - lo + 1)
	}
	if err := g.board.Initialize(count); err != nil {
		g.fault = err
	}

	g.Resize(rc.ScreenW, rc.ScreenH)
}

// Resize re-checks the minimum window size without touching the board.
func (g *Game) Resize(w, h int) {
	g.tooSmall = w < g.cfg.Display.MinWidth || h < g.cfg.Display.MinHeight
}

// Board exposes the underlying board.
func (g *Game) Board() *Board {
	return g.board
}

// Step processes one frame of input. At most one move is applied per frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.fault != nil {
		return core.StepResult{State: g.State(), Err: g.fault}
	}

	if in.Has(core.ActionRestart) {
		rc := g.runtime
		rc.Seed = g.rng.Int63()
		g.Reset(rc)
		return core.StepResult{State: g.State(), Err: g.fault}
	}

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if dir, ok := directionFromInput(in); ok {
		if _, err := g.Move(dir); err != nil {
			return core.StepResult{State: g.State(), Err: err}
		}
	}

	return core.StepResult{State: g.State()}
}

// Move applies a single move to the board. Once a move fails the game is
// faulted and every later move returns the same error.
func (g *Game) Move(dir Direction) (MoveResult, error) {
	if g.fault != nil {
		return MoveResult{}, g.fault
	}

	res, err := g.board.Move(dir)
	if err != nil {
		g.fault = err
		return MoveResult{}, err
	}
	g.last = res
	if res.Changed {
		g.moves++
	}
	return res, nil
}

// directionFromInput picks the move for this frame; up wins over down over left over right.
func directionFromInput(in core.InputFrame) (Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return DirUp, true
	case in.Has(core.ActionDown):
		return DirDown, true
	case in.Has(core.ActionLeft):
		return DirLeft, true
	case in.Has(core.ActionRight):
		return DirRight, true
	}
	return 0, false
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	var st core.GameState
	st.Moves = g.moves
	st.Paused = g.tooSmall
	if g.board != nil {
		st.Tiles = g.board.TileCount()
		st.MaxTile = g.board.MaxTile()
	}
	return st
}

// Err returns the invariant violation that stopped the game, if any.
func (g *Game) Err() error {
	return g.fault
}
