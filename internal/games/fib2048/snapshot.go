package fib2048

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePausedSmall GameStateType = "paused_small_window"
	StateFault       GameStateType = "fault"
)

// Snapshot captures the game state for determinism tests and replay checks.
type Snapshot struct {
	Tick    uint64
	Seed    int64
	Moves   int
	Grid    Grid
	Tiles   int
	Sum     int
	MaxTile int
	State   GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.fault != nil:
		state = StateFault
	case g.tooSmall:
		state = StatePausedSmall
	}

	snap := Snapshot{
		Tick:  g.tick,
		Seed:  g.runtime.Seed,
		Moves: g.moves,
		State: state,
	}
	if g.board != nil {
		snap.Grid = g.board.Grid()
		snap.Tiles = g.board.TileCount()
		snap.Sum = g.board.Sum()
		snap.MaxTile = g.board.MaxTile()
	}
	return snap
}
