package core

// RuntimeConfig contains settings passed to the game on reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second
	Seed     int64 // RNG seed, 0 means pick one from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// GameState is what the platform needs to know about the game after a step.
type GameState struct {
	Moves   int  // Moves that changed the board
	Tiles   int  // Tiles currently on the board
	MaxTile int  // Largest tile value
	Paused  bool // Game is not accepting moves (e.g. window too small)
}

// StepResult is returned by Game.Step().
type StepResult struct {
	State GameState
	// Err is set when the board broke an invariant. The platform should stop.
	Err error
}
