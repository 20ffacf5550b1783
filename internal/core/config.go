package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters (terminal platforms)
	ScreenH  int   // Screen height in characters (terminal platforms)
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  100,
		ScreenH:  30,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TicksToMillis returns the simulated time after ticks ticks. It is computed
// from the tick count so rates that do not divide a second do not drift.
func (c RuntimeConfig) TicksToMillis(ticks uint64) int64 {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return int64(ticks * 1000 / uint64(rate)) //#nosec G115 -- tick counts stay far below overflow
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Survival time in seconds (single-player)
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	Err   error // set when the simulation can no longer continue
}
