package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/fib2048.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Board: Board{
			InitialTilesMin: 1,
			InitialTilesMax: 4,
		},
		Display: Display{
			TickRate:  30,
			MinWidth:  31,
			MinHeight: 14,
		},
		Server: Server{
			SSHAddress:  ":23234",
			IdleTimeout: 30 * time.Minute,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
