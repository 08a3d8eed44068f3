// Package config provides YAML-based configuration loading for the
// board, the terminal display and the network servers.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Config is the complete application configuration.
type Config struct {
	Board   Board   `yaml:"board"`
	Display Display `yaml:"display"`
	Server  Server  `yaml:"server"`
}

// Board configures game start.
type Board struct {
	InitialTilesMin int `yaml:"initial_tiles_min"`
	InitialTilesMax int `yaml:"initial_tiles_max"`
}

// Display configures the terminal frontend.
type Display struct {
	TickRate  int `yaml:"tick_rate"`
	MinWidth  int `yaml:"min_width"`
	MinHeight int `yaml:"min_height"`
}

// Server configures the SSH and websocket frontends.
type Server struct {
	SSHAddress  string        `yaml:"ssh_address"`
	HostKeyPath string        `yaml:"host_key_path"` // Empty means ~/.fib2048/host_key
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	WSAddress   string        `yaml:"ws_address"` // Empty disables the websocket server
}

// Validate checks ranges the game relies on.
func (c Config) Validate() error {
	b := c.Board
	if b.InitialTilesMin < 1 || b.InitialTilesMax > 4 || b.InitialTilesMin > b.InitialTilesMax {
		return fmt.Errorf("%w: board initial tiles [%d, %d] must lie within [1, 4]",
			ErrInvalid, b.InitialTilesMin, b.InitialTilesMax)
	}
	if c.Display.TickRate < 1 || c.Display.TickRate > 240 {
		return fmt.Errorf("%w: display tick_rate %d must be 1-240", ErrInvalid, c.Display.TickRate)
	}
	if c.Display.MinWidth < 0 || c.Display.MinHeight < 0 {
		return fmt.Errorf("%w: display minimum size must not be negative", ErrInvalid)
	}
	if c.Server.IdleTimeout < 0 {
		return fmt.Errorf("%w: server idle_timeout must not be negative", ErrInvalid)
	}
	return nil
}
