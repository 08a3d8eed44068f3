// fib2048 is 2048 with Fibonacci tiles, played in the terminal or over SSH.
//
// Usage:
//
//	fib2048 play             - Play in this terminal
//	fib2048 serve            - Start SSH (and optionally websocket) server
//	fib2048 sim --moves LURD - Apply moves headlessly and print the board
//	fib2048 config           - Print the default config file
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: from config)
//	--seed <value>   - Set RNG seed for reproducible gameplay
//	--config <path>  - Use a specific config file
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/fib2048/internal/config"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagConfig string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "fib2048"})

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fib2048",
	Short: "Fibonacci 2048 - merge neighbours in the Fibonacci sequence",
	Long: `Fibonacci 2048 is a terminal take on 2048 where two tiles merge when
their values are consecutive Fibonacci numbers (1+1, 1+2, 2+3, 3+5, ...).

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  sim      - Run a scripted game without a UI
  config   - Print the default config file

Examples:
  fib2048 play
  fib2048 play --seed 42
  fib2048 serve --ssh :2222 --ws :8080
  fib2048 sim --moves LLURD --seed 7`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate in frames per second (0 = use config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig resolves the config file and applies the global flags.
func loadConfig() (config.Config, error) {
	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	logger.Debug("config loaded", "source", source)

	if flagFPS > 0 {
		cfg.Display.TickRate = flagFPS
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
