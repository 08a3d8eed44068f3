package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/fib2048/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default config file",
	Long: `Print the built-in configuration as YAML.

Save it to ~/.fib2048/configs/fib2048.yaml or ./configs/fib2048.yaml to
override the defaults, or pass any path with --config.

Example:
  fib2048 config > ~/.fib2048/configs/fib2048.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := cmd.OutOrStdout().Write(config.DefaultYAML())
		return err
	},
}
