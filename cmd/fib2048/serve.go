package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/fib2048/internal/platform/tui"
	"github.com/vovakirdan/fib2048/internal/platform/ws"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
	flagWSAddr      string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server where every connection plays its own game.

With --ws an HTTP server also exposes GET /ws, a JSON websocket where each
connection owns a board and sends {"type":"move","direction":"left"},
{"type":"tiles"} or {"type":"reset"}.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.fib2048/host_key

Flags override the server section of the config file.

Examples:
  fib2048 serve                           # Listen on :23234 with auto-generated key
  fib2048 serve --ssh :2222               # Listen on port 2222
  fib2048 serve --ws :8080                # Also serve the websocket API
  fib2048 serve --idle-timeout 5m

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting")
	serveCmd.Flags().StringVar(&flagWSAddr, "ws", "", "Websocket server address (empty = disabled)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("ssh") {
		cfg.Server.SSHAddress = flagSSHAddr
	}
	if flags.Changed("host-key") {
		cfg.Server.HostKeyPath = flagHostKey
	}
	if flags.Changed("idle-timeout") {
		cfg.Server.IdleTimeout = flagIdleTimeout
	}
	if flags.Changed("ws") {
		cfg.Server.WSAddress = flagWSAddr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	sshServer, err := tui.NewSSHServer(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sshServer.ListenAndServe(ctx)
	})
	if cfg.Server.WSAddress != "" {
		wsServer := ws.NewServer(cfg)
		g.Go(func() error {
			return wsServer.ListenAndServe(ctx)
		})
	}

	if _, port, err := net.SplitHostPort(cfg.Server.SSHAddress); err == nil {
		logger.Info("press Ctrl+C to stop", "connect", "ssh localhost -p "+port)
	}
	return g.Wait()
}
