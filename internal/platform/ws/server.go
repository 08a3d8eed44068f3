// Package ws exposes the board over a JSON websocket, one game per connection.
package ws

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/fib2048/internal/config"
	"github.com/vovakirdan/fib2048/internal/core"
	"github.com/vovakirdan/fib2048/internal/games/fib2048"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Outgoing messages buffered per connection.
	sendBuffer = 16
)

// Server upgrades HTTP requests on /ws and plays one game per connection.
type Server struct {
	cfg      config.Config
	logger   *log.Logger
	upgrader websocket.Upgrader
	http     *http.Server

	// seed returns the seed for a new game; replaced in tests.
	seed func() int64
}

// NewServer creates a websocket server listening on cfg.Server.WSAddress.
func NewServer(cfg config.Config) *Server {
	s := &Server{
		cfg: cfg,
		logger: log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "fib2048-ws",
		}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		seed: func() int64 { return time.Now().UnixNano() },
	}
	s.http = &http.Server{
		Addr:              cfg.Server.WSAddress,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler serving /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.ServeWS)
	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting websocket server", "address", s.http.Addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			s.logger.Error("server error", "error", err)
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}

// ServeWS upgrades the request and runs the connection until the peer leaves.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	game, err := s.newGame()
	if err != nil {
		s.logger.Error("cannot start game", "remote", r.RemoteAddr, "error", err)
		conn.Close()
		return
	}

	c := &client{
		conn:   conn,
		game:   game,
		send:   make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
		logger: s.logger.With("remote", r.RemoteAddr),
		seed:   s.seed,
	}
	c.logger.Info("connection opened")

	go c.writePump()
	c.readPump()

	c.logger.Info("connection closed", "moves", game.State().Moves)
}

func (s *Server) newGame() (*fib2048.Game, error) {
	g := fib2048.New(s.cfg)
	g.Reset(core.RuntimeConfig{Seed: s.seed()})
	if err := g.Err(); err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	return g, nil
}
