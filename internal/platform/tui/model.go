package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/fib2048/internal/core"
	"github.com/vovakirdan/fib2048/internal/games/fib2048"
)

// helpHeight is the number of rows reserved below the game for key help.
const helpHeight = 1

// Model is the Bubble Tea model running a single game.
type Model struct {
	game       *fib2048.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	err        error
	quitting   bool
}

// NewModel creates a Bubble Tea model for the given game.
func NewModel(game *fib2048.Game, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, gameHeight(cfg.ScreenH)),
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       h,
		inputFrame: core.NewInputFrame(),
	}
}

func gameHeight(h int) int {
	return max(0, h-helpHeight)
}

// Init starts the game and the tick loop.
func (m Model) Init() tea.Cmd {
	rc := m.config
	rc.ScreenH = gameHeight(rc.ScreenH)
	m.game.Reset(rc)
	return tea.Batch(
		tea.SetWindowTitle(m.game.Title()),
		tickCmd(m.config.TickRate),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey queues the action for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		//nolint:errcheck // Best-effort save, game continues regardless
		m.saveScreenshot()
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize keeps the board and only updates the layout.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width

	h := gameHeight(msg.Height)
	m.screen.Resize(msg.Width, h)
	m.game.Resize(msg.Width, h)
	return m, nil
}

// handleTick advances the game by one frame.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if result.Err != nil {
		m.err = result.Err
		m.quitting = true
		return m, tea.Quit
	}

	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot writes the current screen as plain text to ~/.fib2048/screenshots.
func (m *Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	dir := filepath.Join(home, ".fib2048", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", fib2048.ID, timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	return path, nil
}

// Err returns the error that ended the program, if any.
func (m Model) Err() error {
	return m.err
}

// View renders the game followed by the key help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Run starts the Bubble Tea program and blocks until the player quits.
// A broken board invariant ends the program and is returned.
func Run(game *fib2048.Game, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewModel(game, cfg),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
