// Package tui runs the game in a Bubble Tea program, locally or per SSH session.
// It owns the frame loop, key mapping and styled rendering.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent once per frame.
type TickMsg time.Time

// tickCmd schedules the next frame at the given rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 30
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
