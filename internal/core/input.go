package core

// Action is a semantic game action, abstracted from physical key presses.
type Action uint8

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionRestart
	ActionQuit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame collects the actions triggered during one frame.
type InputFrame struct {
	actions uint32
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.actions |= 1 << a
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return a != ActionNone && f.actions&(1<<a) != 0
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return f.actions == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.actions = 0
}
