package core

// Action represents a semantic game action, abstracted from physical key presses
// and mouse clicks. Games only ever see actions.
type Action int

const (
	ActionNone    Action = iota
	ActionJump           // Space, Up, W, K, mouse press - flap
	ActionRestart        // R - restart after game over
	ActionRead           // Enter in overlay after game over - return to the reply
	ActionClose          // Esc, X - hand control back to the host
	ActionQuit           // Q, Ctrl+C - exit the program
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionRestart:
		return "Restart"
	case ActionRead:
		return "Read"
	case ActionClose:
		return "Close"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
