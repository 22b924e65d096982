package core

// Mode is the phase of a game session.
type Mode int

const (
	ModeReady Mode = iota
	ModePlaying
	ModeGameOver
)

// String returns the upper-case phase name shown in logs.
func (m Mode) String() string {
	switch m {
	case ModeReady:
		return "READY"
	case ModePlaying:
		return "PLAYING"
	case ModeGameOver:
		return "GAME_OVER"
	default:
		return "UNKNOWN"
	}
}

// DisplayState is the part of a game a host view is allowed to observe.
// It changes only on mode transitions and score increments.
type DisplayState struct {
	Mode  Mode
	Score int
}

// DisplayEventKind says why a DisplayEvent was published.
type DisplayEventKind int

const (
	EventModeChanged DisplayEventKind = iota + 1
	EventScored
)

// DisplayEvent carries the DisplayState after a transition or score change.
type DisplayEvent struct {
	Kind  DisplayEventKind
	State DisplayState
}

// StepResult is returned by Game.Tick after each frame.
// Events is empty on the vast majority of ticks.
type StepResult struct {
	Events []DisplayEvent
}

// Latest returns the DisplayState carried by the last event and true,
// or the zero value and false if nothing changed.
func (r StepResult) Latest() (DisplayState, bool) {
	if len(r.Events) == 0 {
		return DisplayState{}, false
	}
	return r.Events[len(r.Events)-1].State, true
}
