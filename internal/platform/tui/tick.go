// Package tui provides the Bubble Tea integration for Llama Leap.
// It handles the terminal UI loop, input mapping, and game hosting.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultTickRate is the simulation rate when none is configured.
const DefaultTickRate = 60

var lastSchedulerID int64

func nextSchedulerID() int {
	return int(atomic.AddInt64(&lastSchedulerID, 1))
}

// TickMsg is sent to trigger a game simulation tick.
// ID and Tag identify the scheduler generation that queued it.
type TickMsg struct {
	ID   int
	Tag  int
	Time time.Time
}

// Scheduler drives one game at a fixed rate. At most one tick is in flight;
// the next one is queued only after the current one has been handled.
type Scheduler struct {
	id      int
	tag     int
	rate    int
	running bool
}

// NewScheduler creates a stopped scheduler ticking at rate per second.
func NewScheduler(rate int) *Scheduler {
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return &Scheduler{id: nextSchedulerID(), rate: rate}
}

// Interval returns the time between ticks.
func (s *Scheduler) Interval() time.Duration {
	return time.Second / time.Duration(s.rate)
}

// Running reports whether ticks are being accepted.
func (s *Scheduler) Running() bool {
	return s.running
}

// Start begins ticking and returns the first tick command.
func (s *Scheduler) Start() tea.Cmd {
	s.running = true
	s.tag++
	return s.tickCmd()
}

// Stop cancels the scheduler. Ticks already queued are rejected by Accept.
func (s *Scheduler) Stop() {
	s.running = false
	s.tag++
}

// Accept reports whether msg belongs to the current generation of this
// scheduler and should be processed.
func (s *Scheduler) Accept(msg TickMsg) bool {
	return s.running && msg.ID == s.id && msg.Tag == s.tag
}

// Next queues the following tick. Returns nil once stopped.
func (s *Scheduler) Next() tea.Cmd {
	if !s.running {
		return nil
	}
	return s.tickCmd()
}

// tickCmd returns a Bubble Tea command that sends a tick message after one interval.
func (s *Scheduler) tickCmd() tea.Cmd {
	id, tag := s.id, s.tag
	return tea.Tick(s.Interval(), func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Tag: tag, Time: t}
	})
}
