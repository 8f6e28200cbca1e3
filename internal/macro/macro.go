// Package macro holds the in-memory macro model and the Manager that
// schedules, dispatches, serializes, and cancels macro execution.
package macro

import (
	"sync/atomic"
	"time"

	"github.com/WhiteMagic/macrod/internal/action"
	"github.com/WhiteMagic/macrod/internal/input"
)

// Repeat describes how a macro's action sequence re-executes. A nil
// Repeat runs the sequence exactly once. The variant set is sealed.
type Repeat interface{ isRepeat() }

// CountRepeat runs the sequence Count times, waiting Delay between
// runs. A count of zero executes the sequence zero times.
type CountRepeat struct {
	Count int
	Delay time.Duration
}

// HoldRepeat runs the sequence repeatedly, waiting Delay between runs,
// until externally terminated (typically on trigger release).
type HoldRepeat struct {
	Delay time.Duration
}

// ToggleRepeat behaves like HoldRepeat while running; queuing the same
// macro again while it is active terminates it instead ("press to
// start, press again to stop").
type ToggleRepeat struct {
	Delay time.Duration
}

func (CountRepeat) isRepeat()  {}
func (HoldRepeat) isRepeat()   {}
func (ToggleRepeat) isRepeat() {}

// nextID hands out process-unique macro ids.
var nextID atomic.Int64

// Macro is an ordered, append-only sequence of actions plus an
// optional repeat policy and an exclusivity flag. Two Macro values are
// the same macro for scheduling purposes iff their ids are equal.
//
// The sequence is mutable while the macro is being built but must be
// treated as frozen once handed to the Manager; the Manager itself
// performs a pacing pass over it when queued (see QueueMacro).
type Macro struct {
	id        int64
	sequence  []action.Action
	repeat    Repeat
	exclusive bool
}

// New creates an empty macro with a fresh process-unique id.
func New(repeat Repeat, exclusive bool) *Macro {
	return &Macro{
		id:        nextID.Add(1),
		repeat:    repeat,
		exclusive: exclusive,
	}
}

// ID returns the macro's process-unique id.
func (m *Macro) ID() int64 { return m.id }

// Repeat returns the macro's repeat policy (nil = run once).
func (m *Macro) Repeat() Repeat { return m.repeat }

// Exclusive reports whether the macro claims exclusive execution.
func (m *Macro) Exclusive() bool { return m.exclusive }

// Actions returns the macro's current action sequence.
func (m *Macro) Actions() []action.Action { return m.sequence }

// AddAction appends an action to the sequence.
func (m *Macro) AddAction(a action.Action) {
	m.sequence = append(m.sequence, a)
}

// Press appends a key press.
func (m *Macro) Press(k input.Key) error {
	a, err := action.NewKey(k, true)
	if err != nil {
		return err
	}
	m.AddAction(a)
	return nil
}

// Release appends a key release.
func (m *Macro) Release(k input.Key) error {
	a, err := action.NewKey(k, false)
	if err != nil {
		return err
	}
	m.AddAction(a)
	return nil
}

// Tap appends a key press followed by its release.
func (m *Macro) Tap(k input.Key) error {
	if err := m.Press(k); err != nil {
		return err
	}
	return m.Release(k)
}

// Pause appends a fixed pause.
func (m *Macro) Pause(d time.Duration) {
	m.AddAction(action.NewPause(d))
}
