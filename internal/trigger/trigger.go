// Package trigger models the press/release events the input-capture
// side reports and routes them to macro starts and terminations.
package trigger

import "time"

// Kind is the edge of a trigger event.
type Kind string

const (
	KindPress   Kind = "press"
	KindRelease Kind = "release"
)

// Event is the canonical model for one trigger report.
type Event struct {
	ID         string    `json:"id"`
	Kind       Kind      `json:"kind"`
	Input      string    `json:"input"` // e.g. "joy1:button3", "keyboard:f5"
	OccurredAt time.Time `json:"occurred_at"`
	ReceivedAt time.Time `json:"-"`
	Source     string    `json:"source"` // capture subsystem identifier
}
