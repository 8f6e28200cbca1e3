// Package action defines the atomic executable steps a macro is made
// of. The variant set is closed: dispatch for execution and for the
// persisted-record round trip is an exhaustive switch, so adding a
// variant is a compile-time-checked change.
package action

import (
	"errors"

	"github.com/WhiteMagic/macrod/internal/injector"
)

// Construction-time validation error kinds. Matched with errors.Is.
var (
	ErrKeyboard = errors.New("invalid keyboard input")
	ErrMouse    = errors.New("invalid mouse input")
)

// Action is one atomic synthetic input event or pause. Implementations
// are immutable once constructed and are invoked for their side effect
// only; Execute may block (PauseAction sleeps for its duration).
//
// The variant set is sealed inside this package.
type Action interface {
	// Execute performs the side effect against the backend. It is not
	// expected to fail in normal operation; a failure terminates only
	// the run of the macro that contained it.
	Execute(b injector.Backend) error

	// ToRecord returns the action's persisted form.
	ToRecord() Record

	isAction()
}

// TypeOf returns the record type tag for an action without building
// its full record.
func TypeOf(a Action) string {
	switch a.(type) {
	case *KeyAction:
		return RecordKey
	case *MouseButtonAction:
		return RecordMouseButton
	case *MouseMotionAction:
		return RecordMouseMotion
	case *JoystickAction:
		return RecordJoystick
	case *VJoyAction:
		return RecordVJoy
	case *PauseAction:
		return RecordPause
	default:
		return "unknown"
	}
}
