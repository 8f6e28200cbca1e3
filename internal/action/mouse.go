package action

import (
	"fmt"

	"github.com/WhiteMagic/macrod/internal/injector"
	"github.com/WhiteMagic/macrod/internal/input"
)

// MouseButtonAction presses or releases a mouse button. The wheel
// pseudo-buttons scroll one detent instead of pressing and releasing.
// Construct only via NewMouseButton.
type MouseButtonAction struct {
	button  input.MouseButton
	pressed bool
}

// NewMouseButton creates a mouse button press or release action.
// A value outside the button enum fails with ErrMouse.
func NewMouseButton(b input.MouseButton, pressed bool) (*MouseButtonAction, error) {
	if !b.IsValid() {
		return nil, fmt.Errorf("%w: %v is not a mouse button", ErrMouse, b)
	}
	return &MouseButtonAction{button: b, pressed: pressed}, nil
}

// Button returns the button being pressed or released.
func (a *MouseButtonAction) Button() input.MouseButton { return a.button }

// Pressed reports whether this is a press (true) or release (false).
func (a *MouseButtonAction) Pressed() bool { return a.pressed }

func (a *MouseButtonAction) Execute(b injector.Backend) error {
	switch a.button {
	case input.MouseWheelUp:
		return b.SendMouseWheel(1)
	case input.MouseWheelDown:
		return b.SendMouseWheel(-1)
	}
	if a.pressed {
		return b.SendMouseDown(a.button)
	}
	return b.SendMouseUp(a.button)
}

func (a *MouseButtonAction) ToRecord() Record {
	return Record{
		Type: RecordMouseButton,
		Properties: []Property{
			stringProp("button", a.button.String()),
			boolProp("is-pressed", a.pressed),
		},
	}
}

func (a *MouseButtonAction) isAction() {}

// MouseMotionAction moves the mouse cursor by a relative delta.
type MouseMotionAction struct {
	DX int
	DY int
}

// NewMouseMotion creates a relative mouse motion action.
func NewMouseMotion(dx, dy int) *MouseMotionAction {
	return &MouseMotionAction{DX: dx, DY: dy}
}

func (a *MouseMotionAction) Execute(b injector.Backend) error {
	return b.SendMouseMotion(a.DX, a.DY)
}

func (a *MouseMotionAction) ToRecord() Record {
	return Record{
		Type: RecordMouseMotion,
		Properties: []Property{
			intProp("dx", a.DX),
			intProp("dy", a.DY),
		},
	}
}

func (a *MouseMotionAction) isAction() {}
