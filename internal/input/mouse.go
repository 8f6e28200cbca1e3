package input

import (
	"fmt"
	"strings"
)

// MouseButton identifies a mouse button, including the two wheel
// pseudo-buttons which scroll rather than press and release.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseRight
	MouseMiddle
	MouseForward
	MouseBack
	MouseWheelUp
	MouseWheelDown
)

// IsWheel reports whether the button is one of the wheel pseudo-buttons.
func (b MouseButton) IsWheel() bool {
	return b == MouseWheelUp || b == MouseWheelDown
}

// IsValid reports whether the button is a member of the enum.
func (b MouseButton) IsValid() bool {
	return b > MouseNone && b <= MouseWheelDown
}

// String returns a human-readable name for the button.
func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "left"
	case MouseRight:
		return "right"
	case MouseMiddle:
		return "middle"
	case MouseForward:
		return "forward"
	case MouseBack:
		return "back"
	case MouseWheelUp:
		return "wheelup"
	case MouseWheelDown:
		return "wheeldown"
	default:
		return fmt.Sprintf("MouseButton(%d)", int(b))
	}
}

// MouseButtonFromName resolves a button name (case-insensitive).
func MouseButtonFromName(name string) (MouseButton, error) {
	switch strings.ToLower(name) {
	case "left":
		return MouseLeft, nil
	case "right":
		return MouseRight, nil
	case "middle":
		return MouseMiddle, nil
	case "forward":
		return MouseForward, nil
	case "back":
		return MouseBack, nil
	case "wheelup":
		return MouseWheelUp, nil
	case "wheeldown":
		return MouseWheelDown, nil
	default:
		return MouseNone, fmt.Errorf("input: unknown mouse button %q", name)
	}
}
