package input

import (
	"fmt"
	"strings"
)

// JoystickInput discriminates the three kinds of joystick inputs.
type JoystickInput int

const (
	JoystickAxis JoystickInput = iota + 1
	JoystickButton
	JoystickHat
)

// IsValid reports whether the input kind is a member of the enum.
func (j JoystickInput) IsValid() bool {
	return j >= JoystickAxis && j <= JoystickHat
}

// String returns a human-readable name for the input kind.
func (j JoystickInput) String() string {
	switch j {
	case JoystickAxis:
		return "axis"
	case JoystickButton:
		return "button"
	case JoystickHat:
		return "hat"
	default:
		return fmt.Sprintf("JoystickInput(%d)", int(j))
	}
}

// JoystickInputFromName resolves an input-kind name (case-insensitive).
func JoystickInputFromName(name string) (JoystickInput, error) {
	switch strings.ToLower(name) {
	case "axis":
		return JoystickAxis, nil
	case "button":
		return JoystickButton, nil
	case "hat":
		return JoystickHat, nil
	default:
		return 0, fmt.Errorf("input: unknown joystick input kind %q", name)
	}
}

// AxisMode selects how an axis value is applied.
type AxisMode int

const (
	// AxisAbsolute sets the axis to the given position.
	AxisAbsolute AxisMode = iota
	// AxisRelative offsets the axis from its current position.
	AxisRelative
)

// String returns a human-readable name for the mode.
func (m AxisMode) String() string {
	if m == AxisRelative {
		return "relative"
	}
	return "absolute"
}

// AxisModeFromName resolves an axis-mode name (case-insensitive).
// The empty string maps to AxisAbsolute, the profile default.
func AxisModeFromName(name string) (AxisMode, error) {
	switch strings.ToLower(name) {
	case "", "absolute":
		return AxisAbsolute, nil
	case "relative":
		return AxisRelative, nil
	default:
		return 0, fmt.Errorf("input: unknown axis mode %q", name)
	}
}
