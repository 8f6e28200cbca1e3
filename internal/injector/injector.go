// Package injector abstracts the OS-level input-injection primitives
// the macro engine drives. The real keyboard/mouse/joystick hooks live
// outside this repository; macrod links the backend it is built for
// and falls back to the dry-run backend otherwise.
package injector

import (
	"github.com/WhiteMagic/macrod/internal/input"
)

// Backend is the set of injection primitives an action can invoke.
// Implementations must be safe for concurrent use: several macros may
// execute at once, each on its own goroutine.
type Backend interface {
	SendKeyDown(k input.Key) error
	SendKeyUp(k input.Key) error

	SendMouseDown(b input.MouseButton) error
	SendMouseUp(b input.MouseButton) error
	SendMouseMotion(dx, dy int) error
	// SendMouseWheel scrolls by the given number of detents; negative
	// values scroll down.
	SendMouseWheel(steps int) error

	// Joystick returns the proxy for a physical joystick device.
	Joystick(deviceID string) DeviceProxy
	// VJoy returns the proxy for a virtual joystick device.
	VJoy(vjoyID int) DeviceProxy
}

// DeviceProxy exposes the writable inputs of one joystick or virtual
// joystick device.
type DeviceProxy interface {
	SetAxis(id int, value float64, mode input.AxisMode) error
	SetButton(id int, pressed bool) error
	SetHat(id int, value int) error
}
