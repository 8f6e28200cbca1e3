package action

import (
	"fmt"

	"github.com/WhiteMagic/macrod/internal/injector"
	"github.com/WhiteMagic/macrod/internal/input"
)

// JoystickAction sets an axis, button, or hat on a physical joystick
// device (through whatever remapping layer the backend provides).
type JoystickAction struct {
	Device  string
	Input   input.JoystickInput
	InputID int
	Value   float64
	Mode    input.AxisMode // meaningful for axes only
}

// NewJoystick creates a joystick state-change action.
func NewJoystick(device string, in input.JoystickInput, id int, value float64, mode input.AxisMode) (*JoystickAction, error) {
	if !in.IsValid() {
		return nil, fmt.Errorf("action: %v is not a joystick input kind", in)
	}
	return &JoystickAction{Device: device, Input: in, InputID: id, Value: value, Mode: mode}, nil
}

func (a *JoystickAction) Execute(b injector.Backend) error {
	return applyDevice(b.Joystick(a.Device), a.Input, a.InputID, a.Value, a.Mode)
}

func (a *JoystickAction) ToRecord() Record {
	props := []Property{
		stringProp("device", a.Device),
		stringProp("input-type", a.Input.String()),
		intProp("input-id", a.InputID),
		floatProp("value", a.Value),
	}
	if a.Input == input.JoystickAxis {
		props = append(props, stringProp("axis-mode", a.Mode.String()))
	}
	return Record{Type: RecordJoystick, Properties: props}
}

func (a *JoystickAction) isAction() {}

// VJoyAction sets an axis, button, or hat on a virtual joystick device.
type VJoyAction struct {
	VJoyID  int
	Input   input.JoystickInput
	InputID int
	Value   float64
	Mode    input.AxisMode // meaningful for axes only
}

// NewVJoy creates a virtual-joystick state-change action.
func NewVJoy(vjoyID int, in input.JoystickInput, id int, value float64, mode input.AxisMode) (*VJoyAction, error) {
	if !in.IsValid() {
		return nil, fmt.Errorf("action: %v is not a joystick input kind", in)
	}
	return &VJoyAction{VJoyID: vjoyID, Input: in, InputID: id, Value: value, Mode: mode}, nil
}

func (a *VJoyAction) Execute(b injector.Backend) error {
	return applyDevice(b.VJoy(a.VJoyID), a.Input, a.InputID, a.Value, a.Mode)
}

func (a *VJoyAction) ToRecord() Record {
	props := []Property{
		intProp("vjoy-id", a.VJoyID),
		stringProp("input-type", a.Input.String()),
		intProp("input-id", a.InputID),
		floatProp("value", a.Value),
	}
	if a.Input == input.JoystickAxis {
		props = append(props, stringProp("axis-mode", a.Mode.String()))
	}
	return Record{Type: RecordVJoy, Properties: props}
}

func (a *VJoyAction) isAction() {}

func applyDevice(dev injector.DeviceProxy, in input.JoystickInput, id int, value float64, mode input.AxisMode) error {
	switch in {
	case input.JoystickAxis:
		return dev.SetAxis(id, value, mode)
	case input.JoystickButton:
		return dev.SetButton(id, value != 0)
	case input.JoystickHat:
		return dev.SetHat(id, int(value))
	default:
		return fmt.Errorf("action: unknown joystick input kind %v", in)
	}
}
