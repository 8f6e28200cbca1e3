package action

import (
	"fmt"
	"time"

	"github.com/WhiteMagic/macrod/internal/input"
)

// Record type tags, one per action variant.
const (
	RecordKey         = "key"
	RecordMouseButton = "mouse-button"
	RecordMouseMotion = "mouse-motion"
	RecordJoystick    = "joystick"
	RecordVJoy        = "vjoy"
	RecordPause       = "pause"
)

// Property value types.
const (
	PropInt    = "int"
	PropFloat  = "float"
	PropBool   = "bool"
	PropString = "string"
)

// Record is the persisted form of an action: a variant tag plus a
// typed property list. The profile serializer that reads and writes
// these lives outside this repository; the contract here is only that
// FromRecord(a.ToRecord()) reconstructs an action behaviorally
// equivalent to a.
type Record struct {
	Type       string     `yaml:"type" json:"type"`
	Properties []Property `yaml:"properties" json:"properties"`
}

// Property is one named, typed value inside a Record.
type Property struct {
	Name  string `yaml:"name" json:"name"`
	Type  string `yaml:"value_type" json:"value_type"`
	Value any    `yaml:"value" json:"value"`
}

func intProp(name string, v int) Property {
	return Property{Name: name, Type: PropInt, Value: v}
}

func floatProp(name string, v float64) Property {
	return Property{Name: name, Type: PropFloat, Value: v}
}

func boolProp(name string, v bool) Property {
	return Property{Name: name, Type: PropBool, Value: v}
}

func stringProp(name string, v string) Property {
	return Property{Name: name, Type: PropString, Value: v}
}

func (r Record) lookup(name string) (Property, bool) {
	for _, p := range r.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

func (r Record) intProp(name string) (int, error) {
	p, ok := r.lookup(name)
	if !ok {
		return 0, fmt.Errorf("record %s: missing property %q", r.Type, name)
	}
	switch v := p.Value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		// YAML and JSON decoders may hand back numbers as floats.
		return int(v), nil
	default:
		return 0, fmt.Errorf("record %s: property %q is %T, want int", r.Type, name, p.Value)
	}
}

func (r Record) floatProp(name string) (float64, error) {
	p, ok := r.lookup(name)
	if !ok {
		return 0, fmt.Errorf("record %s: missing property %q", r.Type, name)
	}
	switch v := p.Value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("record %s: property %q is %T, want float", r.Type, name, p.Value)
	}
}

func (r Record) boolProp(name string) (bool, error) {
	p, ok := r.lookup(name)
	if !ok {
		return false, fmt.Errorf("record %s: missing property %q", r.Type, name)
	}
	v, ok := p.Value.(bool)
	if !ok {
		return false, fmt.Errorf("record %s: property %q is %T, want bool", r.Type, name, p.Value)
	}
	return v, nil
}

func (r Record) stringProp(name string) (string, error) {
	p, ok := r.lookup(name)
	if !ok {
		return "", fmt.Errorf("record %s: missing property %q", r.Type, name)
	}
	v, ok := p.Value.(string)
	if !ok {
		return "", fmt.Errorf("record %s: property %q is %T, want string", r.Type, name, p.Value)
	}
	return v, nil
}

// FromRecord reconstructs an action from its persisted form.
func FromRecord(r Record) (Action, error) {
	switch r.Type {
	case RecordKey:
		return keyFromRecord(r)
	case RecordMouseButton:
		return mouseButtonFromRecord(r)
	case RecordMouseMotion:
		return mouseMotionFromRecord(r)
	case RecordJoystick:
		return joystickFromRecord(r)
	case RecordVJoy:
		return vjoyFromRecord(r)
	case RecordPause:
		return pauseFromRecord(r)
	default:
		return nil, fmt.Errorf("record: unknown action type %q", r.Type)
	}
}

func keyFromRecord(r Record) (Action, error) {
	scan, err := r.intProp("scan-code")
	if err != nil {
		return nil, err
	}
	extended, err := r.boolProp("is-extended")
	if err != nil {
		return nil, err
	}
	pressed, err := r.boolProp("is-pressed")
	if err != nil {
		return nil, err
	}
	return NewKey(input.Key{ScanCode: uint16(scan), Extended: extended}, pressed)
}

func mouseButtonFromRecord(r Record) (Action, error) {
	name, err := r.stringProp("button")
	if err != nil {
		return nil, err
	}
	btn, err := input.MouseButtonFromName(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMouse, err)
	}
	pressed, err := r.boolProp("is-pressed")
	if err != nil {
		return nil, err
	}
	return NewMouseButton(btn, pressed)
}

func mouseMotionFromRecord(r Record) (Action, error) {
	dx, err := r.intProp("dx")
	if err != nil {
		return nil, err
	}
	dy, err := r.intProp("dy")
	if err != nil {
		return nil, err
	}
	return NewMouseMotion(dx, dy), nil
}

func joystickFromRecord(r Record) (Action, error) {
	device, err := r.stringProp("device")
	if err != nil {
		return nil, err
	}
	in, id, value, mode, err := deviceInputFromRecord(r)
	if err != nil {
		return nil, err
	}
	return NewJoystick(device, in, id, value, mode)
}

func vjoyFromRecord(r Record) (Action, error) {
	vjoyID, err := r.intProp("vjoy-id")
	if err != nil {
		return nil, err
	}
	in, id, value, mode, err := deviceInputFromRecord(r)
	if err != nil {
		return nil, err
	}
	return NewVJoy(vjoyID, in, id, value, mode)
}

func deviceInputFromRecord(r Record) (input.JoystickInput, int, float64, input.AxisMode, error) {
	kind, err := r.stringProp("input-type")
	if err != nil {
		return 0, 0, 0, 0, err
	}
	in, err := input.JoystickInputFromName(kind)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	id, err := r.intProp("input-id")
	if err != nil {
		return 0, 0, 0, 0, err
	}
	value, err := r.floatProp("value")
	if err != nil {
		return 0, 0, 0, 0, err
	}
	mode := input.AxisAbsolute
	if in == input.JoystickAxis {
		name, err := r.stringProp("axis-mode")
		if err != nil {
			return 0, 0, 0, 0, err
		}
		mode, err = input.AxisModeFromName(name)
		if err != nil {
			return 0, 0, 0, 0, err
		}
	}
	return in, id, value, mode, nil
}

func pauseFromRecord(r Record) (Action, error) {
	seconds, err := r.floatProp("duration")
	if err != nil {
		return nil, err
	}
	return NewPause(time.Duration(seconds * float64(time.Second))), nil
}
