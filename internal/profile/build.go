package profile

import (
	"fmt"
	"time"

	"github.com/WhiteMagic/macrod/internal/action"
	"github.com/WhiteMagic/macrod/internal/input"
	"github.com/WhiteMagic/macrod/internal/macro"
)

// BuildMacro constructs a fresh Macro instance from a definition.
// Each call returns a new instance with a new id; the manager's pacing
// pass mutates the instance it is queued with, so callers queue each
// built instance exactly once.
func BuildMacro(def MacroDef) (*macro.Macro, error) {
	repeat, err := buildRepeat(def.Repeat)
	if err != nil {
		return nil, fmt.Errorf("macro %s: %w", def.Name, err)
	}
	m := macro.New(repeat, def.Exclusive)
	for i, ad := range def.Actions {
		if err := appendAction(m, ad); err != nil {
			return nil, fmt.Errorf("macro %s: actions[%d]: %w", def.Name, i, err)
		}
	}
	return m, nil
}

func buildRepeat(def *RepeatDef) (macro.Repeat, error) {
	if def == nil {
		return nil, nil
	}
	delay := time.Duration(def.DelayMs * float64(time.Millisecond))
	switch def.Mode {
	case "count":
		return macro.CountRepeat{Count: def.Count, Delay: delay}, nil
	case "hold":
		return macro.HoldRepeat{Delay: delay}, nil
	case "toggle":
		return macro.ToggleRepeat{Delay: delay}, nil
	default:
		return nil, fmt.Errorf("unknown repeat mode %q", def.Mode)
	}
}

func appendAction(m *macro.Macro, def ActionDef) error {
	switch def.Type {
	case "key":
		k, err := input.KeyFromName(def.Key)
		if err != nil {
			return err
		}
		pressed := true
		if def.Pressed != nil {
			pressed = *def.Pressed
		}
		a, err := action.NewKey(k, pressed)
		if err != nil {
			return err
		}
		m.AddAction(a)
		return nil

	case "tap":
		k, err := input.KeyFromName(def.Key)
		if err != nil {
			return err
		}
		return m.Tap(k)

	case "mouse-button":
		btn, err := input.MouseButtonFromName(def.Button)
		if err != nil {
			return err
		}
		pressed := true
		if def.Pressed != nil {
			pressed = *def.Pressed
		}
		a, err := action.NewMouseButton(btn, pressed)
		if err != nil {
			return err
		}
		m.AddAction(a)
		return nil

	case "mouse-motion":
		m.AddAction(action.NewMouseMotion(def.DX, def.DY))
		return nil

	case "joystick":
		in, mode, err := deviceInput(def)
		if err != nil {
			return err
		}
		a, err := action.NewJoystick(def.Device, in, def.InputID, def.Value, mode)
		if err != nil {
			return err
		}
		m.AddAction(a)
		return nil

	case "vjoy":
		in, mode, err := deviceInput(def)
		if err != nil {
			return err
		}
		a, err := action.NewVJoy(def.VJoyID, in, def.InputID, def.Value, mode)
		if err != nil {
			return err
		}
		m.AddAction(a)
		return nil

	case "pause":
		m.Pause(time.Duration(def.DurationMs * float64(time.Millisecond)))
		return nil

	default:
		return fmt.Errorf("unknown action type %q", def.Type)
	}
}

func deviceInput(def ActionDef) (input.JoystickInput, input.AxisMode, error) {
	in, err := input.JoystickInputFromName(def.Input)
	if err != nil {
		return 0, 0, err
	}
	mode, err := input.AxisModeFromName(def.AxisMode)
	if err != nil {
		return 0, 0, err
	}
	return in, mode, nil
}
