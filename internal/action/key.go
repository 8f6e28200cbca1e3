package action

import (
	"fmt"

	"github.com/WhiteMagic/macrod/internal/injector"
	"github.com/WhiteMagic/macrod/internal/input"
)

// KeyAction presses or releases a keyboard key.
// Construct only via NewKey to guarantee a valid scan code.
type KeyAction struct {
	key     input.Key
	pressed bool
}

// NewKey creates a key press or release action. The key must carry a
// valid scan code; anything else fails with ErrKeyboard.
func NewKey(k input.Key, pressed bool) (*KeyAction, error) {
	if !k.IsValid() {
		return nil, fmt.Errorf("%w: key %v has no scan code", ErrKeyboard, k)
	}
	return &KeyAction{key: k, pressed: pressed}, nil
}

// Key returns the key being pressed or released.
func (a *KeyAction) Key() input.Key { return a.key }

// Pressed reports whether this is a press (true) or release (false).
func (a *KeyAction) Pressed() bool { return a.pressed }

func (a *KeyAction) Execute(b injector.Backend) error {
	if a.pressed {
		return b.SendKeyDown(a.key)
	}
	return b.SendKeyUp(a.key)
}

func (a *KeyAction) ToRecord() Record {
	return Record{
		Type: RecordKey,
		Properties: []Property{
			intProp("scan-code", int(a.key.ScanCode)),
			boolProp("is-extended", a.key.Extended),
			boolProp("is-pressed", a.pressed),
		},
	}
}

func (a *KeyAction) isAction() {}
