// Package profile loads and validates macrod profile documents: named
// macro definitions plus the trigger bindings that fire them.
package profile

// Profile is the top-level YAML structure.
type Profile struct {
	Version  string       `yaml:"version"`
	Engine   EngineConf   `yaml:"engine"`
	Macros   []MacroDef   `yaml:"macros"`
	Bindings []BindingDef `yaml:"bindings"`
}

// EngineConf holds manager tunables.
type EngineConf struct {
	// DefaultActionDelayMs is the pacing pause inserted between
	// adjacent non-pause actions. Zero selects the built-in default.
	DefaultActionDelayMs int `yaml:"default_action_delay_ms"`
}

// MacroDef describes one named macro.
type MacroDef struct {
	Name      string      `yaml:"name"`
	Exclusive bool        `yaml:"exclusive"`
	Repeat    *RepeatDef  `yaml:"repeat,omitempty"`
	Actions   []ActionDef `yaml:"actions"`
}

// RepeatDef describes a repeat policy. Mode is one of "count",
// "hold", or "toggle"; omitting the whole block runs the macro once.
type RepeatDef struct {
	Mode    string  `yaml:"mode"`
	Count   int     `yaml:"count,omitempty"`
	DelayMs float64 `yaml:"delay_ms"`
}

// ActionDef is a discriminated action description; Type selects which
// of the remaining fields apply.
//
// Types: key, tap, mouse-button, mouse-motion, joystick, vjoy, pause.
// "tap" is profile sugar that expands to a press and a release.
type ActionDef struct {
	Type string `yaml:"type"`

	// key / tap
	Key     string `yaml:"key,omitempty"`
	Pressed *bool  `yaml:"pressed,omitempty"`

	// mouse-button
	Button string `yaml:"button,omitempty"`

	// mouse-motion
	DX int `yaml:"dx,omitempty"`
	DY int `yaml:"dy,omitempty"`

	// joystick / vjoy
	Device   string  `yaml:"device,omitempty"`
	VJoyID   int     `yaml:"vjoy_id,omitempty"`
	Input    string  `yaml:"input,omitempty"`
	InputID  int     `yaml:"input_id,omitempty"`
	Value    float64 `yaml:"value,omitempty"`
	AxisMode string  `yaml:"axis_mode,omitempty"`

	// pause
	DurationMs float64 `yaml:"duration_ms,omitempty"`
}

// BindingDef ties a physical input identifier to a macro by name.
type BindingDef struct {
	// Input is the identifier the capture side reports, e.g.
	// "joy1:button3" or "keyboard:f5". Matched verbatim.
	Input string `yaml:"input"`
	Macro string `yaml:"macro"`
}
