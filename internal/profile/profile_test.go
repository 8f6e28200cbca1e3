package profile_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/WhiteMagic/macrod/internal/macro"
	"github.com/WhiteMagic/macrod/internal/profile"
)

const sampleProfile = `
version: "1"
engine:
  default_action_delay_ms: 25
macros:
  - name: burst
    exclusive: true
    repeat:
      mode: count
      count: 3
      delay_ms: 10
    actions:
      - type: tap
        key: space
      - type: pause
        duration_ms: 50
  - name: strafe
    repeat:
      mode: hold
      delay_ms: 5
    actions:
      - type: key
        key: a
      - type: key
        key: a
        pressed: false
bindings:
  - input: "joy1:button3"
    macro: burst
  - input: "keyboard:f5"
    macro: strafe
`

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	return path
}

func TestLoadAndValidate(t *testing.T) {
	loader, err := profile.NewLoader(writeProfile(t, sampleProfile))
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	p := loader.Profile()
	if err := profile.Validate(p); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if p.Engine.DefaultActionDelayMs != 25 {
		t.Errorf("delay = %d, want 25", p.Engine.DefaultActionDelayMs)
	}
	if len(p.Macros) != 2 || len(p.Bindings) != 2 {
		t.Errorf("got %d macros / %d bindings, want 2/2", len(p.Macros), len(p.Bindings))
	}
}

func TestLoaderMissingFile(t *testing.T) {
	if _, err := profile.NewLoader(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing profile file")
	}
}

func TestValidateErrors(t *testing.T) {
	base := func() *profile.Profile {
		return &profile.Profile{
			Version: "1",
			Macros: []profile.MacroDef{{
				Name:    "m",
				Actions: []profile.ActionDef{{Type: "tap", Key: "a"}},
			}},
		}
	}

	tests := []struct {
		name   string
		mutate func(*profile.Profile)
	}{
		{"missing version", func(p *profile.Profile) { p.Version = "" }},
		{"missing macro name", func(p *profile.Profile) { p.Macros[0].Name = "" }},
		{"duplicate macro name", func(p *profile.Profile) {
			p.Macros = append(p.Macros, p.Macros[0])
		}},
		{"empty actions", func(p *profile.Profile) { p.Macros[0].Actions = nil }},
		{"negative repeat delay", func(p *profile.Profile) {
			p.Macros[0].Repeat = &profile.RepeatDef{Mode: "hold", DelayMs: -1}
		}},
		{"negative repeat count", func(p *profile.Profile) {
			p.Macros[0].Repeat = &profile.RepeatDef{Mode: "count", Count: -2}
		}},
		{"unknown repeat mode", func(p *profile.Profile) {
			p.Macros[0].Repeat = &profile.RepeatDef{Mode: "forever"}
		}},
		{"unknown key", func(p *profile.Profile) {
			p.Macros[0].Actions = []profile.ActionDef{{Type: "key", Key: "warp"}}
		}},
		{"unknown action type", func(p *profile.Profile) {
			p.Macros[0].Actions = []profile.ActionDef{{Type: "fly"}}
		}},
		{"negative pause", func(p *profile.Profile) {
			p.Macros[0].Actions = []profile.ActionDef{{Type: "pause", DurationMs: -5}}
		}},
		{"binding to unknown macro", func(p *profile.Profile) {
			p.Bindings = []profile.BindingDef{{Input: "joy1:button1", Macro: "ghost"}}
		}},
		{"duplicate binding input", func(p *profile.Profile) {
			p.Bindings = []profile.BindingDef{
				{Input: "joy1:button1", Macro: "m"},
				{Input: "joy1:button1", Macro: "m"},
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base()
			tt.mutate(p)
			if err := profile.Validate(p); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	if err := profile.Validate(base()); err != nil {
		t.Fatalf("base profile should validate, got %v", err)
	}
}

func TestBuildMacro(t *testing.T) {
	def := profile.MacroDef{
		Name:      "combo",
		Exclusive: true,
		Repeat:    &profile.RepeatDef{Mode: "count", Count: 2, DelayMs: 100},
		Actions: []profile.ActionDef{
			{Type: "tap", Key: "space"},
			{Type: "pause", DurationMs: 250},
			{Type: "mouse-button", Button: "left"},
			{Type: "mouse-motion", DX: 10, DY: -5},
			{Type: "vjoy", VJoyID: 1, Input: "axis", InputID: 2, Value: 0.5, AxisMode: "relative"},
		},
	}

	m, err := profile.BuildMacro(def)
	if err != nil {
		t.Fatalf("BuildMacro: %v", err)
	}
	// tap expands to press + release
	if got := len(m.Actions()); got != 6 {
		t.Errorf("action count = %d, want 6", got)
	}
	if !m.Exclusive() {
		t.Error("exclusive flag lost")
	}
	r, ok := m.Repeat().(macro.CountRepeat)
	if !ok {
		t.Fatalf("repeat = %T, want CountRepeat", m.Repeat())
	}
	if r.Count != 2 || r.Delay != 100*time.Millisecond {
		t.Errorf("repeat = %+v, want count 2 delay 100ms", r)
	}
}

func TestBuildMacroFreshInstances(t *testing.T) {
	def := profile.MacroDef{
		Name:    "m",
		Actions: []profile.ActionDef{{Type: "tap", Key: "a"}},
	}
	m1, err := profile.BuildMacro(def)
	if err != nil {
		t.Fatalf("BuildMacro: %v", err)
	}
	m2, err := profile.BuildMacro(def)
	if err != nil {
		t.Fatalf("BuildMacro: %v", err)
	}
	if m1.ID() == m2.ID() {
		t.Error("each build must produce a fresh macro id")
	}
}

func TestLoaderReloadNotifies(t *testing.T) {
	path := writeProfile(t, sampleProfile)
	loader, err := profile.NewLoader(path)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}

	var gotVersion string
	loader.OnChange(func(p *profile.Profile) { gotVersion = p.Version })

	updated := "version: \"2\"\nmacros: []\n"
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatalf("rewrite profile: %v", err)
	}
	p, err := loader.Reload()
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if p.Version != "2" {
		t.Errorf("reloaded version = %q, want 2", p.Version)
	}
	if gotVersion != "2" {
		t.Errorf("OnChange saw version %q, want 2", gotVersion)
	}
	if loader.Profile().Version != "2" {
		t.Errorf("Profile() still serves the old document")
	}
}
