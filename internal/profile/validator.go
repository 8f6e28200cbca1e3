package profile

import (
	"fmt"
	"strings"
)

// Validate checks the profile for:
//   - Duplicate macro names and binding inputs
//   - Repeat policies with negative delays or counts
//   - Action definitions that fail to build
//   - Bindings referencing undefined macros
func Validate(p *Profile) error {
	if p.Version == "" {
		return fmt.Errorf("profile: version is required")
	}
	var errs []string

	names := make(map[string]bool)
	for i, def := range p.Macros {
		if def.Name == "" {
			errs = append(errs, fmt.Sprintf("macros[%d]: name is required", i))
			continue
		}
		if names[def.Name] {
			errs = append(errs, fmt.Sprintf("duplicate macro name %q", def.Name))
		}
		names[def.Name] = true

		if len(def.Actions) == 0 {
			errs = append(errs, fmt.Sprintf("macro %s: actions must not be empty", def.Name))
		}
		if r := def.Repeat; r != nil {
			if r.DelayMs < 0 {
				errs = append(errs, fmt.Sprintf("macro %s: repeat delay must be non-negative", def.Name))
			}
			if r.Mode == "count" && r.Count < 0 {
				errs = append(errs, fmt.Sprintf("macro %s: repeat count must be >= 0", def.Name))
			}
		}
		for j, ad := range def.Actions {
			if ad.Type == "pause" && ad.DurationMs < 0 {
				errs = append(errs, fmt.Sprintf("macro %s: actions[%d]: pause duration must be non-negative", def.Name, j))
			}
		}
		// Building surfaces unknown keys, buttons, kinds, and modes.
		if _, err := BuildMacro(def); err != nil {
			errs = append(errs, err.Error())
		}
	}

	inputs := make(map[string]bool)
	for i, b := range p.Bindings {
		if b.Input == "" {
			errs = append(errs, fmt.Sprintf("bindings[%d]: input is required", i))
			continue
		}
		if inputs[b.Input] {
			errs = append(errs, fmt.Sprintf("duplicate binding input %q", b.Input))
		}
		inputs[b.Input] = true
		if !names[b.Macro] {
			errs = append(errs, fmt.Sprintf("binding %s: macro %q is not defined", b.Input, b.Macro))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("profile validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
