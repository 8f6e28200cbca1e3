package trigger

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/WhiteMagic/macrod/internal/macro"
	"github.com/WhiteMagic/macrod/internal/metrics"
	"github.com/WhiteMagic/macrod/internal/profile"
)

// Router maps trigger inputs to macros. A press queues the bound
// macro; a release terminates it when the macro holds-to-repeat, and
// is a no-op otherwise.
//
// Instance discipline: hold and toggle bindings keep one long-lived
// Macro instance, because their contracts are keyed on the macro id.
// Duplicate presses (key auto-repeat delivers these) then hit the
// manager's duplicate-start suppression instead of piling up extra
// loops, and the release or toggle-off always reaches the running
// instance. One-shot and count bindings build a fresh instance per
// press; concurrent runs are their expected behavior.
type Router struct {
	mgr *macro.Manager
	log *slog.Logger

	mu       sync.Mutex
	bindings map[string]*binding
}

type binding struct {
	def profile.MacroDef
	// instance is set for hold- and toggle-repeat bindings and is
	// immutable once the binding is published.
	instance *macro.Macro
}

// NewRouter creates a Router dispatching into mgr. A nil logger uses
// slog.Default.
func NewRouter(mgr *macro.Manager, log *slog.Logger) *Router {
	if log == nil {
		log = slog.Default()
	}
	return &Router{
		mgr:      mgr,
		log:      log,
		bindings: make(map[string]*binding),
	}
}

// Rebuild replaces the binding table from a validated profile. Macros
// already running keep running; their termination paths stay valid
// because termination is keyed by macro id.
func (r *Router) Rebuild(p *profile.Profile) error {
	defs := make(map[string]profile.MacroDef, len(p.Macros))
	for _, d := range p.Macros {
		defs[d.Name] = d
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	prev := r.bindings

	next := make(map[string]*binding, len(p.Bindings))
	for _, bd := range p.Bindings {
		def, ok := defs[bd.Macro]
		if !ok {
			return fmt.Errorf("binding %s: macro %q is not defined", bd.Input, bd.Macro)
		}
		b := &binding{def: def}
		// Carry the instance across reloads for bindings that kept
		// their macro, so a release or toggle-off still reaches the
		// instance started before the reload.
		old, sameMacro := prev[bd.Input]
		sameMacro = sameMacro && old.def.Name == def.Name
		if mode := repeatMode(def); mode == "hold" || mode == "toggle" {
			if sameMacro && old.instance != nil {
				b.instance = old.instance
			} else {
				m, err := profile.BuildMacro(def)
				if err != nil {
					return err
				}
				b.instance = m
			}
		}
		next[bd.Input] = b
	}

	r.bindings = next
	return nil
}

// Bindings returns the currently bound input identifiers.
func (r *Router) Bindings() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.bindings))
	for k := range r.bindings {
		out = append(out, k)
	}
	return out
}

// Handle routes one trigger event. Events for unbound inputs are
// ignored with a debug log: the capture side reports everything it
// sees.
func (r *Router) Handle(ev *Event) error {
	metrics.TriggersReceived.WithLabelValues(string(ev.Kind)).Inc()

	r.mu.Lock()
	b, ok := r.bindings[ev.Input]
	r.mu.Unlock()
	if !ok {
		r.log.Debug("trigger for unbound input", "input", ev.Input)
		return nil
	}

	switch ev.Kind {
	case KindPress:
		return r.press(b)
	case KindRelease:
		r.release(b)
		return nil
	default:
		return fmt.Errorf("trigger: unknown kind %q", ev.Kind)
	}
}

func (r *Router) press(b *binding) error {
	if b.instance != nil {
		r.mgr.QueueMacro(b.instance)
		return nil
	}
	m, err := profile.BuildMacro(b.def)
	if err != nil {
		return fmt.Errorf("trigger: build macro %s: %w", b.def.Name, err)
	}
	r.mgr.QueueMacro(m)
	return nil
}

func (r *Router) release(b *binding) {
	if repeatMode(b.def) == "hold" {
		r.mgr.TerminateMacro(b.instance)
	}
}

func repeatMode(def profile.MacroDef) string {
	if def.Repeat == nil {
		return ""
	}
	return def.Repeat.Mode
}
