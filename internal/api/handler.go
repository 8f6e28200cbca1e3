package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/WhiteMagic/macrod/internal/macro"
	"github.com/WhiteMagic/macrod/internal/profile"
	"github.com/WhiteMagic/macrod/internal/trigger"
)

// Handler holds all HTTP handler dependencies.
type Handler struct {
	mgr    *macro.Manager
	router *trigger.Router
	loader *profile.Loader
	mux    *http.ServeMux

	// queued tracks one live instance per macro name. Reusing it keeps
	// the id stable across requests, so repeated queues hit the
	// manager's duplicate-start suppression, a toggle's press-again
	// engages, and terminate-by-name can resolve the id.
	mu     sync.Mutex
	queued map[string]*macro.Macro
}

// New creates an HTTP handler and registers all routes.
func New(mgr *macro.Manager, router *trigger.Router, loader *profile.Loader) http.Handler {
	h := &Handler{
		mgr:    mgr,
		router: router,
		loader: loader,
		mux:    http.NewServeMux(),
		queued: make(map[string]*macro.Macro),
	}

	h.mux.HandleFunc("POST /v1/triggers", h.ingestTrigger)
	h.mux.HandleFunc("POST /v1/macros/{name}/queue", h.queueMacro)
	h.mux.HandleFunc("POST /v1/macros/{name}/terminate", h.terminateMacro)
	h.mux.HandleFunc("GET /v1/profile", h.getProfile)
	h.mux.HandleFunc("POST /v1/profile/reload", h.reloadProfile)
	h.mux.HandleFunc("GET /healthz", h.healthz)
	h.mux.Handle("GET /metrics", promhttp.Handler())

	return loggingMiddleware(h.mux)
}

// POST /v1/triggers — ingest one press/release trigger event.
func (h *Handler) ingestTrigger(w http.ResponseWriter, r *http.Request) {
	var ev trigger.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	if ev.Input == "" {
		writeError(w, http.StatusBadRequest, "trigger input is required")
		return
	}
	if ev.Kind != trigger.KindPress && ev.Kind != trigger.KindRelease {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown trigger kind %q", ev.Kind))
		return
	}
	ev.ReceivedAt = time.Now()

	if err := h.router.Handle(&ev); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]interface{}{"id": ev.ID})
}

// POST /v1/macros/{name}/queue — build and queue a named macro.
func (h *Handler) queueMacro(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	def, ok := h.findMacro(name)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("macro %q is not defined", name))
		return
	}
	h.mu.Lock()
	m, tracked := h.queued[name]
	if !tracked {
		var err error
		m, err = profile.BuildMacro(def)
		if err != nil {
			h.mu.Unlock()
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.queued[name] = m
	}
	h.mu.Unlock()
	h.mgr.QueueMacro(m)
	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"macro":    name,
		"macro_id": m.ID(),
	})
}

// POST /v1/macros/{name}/terminate — terminate the tracked instance
// of a named macro queued through this API.
func (h *Handler) terminateMacro(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	h.mu.Lock()
	m, ok := h.queued[name]
	delete(h.queued, name)
	h.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no queued instance of macro %q", name))
		return
	}
	h.mgr.TerminateMacro(m)
	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"macro":    name,
		"macro_id": m.ID(),
	})
}

// GET /v1/profile — the loaded profile.
func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	p := h.loader.Profile()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"version":  p.Version,
		"macros":   len(p.Macros),
		"bindings": h.router.Bindings(),
	})
}

// POST /v1/profile/reload — hot-reload the profile from disk.
func (h *Handler) reloadProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.loader.Reload()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := profile.Validate(p); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := h.router.Rebuild(p); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	// Instances built from the old document must not be reused.
	h.mu.Lock()
	h.queued = make(map[string]*macro.Macro)
	h.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reloaded": true,
		"macros":   len(p.Macros),
		"bindings": len(p.Bindings),
	})
}

// GET /healthz — always 200 (liveness probe).
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) findMacro(name string) (profile.MacroDef, bool) {
	for _, def := range h.loader.Profile().Macros {
		if def.Name == name {
			return def, true
		}
	}
	return profile.MacroDef{}, false
}
