package api_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/WhiteMagic/macrod/internal/api"
	"github.com/WhiteMagic/macrod/internal/injector"
	"github.com/WhiteMagic/macrod/internal/macro"
	"github.com/WhiteMagic/macrod/internal/profile"
	"github.com/WhiteMagic/macrod/internal/trigger"
)

const testProfile = `
version: "1"
macros:
  - name: fire
    actions:
      - type: tap
        key: space
bindings:
  - input: "joy1:button1"
    macro: fire
`

func newTestHandler(t *testing.T) (http.Handler, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(path, []byte(testProfile), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	loader, err := profile.NewLoader(path)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	mgr := macro.NewManager(injector.NewDryRun(log), macro.Config{
		ActionDelay: time.Millisecond,
		Logger:      log,
	})
	mgr.Start()
	t.Cleanup(mgr.Stop)

	router := trigger.NewRouter(mgr, log)
	if err := router.Rebuild(loader.Profile()); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	return api.New(mgr, router, loader), path
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestHealthz(t *testing.T) {
	h, _ := newTestHandler(t)
	w := do(t, h, http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK {
		t.Errorf("healthz = %d, want 200", w.Code)
	}
}

func TestQueueMacro(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(t, h, http.MethodPost, "/v1/macros/fire/queue", "")
	if w.Code != http.StatusAccepted {
		t.Fatalf("queue = %d, want 202: %s", w.Code, w.Body)
	}
	var resp struct {
		Macro   string `json:"macro"`
		MacroID int64  `json:"macro_id"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Macro != "fire" || resp.MacroID == 0 {
		t.Errorf("response = %+v", resp)
	}
}

func queuedID(t *testing.T, h http.Handler, name string) int64 {
	t.Helper()
	w := do(t, h, http.MethodPost, "/v1/macros/"+name+"/queue", "")
	if w.Code != http.StatusAccepted {
		t.Fatalf("queue %s = %d, want 202: %s", name, w.Code, w.Body)
	}
	var resp struct {
		MacroID int64 `json:"macro_id"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.MacroID
}

func TestQueueMacroKeepsIDStable(t *testing.T) {
	h, _ := newTestHandler(t)

	// The same instance must back repeated queues of one name, so the
	// manager's duplicate suppression and toggle-off see the same id.
	id1 := queuedID(t, h, "fire")
	id2 := queuedID(t, h, "fire")
	if id1 != id2 {
		t.Errorf("repeated queue minted a new instance: %d then %d", id1, id2)
	}

	if w := do(t, h, http.MethodPost, "/v1/macros/fire/terminate", ""); w.Code != http.StatusAccepted {
		t.Fatalf("terminate = %d, want 202", w.Code)
	}
	if id3 := queuedID(t, h, "fire"); id3 == id1 {
		t.Errorf("queue after terminate reused the dropped instance %d", id3)
	}
}

func TestReloadDropsTrackedInstances(t *testing.T) {
	h, path := newTestHandler(t)

	id1 := queuedID(t, h, "fire")

	if err := os.WriteFile(path, []byte(testProfile), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if w := do(t, h, http.MethodPost, "/v1/profile/reload", ""); w.Code != http.StatusOK {
		t.Fatalf("reload = %d, want 200", w.Code)
	}
	if id2 := queuedID(t, h, "fire"); id2 == id1 {
		t.Errorf("instance built from the old document survived the reload")
	}
}

func TestQueueUnknownMacro(t *testing.T) {
	h, _ := newTestHandler(t)
	w := do(t, h, http.MethodPost, "/v1/macros/ghost/queue", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("queue unknown = %d, want 404", w.Code)
	}
}

func TestTerminateMacro(t *testing.T) {
	h, _ := newTestHandler(t)

	if w := do(t, h, http.MethodPost, "/v1/macros/fire/terminate", ""); w.Code != http.StatusNotFound {
		t.Errorf("terminate before queue = %d, want 404", w.Code)
	}

	if w := do(t, h, http.MethodPost, "/v1/macros/fire/queue", ""); w.Code != http.StatusAccepted {
		t.Fatalf("queue = %d, want 202", w.Code)
	}
	if w := do(t, h, http.MethodPost, "/v1/macros/fire/terminate", ""); w.Code != http.StatusAccepted {
		t.Errorf("terminate = %d, want 202", w.Code)
	}
}

func TestIngestTrigger(t *testing.T) {
	h, _ := newTestHandler(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"valid press", `{"kind":"press","input":"joy1:button1"}`, http.StatusAccepted},
		{"valid release", `{"kind":"release","input":"joy1:button1"}`, http.StatusAccepted},
		{"unbound input accepted", `{"kind":"press","input":"joy9:button9"}`, http.StatusAccepted},
		{"missing input", `{"kind":"press"}`, http.StatusBadRequest},
		{"unknown kind", `{"kind":"wiggle","input":"joy1:button1"}`, http.StatusBadRequest},
		{"bad json", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/v1/triggers", tt.body)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.want, w.Body)
			}
		})
	}
}

func TestGetProfile(t *testing.T) {
	h, _ := newTestHandler(t)
	w := do(t, h, http.MethodGet, "/v1/profile", "")
	if w.Code != http.StatusOK {
		t.Fatalf("profile = %d, want 200", w.Code)
	}
	var resp struct {
		Version string `json:"version"`
		Macros  int    `json:"macros"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Version != "1" || resp.Macros != 1 {
		t.Errorf("response = %+v", resp)
	}
}

func TestReloadProfile(t *testing.T) {
	h, path := newTestHandler(t)

	// Invalid document: reload must fail validation and leave the
	// trigger bindings on the last good profile.
	if err := os.WriteFile(path, []byte("version: \"2\"\nmacros:\n  - name: bad\n    actions: []\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if w := do(t, h, http.MethodPost, "/v1/profile/reload", ""); w.Code != http.StatusUnprocessableEntity {
		t.Errorf("reload invalid = %d, want 422", w.Code)
	}

	if err := os.WriteFile(path, []byte(testProfile), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if w := do(t, h, http.MethodPost, "/v1/profile/reload", ""); w.Code != http.StatusOK {
		t.Errorf("reload valid = %d, want 200", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newTestHandler(t)
	w := do(t, h, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK {
		t.Errorf("metrics = %d, want 200", w.Code)
	}
}
