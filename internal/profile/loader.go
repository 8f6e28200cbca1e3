package profile

import (
	"fmt"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// Loader reads a YAML profile file and watches it for changes.
type Loader struct {
	path     string
	mu       sync.RWMutex
	current  *Profile
	onChange []func(*Profile)
	watcher  *fsnotify.Watcher
}

// NewLoader creates a Loader and performs the initial load.
func NewLoader(path string) (*Loader, error) {
	l := &Loader{path: path}
	p, err := l.load()
	if err != nil {
		return nil, err
	}
	l.current = p
	return l, nil
}

// Profile returns the current (latest) profile.
func (l *Loader) Profile() *Profile {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// OnChange registers a callback invoked whenever the profile reloads.
func (l *Loader) OnChange(fn func(*Profile)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = append(l.onChange, fn)
}

// Watch starts a background goroutine that hot-reloads the profile on
// file changes. Call the returned stop function to clean up.
func (l *Loader) Watch() (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("profile watcher: %w", err)
	}
	if err := w.Add(l.path); err != nil {
		w.Close()
		return nil, fmt.Errorf("profile watcher add %s: %w", l.path, err)
	}
	l.watcher = w

	done := make(chan struct{})
	go func() {
		defer w.Close()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
					p, err := l.load()
					if err != nil {
						// Keep serving the old profile.
						continue
					}
					l.swap(p)
				}
			case <-w.Errors:
				// Ignore watcher errors.
			case <-done:
				return
			}
		}
	}()

	return func() { close(done) }, nil
}

// Reload forces an immediate re-read of the profile file.
func (l *Loader) Reload() (*Profile, error) {
	p, err := l.load()
	if err != nil {
		return nil, err
	}
	l.swap(p)
	return p, nil
}

func (l *Loader) swap(p *Profile) {
	l.mu.Lock()
	l.current = p
	callbacks := make([]func(*Profile), len(l.onChange))
	copy(callbacks, l.onChange)
	l.mu.Unlock()
	for _, fn := range callbacks {
		fn(p)
	}
}

func (l *Loader) load() (*Profile, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read profile %s: %w", l.path, err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", l.path, err)
	}
	return &p, nil
}
