package macro

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/WhiteMagic/macrod/internal/action"
	"github.com/WhiteMagic/macrod/internal/injector"
	"github.com/WhiteMagic/macrod/internal/metrics"
)

// DefaultActionDelay is the pacing pause inserted between adjacent
// non-pause actions. Many applications drop synthetic input events
// sent back-to-back without delay.
const DefaultActionDelay = 50 * time.Millisecond

// intent discriminates pending-queue entries.
type intent int

const (
	intentStart intent = iota
	intentTerminate
)

// entry is one pending start or terminate request.
type entry struct {
	macro  *Macro
	intent intent
}

// Config holds Manager tunables.
type Config struct {
	// ActionDelay is the pacing pause inserted during preprocessing.
	// Zero means DefaultActionDelay.
	ActionDelay time.Duration
	// Logger for scheduling events. Nil means slog.Default.
	Logger *slog.Logger
}

// Manager owns the pending queue, the active set, and the per-macro
// liveness flags, and runs the scheduling loop that dispatches macro
// execution goroutines.
//
// Locking discipline: the pending queue, the liveness-flag map, and
// the active set are each guarded by their own mutex, held only for
// the read/modify operation, never across a sleep or an action's
// Execute. The executing-exclusive flag is an atomic, but it is set
// and cleared only under activeMu so the handoff from a finishing
// exclusive macro to the next dispatch is ordered.
type Manager struct {
	backend injector.Backend
	delay   time.Duration
	log     *slog.Logger

	queueMu sync.Mutex
	queue   []entry

	flagsMu sync.Mutex
	flags   map[int64]*atomic.Bool

	activeMu sync.Mutex
	active   map[int64]*Macro

	// executingExclusive is true while an exclusive macro runs.
	executingExclusive atomic.Bool

	wake chan struct{}

	lifeMu  sync.Mutex
	running bool
	stopC   chan struct{}
	done    chan struct{}
}

// NewManager creates a stopped Manager that injects through backend.
func NewManager(backend injector.Backend, conf Config) *Manager {
	if conf.ActionDelay <= 0 {
		conf.ActionDelay = DefaultActionDelay
	}
	if conf.Logger == nil {
		conf.Logger = slog.Default()
	}
	return &Manager{
		backend: backend,
		delay:   conf.ActionDelay,
		log:     conf.Logger,
		flags:   make(map[int64]*atomic.Bool),
		active:  make(map[int64]*Macro),
		wake:    make(chan struct{}, 1),
	}
}

// Start resets the active set and liveness flags and launches the
// scheduling loop on its own goroutine. Calling Start on a running
// Manager is a no-op.
func (mgr *Manager) Start() {
	mgr.lifeMu.Lock()
	defer mgr.lifeMu.Unlock()
	if mgr.running {
		return
	}

	mgr.activeMu.Lock()
	mgr.active = make(map[int64]*Macro)
	mgr.activeMu.Unlock()

	mgr.flagsMu.Lock()
	mgr.flags = make(map[int64]*atomic.Bool)
	mgr.flagsMu.Unlock()

	mgr.executingExclusive.Store(false)

	mgr.stopC = make(chan struct{})
	mgr.done = make(chan struct{})
	mgr.running = true
	go mgr.run(mgr.stopC, mgr.done)
	mgr.log.Info("macro manager started")
}

// Stop signals the scheduling loop to exit, waits for it, and flips
// every tracked liveness flag false so in-flight repeat loops end at
// their next iteration boundary. Stop does not wait for execution
// goroutines. Safe to call repeatedly.
func (mgr *Manager) Stop() {
	mgr.lifeMu.Lock()
	defer mgr.lifeMu.Unlock()
	if !mgr.running {
		return
	}
	close(mgr.stopC)
	<-mgr.done
	mgr.running = false

	mgr.flagsMu.Lock()
	for _, f := range mgr.flags {
		f.Store(false)
	}
	mgr.flagsMu.Unlock()
	mgr.log.Info("macro manager stopped")
}

// QueueMacro requests the start of a macro. Queuing a toggle-repeat
// macro that is already active is equivalent to TerminateMacro. The
// macro's sequence is paced in place before the entry is queued.
func (mgr *Manager) QueueMacro(m *Macro) {
	if _, ok := m.repeat.(ToggleRepeat); ok && mgr.isActive(m.id) {
		mgr.TerminateMacro(m)
		return
	}

	mgr.Preprocess(m)

	mgr.queueMu.Lock()
	mgr.queue = append(mgr.queue, entry{macro: m, intent: intentStart})
	mgr.queueMu.Unlock()
	metrics.MacrosQueued.Inc()
	mgr.signal()
}

// TerminateMacro requests the cooperative termination of a macro.
// Terminating a macro that is not active is a no-op apart from purging
// queued entries for the same id.
func (mgr *Manager) TerminateMacro(m *Macro) {
	mgr.queueMu.Lock()
	mgr.queue = append(mgr.queue, entry{macro: m, intent: intentTerminate})
	mgr.queueMu.Unlock()
	metrics.MacrosTerminated.Inc()
	mgr.signal()
}

// Preprocess inserts a pacing pause between every pair of adjacent
// actions where neither neighbor is already a pause. Pauses authored
// by the macro's creator are assumed to provide adequate pacing and
// are left untouched.
//
// The sequence is rewritten in place. A second pass over a paced
// sequence inserts nothing, since every adjacent pair then has a pause
// neighbor.
func (mgr *Manager) Preprocess(m *Macro) {
	if len(m.sequence) < 2 {
		return
	}
	paced := make([]action.Action, 0, 2*len(m.sequence)-1)
	for i, a := range m.sequence {
		if i > 0 {
			_, prevPause := m.sequence[i-1].(*action.PauseAction)
			_, curPause := a.(*action.PauseAction)
			if !prevPause && !curPause {
				paced = append(paced, action.NewPause(mgr.delay))
			}
		}
		paced = append(paced, a)
	}
	m.sequence = paced
}

// signal wakes the scheduling loop without blocking.
func (mgr *Manager) signal() {
	select {
	case mgr.wake <- struct{}{}:
	default:
	}
}

func (mgr *Manager) isActive(id int64) bool {
	mgr.activeMu.Lock()
	defer mgr.activeMu.Unlock()
	_, ok := mgr.active[id]
	return ok
}

func (mgr *Manager) activeEmpty() bool {
	mgr.activeMu.Lock()
	defer mgr.activeMu.Unlock()
	return len(mgr.active) == 0
}

// run is the scheduling loop. It blocks on the wake signal and
// resolves the pending queue once per wake-up.
func (mgr *Manager) run(stopC <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case <-stopC:
			return
		case <-mgr.wake:
			mgr.resolve()
		}
	}
}

// resolve drains and evaluates the pending queue under one critical
// section, in queue order:
//
//  1. Terminate entries flip the target's liveness flag if set and
//     purge every other entry for the same id from this pass.
//  2. Start entries whose id is already active are dropped.
//  3. An exclusive start dispatches only into an empty active set and
//     raises the executing-exclusive flag; when blocked it stays
//     queued but still counts as "exclusive seen" for this pass.
//  4. A non-exclusive start dispatches only if no exclusive entry was
//     seen earlier in this pass and no exclusive macro is executing.
//
// Dispatched and purged entries leave the queue; everything else is
// re-evaluated at the next wake-up.
func (mgr *Manager) resolve() {
	mgr.queueMu.Lock()
	defer mgr.queueMu.Unlock()

	exclusiveSeen := false
	purged := make(map[int64]bool)
	kept := mgr.queue[:0]

	for _, e := range mgr.queue {
		if purged[e.macro.id] {
			continue
		}

		switch e.intent {
		case intentTerminate:
			mgr.flagsMu.Lock()
			if f, ok := mgr.flags[e.macro.id]; ok && f.Load() {
				f.Store(false)
				mgr.log.Debug("terminate signalled", "macro_id", e.macro.id)
			} else {
				mgr.log.Debug("terminate for inactive macro", "macro_id", e.macro.id)
			}
			mgr.flagsMu.Unlock()

			// A macro cannot be both terminated and freshly started in
			// the same resolution pass.
			purged[e.macro.id] = true
			n := 0
			for _, k := range kept {
				if k.macro.id != e.macro.id {
					kept[n] = k
					n++
				}
			}
			kept = kept[:n]

		case intentStart:
			if mgr.isActive(e.macro.id) {
				// Duplicate start while active is a no-op.
				mgr.log.Debug("duplicate start dropped", "macro_id", e.macro.id)
				continue
			}
			if e.macro.exclusive {
				exclusiveSeen = true
				// Claim exclusivity in the same critical section as the
				// emptiness check, so a finishing exclusive macro cannot
				// clear the flag after it is set here.
				mgr.activeMu.Lock()
				empty := len(mgr.active) == 0
				if empty {
					mgr.executingExclusive.Store(true)
				}
				mgr.activeMu.Unlock()
				if empty {
					mgr.dispatch(e.macro)
				} else {
					kept = append(kept, e)
				}
			} else {
				if !exclusiveSeen && !mgr.executingExclusive.Load() {
					mgr.dispatch(e.macro)
				} else {
					kept = append(kept, e)
				}
			}
		}
	}

	// Zero the tail so dispatched entries do not pin macros.
	for i := len(kept); i < len(mgr.queue); i++ {
		mgr.queue[i] = entry{}
	}
	mgr.queue = kept
}

// dispatch inserts the macro into the active set, arms its liveness
// flag, and starts its execution goroutine.
func (mgr *Manager) dispatch(m *Macro) {
	mgr.activeMu.Lock()
	if _, exists := mgr.active[m.id]; exists {
		mgr.activeMu.Unlock()
		// resolve already filters active ids; keep the invariant anyway.
		mgr.log.Warn("dispatch of already-active macro ignored", "macro_id", m.id)
		return
	}
	mgr.active[m.id] = m
	mgr.activeMu.Unlock()

	flag := new(atomic.Bool)
	flag.Store(true)
	mgr.flagsMu.Lock()
	mgr.flags[m.id] = flag
	mgr.flagsMu.Unlock()

	metrics.MacrosDispatched.Inc()
	metrics.ActiveMacros.Inc()
	mgr.log.Debug("macro dispatched", "macro_id", m.id, "exclusive", m.exclusive)

	go mgr.execute(m, flag)
}

// execute runs one macro to completion on its own goroutine,
// interpreting its repeat policy. Cancellation is observed only at
// iteration boundaries; a running action or in-progress pause is
// never interrupted.
func (mgr *Manager) execute(m *Macro, flag *atomic.Bool) {
	start := time.Now()

	switch r := m.repeat.(type) {
	case nil:
		// One-shot runs are not cancellable once dispatched.
		if err := mgr.runSequence(m); err != nil {
			mgr.log.Error("macro run failed", "macro_id", m.id, "err", err)
		}
	case CountRepeat:
		for i := 0; flag.Load() && i < r.Count; i++ {
			if err := mgr.runSequence(m); err != nil {
				mgr.log.Error("macro run failed", "macro_id", m.id, "err", err)
				break
			}
			time.Sleep(r.Delay)
		}
	case HoldRepeat:
		mgr.repeatWhile(m, flag, r.Delay)
	case ToggleRepeat:
		mgr.repeatWhile(m, flag, r.Delay)
	}

	mgr.activeMu.Lock()
	delete(mgr.active, m.id)
	if m.exclusive {
		mgr.executingExclusive.Store(false)
	}
	mgr.activeMu.Unlock()

	mgr.flagsMu.Lock()
	delete(mgr.flags, m.id)
	mgr.flagsMu.Unlock()

	metrics.ActiveMacros.Dec()
	metrics.MacrosCompleted.Inc()
	metrics.MacroRunDuration.Observe(time.Since(start).Seconds())
	mgr.log.Debug("macro finished", "macro_id", m.id,
		"duration_ms", time.Since(start).Milliseconds())

	// Queued entries may have been waiting on this macro.
	mgr.signal()
}

func (mgr *Manager) repeatWhile(m *Macro, flag *atomic.Bool, delay time.Duration) {
	for flag.Load() {
		if err := mgr.runSequence(m); err != nil {
			mgr.log.Error("macro run failed", "macro_id", m.id, "err", err)
			return
		}
		time.Sleep(delay)
	}
}

// runSequence executes the macro's full action sequence once, strictly
// in order. The first failing action ends the run.
func (mgr *Manager) runSequence(m *Macro) error {
	for i, a := range m.sequence {
		if err := a.Execute(mgr.backend); err != nil {
			metrics.ActionsExecuted.WithLabelValues(action.TypeOf(a), "error").Inc()
			return fmt.Errorf("action %d (%s): %w", i, action.TypeOf(a), err)
		}
		metrics.ActionsExecuted.WithLabelValues(action.TypeOf(a), "success").Inc()
	}
	return nil
}
