package action

import (
	"time"

	"github.com/WhiteMagic/macrod/internal/injector"
)

// PauseAction blocks the executing macro for a fixed duration.
type PauseAction struct {
	Duration time.Duration
}

// NewPause creates a pause action. Negative durations are treated as
// zero at execution time.
func NewPause(d time.Duration) *PauseAction {
	return &PauseAction{Duration: d}
}

func (a *PauseAction) Execute(injector.Backend) error {
	time.Sleep(a.Duration)
	return nil
}

func (a *PauseAction) ToRecord() Record {
	return Record{
		Type:       RecordPause,
		Properties: []Property{floatProp("duration", a.Duration.Seconds())},
	}
}

func (a *PauseAction) isAction() {}
