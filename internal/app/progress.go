package app

import (
	"errors"
	"fmt"

	"pyxsync/internal/events"
)

// ErrTotalFrozen is returned when steps are added after progress was reported.
var ErrTotalFrozen = errors.New("progress total is frozen once reporting starts")

// Tracker accumulates step counts for one run and pushes the completion
// ratio to its observer. The total may only grow before the first report,
// which keeps the published ratio non-decreasing.
type Tracker struct {
	total     int
	completed int
	frozen    bool
	observer  events.Observer
}

func NewTracker(observer events.Observer) *Tracker {
	return &Tracker{observer: observer}
}

func (t *Tracker) AddTotalSteps(steps int) error {
	if t.frozen {
		return ErrTotalFrozen
	}
	if steps < 0 {
		return fmt.Errorf("negative step count %d", steps)
	}
	t.total += steps
	return nil
}

func (t *Tracker) ReportProgress(steps int) {
	t.frozen = true
	t.completed += steps
	t.update()
}

func (t *Tracker) update() {
	if t.observer == nil {
		return
	}
	if t.total == 0 || t.total < t.completed {
		t.observer.OnWarning(fmt.Sprintf("Unable to update progress (%d of %d steps)", t.completed, t.total))
		return
	}
	t.observer.OnProgress(t.Ratio())
}

// Ratio is completed/total, or 0 before any total is known.
func (t *Tracker) Ratio() float64 {
	if t.total == 0 {
		return 0
	}
	return float64(t.completed) / float64(t.total)
}

func (t *Tracker) Snapshot() (total, completed int) {
	return t.total, t.completed
}
