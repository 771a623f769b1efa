package domain

import "time"

// Collision records two sources that share a basename inside one batch.
type Collision struct {
	Name       string
	Overwrites string
	Winner     string
}

type CopyReport struct {
	Category    MediaCategory
	Destination string
	Copied      []string
	Skipped     []string
	Collisions  []Collision
	Bytes       int64
	Steps       int
}

type BatchError struct {
	Category MediaCategory
	Message  string
}

type RunStatus string

const (
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
	RunCancelled RunStatus = "cancelled"
)

type RunReport struct {
	ID          string
	Sources     []string
	Target      string
	Camera      CameraIdentity
	DateRange   CaptureDateRange
	Destination string
	Found       map[MediaCategory]int
	Batches     []CopyReport
	Errors      []BatchError
	Status      RunStatus
	StartedAt   time.Time
	FinishedAt  time.Time
}

func (r RunReport) Batch(c MediaCategory) (CopyReport, bool) {
	for _, b := range r.Batches {
		if b.Category == c {
			return b, true
		}
	}
	return CopyReport{}, false
}

func (r RunReport) CopiedCount() int {
	n := 0
	for _, b := range r.Batches {
		n += len(b.Copied)
	}
	return n
}

func (r RunReport) Warnings() int {
	n := 0
	for _, b := range r.Batches {
		n += len(b.Skipped) + len(b.Collisions)
	}
	return n
}
