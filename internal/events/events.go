package events

import "pyxsync/internal/domain"

// Observer receives run events. Implementations must not block for long;
// wrap slow consumers in Async.
type Observer interface {
	OnScanStart(category domain.MediaCategory, root string)
	OnScanComplete(category domain.MediaCategory, root string, count int)
	OnProgress(ratio float64)
	OnWarning(message string)
	OnError(message string)
	OnComplete()
}

type Nop struct{}

func (Nop) OnScanStart(domain.MediaCategory, string)         {}
func (Nop) OnScanComplete(domain.MediaCategory, string, int) {}
func (Nop) OnProgress(float64)                               {}
func (Nop) OnWarning(string)                                 {}
func (Nop) OnError(string)                                   {}
func (Nop) OnComplete()                                      {}

// OrNop returns o, or a Nop observer when o is nil.
func OrNop(o Observer) Observer {
	if o == nil {
		return Nop{}
	}
	return o
}

// Multi fans every event out to each observer in order.
type Multi []Observer

func (m Multi) OnScanStart(c domain.MediaCategory, root string) {
	for _, o := range m {
		o.OnScanStart(c, root)
	}
}

func (m Multi) OnScanComplete(c domain.MediaCategory, root string, count int) {
	for _, o := range m {
		o.OnScanComplete(c, root, count)
	}
}

func (m Multi) OnProgress(ratio float64) {
	for _, o := range m {
		o.OnProgress(ratio)
	}
}

func (m Multi) OnWarning(msg string) {
	for _, o := range m {
		o.OnWarning(msg)
	}
}

func (m Multi) OnError(msg string) {
	for _, o := range m {
		o.OnError(msg)
	}
}

func (m Multi) OnComplete() {
	for _, o := range m {
		o.OnComplete()
	}
}

// Recorder keeps every event in memory. Handy for tests and reports.
type Recorder struct {
	Started   []domain.MediaCategory
	Completed map[domain.MediaCategory]int
	Ratios    []float64
	Warnings  []string
	Errors    []string
	Done      bool
}

func (r *Recorder) OnScanStart(c domain.MediaCategory, _ string) {
	r.Started = append(r.Started, c)
}

func (r *Recorder) OnScanComplete(c domain.MediaCategory, _ string, count int) {
	if r.Completed == nil {
		r.Completed = map[domain.MediaCategory]int{}
	}
	r.Completed[c] += count
}

func (r *Recorder) OnProgress(ratio float64) { r.Ratios = append(r.Ratios, ratio) }
func (r *Recorder) OnWarning(msg string)     { r.Warnings = append(r.Warnings, msg) }
func (r *Recorder) OnError(msg string)       { r.Errors = append(r.Errors, msg) }
func (r *Recorder) OnComplete()              { r.Done = true }
