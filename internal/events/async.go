package events

import (
	"sync"

	"pyxsync/internal/domain"
)

// Async decouples the worker from a slow observer such as a UI loop.
// Events are queued in order; progress pushes are coalesced so only the
// latest ratio is delivered. Producers never block.
type Async struct {
	next Observer

	mu             sync.Mutex
	queue          []func(Observer)
	latest         float64
	progressQueued bool
	closed         bool

	wake    chan struct{}
	done    chan struct{}
	stopped chan struct{}
}

func NewAsync(next Observer) *Async {
	a := &Async{
		next:    OrNop(next),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go a.loop()
	return a
}

func (a *Async) loop() {
	defer close(a.stopped)
	for {
		select {
		case <-a.wake:
			a.drain()
		case <-a.done:
			a.drain()
			return
		}
	}
}

func (a *Async) drain() {
	for {
		a.mu.Lock()
		batch := a.queue
		a.queue = nil
		a.mu.Unlock()
		if len(batch) == 0 {
			return
		}
		for _, deliver := range batch {
			deliver(a.next)
		}
	}
}

func (a *Async) push(deliver func(Observer)) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.queue = append(a.queue, deliver)
	a.mu.Unlock()
	a.signal()
}

func (a *Async) signal() {
	select {
	case a.wake <- struct{}{}:
	default:
	}
}

// Close delivers everything still queued and stops the delivery goroutine.
func (a *Async) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		<-a.stopped
		return
	}
	a.closed = true
	a.mu.Unlock()
	close(a.done)
	<-a.stopped
}

func (a *Async) OnScanStart(c domain.MediaCategory, root string) {
	a.push(func(o Observer) { o.OnScanStart(c, root) })
}

func (a *Async) OnScanComplete(c domain.MediaCategory, root string, count int) {
	a.push(func(o Observer) { o.OnScanComplete(c, root, count) })
}

func (a *Async) OnProgress(ratio float64) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.latest = ratio
	if a.progressQueued {
		a.mu.Unlock()
		return
	}
	a.progressQueued = true
	a.queue = append(a.queue, func(o Observer) {
		a.mu.Lock()
		r := a.latest
		a.progressQueued = false
		a.mu.Unlock()
		o.OnProgress(r)
	})
	a.mu.Unlock()
	a.signal()
}

func (a *Async) OnWarning(msg string) {
	a.push(func(o Observer) { o.OnWarning(msg) })
}

func (a *Async) OnError(msg string) {
	a.push(func(o Observer) { o.OnError(msg) })
}

func (a *Async) OnComplete() {
	a.push(func(o Observer) { o.OnComplete() })
}
