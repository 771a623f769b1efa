package presentation

import (
	"fmt"
	"io"
	"sync"

	"github.com/schollz/progressbar/v3"

	"pyxsync/internal/domain"
)

const barSteps = 1000

// PlainProgress renders run events as a single text progress bar, for
// terminals where the full-screen UI is unwanted.
type PlainProgress struct {
	mu  sync.Mutex
	w   io.Writer
	bar *progressbar.ProgressBar
}

func NewPlainProgress(w io.Writer) *PlainProgress {
	bar := progressbar.NewOptions(barSteps,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Scanning"),
		progressbar.OptionSetWidth(20),
		progressbar.OptionSetPredictTime(false),
	)
	return &PlainProgress{w: w, bar: bar}
}

func (p *PlainProgress) OnScanStart(c domain.MediaCategory, root string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bar.Describe(fmt.Sprintf("Scanning %s", c))
}

func (p *PlainProgress) OnScanComplete(domain.MediaCategory, string, int) {}

func (p *PlainProgress) OnProgress(ratio float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bar.Describe("Copying")
	_ = p.bar.Set(int(ratio * barSteps))
}

func (p *PlainProgress) OnWarning(msg string) {
	p.println("warning: " + msg)
}

func (p *PlainProgress) OnError(msg string) {
	p.println("error: " + msg)
}

func (p *PlainProgress) OnComplete() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bar.Describe("Done")
	_ = p.bar.Finish()
	fmt.Fprintln(p.w)
}

func (p *PlainProgress) println(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.bar.Clear()
	fmt.Fprintln(p.w, line)
}
