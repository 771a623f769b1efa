package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"pyxsync/internal/domain"
)

// Observer forwards run events into a running program. Program.Send blocks
// until the event loop reads, so wrap it in events.Async before handing it
// to the runner.
type Observer struct {
	Send func(tea.Msg)
}

func NewObserver(p *tea.Program) Observer {
	return Observer{Send: p.Send}
}

func (o Observer) OnScanStart(c domain.MediaCategory, root string) {
	o.Send(ScanStartMsg{Category: c, Root: root})
}

func (o Observer) OnScanComplete(c domain.MediaCategory, root string, count int) {
	o.Send(ScanDoneMsg{Category: c, Root: root, Count: count})
}

func (o Observer) OnProgress(ratio float64) { o.Send(ProgressMsg{Ratio: ratio}) }
func (o Observer) OnWarning(msg string)     { o.Send(WarningMsg{Text: msg}) }
func (o Observer) OnError(msg string)       { o.Send(ErrorMsg{Text: msg}) }
func (o Observer) OnComplete()              { o.Send(CompleteMsg{}) }
