package logging

import "pyxsync/internal/domain"

// EventLogger writes run events to a Logger.
type EventLogger struct {
	Logger Logger
}

func (e EventLogger) OnScanStart(c domain.MediaCategory, root string) {
	e.Logger.Infof("Searching for %v files in %s ...", c.Extensions().Sorted(), root)
}

func (e EventLogger) OnScanComplete(c domain.MediaCategory, root string, count int) {
	if count == 0 {
		e.Logger.Infof("No %s files were found in %s", c, root)
		return
	}
	e.Logger.Infof("Found %d %s files in %s", count, c, root)
}

func (e EventLogger) OnProgress(ratio float64) {
	e.Logger.Verbosef("Progress %.1f%%", ratio*100)
}

func (e EventLogger) OnWarning(msg string) { e.Logger.Warnf("%s", msg) }
func (e EventLogger) OnError(msg string)   { e.Logger.Errorf("%s", msg) }
func (e EventLogger) OnComplete()          { e.Logger.Infof("File transfer complete") }
