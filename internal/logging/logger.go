package logging

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

const timestampLayout = "2006-01-02 15:04"

// Logger provides leveled logging and lightweight timing helpers.
// The zero value discards everything.
type Logger struct {
	out     *logrus.Logger
	Verbose bool
}

func New(writer io.Writer, verbose bool) Logger {
	l := logrus.New()
	l.SetOutput(writer)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: timestampLayout,
		DisableColors:   true,
	})
	l.SetLevel(logrus.InfoLevel)
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	}
	return Logger{out: l, Verbose: verbose}
}

func (l Logger) Infof(format string, args ...any) {
	if l.out == nil {
		return
	}
	l.out.Infof(format, args...)
}

func (l Logger) Verbosef(format string, args ...any) {
	if l.out == nil || !l.Verbose {
		return
	}
	l.out.Debugf(format, args...)
}

func (l Logger) Warnf(format string, args ...any) {
	if l.out == nil {
		return
	}
	l.out.Warnf(format, args...)
}

func (l Logger) Errorf(format string, args ...any) {
	if l.out == nil {
		return
	}
	l.out.Errorf(format, args...)
}

// With returns a logger whose entries carry the given field.
func (l Logger) With(key string, value any) Entry {
	if l.out == nil {
		return Entry{}
	}
	return Entry{entry: l.out.WithField(key, value), verbose: l.Verbose}
}

// Measure returns a stop function that logs the elapsed time when called.
func (l Logger) Measure(label string) func() {
	if !l.Verbose {
		return func() {}
	}
	start := time.Now()
	return func() {
		elapsed := time.Since(start).Round(time.Millisecond)
		l.Verbosef("%s took %s", label, elapsed)
	}
}

// Entry is a Logger bound to structured fields.
type Entry struct {
	entry   *logrus.Entry
	verbose bool
}

func (e Entry) Infof(format string, args ...any) {
	if e.entry == nil {
		return
	}
	e.entry.Infof(format, args...)
}

func (e Entry) Verbosef(format string, args ...any) {
	if e.entry == nil || !e.verbose {
		return
	}
	e.entry.Debugf(format, args...)
}

func (e Entry) Warnf(format string, args ...any) {
	if e.entry == nil {
		return
	}
	e.entry.Warnf(format, args...)
}
