package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"pyxsync/internal/domain"
	appErrors "pyxsync/internal/errors"
	"pyxsync/internal/events"
	"pyxsync/internal/logging"
)

// Copier copies a batch of files flat into a fresh destination directory.
type Copier struct {
	FS       FileSystem
	Observer events.Observer
	Logger   logging.Logger
}

// CopyBatch refuses to write into an existing destination. Every input path
// consumes one progress step, whether it was copied or skipped. Two sources
// with the same basename are reported and the later one wins.
func (c *Copier) CopyBatch(ctx context.Context, category domain.MediaCategory, paths []string, destination string, sink ProgressSink) (domain.CopyReport, error) {
	report := domain.CopyReport{Category: category, Destination: destination}
	if c.FS == nil {
		return report, errors.New("copier requires FS")
	}
	observer := events.OrNop(c.Observer)

	exists, err := c.FS.Exists(destination)
	if err != nil {
		return report, appErrors.Wrap(appErrors.IOFailure, "stat", destination, err)
	}
	if exists {
		return report, appErrors.New(appErrors.DestinationExists, "copy", destination, "destination directory already exists")
	}

	stop := c.Logger.Measure(fmt.Sprintf("Copying %d %s files", len(paths), category))
	defer stop()

	if err := c.FS.MkdirAll(destination, 0o755); err != nil {
		return report, appErrors.Wrap(appErrors.IOFailure, "mkdir", destination, err)
	}

	written := map[string]string{}
	for _, path := range paths {
		select {
		case <-ctx.Done():
			return report, appErrors.Wrap(appErrors.Cancelled, "copy", destination, ctx.Err())
		default:
		}

		info, statErr := c.FS.Stat(path)
		if statErr != nil || !info.Mode().IsRegular() {
			report.Skipped = append(report.Skipped, path)
			observer.OnWarning(appErrors.UserMessage(appErrors.New(appErrors.InvalidPath, "copy", path, "not a regular file")))
			c.step(&report, sink)
			continue
		}

		name := filepath.Base(path)
		if previous, ok := written[name]; ok {
			report.Collisions = append(report.Collisions, domain.Collision{Name: name, Overwrites: previous, Winner: path})
			observer.OnWarning(fmt.Sprintf("%s overwrites %s in %s (same file name)", path, previous, destination))
		}

		n, err := c.FS.CopyFile(path, filepath.Join(destination, name))
		if err != nil {
			return report, appErrors.Wrap(appErrors.IOFailure, "copy", path, err)
		}
		written[name] = path
		report.Copied = append(report.Copied, path)
		report.Bytes += n
		c.Logger.Verbosef("Copied %s -> %s", path, destination)
		c.step(&report, sink)
	}

	return report, nil
}

func (c *Copier) step(report *domain.CopyReport, sink ProgressSink) {
	report.Steps++
	if sink != nil {
		sink.ReportProgress(1)
	}
}
