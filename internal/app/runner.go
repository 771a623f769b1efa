package app

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"pyxsync/internal/domain"
	appErrors "pyxsync/internal/errors"
	"pyxsync/internal/events"
	"pyxsync/internal/logging"
	"pyxsync/internal/storage"
)

// ReferenceSelector picks the RAW file whose metadata names the whole batch.
type ReferenceSelector func(raw []domain.DiscoveredFile) (domain.DiscoveredFile, bool)

// FirstReference uses the first RAW file in discovery order.
func FirstReference(raw []domain.DiscoveredFile) (domain.DiscoveredFile, bool) {
	if len(raw) == 0 {
		return domain.DiscoveredFile{}, false
	}
	return raw[0], true
}

// Subfolders below the RAW destination. RAW itself has none.
var Subfolders = map[domain.MediaCategory]string{
	domain.JPEG:  "JPG",
	domain.VIDEO: "MOV",
}

// Runner performs one transfer: scan, derive the destination, copy.
// Everything runs sequentially on the caller's goroutine.
type Runner struct {
	FS              FileSystem
	Exif            ExifReader
	Observer        events.Observer
	Logger          logging.Logger
	History         History
	SelectReference ReferenceSelector
	Now             func() time.Time
}

func (r *Runner) Run(ctx context.Context, sources []string, target string) (domain.RunReport, error) {
	report := domain.RunReport{
		ID:        uuid.NewString(),
		Sources:   sources,
		Target:    target,
		Found:     map[domain.MediaCategory]int{},
		StartedAt: r.now(),
	}
	observer := events.OrNop(r.Observer)

	if r.FS == nil || r.Exif == nil {
		err := errors.New("runner requires FS and Exif")
		observer.OnError(err.Error())
		return report, err
	}

	manager, err := storage.NewManager(r.FS, sources, target)
	if err != nil {
		report.Status = domain.RunFailed
		report.FinishedAt = r.now()
		observer.OnError(appErrors.UserMessage(err))
		return report, err
	}
	report.Sources = manager.SourcePaths()
	report.Target = manager.Target.Path

	history := r.History
	if history != nil {
		if herr := history.BeginRun(ctx, report); herr != nil {
			r.Logger.Warnf("History disabled for this run: %v", herr)
			history = nil
		}
	}

	err = r.transfer(ctx, &report, manager, observer, history)

	report.FinishedAt = r.now()
	switch {
	case err == nil:
		report.Status = domain.RunCompleted
		observer.OnComplete()
	case appErrors.IsKind(err, appErrors.Cancelled):
		report.Status = domain.RunCancelled
		observer.OnError(appErrors.UserMessage(err))
	default:
		report.Status = domain.RunFailed
		observer.OnError(appErrors.UserMessage(err))
	}

	if history != nil {
		if herr := history.FinishRun(context.WithoutCancel(ctx), report, err); herr != nil {
			r.Logger.Warnf("Could not record run %s: %v", report.ID, herr)
		}
	}
	return report, err
}

func (r *Runner) transfer(ctx context.Context, report *domain.RunReport, manager storage.Manager, observer events.Observer, history History) error {
	stop := r.Logger.Measure("File transfer")
	defer stop()

	scanner := Scanner{FS: r.FS, Observer: observer, Logger: r.Logger}
	found := map[domain.MediaCategory][]domain.DiscoveredFile{}
	for _, source := range manager.Sources {
		r.Logger.Infof("Scanning source dir: %s", source.Path)
		for _, category := range domain.CopyCategories {
			files, err := scanner.Scan(ctx, source.Path, category)
			if err != nil {
				if isContextErr(err) {
					return appErrors.Wrap(appErrors.Cancelled, "scan", manager.Target.Path, err)
				}
				return appErrors.Wrap(appErrors.IOFailure, "scan", source.Path, err)
			}
			found[category] = append(found[category], files...)
		}
	}

	total := 0
	for _, category := range domain.CopyCategories {
		report.Found[category] = len(found[category])
		total += len(found[category])
	}

	raw := found[domain.RAW]
	selectRef := r.SelectReference
	if selectRef == nil {
		selectRef = FirstReference
	}
	reference, ok := selectRef(raw)
	if !ok {
		return appErrors.New(appErrors.NoRawFiles, "scan", strings.Join(report.Sources, ", "), "no RAW files found")
	}

	tracker := NewTracker(observer)
	if err := tracker.AddTotalSteps(total); err != nil {
		return appErrors.Wrap(appErrors.Internal, "progress", "", err)
	}

	extractor := Extractor{Exif: r.Exif, Logger: r.Logger}
	camera, err := extractor.CameraIdentity(ctx, reference.Path)
	if err != nil {
		return r.fatal(err, manager.Target.Path)
	}
	dates, err := extractor.CaptureDateRange(ctx, domain.Paths(raw))
	if err != nil {
		return r.fatal(err, manager.Target.Path)
	}

	destination := Resolve(manager.Target.Path, camera, dates)
	report.Camera = camera
	report.DateRange = dates
	report.Destination = destination
	r.Logger.Infof("Destination path: %s", destination)

	copier := Copier{FS: r.FS, Observer: observer, Logger: r.Logger}
	for _, category := range domain.CopyCategories {
		files := found[category]
		if len(files) == 0 {
			continue
		}
		dir := destination
		if sub, ok := Subfolders[category]; ok {
			dir = filepath.Join(destination, sub)
		}

		batch, err := copier.CopyBatch(ctx, category, domain.Paths(files), dir, tracker)
		report.Batches = append(report.Batches, batch)
		if history != nil {
			if herr := history.RecordBatch(context.WithoutCancel(ctx), report.ID, batch); herr != nil {
				r.Logger.Warnf("Could not record %s batch: %v", category, herr)
			}
		}
		if err == nil {
			continue
		}

		// JPEG and VIDEO live below the RAW folder, so only a refused RAW
		// batch takes the siblings down with it.
		if category != domain.RAW && appErrors.IsKind(err, appErrors.DestinationExists) {
			msg := appErrors.UserMessage(err)
			report.Errors = append(report.Errors, domain.BatchError{Category: category, Message: msg})
			observer.OnError(msg)
			tracker.ReportProgress(len(files) - batch.Steps)
			continue
		}
		return err
	}

	total, completed := tracker.Snapshot()
	r.Logger.Verbosef("Handled %d of %d files", completed, total)
	return nil
}

func (r *Runner) fatal(err error, target string) error {
	if isContextErr(err) {
		return appErrors.Wrap(appErrors.Cancelled, "metadata", target, err)
	}
	return err
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}
