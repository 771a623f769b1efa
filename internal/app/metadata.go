package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"pyxsync/internal/domain"
	appErrors "pyxsync/internal/errors"
	"pyxsync/internal/logging"
)

const exifDateLayout = "2006:01:02"

type Extractor struct {
	Exif   ExifReader
	Logger logging.Logger
}

// CameraIdentity names the camera that produced path. The first token of
// Make is kept only when Model does not already contain it, which matches
// how existing destination folders were named.
func (e *Extractor) CameraIdentity(ctx context.Context, path string) (domain.CameraIdentity, error) {
	if e.Exif == nil {
		return "", errors.New("extractor requires Exif")
	}
	tags, err := e.Exif.Tags(ctx, path)
	if err != nil {
		if isContextErr(err) {
			return "", err
		}
		return "", appErrors.Wrap(appErrors.Metadata, "camera", path, err)
	}
	if tags.Make == "" || tags.Model == "" {
		return "", appErrors.New(appErrors.Metadata, "camera", path, "missing Make or Model tag")
	}
	return NormalizeCamera(tags.Make, tags.Model)
}

// NormalizeCamera applies the make/model naming rule.
func NormalizeCamera(cameraMake, model string) (domain.CameraIdentity, error) {
	fields := strings.Fields(cameraMake)
	if len(fields) == 0 {
		return "", appErrors.New(appErrors.Metadata, "camera", "", "empty Make tag")
	}
	token := fields[0]
	if strings.Contains(model, token) {
		return domain.CameraIdentity(model), nil
	}
	model = strings.Trim(strings.ReplaceAll(model, token, ""), " ")
	return domain.CameraIdentity(token + " " + model), nil
}

// CaptureDateRange collects the distinct capture days of paths. Files
// without metadata or without a DateTime tag are skipped; a DateTime that is
// present but malformed fails the whole call.
func (e *Extractor) CaptureDateRange(ctx context.Context, paths []string) (domain.CaptureDateRange, error) {
	if e.Exif == nil {
		return domain.CaptureDateRange{}, errors.New("extractor requires Exif")
	}

	days := map[time.Time]struct{}{}
	skipped := 0
	for _, path := range paths {
		tags, err := e.Exif.Tags(ctx, path)
		if err != nil {
			if isContextErr(err) {
				return domain.CaptureDateRange{}, err
			}
			if errors.Is(err, domain.ErrNoMetadata) {
				skipped++
				e.Logger.Verbosef("No metadata in %s", path)
				continue
			}
			return domain.CaptureDateRange{}, appErrors.Wrap(appErrors.Metadata, "dates", path, err)
		}
		if tags.DateTime == "" {
			skipped++
			continue
		}
		day, err := parseCaptureDay(tags.DateTime)
		if err != nil {
			return domain.CaptureDateRange{}, appErrors.Wrap(appErrors.Metadata, "dates", path, err)
		}
		days[day] = struct{}{}
	}

	if len(days) == 0 {
		return domain.CaptureDateRange{}, appErrors.New(appErrors.NoDatesFound, "dates", "",
			fmt.Sprintf("none of %d files carried a DateTime tag", len(paths)))
	}
	if skipped > 0 {
		e.Logger.Verbosef("%d of %d files had no capture date", skipped, len(paths))
	}

	sorted := make([]time.Time, 0, len(days))
	for day := range days {
		sorted = append(sorted, day)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	return domain.CaptureDateRange{
		Earliest: sorted[0],
		Latest:   sorted[len(sorted)-1],
	}, nil
}

func parseCaptureDay(value string) (time.Time, error) {
	datePart, _, _ := strings.Cut(value, " ")
	day, err := time.Parse(exifDateLayout, datePart)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed DateTime %q: %w", value, err)
	}
	return day, nil
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
