package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"pyxsync/internal/domain"
	"pyxsync/internal/events"
	"pyxsync/internal/logging"
)

// Scanner finds files of one category below a root. Symlinked directories
// are not followed.
type Scanner struct {
	FS       FileSystem
	Observer events.Observer
	Logger   logging.Logger
}

func (s *Scanner) Scan(ctx context.Context, root string, category domain.MediaCategory) ([]domain.DiscoveredFile, error) {
	if s.FS == nil {
		return nil, errors.New("scanner requires FS")
	}
	extensions := category.Extensions()
	observer := events.OrNop(s.Observer)

	stop := s.Logger.Measure(fmt.Sprintf("Scanning %s for %s", root, category))
	defer stop()

	observer.OnScanStart(category, root)

	var found []domain.DiscoveredFile
	err := s.FS.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root || d == nil {
				return walkErr
			}
			observer.OnWarning(fmt.Sprintf("Skipping unreadable %s: %v", path, walkErr))
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if d.IsDir() {
			return nil
		}
		if extensions.Matches(d.Name()) {
			found = append(found, domain.DiscoveredFile{Path: path, Category: category})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	observer.OnScanComplete(category, root, len(found))
	return found, nil
}
