package app

import (
	"context"
	"io/fs"

	"pyxsync/internal/domain"
)

type FileSystem interface {
	WalkDir(root string, fn fs.WalkDirFunc) error
	Stat(path string) (fs.FileInfo, error)
	Exists(path string) (bool, error)
	MkdirAll(path string, perm fs.FileMode) error
	CopyFile(src, dst string) (int64, error)
}

type ExifReader interface {
	Tags(ctx context.Context, path string) (domain.ImageTags, error)
}

// ProgressSink receives one step per handled file.
type ProgressSink interface {
	ReportProgress(steps int)
}

// History persists runs and per-file outcomes. Optional.
type History interface {
	BeginRun(ctx context.Context, report domain.RunReport) error
	RecordBatch(ctx context.Context, runID string, batch domain.CopyReport) error
	FinishRun(ctx context.Context, report domain.RunReport, runErr error) error
}
