package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"pyxsync/internal/domain"
	appErrors "pyxsync/internal/errors"
	"pyxsync/internal/events"
	osfs "pyxsync/internal/infra/fs"
	"pyxsync/internal/testutil"
)

func TestCopyBatchRefusesExistingDestination(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "SONY NEX-5", "2021-05-01")
	if err := os.MkdirAll(dst, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := testutil.WriteFile(t, src, "a.ARW", []byte("raw"))
	sink := &countingSink{}

	copier := Copier{FS: osfs.OSFS{}}
	report, err := copier.CopyBatch(context.Background(), domain.RAW, []string{path}, dst, sink)
	if !appErrors.IsKind(err, appErrors.DestinationExists) {
		t.Fatalf("expected DestinationExists, got %v", err)
	}
	if len(report.Copied) != 0 || sink.steps != 0 {
		t.Fatalf("expected nothing copied, got %v (%d steps)", report.Copied, sink.steps)
	}
	entries, _ := os.ReadDir(dst)
	if len(entries) != 0 {
		t.Fatalf("expected destination untouched, found %d entries", len(entries))
	}
}

func TestCopyBatchSkipsInvalidPaths(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "out")
	good := testutil.WriteFile(t, src, "a.JPG", []byte("jpeg"))
	missing := filepath.Join(src, "gone.JPG")
	rec := &events.Recorder{}
	sink := &countingSink{}

	copier := Copier{FS: osfs.OSFS{}, Observer: rec}
	report, err := copier.CopyBatch(context.Background(), domain.JPEG, []string{good, missing}, dst, sink)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Copied) != 1 || len(report.Skipped) != 1 {
		t.Fatalf("expected 1 copied and 1 skipped, got %+v", report)
	}
	if sink.steps != 2 || report.Steps != 2 {
		t.Fatalf("expected 2 progress steps, got %d/%d", sink.steps, report.Steps)
	}
	if len(rec.Warnings) != 1 {
		t.Fatalf("expected one warning, got %v", rec.Warnings)
	}
	data, err := os.ReadFile(filepath.Join(dst, "a.JPG"))
	if err != nil || string(data) != "jpeg" {
		t.Fatalf("expected copied content, got %q (%v)", data, err)
	}
	if report.Bytes != 4 {
		t.Fatalf("expected 4 bytes, got %d", report.Bytes)
	}
}

func TestCopyBatchSkipsDirectories(t *testing.T) {
	src := t.TempDir()
	dir := filepath.Join(src, "weird.ARW")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	report, err := (&Copier{FS: osfs.OSFS{}}).CopyBatch(context.Background(), domain.RAW, []string{dir}, filepath.Join(t.TempDir(), "out"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Skipped) != 1 || report.Steps != 1 {
		t.Fatalf("expected directory to be skipped, got %+v", report)
	}
}

func TestCopyBatchReportsCollisions(t *testing.T) {
	first := testutil.WriteFile(t, t.TempDir(), "DSC0001.ARW", []byte("first"))
	second := testutil.WriteFile(t, t.TempDir(), "DSC0001.ARW", []byte("second"))
	dst := filepath.Join(t.TempDir(), "out")
	rec := &events.Recorder{}

	report, err := (&Copier{FS: osfs.OSFS{}, Observer: rec}).CopyBatch(context.Background(), domain.RAW, []string{first, second}, dst, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Collisions) != 1 || report.Collisions[0].Winner != second {
		t.Fatalf("expected collision won by %s, got %+v", second, report.Collisions)
	}
	if len(rec.Warnings) != 1 {
		t.Fatalf("expected collision warning, got %v", rec.Warnings)
	}
	data, _ := os.ReadFile(filepath.Join(dst, "DSC0001.ARW"))
	if string(data) != "second" {
		t.Fatalf("expected last writer to win, got %q", data)
	}
}

func TestCopyBatchFailsOnCopyError(t *testing.T) {
	mock := &mockFS{
		entries: []mockEntry{{path: "/card/a.ARW", size: 10}, {path: "/card/b.ARW", size: 10}},
		copyErr: map[string]error{"/card/b.ARW": errors.New("disk full")},
	}
	sink := &countingSink{}

	report, err := (&Copier{FS: mock}).CopyBatch(context.Background(), domain.RAW, []string{"/card/a.ARW", "/card/b.ARW"}, "/out", sink)
	if !appErrors.IsKind(err, appErrors.IOFailure) {
		t.Fatalf("expected IOFailure, got %v", err)
	}
	if len(report.Copied) != 1 || sink.steps != 1 {
		t.Fatalf("expected partial progress, got %+v (%d steps)", report, sink.steps)
	}
}

func TestCopyBatchFailsWhenDestinationCannotBeCreated(t *testing.T) {
	mock := &mockFS{mkdirErr: errors.New("read-only")}
	_, err := (&Copier{FS: mock}).CopyBatch(context.Background(), domain.RAW, nil, "/out", nil)
	if !appErrors.IsKind(err, appErrors.IOFailure) {
		t.Fatalf("expected IOFailure, got %v", err)
	}
}

func TestCopyBatchStopsWhenCancelled(t *testing.T) {
	mock := &mockFS{entries: []mockEntry{{path: "/card/a.ARW"}}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := (&Copier{FS: mock}).CopyBatch(ctx, domain.RAW, []string{"/card/a.ARW"}, "/out", nil)
	if !appErrors.IsKind(err, appErrors.Cancelled) {
		t.Fatalf("expected Cancelled, got %v", err)
	}
	if len(mock.copied) != 0 || len(report.Copied) != 0 {
		t.Fatalf("expected nothing copied after cancel")
	}
}
