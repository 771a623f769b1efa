package app

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"time"

	"pyxsync/internal/domain"
)

type mockFS struct {
	entries  []mockEntry
	exists   map[string]bool
	copyErr  map[string]error
	copied   []string
	mkdirErr error
}

type mockEntry struct {
	path  string
	isDir bool
	size  int64
}

func (m *mockFS) WalkDir(root string, fn fs.WalkDirFunc) error {
	for _, entry := range m.entries {
		dirEntry := mockDirEntry{name: filepath.Base(entry.path), isDir: entry.isDir}
		if err := fn(entry.path, dirEntry, nil); err != nil {
			if errors.Is(err, fs.SkipDir) {
				continue
			}
			return err
		}
	}
	return nil
}

func (m *mockFS) Stat(path string) (fs.FileInfo, error) {
	for _, entry := range m.entries {
		if entry.path == path {
			return mockFileInfo{name: filepath.Base(path), isDir: entry.isDir, size: entry.size}, nil
		}
	}
	return nil, fs.ErrNotExist
}

func (m *mockFS) Exists(path string) (bool, error) {
	return m.exists[path], nil
}

func (m *mockFS) MkdirAll(path string, perm fs.FileMode) error {
	if m.mkdirErr != nil {
		return m.mkdirErr
	}
	if m.exists == nil {
		m.exists = map[string]bool{}
	}
	m.exists[path] = true
	return nil
}

func (m *mockFS) CopyFile(src, dst string) (int64, error) {
	if err := m.copyErr[src]; err != nil {
		return 0, err
	}
	m.copied = append(m.copied, dst)
	info, _ := m.Stat(src)
	if info == nil {
		return 0, nil
	}
	return info.Size(), nil
}

type mockExif struct {
	tags map[string]domain.ImageTags
	errs map[string]error
}

func (m mockExif) Tags(ctx context.Context, path string) (domain.ImageTags, error) {
	if err := m.errs[path]; err != nil {
		return domain.ImageTags{}, err
	}
	if tags, ok := m.tags[path]; ok {
		return tags, nil
	}
	return domain.ImageTags{}, domain.ErrNoMetadata
}

type mockDirEntry struct {
	name  string
	isDir bool
}

func (m mockDirEntry) Name() string               { return m.name }
func (m mockDirEntry) IsDir() bool                { return m.isDir }
func (m mockDirEntry) Type() fs.FileMode          { return 0 }
func (m mockDirEntry) Info() (fs.FileInfo, error) { return nil, nil }

type mockFileInfo struct {
	name  string
	isDir bool
	size  int64
}

func (m mockFileInfo) Name() string { return m.name }
func (m mockFileInfo) Size() int64  { return m.size }
func (m mockFileInfo) Mode() fs.FileMode {
	if m.isDir {
		return fs.ModeDir
	}
	return 0
}
func (m mockFileInfo) ModTime() time.Time { return time.Time{} }
func (m mockFileInfo) IsDir() bool        { return m.isDir }
func (m mockFileInfo) Sys() interface{}   { return nil }

type countingSink struct {
	steps int
}

func (c *countingSink) ReportProgress(steps int) { c.steps += steps }
