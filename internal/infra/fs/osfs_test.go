package fs

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCopyFilePreservesContentModeAndTimes(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "DSC0001.ARW")
	dst := filepath.Join(dir, "out.ARW")

	if err := os.WriteFile(src, []byte("raw sensor data"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	mtime := time.Date(2021, 5, 1, 10, 30, 0, 0, time.UTC)
	if err := os.Chtimes(src, mtime, mtime); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	n, err := OSFS{}.CopyFile(src, dst)
	if err != nil {
		t.Fatalf("copy: %v", err)
	}
	if n != int64(len("raw sensor data")) {
		t.Fatalf("unexpected byte count %d", n)
	}

	data, err := os.ReadFile(dst)
	if err != nil || string(data) != "raw sensor data" {
		t.Fatalf("unexpected content %q (%v)", data, err)
	}
	info, err := os.Stat(dst)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected mode 0600, got %v", info.Mode().Perm())
	}
	if !info.ModTime().Equal(mtime) {
		t.Fatalf("expected mtime %v, got %v", mtime, info.ModTime())
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	ok, err := OSFS{}.Exists(dir)
	if err != nil || !ok {
		t.Fatalf("expected dir to exist: %v %v", ok, err)
	}
	ok, err = OSFS{}.Exists(filepath.Join(dir, "missing"))
	if err != nil || ok {
		t.Fatalf("expected missing path: %v %v", ok, err)
	}
}

func TestWalkDirDescendsIntoSymlinkedRoot(t *testing.T) {
	card := t.TempDir()
	if err := os.MkdirAll(filepath.Join(card, "DCIM"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(card, "DCIM", "DSC0001.NEF"), []byte("raw"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	link := filepath.Join(t.TempDir(), "card")
	if err := os.Symlink(card, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	var files []string
	err := OSFS{}.WalkDir(link, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := filepath.Join(link, "DCIM", "DSC0001.NEF")
	if len(files) != 1 || files[0] != want {
		t.Fatalf("expected [%s], got %v", want, files)
	}
}
