package fs

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

type OSFS struct{}

// WalkDir walks root without following symlinks below it. A root that is
// itself a symlink is resolved first, and paths are still reported under
// root as given.
func (OSFS) WalkDir(root string, fn fs.WalkDirFunc) error {
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil || resolved == root {
		return filepath.WalkDir(root, fn)
	}
	return filepath.WalkDir(resolved, func(path string, d fs.DirEntry, err error) error {
		if rel, relErr := filepath.Rel(resolved, path); relErr == nil {
			path = filepath.Join(root, rel)
		}
		return fn(path, d, err)
	})
}

func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

func (OSFS) Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (OSFS) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

// CopyFile copies content, permission bits and timestamps of src to dst,
// replacing dst if present. It returns the number of bytes written.
func (OSFS) CopyFile(src, dst string) (int64, error) {
	srcFile, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer srcFile.Close()

	info, err := srcFile.Stat()
	if err != nil {
		return 0, err
	}

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return 0, err
	}

	n, copyErr := io.Copy(dstFile, srcFile)
	closeErr := dstFile.Close()
	if copyErr != nil {
		return n, copyErr
	}
	if closeErr != nil {
		return n, closeErr
	}

	// O_CREATE applies the umask and leaves an existing file's mode alone.
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return n, err
	}
	if err := os.Chtimes(dst, accessTime(info), info.ModTime()); err != nil {
		return n, err
	}
	return n, nil
}

func accessTime(info fs.FileInfo) time.Time {
	if atime, ok := statAccessTime(info); ok {
		return atime
	}
	return info.ModTime()
}
