package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	appErrors "pyxsync/internal/errors"
)

type Role string

const (
	Source Role = "source"
	Target Role = "target"
)

// Endpoint is a directory that existed when it was validated. Existence is
// not re-checked afterwards.
type Endpoint struct {
	Path string
	Role Role
}

type Stater interface {
	Stat(path string) (fs.FileInfo, error)
}

func Validate(fsys Stater, role Role, path string) (Endpoint, error) {
	if path == "" {
		return Endpoint{}, appErrors.New(appErrors.Validation, string(role), path, "path is empty")
	}
	info, err := fsys.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Endpoint{}, appErrors.New(appErrors.Validation, string(role), path, "path does not exist")
		}
		return Endpoint{}, appErrors.Wrap(appErrors.Validation, string(role), path, err)
	}
	if !info.IsDir() {
		return Endpoint{}, appErrors.New(appErrors.Validation, string(role), path, "not a directory")
	}
	return Endpoint{Path: filepath.Clean(path), Role: role}, nil
}

// Manager holds the validated endpoints of one run.
type Manager struct {
	Sources []Endpoint
	Target  Endpoint
}

// NewManager validates every source and the target. Duplicate sources are
// dropped, keeping the first occurrence.
func NewManager(fsys Stater, sources []string, target string) (Manager, error) {
	if len(sources) == 0 {
		return Manager{}, appErrors.New(appErrors.Validation, string(Source), "", "at least one source is required")
	}
	var m Manager
	seen := map[string]bool{}
	for _, src := range sources {
		ep, err := Validate(fsys, Source, src)
		if err != nil {
			return Manager{}, err
		}
		if seen[ep.Path] {
			continue
		}
		seen[ep.Path] = true
		m.Sources = append(m.Sources, ep)
	}
	tgt, err := Validate(fsys, Target, target)
	if err != nil {
		return Manager{}, err
	}
	m.Target = tgt
	return m, nil
}

func (m Manager) SourcePaths() []string {
	out := make([]string, 0, len(m.Sources))
	for _, s := range m.Sources {
		out = append(out, s.Path)
	}
	return out
}

func (m Manager) String() string {
	return fmt.Sprintf("%v -> %s", m.SourcePaths(), m.Target.Path)
}
