package app

import (
	"path/filepath"

	"pyxsync/internal/domain"
)

// Resolve composes target/camera/dates. It does not touch the filesystem.
func Resolve(targetRoot string, camera domain.CameraIdentity, dates domain.CaptureDateRange) string {
	return filepath.Join(targetRoot, string(camera), dates.String())
}
