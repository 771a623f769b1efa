package domain

import "errors"

// ErrNoMetadata reports a readable file that carries no embedded metadata.
var ErrNoMetadata = errors.New("no embedded metadata")

// ImageTags are the IFD0 tags used to derive a destination. Empty means absent.
type ImageTags struct {
	Make     string
	Model    string
	DateTime string
}
