package domain

import (
	"fmt"
	"time"
)

type DiscoveredFile struct {
	Path     string
	Category MediaCategory
}

func Paths(files []DiscoveredFile) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Path)
	}
	return out
}

// CameraIdentity names the camera folder, e.g. "NIKON D200" or "SONY NEX-5".
type CameraIdentity string

const dayLayout = "2006-01-02"

// CaptureDateRange spans the distinct capture days of a batch.
type CaptureDateRange struct {
	Earliest time.Time
	Latest   time.Time
}

func (r CaptureDateRange) SingleDay() bool {
	return r.Earliest.Equal(r.Latest)
}

func (r CaptureDateRange) String() string {
	if r.SingleDay() {
		return r.Earliest.Format(dayLayout)
	}
	return fmt.Sprintf("%s-%s", r.Earliest.Format(dayLayout), r.Latest.Format(dayLayout))
}
