package domain

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// MediaCategory selects which extension set a scan matches against.
type MediaCategory int

const (
	RAW MediaCategory = iota
	JPEG
	IMAGE
	VIDEO
)

// CopyCategories are the disjoint categories a run copies, in copy order.
var CopyCategories = []MediaCategory{RAW, JPEG, VIDEO}

// ExtensionSet holds upper-cased extensions including the leading dot.
type ExtensionSet map[string]struct{}

var (
	rawExtensions   = newExtensionSet(".ARW", ".CR2", ".CR3", ".DNG", ".NEF", ".ORF", ".RAF", ".RW2")
	jpegExtensions  = newExtensionSet(".JPG", ".JPEG")
	videoExtensions = newExtensionSet(".MP4", ".MOV")
	imageExtensions = union(jpegExtensions, rawExtensions)
)

func newExtensionSet(exts ...string) ExtensionSet {
	set := make(ExtensionSet, len(exts))
	for _, ext := range exts {
		set[strings.ToUpper(ext)] = struct{}{}
	}
	return set
}

func union(sets ...ExtensionSet) ExtensionSet {
	out := ExtensionSet{}
	for _, set := range sets {
		for ext := range set {
			out[ext] = struct{}{}
		}
	}
	return out
}

func (c MediaCategory) String() string {
	switch c {
	case RAW:
		return "RAW"
	case JPEG:
		return "JPEG"
	case IMAGE:
		return "IMAGE"
	case VIDEO:
		return "VIDEO"
	default:
		return fmt.Sprintf("MediaCategory(%d)", int(c))
	}
}

// Extensions returns the category's extension set. Unknown categories panic.
func (c MediaCategory) Extensions() ExtensionSet {
	switch c {
	case RAW:
		return rawExtensions
	case JPEG:
		return jpegExtensions
	case IMAGE:
		return imageExtensions
	case VIDEO:
		return videoExtensions
	default:
		panic(fmt.Sprintf("domain: unknown media category %d", int(c)))
	}
}

// Contains reports whether ext (with leading dot, any case) is in the set.
func (s ExtensionSet) Contains(ext string) bool {
	_, ok := s[strings.ToUpper(ext)]
	return ok
}

// Matches reports whether the extension of name is in the set.
func (s ExtensionSet) Matches(name string) bool {
	ext := filepath.Ext(name)
	if ext == "" {
		return false
	}
	return s.Contains(ext)
}

// Sorted returns the extensions in lexical order, for display.
func (s ExtensionSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for ext := range s {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}
