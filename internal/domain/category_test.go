package domain

import (
	"strings"
	"testing"
	"time"
)

func TestExtensionsMatchRegardlessOfCase(t *testing.T) {
	for _, c := range []MediaCategory{RAW, JPEG, IMAGE, VIDEO} {
		set := c.Extensions()
		if len(set) == 0 {
			t.Fatalf("%s has an empty extension set", c)
		}
		for ext := range set {
			for _, variant := range []string{ext, strings.ToLower(ext), ext[:2] + strings.ToLower(ext[2:])} {
				if !set.Contains(variant) {
					t.Fatalf("%s: expected %q to be classified", c, variant)
				}
				if !set.Matches("DSC0001" + variant) {
					t.Fatalf("%s: expected DSC0001%s to match", c, variant)
				}
			}
		}
	}
}

func TestCopyCategoriesAreDisjoint(t *testing.T) {
	seen := map[string]MediaCategory{}
	for _, c := range CopyCategories {
		for ext := range c.Extensions() {
			if other, ok := seen[ext]; ok {
				t.Fatalf("%s is in both %s and %s", ext, other, c)
			}
			seen[ext] = c
		}
	}
}

func TestImageIsUnionOfJPEGAndRAW(t *testing.T) {
	image := IMAGE.Extensions()
	if len(image) != len(JPEG.Extensions())+len(RAW.Extensions()) {
		t.Fatalf("unexpected IMAGE size %d", len(image))
	}
	for _, ext := range append(JPEG.Extensions().Sorted(), RAW.Extensions().Sorted()...) {
		if !image.Contains(ext) {
			t.Fatalf("IMAGE missing %s", ext)
		}
	}
}

func TestMatchesRejectsOtherFiles(t *testing.T) {
	raw := RAW.Extensions()
	for _, name := range []string{"notes.txt", "ARW", "DSC0001", "photo.arw.xmp"} {
		if raw.Matches(name) {
			t.Fatalf("did not expect %q to match RAW", name)
		}
	}
}

func TestUnknownCategoryPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	MediaCategory(42).Extensions()
}

func TestCaptureDateRangeString(t *testing.T) {
	day := time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC)
	later := time.Date(2021, 5, 3, 0, 0, 0, 0, time.UTC)

	if got := (CaptureDateRange{Earliest: day, Latest: day}).String(); got != "2021-05-01" {
		t.Fatalf("unexpected single day %q", got)
	}
	if got := (CaptureDateRange{Earliest: day, Latest: later}).String(); got != "2021-05-01-2021-05-03" {
		t.Fatalf("unexpected range %q", got)
	}
}
