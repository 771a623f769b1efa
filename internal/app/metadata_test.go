package app

import (
	"context"
	"errors"
	"testing"

	"pyxsync/internal/domain"
	appErrors "pyxsync/internal/errors"
	"pyxsync/internal/infra/exif"
	"pyxsync/internal/testutil"
)

func TestNormalizeCamera(t *testing.T) {
	tests := []struct {
		make  string
		model string
		want  domain.CameraIdentity
	}{
		{"NIKON CORPORATION", "NIKON D200", "NIKON D200"},
		{"SONY", "NEX-5", "SONY NEX-5"},
		{"SONY", "SONY NEX-5", "SONY NEX-5"},
		{"Canon", "Canon EOS 5D Mark III", "Canon EOS 5D Mark III"},
		{"FUJIFILM", "X-T3", "FUJIFILM X-T3"},
		{"OLYMPUS IMAGING CORP.", "E-M5", "OLYMPUS E-M5"},
	}

	for _, tt := range tests {
		got, err := NormalizeCamera(tt.make, tt.model)
		if err != nil {
			t.Fatalf("%s/%s: unexpected error: %v", tt.make, tt.model, err)
		}
		if got != tt.want {
			t.Fatalf("%s/%s: expected %q, got %q", tt.make, tt.model, tt.want, got)
		}
	}
}

func TestNormalizeCameraRejectsBlankMake(t *testing.T) {
	if _, err := NormalizeCamera("  ", "X100"); !appErrors.IsKind(err, appErrors.Metadata) {
		t.Fatalf("expected Metadata error, got %v", err)
	}
}

func TestCameraIdentity(t *testing.T) {
	extractor := Extractor{Exif: mockExif{
		tags: map[string]domain.ImageTags{
			"/card/a.NEF": {Make: "NIKON CORPORATION", Model: "NIKON D200"},
			"/card/b.ARW": {Make: "SONY"},
			"/card/c.ARW": {Make: "SONY", Model: "NEX-5"},
		},
		errs: map[string]error{"/card/broken.ARW": errors.New("read failed")},
	}}

	got, err := extractor.CameraIdentity(context.Background(), "/card/a.NEF")
	if err != nil || got != "NIKON D200" {
		t.Fatalf("expected NIKON D200, got %q (%v)", got, err)
	}
	got, err = extractor.CameraIdentity(context.Background(), "/card/c.ARW")
	if err != nil || got != "SONY NEX-5" {
		t.Fatalf("expected SONY NEX-5, got %q (%v)", got, err)
	}

	for _, path := range []string{"/card/b.ARW", "/card/broken.ARW", "/card/none.ARW"} {
		_, err := extractor.CameraIdentity(context.Background(), path)
		if !appErrors.IsKind(err, appErrors.Metadata) {
			t.Fatalf("%s: expected Metadata error, got %v", path, err)
		}
	}
}

func TestCameraIdentityPassesContextErrors(t *testing.T) {
	extractor := Extractor{Exif: mockExif{errs: map[string]error{"/card/a.ARW": context.Canceled}}}
	_, err := extractor.CameraIdentity(context.Background(), "/card/a.ARW")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCaptureDateRange(t *testing.T) {
	reader := mockExif{
		tags: map[string]domain.ImageTags{
			"/a":   {DateTime: "2021:05:01 10:00:00"},
			"/b":   {DateTime: "2021:05:01 18:30:12"},
			"/c":   {DateTime: "2021:05:03 09:00:00"},
			"/d":   {Make: "SONY"},
			"/bad": {DateTime: "yesterday"},
		},
	}
	extractor := Extractor{Exif: reader}

	tests := []struct {
		name  string
		paths []string
		want  string
		kind  appErrors.Kind
	}{
		{name: "single day", paths: []string{"/a", "/b"}, want: "2021-05-01"},
		{name: "range", paths: []string{"/c", "/a"}, want: "2021-05-01-2021-05-03"},
		{name: "absent dates skipped", paths: []string{"/d", "/missing", "/c"}, want: "2021-05-03"},
		{name: "malformed", paths: []string{"/a", "/bad"}, kind: appErrors.Metadata},
		{name: "no dates", paths: []string{"/d", "/missing"}, kind: appErrors.NoDatesFound},
		{name: "empty input", paths: nil, kind: appErrors.NoDatesFound},
	}

	for _, tt := range tests {
		got, err := extractor.CaptureDateRange(context.Background(), tt.paths)
		if tt.kind != "" {
			if !appErrors.IsKind(err, tt.kind) {
				t.Fatalf("%s: expected %s error, got %v", tt.name, tt.kind, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if got.String() != tt.want {
			t.Fatalf("%s: expected %q, got %q", tt.name, tt.want, got.String())
		}
	}
}

func TestCaptureDateRangeRejectsNonStringDateTime(t *testing.T) {
	dir := t.TempDir()
	good := testutil.WriteRAW(t, dir, "DSC0001.ARW", withDate(nex5, "2021:05:01 10:00:00"))
	bad := testutil.WriteFile(t, dir, "DSC0002.ARW", testutil.TIFFEntries([]testutil.Entry{
		{Tag: testutil.TagDateTime, Type: testutil.TypeShort, Count: 1, Data: []byte{7, 0}},
	}))

	extractor := Extractor{Exif: exif.Reader{}}
	_, err := extractor.CaptureDateRange(context.Background(), []string{good, bad})
	if !appErrors.IsKind(err, appErrors.Metadata) {
		t.Fatalf("expected metadata error, got %v", err)
	}
}

func TestCaptureDateRangeIsOrderIndependent(t *testing.T) {
	extractor := Extractor{Exif: mockExif{tags: map[string]domain.ImageTags{
		"/a": {DateTime: "2020:12:31 23:59:59"},
		"/b": {DateTime: "2021:01:02 00:00:01"},
		"/c": {DateTime: "2021:01:01 12:00:00"},
	}}}

	first, err := extractor.CaptureDateRange(context.Background(), []string{"/a", "/b", "/c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := extractor.CaptureDateRange(context.Background(), []string{"/c", "/b", "/a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second || first.String() != "2020-12-31-2021-01-02" {
		t.Fatalf("expected equal ranges, got %q and %q", first, second)
	}
	if !first.Earliest.Before(first.Latest) {
		t.Fatalf("expected earliest before latest")
	}
}
