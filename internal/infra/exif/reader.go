package exif

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	mp4 "github.com/abema/go-mp4"
	goexif "github.com/rwcarlsen/goexif/exif"

	"pyxsync/internal/domain"
)

// maxMetaBox bounds how much of a CR3 uuid box is read into memory.
const maxMetaBox = 16 << 20

// Headers of TIFF-structured RAW formats that use their own magic number.
var tiffVariants = map[string]string{
	"IIRO":    "II*\x00", // Olympus ORF
	"IIRS":    "II*\x00", // Olympus ORF
	"MMOR":    "MM\x00*", // Olympus ORF, big-endian
	"IIU\x00": "II*\x00", // Panasonic RW2
}

type Reader struct{}

// Tags decodes the IFD0 Make, Model and DateTime tags of path. Files that
// cannot be decoded as EXIF/TIFF yield domain.ErrNoMetadata. A tag that is
// present but not a string is an error of its own.
func (Reader) Tags(ctx context.Context, path string) (domain.ImageTags, error) {
	select {
	case <-ctx.Done():
		return domain.ImageTags{}, ctx.Err()
	default:
	}

	file, err := os.Open(path)
	if err != nil {
		return domain.ImageTags{}, err
	}
	defer file.Close()

	src, err := metadataStream(file)
	if err != nil {
		return domain.ImageTags{}, fmt.Errorf("%w: %v", domain.ErrNoMetadata, err)
	}

	x, err := goexif.Decode(src)
	if err != nil && (x == nil || goexif.IsCriticalError(err)) {
		return domain.ImageTags{}, fmt.Errorf("%w: %v", domain.ErrNoMetadata, err)
	}

	var tags domain.ImageTags
	for _, field := range []struct {
		name goexif.FieldName
		dst  *string
	}{
		{goexif.Make, &tags.Make},
		{goexif.Model, &tags.Model},
		{goexif.DateTime, &tags.DateTime},
	} {
		val, err := stringTag(x, field.name)
		if err != nil {
			return domain.ImageTags{}, err
		}
		*field.dst = val
	}
	return tags, nil
}

// metadataStream returns a reader goexif can decode for the container in file.
func metadataStream(file *os.File) (io.Reader, error) {
	header := make([]byte, 12)
	n, err := io.ReadFull(file, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	header = header[:n]

	switch {
	case n >= 8 && string(header[4:8]) == "ftyp":
		tiff, err := cr3IFD0(file)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(tiff), nil
	case n >= 4 && tiffVariants[string(header[:4])] != "":
		if _, err := file.Seek(4, io.SeekStart); err != nil {
			return nil, err
		}
		return io.MultiReader(strings.NewReader(tiffVariants[string(header[:4])]), file), nil
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return file, nil
}

// cr3IFD0 returns the standalone TIFF that CR3 files keep in the CMT1 box of
// the Canon uuid box under moov.
func cr3IFD0(r io.ReadSeeker) ([]byte, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	boxes, err := mp4.ExtractBox(r, nil, mp4.BoxPath{mp4.BoxTypeMoov(), mp4.StrToBoxType("uuid")})
	if err != nil {
		return nil, err
	}
	for _, box := range boxes {
		size := box.Size - box.HeaderSize
		if size > maxMetaBox {
			continue
		}
		if _, err := r.Seek(int64(box.Offset+box.HeaderSize), io.SeekStart); err != nil {
			return nil, err
		}
		payload := make([]byte, size)
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, err
		}
		// Children follow the 16-byte user type.
		for _, start := range []int{16, 0} {
			if start > len(payload) {
				continue
			}
			if tiff, ok := childBox(payload[start:], "CMT1"); ok {
				return tiff, nil
			}
		}
	}
	return nil, errors.New("no CMT1 box")
}

func childBox(data []byte, typ string) ([]byte, bool) {
	for len(data) >= 8 {
		size := binary.BigEndian.Uint32(data)
		if size < 8 || uint64(size) > uint64(len(data)) {
			return nil, false
		}
		if string(data[4:8]) == typ {
			return data[8:size], true
		}
		data = data[size:]
	}
	return nil, false
}

// stringTag returns "" for an absent tag and an error for one that is
// present but not ASCII.
func stringTag(x *goexif.Exif, name goexif.FieldName) (string, error) {
	tag, err := x.Get(name)
	if err != nil {
		if goexif.IsTagNotPresentError(err) {
			return "", nil
		}
		return "", fmt.Errorf("%s tag: %w", name, err)
	}
	val, err := tag.StringVal()
	if err != nil {
		return "", fmt.Errorf("%s tag is not a string: %w", name, err)
	}
	return strings.TrimSpace(strings.TrimRight(val, "\x00")), nil
}
