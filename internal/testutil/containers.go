package testutil

import (
	"bytes"
	"encoding/binary"
)

// CanonUUID is the user type of the moov/uuid box holding CR3 metadata.
var CanonUUID = []byte{
	0x85, 0xc0, 0xb6, 0x87, 0x82, 0x0f, 0x11, 0xe0,
	0x81, 0x11, 0xf4, 0xce, 0x46, 0x2b, 0x6a, 0x48,
}

// Box returns an ISO-BMFF box of the given type around payload.
func Box(typ string, payload ...[]byte) []byte {
	body := bytes.Join(payload, nil)
	out := make([]byte, 8, 8+len(body))
	binary.BigEndian.PutUint32(out, uint32(8+len(body)))
	copy(out[4:], typ)
	return append(out, body...)
}

// CR3 wraps tiff the way Canon CR3 files store IFD0: a CMT1 box inside the
// Canon uuid box of moov.
func CR3(tiff []byte) []byte {
	ftyp := Box("ftyp", []byte("crx "), []byte{0, 0, 0, 1}, []byte("crx isom"))
	canon := Box("uuid", CanonUUID,
		Box("CNCV", []byte("CanonCR3_001/00.09.00/00.00.00")),
		Box("CMT1", tiff),
	)
	return append(ftyp, Box("moov", canon)...)
}

// WithMagic replaces the four-byte TIFF header, as ORF ("IIRO") and RW2
// ("IIU\x00") do.
func WithMagic(tiff []byte, magic string) []byte {
	out := append([]byte(nil), tiff...)
	copy(out, magic)
	return out
}

// RAF builds a Fujifilm RAF stand-in: the RAF header followed by a JPEG
// preview whose APP1 segment carries tiff.
func RAF(tiff []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("FUJIFILMCCD-RAW 0201FF383501")
	buf.Write(make([]byte, 0x40))
	buf.Write([]byte{0xFF, 0xD8, 0xFF, 0xE1})
	_ = binary.Write(&buf, binary.BigEndian, uint16(2+6+len(tiff)))
	buf.WriteString("Exif\x00\x00")
	buf.Write(tiff)
	buf.Write([]byte{0xFF, 0xD9})
	return buf.Bytes()
}
