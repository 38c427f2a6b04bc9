// Package probe inspects input files before they are handed to the decoder.
// A cheap ftyp-box check turns "mislabeled .heic file" into a precise failure
// reason instead of an opaque decoder error after a full read.
package probe

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrNotBMFF indicates the file does not start with an ISO-BMFF ftyp box.
var ErrNotBMFF = errors.New("no ftyp box (not an ISO media container)")

// HEIF brands accepted as decodable input. Covers single-image, image
// sequence, and the generic HEIF structural brands.
var heifBrands = map[string]bool{
	"heic": true,
	"heix": true,
	"heim": true,
	"heis": true,
	"hevc": true,
	"hevx": true,
	"mif1": true,
	"msf1": true,
}

// Info describes the container header of a sniffed file.
type Info struct {
	Brand string // Major brand from the ftyp box, e.g. "heic".
}

// IsHEIF reports whether the major brand is a known HEIF brand.
func (i Info) IsHEIF() bool { return heifBrands[i.Brand] }

// Sniff parses the leading ftyp box of data. It returns ErrNotBMFF (wrapped)
// when the header is absent or malformed.
//
// Layout: 4-byte box size, "ftyp", 4-byte major brand, 4-byte minor version,
// then compatible brands.
func Sniff(data []byte) (Info, error) {
	if len(data) < 12 {
		return Info{}, fmt.Errorf("file too short: %w", ErrNotBMFF)
	}
	if string(data[4:8]) != "ftyp" {
		return Info{}, ErrNotBMFF
	}
	size := binary.BigEndian.Uint32(data[0:4])
	if size < 16 || size%4 != 0 {
		return Info{}, fmt.Errorf("bad ftyp box size %d: %w", size, ErrNotBMFF)
	}
	return Info{Brand: string(data[8:12])}, nil
}

// Check sniffs data and returns a descriptive error when it is not a
// decodable HEIF container.
func Check(data []byte) error {
	info, err := Sniff(data)
	if err != nil {
		return err
	}
	if !info.IsHEIF() {
		return fmt.Errorf("not a HEIC container (brand %q)", info.Brand)
	}
	return nil
}
