package codec

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
)

// JPEGEncoder encodes via the standard library JPEG encoder. It emits
// baseline 4:2:0 output, which matches the default Options; the subsampling,
// progressive, and optimize knobs ride through for Encoder backends that
// honor them.
type JPEGEncoder struct{}

// Encode serializes img to JPEG bytes at opts.Quality, embedding the EXIF
// block as an APP1 segment when present.
func (JPEGEncoder) Encode(img image.Image, opts Options) ([]byte, error) {
	q := opts.Quality
	if q < 1 {
		q = 1
	}
	if q > 100 {
		q = 100
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: q}); err != nil {
		return nil, &EncodeError{Err: err}
	}
	if len(opts.EXIF) == 0 {
		return buf.Bytes(), nil
	}
	return injectEXIF(buf.Bytes(), opts.EXIF)
}

// maxAPP1Payload is the largest EXIF block that fits one APP1 segment
// (the 16-bit length field counts itself).
const maxAPP1Payload = 0xFFFF - 2

// injectEXIF inserts the raw EXIF block as an APP1 segment directly after
// the SOI marker. Blocks too large for a single segment are dropped rather
// than failing the conversion.
func injectEXIF(jpg, exif []byte) ([]byte, error) {
	if len(jpg) < 2 || jpg[0] != 0xFF || jpg[1] != 0xD8 {
		return nil, &EncodeError{Err: errors.New("encoder produced a stream without SOI marker")}
	}
	if len(exif) > maxAPP1Payload {
		return jpg, nil
	}

	seglen := 2 + len(exif)
	out := make([]byte, 0, len(jpg)+4+len(exif))
	out = append(out, 0xFF, 0xD8)
	out = append(out, 0xFF, 0xE1, byte(seglen>>8), byte(seglen&0xFF))
	out = append(out, exif...)
	out = append(out, jpg[2:]...)
	return out, nil
}
