// Package codec adapts the external image libraries behind small decode,
// resize, and encode interfaces: HEIF decoding and EXIF extraction via
// goheif, Lanczos downscaling via imaging, and JPEG encoding via the
// standard library with APP1 EXIF injection.
package codec

import (
	"image"

	"github.com/disintegration/imaging"
)

// Options carries the encoding parameters passed through unchanged to every
// encode attempt.
type Options struct {
	Quality     int    // 1..100; clamped by the encoder.
	Subsampling string // Chroma subsampling: "420", "422" or "444".
	Progressive bool
	Optimize    bool
	EXIF        []byte // Raw EXIF block to embed; nil strips metadata.
}

// Decoder turns raw file bytes into a pixel buffer and exposes any embedded
// capture metadata.
type Decoder interface {
	Decode(data []byte) (image.Image, error)
	// ExtractEXIF returns the raw EXIF block, or nil when the source
	// carries none. Absence of EXIF is not an error.
	ExtractEXIF(data []byte) ([]byte, error)
}

// Encoder serializes a pixel buffer to JPEG bytes with the given options.
type Encoder interface {
	Encode(img image.Image, opts Options) ([]byte, error)
}

// DecodeError wraps a failure to read the source image.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "decode: " + e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError wraps a codec fault during an encode attempt. It signals an
// unrecoverable encoder problem, not an over-budget result.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string { return "encode: " + e.Err.Error() }
func (e *EncodeError) Unwrap() error { return e.Err }

// Downscale caps the longest side of img at maxSide, preserving aspect
// ratio, using Lanczos resampling. Images already within the cap pass
// through; upscaling never happens. maxSide <= 0 disables resizing.
func Downscale(img image.Image, maxSide int) image.Image {
	if maxSide <= 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() <= maxSide && b.Dy() <= maxSide {
		return img
	}
	return imaging.Fit(img, maxSide, maxSide, imaging.Lanczos)
}

// LongestSide returns max(width, height), the single resizing control
// variable.
func LongestSide(img image.Image) int {
	b := img.Bounds()
	if b.Dx() > b.Dy() {
		return b.Dx()
	}
	return b.Dy()
}

// ToRGB normalizes img to a flat RGB buffer so every encode attempt starts
// from the same 3-channel color model (JPEG has no alpha).
func ToRGB(img image.Image) image.Image {
	return imaging.Clone(img)
}
