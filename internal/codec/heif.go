package codec

import (
	"bytes"
	"image"

	"github.com/jdeng/goheif"
)

// HEIFDecoder decodes HEIC containers via goheif (libde265).
type HEIFDecoder struct{}

// Decode returns the primary image of the HEIC container.
func (HEIFDecoder) Decode(data []byte) (image.Image, error) {
	img, err := goheif.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return img, nil
}

// ExtractEXIF returns the container's EXIF block, or nil when the source
// carries none.
func (HEIFDecoder) ExtractEXIF(data []byte) ([]byte, error) {
	exif, err := goheif.ExtractExif(bytes.NewReader(data))
	if err != nil {
		// Sources without EXIF are common; treat extraction failure as
		// absence rather than a conversion failure.
		return nil, nil
	}
	return exif, nil
}
