package pipeline

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/backmassage/heic2jpg/internal/codec"
	"github.com/backmassage/heic2jpg/internal/config"
	"github.com/backmassage/heic2jpg/internal/logging"
)

// heicPayload builds a minimal valid ftyp header (brand "heic") followed by
// marker bytes the stub decoder keys off.
func heicPayload(marker string) []byte {
	b := make([]byte, 0, 32+len(marker))
	var size [4]byte
	binary.BigEndian.PutUint32(size[:], 20)
	b = append(b, size[:]...)
	b = append(b, "ftyp"...)
	b = append(b, "heic"...)
	b = append(b, make([]byte, 8)...)
	b = append(b, marker...)
	return b
}

func writeHeic(t *testing.T, dir, name, marker string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, heicPayload(marker), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

// stubDecoder avoids libde265 in tests. Payloads containing "corrupt" fail
// to decode; payloads containing "withexif" report an EXIF block.
type stubDecoder struct{}

func (stubDecoder) Decode(data []byte) (image.Image, error) {
	if bytes.Contains(data, []byte("corrupt")) {
		return nil, &codec.DecodeError{Err: errors.New("truncated tile data")}
	}
	return image.NewNRGBA(image.Rect(0, 0, 96, 64)), nil
}

func (stubDecoder) ExtractEXIF(data []byte) ([]byte, error) {
	if bytes.Contains(data, []byte("withexif")) {
		return []byte("Exif\x00\x00MM"), nil
	}
	return nil, nil
}

// stubEncoder emits a fixed-size payload, so the default 0.5 MB budget is met
// on the first attempt.
type stubEncoder struct{ size int }

func (e stubEncoder) Encode(img image.Image, opts codec.Options) ([]byte, error) {
	n := e.size
	if n == 0 {
		n = 1000
	}
	return make([]byte, n), nil
}

// recordingEncoder captures the options of every encode attempt.
type recordingEncoder struct {
	mu   sync.Mutex
	opts []codec.Options
}

func (e *recordingEncoder) Encode(img image.Image, opts codec.Options) ([]byte, error) {
	e.mu.Lock()
	e.opts = append(e.opts, opts)
	e.mu.Unlock()
	return make([]byte, 1000), nil
}

func testConfig(paths ...string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Paths = paths
	cfg.Workers = 2
	cfg.ColorMode = config.ColorNever
	return &cfg
}

func testLogger(t *testing.T, cfg *config.Config) *logging.Logger {
	t.Helper()
	log, err := logging.NewLogger(cfg)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	t.Cleanup(func() { log.Close() })
	return log
}
