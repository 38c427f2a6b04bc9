// Package check provides system diagnostics (--check mode): codec self-tests,
// output writability, and the effective parallelism and search settings.
package check

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"runtime"

	"github.com/backmassage/heic2jpg/internal/codec"
	"github.com/backmassage/heic2jpg/internal/config"
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck runs the interactive --check flow: JPEG encoder self-test, EXIF
// injection self-test, temp write test, and a report of the effective
// settings. Returns false when any check failed.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkJPEGEncoder(cfg, log)
	ok = checkEXIFInjection(cfg, log) && ok
	ok = checkTempWrite(log) && ok
	reportSettings(cfg, log)
	return ok
}

// checkJPEGEncoder encodes a small gradient at the configured quality.
func checkJPEGEncoder(cfg *config.Config, log Logger) bool {
	data, err := codec.JPEGEncoder{}.Encode(testImage(), codec.Options{
		Quality:     cfg.InitialQuality,
		Subsampling: string(cfg.Subsampling),
		Progressive: cfg.Progressive,
		Optimize:    cfg.Optimize,
	})
	if err != nil {
		log.Error("JPEG encoder self-test failed: %v", err)
		return false
	}
	log.Success("JPEG encoder works (%d bytes at q%d)", len(data), cfg.InitialQuality)
	return true
}

// checkEXIFInjection verifies a metadata block survives an encode as an APP1
// segment.
func checkEXIFInjection(cfg *config.Config, log Logger) bool {
	exif := []byte("Exif\x00\x00MM\x00\x2a")
	data, err := codec.JPEGEncoder{}.Encode(testImage(), codec.Options{
		Quality: cfg.InitialQuality,
		EXIF:    exif,
	})
	if err != nil {
		log.Error("EXIF injection self-test failed: %v", err)
		return false
	}
	if !bytes.Contains(data, exif) {
		log.Error("EXIF block missing from encoded output")
		return false
	}
	log.Success("EXIF injection works")
	return true
}

// checkTempWrite creates, writes, and removes a temp file.
func checkTempWrite(log Logger) bool {
	f, err := os.CreateTemp("", "heic2jpg-check-*")
	if err != nil {
		log.Error("Temp directory not writable: %v", err)
		return false
	}
	name := f.Name()
	_, werr := f.Write([]byte("check"))
	cerr := f.Close()
	os.Remove(name)
	if werr != nil || cerr != nil {
		log.Error("Temp file write failed: %v %v", werr, cerr)
		return false
	}
	log.Success("Temp directory writable")
	return true
}

// reportSettings logs the effective run configuration; informational only.
func reportSettings(cfg *config.Config, log Logger) {
	log.Info("Parallelism: %d CPU(s), %d worker(s)", runtime.NumCPU(), cfg.WorkerCount())
	log.Info("Target: %.2f MB per file, strategy %s", cfg.TargetMB, cfg.Strategy)
	log.Info("Quality %d..%d step %d, side cap %d..%d",
		cfg.InitialQuality, cfg.MinQuality, cfg.QualityStep, cfg.MaxSide, cfg.MinSide)
	if cfg.KeepEXIF {
		log.Info("Metadata: EXIF preserved")
	} else {
		log.Info("Metadata: stripped")
	}
}

func testImage() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(4 * x), G: uint8(4 * y), B: 128, A: 255})
		}
	}
	return img
}
