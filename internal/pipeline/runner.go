package pipeline

import (
	"context"
	"os"
	"sync"

	"github.com/backmassage/heic2jpg/internal/codec"
	"github.com/backmassage/heic2jpg/internal/config"
	"github.com/backmassage/heic2jpg/internal/display"
	"github.com/backmassage/heic2jpg/internal/encoder"
	"github.com/backmassage/heic2jpg/internal/logging"
	"github.com/backmassage/heic2jpg/internal/naming"
	"github.com/backmassage/heic2jpg/internal/term"
)

// Run discovers inputs from cfg.Paths and converts them with the real HEIF
// decoder and JPEG encoder. Cancelling ctx stops dispatching new files;
// in-flight conversions finish and are reported.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) RunStats {
	if cfg.Subsampling != config.Subsampling420 || !cfg.Progressive || !cfg.Optimize {
		log.Warn("Built-in JPEG encoder is baseline 4:2:0; subsampling, progressive and optimize settings have no effect")
	}
	return RunWith(ctx, cfg, log, codec.HEIFDecoder{}, codec.JPEGEncoder{})
}

// RunWith is Run with the codec backends injected, which lets tests drive the
// whole pipeline without libde265.
func RunWith(ctx context.Context, cfg *config.Config, log *logging.Logger, dec codec.Decoder, jenc codec.Encoder) RunStats {
	var stats RunStats

	d := Discover(cfg.Paths, config.InputExt)
	for _, p := range d.Missing {
		log.Warn("Path does not exist: %s", p)
	}
	for _, p := range d.NotInput {
		log.Warn("Not a %s file: %s", config.InputExt, p)
	}
	for _, p := range d.Unreadable {
		log.Warn("Cannot read directory: %s", p)
	}
	if len(d.Files) == 0 {
		log.Info("No %s files found.", config.InputExt)
		return stats
	}

	stats.Total = len(d.Files)
	workers := cfg.WorkerCount()
	if workers > stats.Total {
		workers = stats.Total
	}

	log.Info("Found %d %s file(s)", stats.Total, config.InputExt)
	log.Info("Target: %.2f MB per file, strategy %s, %d worker(s)",
		cfg.TargetMB, cfg.Strategy, workers)
	log.Debug(cfg.Verbose, "Quality %d..%d step %d, side cap %d..%d",
		cfg.InitialQuality, cfg.MinQuality, cfg.QualityStep, cfg.MaxSide, cfg.MinSide)

	conv := NewConverter(cfg, dec, encoder.New(jenc, encoder.TuningFromConfig(cfg)), naming.NewNamer())

	jobs := make(chan string)
	results := make(chan Outcome)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				results <- conv.Convert(path)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, path := range d.Files {
			select {
			case jobs <- path:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	// Single aggregation loop: workers never print, so per-file lines and
	// the progress surface cannot interleave.
	prog := display.NewProgress(stats.Total, os.Stdout, term.IsTerminal(os.Stdout))
	for oc := range results {
		stats.Done++
		prog.Clear()
		if oc.OK {
			stats.Converted++
			stats.InputBytes += oc.InBytes
			stats.OutputBytes += oc.OutBytes
			log.Success("%s", oc.Message)
		} else {
			stats.Failed++
			log.Error("%s", oc.Message)
		}
		prog.Step()
	}
	prog.Finish()

	if ctx.Err() != nil && stats.Done < stats.Total {
		log.Warn("Interrupted: %d of %d file(s) processed", stats.Done, stats.Total)
	}
	summarize(log, &stats)
	return stats
}

func summarize(log *logging.Logger, stats *RunStats) {
	if stats.Converted == 0 {
		log.Warn("Done: 0 converted, %d failed of %d", stats.Failed, stats.Total)
		return
	}
	log.Info("Done: %d converted, %d failed of %d", stats.Converted, stats.Failed, stats.Total)
	log.Success("Total: %s in, %s out (saved %s)",
		display.FormatMB(stats.InputBytes),
		display.FormatMB(stats.OutputBytes),
		display.FormatMB(stats.SpaceSaved()))
}
