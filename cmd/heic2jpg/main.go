// Command heic2jpg is the CLI entrypoint for the batch HEIC to JPEG
// converter.
//
// It loads configuration (defaults, environment, flags), and either runs
// system diagnostics (--check) or the concurrent conversion pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/backmassage/heic2jpg/internal/check"
	"github.com/backmassage/heic2jpg/internal/config"
	"github.com/backmassage/heic2jpg/internal/display"
	"github.com/backmassage/heic2jpg/internal/logging"
	"github.com/backmassage/heic2jpg/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build" these retain their defaults.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap — the logger doesn't exist yet, so errors go
	// directly to stderr via fmt. Once NewLogger succeeds, all output
	// goes through the logger for consistent formatting and log-file capture.
	cfg := config.DefaultConfig()
	if err := config.ApplyEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "heic2jpg: %v\n", err)
		return 1
	}
	if err := config.ParseFlags(&cfg, version); err != nil {
		fmt.Fprintf(os.Stderr, "heic2jpg: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "heic2jpg: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "heic2jpg: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available — all output goes through log from here on.
	display.PrintBanner()
	log.Debug(cfg.Verbose, "heic2jpg v%s (%s)", version, commit)

	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, log) {
			return 1
		}
		return 0
	}

	// Phase 3: Signal handling — cancel the context on SIGINT/SIGTERM so
	// the pool stops taking new files; in-flight conversions finish and
	// are reported before exit.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, finishing current files…")
		cancel()
	}()

	// Phase 4: Run the conversion pipeline.
	stats := pipeline.Run(ctx, &cfg, log)

	// A run that attempted files and converted none is a failure; a run
	// with nothing to do is not.
	if stats.Total > 0 && stats.Converted == 0 {
		return 1
	}
	return 0
}
