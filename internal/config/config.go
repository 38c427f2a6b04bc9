// Package config holds runtime configuration: defaults, environment
// overrides, CLI flag parsing, and validation. Search-ladder defaults match
// the legacy heic2jpg.py script for parity.
package config

import (
	"errors"
	"fmt"
	"runtime"
)

// --- Enum types for validated string fields ---

// Strategy selects the size-search algorithm.
type Strategy string

const (
	StrategyLadder    Strategy = "ladder"    // Resolution/quality ladder descent (default).
	StrategyBinsearch Strategy = "binsearch" // Bounded binary search over quality.
)

// Subsampling is the JPEG chroma subsampling mode.
type Subsampling string

const (
	Subsampling420 Subsampling = "420" // 4:2:0, smallest output (default).
	Subsampling422 Subsampling = "422" // 4:2:2.
	Subsampling444 Subsampling = "444" // 4:4:4, no chroma reduction.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// MinTargetMB is the budget floor. Requests below it are clamped up so the
// search never degenerates into an unreachable target.
const MinTargetMB = 0.1

// InputExt is the accepted input extension (matched case-insensitively).
const InputExt = ".heic"

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overlaid by [ApplyEnv], and then mutated by [ParseFlags] before
// being passed (by pointer) to packages that need it.
type Config struct {
	// Input paths (set from positional args). Empty means current directory.
	Paths []string

	// Size target.
	TargetMB float64 // Default: 0.5. Clamped to MinTargetMB in Validate.

	// Resolution ladder.
	MaxSide   int     // Default: 3000. 0 disables resizing entirely.
	MinSide   int     // Default: 1200. Ladder floor, inclusive.
	SideScale float64 // Fixed: 0.9. Per-step shrink factor of the cap.

	// Quality search.
	Strategy       Strategy
	InitialQuality int  // Default: 85. Ladder start / binsearch upper bound.
	MinQuality     int  // Default: 40. Floor; below is last-resort quality.
	QualityStep    int  // Default: 5. Ladder decrement.
	SearchIters    int  // Default: 7. Binsearch iteration budget.
	FallbackResize bool // Binsearch fallback resizes to MinSide first.

	// JPEG encoding options, passed through to every attempt.
	Subsampling Subsampling // Default: "420".
	Progressive bool        // Default: true. Cleared by --no-progressive.
	Optimize    bool        // Default: true. Cleared by --no-optimize.
	KeepEXIF    bool        // Default: false (strip metadata).

	// Output.
	OutDirName string // Default: "Reduced". Sibling directory per input dir.

	// Concurrency.
	Workers int // Default: 0 = auto (available parallelism - 2, min 1).

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	CheckOnly bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with all defaults matching legacy
// heic2jpg.py behavior. Used as the base before [ApplyEnv] and [ParseFlags]
// apply overrides.
func DefaultConfig() Config {
	return Config{
		TargetMB:       0.5,
		MaxSide:        3000,
		MinSide:        1200,
		SideScale:      0.9,
		Strategy:       StrategyLadder,
		InitialQuality: 85,
		MinQuality:     40,
		QualityStep:    5,
		SearchIters:    7,
		FallbackResize: false,
		Subsampling:    Subsampling420,
		Progressive:    true,
		Optimize:       true,
		KeepEXIF:       false,
		OutDirName:     "Reduced",
		Workers:        0,
		Verbose:        false,
		ColorMode:      ColorAuto,
		CheckOnly:      false,
	}
}

// Validate checks enum fields and the quality band, and clamps the target
// budget to the floor. Mutates the receiver only for clamping.
func (c *Config) Validate() error {
	switch c.Strategy {
	case StrategyLadder, StrategyBinsearch:
		// valid
	default:
		return errors.New("invalid strategy (use 'ladder' or 'binsearch')")
	}

	switch c.Subsampling {
	case Subsampling420, Subsampling422, Subsampling444:
		// valid
	default:
		return errors.New("invalid subsampling (use '420', '422' or '444')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.TargetMB <= 0 {
		return errors.New("target size must be positive")
	}
	if c.TargetMB < MinTargetMB {
		c.TargetMB = MinTargetMB
	}

	if c.InitialQuality < 1 || c.InitialQuality > 100 {
		return fmt.Errorf("quality must be in 1..100 (got %d)", c.InitialQuality)
	}
	if c.MinQuality < 1 || c.MinQuality > 100 {
		return fmt.Errorf("min quality must be in 1..100 (got %d)", c.MinQuality)
	}
	if c.MinQuality > c.InitialQuality {
		return errors.New("min quality must not exceed quality")
	}
	if c.QualityStep < 1 {
		return errors.New("quality step must be at least 1")
	}
	if c.SearchIters < 1 {
		return errors.New("search iterations must be at least 1")
	}

	if c.MaxSide < 0 || c.MinSide < 0 {
		return errors.New("resolution caps must not be negative")
	}
	if c.MaxSide > 0 && c.MinSide > c.MaxSide {
		return errors.New("min side must not exceed max side")
	}

	if c.Workers < 0 {
		return errors.New("workers must not be negative")
	}
	if c.OutDirName == "" {
		return errors.New("output directory name must not be empty")
	}
	return nil
}

// BudgetBytes converts the (clamped) megabyte target into a byte budget.
func (c *Config) BudgetBytes() int64 {
	mb := c.TargetMB
	if mb < MinTargetMB {
		mb = MinTargetMB
	}
	return int64(mb * 1024 * 1024)
}

// WorkerCount resolves the effective pool size: an explicit --workers value,
// or available parallelism minus two with a floor of one.
func (c *Config) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	n := runtime.NumCPU() - 2
	if n < 1 {
		n = 1
	}
	return n
}
