package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into size/search, JPEG options, behavior, display, and
// utility. Negated flags (e.g. --no-progressive) are applied after Parse so
// Config defaults hold unless set.

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseFlags parses os.Args into cfg. On --help or --version it prints and
// exits. On error it returns non-nil (e.g. unknown flag, bad value).
// Remaining positional args become cfg.Paths; none means current directory.
func ParseFlags(cfg *Config, version string) error {
	fs := flag.NewFlagSet("heic2jpg", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs, version) }

	// Negated/override flags: we capture bools then apply to cfg after Parse,
	// so that defaults from DefaultConfig() hold unless the user passes the flag.
	var negated negatedFlags

	defineSizeFlags(fs, cfg)
	defineSearchFlags(fs, cfg)
	defineJPEGFlags(fs, cfg, &negated)
	defineBehaviorFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, &negated)

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	applyNegatedFlags(cfg, &negated)

	if negated.showHelp {
		printUsage(fs, version)
		os.Exit(0)
	}
	if negated.showVersion {
		fmt.Fprintln(os.Stdout, "heic2jpg v"+version)
		os.Exit(0)
	}

	cfg.Paths = fs.Args()
	return nil
}

// negatedFlags holds boolean flags that are applied after Parse.
// These either invert a default (e.g. noProgressive -> Progressive=false) or
// trigger exit (showHelp, showVersion).
type negatedFlags struct {
	noProgressive bool
	noOptimize    bool
	forceColor    bool
	noColor       bool
	showVersion   bool
	showHelp      bool
}

// defineSizeFlags registers -t/--target-mb, --max-side, --min-side.
func defineSizeFlags(fs *flag.FlagSet, cfg *Config) {
	fs.Float64Var(&cfg.TargetMB, "target-mb", cfg.TargetMB, "Target maximum output size in MB")
	fs.Float64Var(&cfg.TargetMB, "t", cfg.TargetMB, "Same as --target-mb")
	fs.IntVar(&cfg.MaxSide, "max-side", cfg.MaxSide, "Start downscaling above this longest side (0 = never resize)")
	fs.IntVar(&cfg.MinSide, "min-side", cfg.MinSide, "Ladder floor for the longest side")
}

// defineSearchFlags registers -s/--strategy, quality band, step, iterations,
// and the binsearch fallback policy.
func defineSearchFlags(fs *flag.FlagSet, cfg *Config) {
	fs.Var(&strategyValue{&cfg.Strategy}, "strategy", "Search strategy: ladder | binsearch")
	fs.Var(&strategyValue{&cfg.Strategy}, "s", "Same as --strategy")
	fs.IntVar(&cfg.InitialQuality, "quality", cfg.InitialQuality, "Initial / highest JPEG quality")
	fs.IntVar(&cfg.InitialQuality, "q", cfg.InitialQuality, "Same as --quality")
	fs.IntVar(&cfg.MinQuality, "min-quality", cfg.MinQuality, "Lowest acceptable JPEG quality")
	fs.IntVar(&cfg.QualityStep, "quality-step", cfg.QualityStep, "Ladder quality decrement")
	fs.IntVar(&cfg.SearchIters, "search-iters", cfg.SearchIters, "Binary search iteration budget")
	fs.BoolVar(&cfg.FallbackResize, "fallback-resize", cfg.FallbackResize, "Resize to --min-side before the floor-quality fallback (binsearch)")
}

// defineJPEGFlags registers --subsampling, --no-progressive, --no-optimize, --keep-exif.
func defineJPEGFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.Var(&subsamplingValue{&cfg.Subsampling}, "subsampling", "Chroma subsampling: 420 | 422 | 444")
	fs.BoolVar(&n.noProgressive, "no-progressive", false, "Disable progressive scan")
	fs.BoolVar(&n.noOptimize, "no-optimize", false, "Disable Huffman table optimization")
	fs.BoolVar(&cfg.KeepEXIF, "keep-exif", false, "Keep EXIF metadata (larger files; default strips it)")
}

// defineBehaviorFlags registers --out-name and -w/--workers.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.OutDirName, "out-name", cfg.OutDirName, "Name of the sibling output directory")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Worker pool size (0 = auto: CPUs-2, min 1)")
	fs.IntVar(&cfg.Workers, "w", cfg.Workers, "Same as --workers")
}

// defineDisplayFlags registers --color, --no-color, verbose, --check, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output (per-attempt search detail)")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run codec diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
}

// defineUtilityFlags registers --version and --help (exit after printing).
func defineUtilityFlags(fs *flag.FlagSet, n *negatedFlags) {
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

// applyNegatedFlags copies negated flag values into cfg
// (e.g. noProgressive -> Progressive=false).
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noProgressive {
		cfg.Progressive = false
	}
	if n.noOptimize {
		cfg.Optimize = false
	}
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// printUsage writes the help text to stderr.
func printUsage(fs *flag.FlagSet, version string) {
	writeUsage(os.Stderr, version)
}

// writeUsage renders the help text. Column-aligned for readability.
func writeUsage(w io.Writer, version string) {
	const col1 = 30 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "heic2jpg v" + version + " — size-targeted HEIC to JPEG converter"},
		{"", ""},
		{"  heic2jpg [OPTIONS] [paths...]", ""},
		{"", ""},
		{"  Paths may be .heic files and/or directories (scanned non-recursively).", ""},
		{"  No paths means the current directory. Output goes to a sibling", ""},
		{"  Reduced/ directory; existing files are never overwritten.", ""},
		{"", ""},
		{"Size target", ""},
		{"  -t, --target-mb <mb>", "Max output size in MB (default: 0.5, floor: 0.1)"},
		{"  --max-side <px>", "Downscale above this longest side (default: 3000, 0 = off)"},
		{"  --min-side <px>", "Resolution ladder floor (default: 1200)"},
		{"", ""},
		{"Search", ""},
		{"  -s, --strategy <name>", "ladder | binsearch (default: ladder)"},
		{"  -q, --quality <1-100>", "Initial quality (default: 85)"},
		{"  --min-quality <1-100>", "Quality floor (default: 40)"},
		{"  --quality-step <n>", "Ladder decrement (default: 5)"},
		{"  --search-iters <n>", "Binsearch iteration budget (default: 7)"},
		{"  --fallback-resize", "Resize to --min-side before floor-quality fallback"},
		{"", ""},
		{"JPEG options", ""},
		{"  --subsampling <mode>", "420 | 422 | 444 (default: 420)"},
		{"  --no-progressive", "Disable progressive scan"},
		{"  --no-optimize", "Disable Huffman table optimization"},
		{"  --keep-exif", "Keep EXIF metadata (default: strip)"},
		{"", ""},
		{"Behavior", ""},
		{"  --out-name <name>", "Sibling output directory name (default: Reduced)"},
		{"  -w, --workers <n>", "Worker pool size (default: CPUs-2, min 1)"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "Codec diagnostics (decoder, encoder, parallelism)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(w)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(w, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(w, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(w, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapters so we can use enum types (Strategy, Subsampling) with flag.Var.

type strategyValue struct{ p *Strategy }

func (v *strategyValue) String() string {
	if v.p == nil {
		return ""
	}
	return string(*v.p)
}

func (v *strategyValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "ladder":
		*v.p = StrategyLadder
	case "binsearch":
		*v.p = StrategyBinsearch
	default:
		return fmt.Errorf("invalid strategy %q (use 'ladder' or 'binsearch')", s)
	}
	return nil
}

type subsamplingValue struct{ p *Subsampling }

func (v *subsamplingValue) String() string {
	if v.p == nil {
		return ""
	}
	return string(*v.p)
}

func (v *subsamplingValue) Set(s string) error {
	switch s {
	case "420", "4:2:0":
		*v.p = Subsampling420
	case "422", "4:2:2":
		*v.p = Subsampling422
	case "444", "4:4:4":
		*v.p = Subsampling444
	default:
		return fmt.Errorf("invalid subsampling %q (use '420', '422' or '444')", s)
	}
	return nil
}
