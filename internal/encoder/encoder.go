// Package encoder implements the size-targeted re-encoding engine: given a
// decoded image and a byte budget, it searches the quality/resolution
// parameter space for the first (or best) encoding that fits, with a
// guaranteed best-effort fallback when the budget is unreachable.
package encoder

import (
	"image"

	"github.com/backmassage/heic2jpg/internal/codec"
	"github.com/backmassage/heic2jpg/internal/config"
)

// minBudgetBytes is the clamp floor (0.1 MB). Budgets below it would make
// the search degenerate, so they are raised, never rejected.
var minBudgetBytes = minBudget()

func minBudget() int64 {
	mb := config.MinTargetMB
	return int64(mb * 1024 * 1024)
}

// Request is one size-targeted encoding job. Immutable once constructed.
type Request struct {
	Image  image.Image
	Budget int64 // Max acceptable output bytes; clamped to the floor.

	// Pass-through JPEG options, identical for every attempt.
	EXIF        []byte // nil strips metadata.
	Subsampling string
	Progressive bool
	Optimize    bool
}

// Result is the outcome of a search. The byte stream is always a complete,
// valid encoding, even when MetBudget is false (best-effort fallback).
type Result struct {
	Data        []byte
	Size        int64
	MetBudget   bool
	Quality     int // Quality of the returned encoding.
	LongestSide int // Longest side of the returned encoding.
	Attempts    int // Codec invocations spent.
}

// Tuning bounds the search. Zero values are not usable; build it with
// [TuningFromConfig] or fill every field.
type Tuning struct {
	Strategy       config.Strategy
	InitialQuality int     // Ladder start / binsearch upper bound.
	MinQuality     int     // Floor quality, last-resort visual band.
	QualityStep    int     // Ladder decrement.
	MaxSide        int     // Starting resolution cap; 0 disables resizing.
	MinSide        int     // Ladder floor, inclusive.
	SideScale      float64 // Per-step cap shrink factor (0.9).
	SearchIters    int     // Binsearch iteration budget.
	FallbackResize bool    // Binsearch fallback resizes to MinSide first.
}

// TuningFromConfig copies the search parameters out of cfg.
func TuningFromConfig(cfg *config.Config) Tuning {
	return Tuning{
		Strategy:       cfg.Strategy,
		InitialQuality: cfg.InitialQuality,
		MinQuality:     cfg.MinQuality,
		QualityStep:    cfg.QualityStep,
		MaxSide:        cfg.MaxSide,
		MinSide:        cfg.MinSide,
		SideScale:      cfg.SideScale,
		SearchIters:    cfg.SearchIters,
		FallbackResize: cfg.FallbackResize,
	}
}

// Encoder runs size-targeted searches against a codec backend. Stateless
// between requests; safe for concurrent use as long as the backend is.
type Encoder struct {
	enc codec.Encoder
	tun Tuning
}

// New creates an Encoder using the given codec backend and tuning.
func New(enc codec.Encoder, tun Tuning) *Encoder {
	return &Encoder{enc: enc, tun: tun}
}

// EncodeToTarget searches for an encoding of req.Image at or under
// req.Budget. When no parameter combination fits within the bounded search,
// the smallest encoding actually produced is returned with MetBudget=false.
// A codec failure aborts the whole request: the error is the backend's
// EncodeError, and no partial result is returned.
func (e *Encoder) EncodeToTarget(req Request) (Result, error) {
	if req.Budget < minBudgetBytes {
		req.Budget = minBudgetBytes
	}
	img := codec.ToRGB(req.Image)

	if e.tun.Strategy == config.StrategyBinsearch {
		return e.encodeBinsearch(img, req)
	}
	return e.encodeLadder(img, req)
}

// options assembles the per-attempt codec options at quality q.
func (e *Encoder) options(req Request, q int) codec.Options {
	return codec.Options{
		Quality:     q,
		Subsampling: req.Subsampling,
		Progressive: req.Progressive,
		Optimize:    req.Optimize,
		EXIF:        req.EXIF,
	}
}
