package encoder

import (
	"image"

	"github.com/backmassage/heic2jpg/internal/codec"
)

// encodeBinsearch resizes once to the configured cap, then binary-searches
// quality in [MinQuality, InitialQuality] for the highest quality whose
// output fits the budget. Under-budget results raise the lower bound: at
// equal size-compliance, higher quality is strictly preferable.
//
// If no iteration fits, the fallback encodes at floor quality — after an
// additional resize to MinSide when FallbackResize is set — so a non-empty
// result is always produced.
func (e *Encoder) encodeBinsearch(img image.Image, req Request) (Result, error) {
	resized := codec.Downscale(img, e.tun.MaxSide)

	lo, hi := e.tun.MinQuality, e.tun.InitialQuality
	var best Result
	found := false
	attempts := 0

	for i := 0; i < e.tun.SearchIters && lo <= hi; i++ {
		mid := (lo + hi) / 2
		data, err := e.enc.Encode(resized, e.options(req, mid))
		if err != nil {
			return Result{}, err
		}
		attempts++
		if int64(len(data)) <= req.Budget {
			best = Result{
				Data:        data,
				Size:        int64(len(data)),
				MetBudget:   true,
				Quality:     mid,
				LongestSide: codec.LongestSide(resized),
			}
			found = true
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	if found {
		best.Attempts = attempts
		return best, nil
	}

	// Floor-quality fallback.
	fb := resized
	if e.tun.FallbackResize {
		fb = codec.Downscale(resized, e.tun.MinSide)
	}
	data, err := e.enc.Encode(fb, e.options(req, e.tun.MinQuality))
	if err != nil {
		return Result{}, err
	}
	attempts++
	return Result{
		Data:        data,
		Size:        int64(len(data)),
		MetBudget:   int64(len(data)) <= req.Budget,
		Quality:     e.tun.MinQuality,
		LongestSide: codec.LongestSide(fb),
		Attempts:    attempts,
	}, nil
}
