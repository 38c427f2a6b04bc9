package encoder

import (
	"image"

	"github.com/backmassage/heic2jpg/internal/codec"
)

// sideLadder returns the descending longest-side caps: start, then repeated
// multiplication by scale, down to floor inclusive. start <= 0 means no
// resizing and yields the single cap 0 (which Downscale treats as "off").
// The floor is raised to 1 and the descent stops as soon as a step fails to
// shrink, so the ladder is finite and strictly descending for any tuning.
func sideLadder(start, floor int, scale float64) []int {
	if start <= 0 {
		return []int{0}
	}
	if floor < 1 {
		floor = 1
	}
	var steps []int
	for s := start; s >= floor; {
		steps = append(steps, s)
		next := int(float64(s) * scale)
		if next >= s {
			break
		}
		s = next
	}
	if len(steps) == 0 {
		steps = []int{start}
	}
	return steps
}

// qualityLadder returns initial, initial-step, ... down to min inclusive
// (the final value may overshoot to exactly min when the step doesn't land
// on it).
func qualityLadder(initial, min, step int) []int {
	var quals []int
	for q := initial; q >= min; q -= step {
		quals = append(quals, q)
	}
	if len(quals) == 0 || quals[len(quals)-1] != min {
		quals = append(quals, min)
	}
	return quals
}

// encodeLadder walks resolution caps (outer, descending) and qualities
// (inner, descending) and returns the first encoding at or under budget.
// The image is resized at most once per outer step. If nothing fits, the
// very last attempt — smallest resolution, lowest quality — is returned as
// the best effort.
func (e *Encoder) encodeLadder(img image.Image, req Request) (Result, error) {
	sides := sideLadder(e.tun.MaxSide, e.tun.MinSide, e.tun.SideScale)
	quals := qualityLadder(e.tun.InitialQuality, e.tun.MinQuality, e.tun.QualityStep)

	var last Result
	attempts := 0
	for _, side := range sides {
		resized := codec.Downscale(img, side)
		for _, q := range quals {
			data, err := e.enc.Encode(resized, e.options(req, q))
			if err != nil {
				return Result{}, err
			}
			attempts++
			last = Result{
				Data:        data,
				Size:        int64(len(data)),
				Quality:     q,
				LongestSide: codec.LongestSide(resized),
				Attempts:    attempts,
			}
			if last.Size <= req.Budget {
				last.MetBudget = true
				return last, nil
			}
		}
	}
	return last, nil
}
