package uihelpers

import (
	"math"
	"strconv"
)

// ComputeChartDimensions applies the width/height clamp rules used for plot
// panels. Input: desired raw width (e.g., window width). Returns clamped
// width & height for one stacked waveform panel.
func ComputeChartDimensions(rawW int) (int, int) {
	w := rawW
	if w < 800 {
		w = 800
	}
	h := int(float32(w) * 0.22)
	if h < 200 {
		h = 200
	}
	if h > 360 {
		h = 360
	}
	return w, h
}

// ComputeYRange pads a series' min/max by 20% of the larger magnitude so flat
// traces and digital signals stay readable. NaN-only input falls back to
// (-0.5, 1.5), matching a one-bit trace.
func ComputeYRange(vals []float64) (float64, float64) {
	ymin := math.Inf(1)
	ymax := math.Inf(-1)
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		if v < ymin {
			ymin = v
		}
		if v > ymax {
			ymax = v
		}
	}
	if math.IsInf(ymin, 1) || math.IsInf(ymax, -1) {
		return -0.5, 1.5
	}
	pad := math.Max(math.Abs(ymin), math.Abs(ymax)) * 0.2
	if pad == 0 {
		pad = 0.5
	}
	return ymin - pad, ymax + pad
}

// BuildNumericTicks generates up to n tick marks spanning [min,max] using a
// 1,2,2.5,5 step pattern. Returns raw positions; label formatting is left to
// the caller.
func BuildNumericTicks(min, max float64, n int) []float64 {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	candidates := []float64{1, 2, 2.5, 5, 10}
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range candidates {
		step := c * mag
		count := math.Ceil(span/step) + 1
		if count < 2 {
			count = 2
		}
		diff := math.Abs(count - float64(n))
		if diff < bestScore {
			bestScore = diff
			bestStep = step
		}
	}
	start := math.Floor(min/bestStep) * bestStep
	end := math.Ceil(max/bestStep) * bestStep
	var out []float64
	for v := start; v <= end+bestStep*0.5; v += bestStep {
		out = append(out, round6(v))
	}
	if len(out) < 2 {
		out = []float64{min, max}
	}
	return out
}

// round6 rounds to 6 decimal places to stabilize labels and comparisons.
func round6(v float64) float64 { return math.Round(v*1e6) / 1e6 }

// FormatTick provides a compact axis label.
func FormatTick(v float64) string {
	av := math.Abs(v)
	switch {
	case av >= 100:
		return strconv.FormatInt(int64(math.Round(v)), 10)
	case av >= 10:
		return strconv.FormatFloat(v, 'f', 1, 64)
	case av >= 1:
		return strconv.FormatFloat(v, 'f', 2, 64)
	default:
		return strconv.FormatFloat(v, 'f', 3, 64)
	}
}

// ZoomRange scales a window about its center. factor < 1 zooms in.
func ZoomRange(lo, hi, factor float64) (float64, float64) {
	if hi < lo {
		lo, hi = hi, lo
	}
	center := (lo + hi) / 2
	half := (hi - lo) / 2 * factor
	if half <= 0 {
		half = 0.5
	}
	return center - half, center + half
}

// PanRange shifts a window by frac of its width. Positive pans right.
func PanRange(lo, hi, frac float64) (float64, float64) {
	shift := (hi - lo) * frac
	return lo + shift, hi + shift
}
