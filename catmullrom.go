package trajectory

import (
	"math"
	"sort"
)

// catmullRom evaluates the uniform Catmull-Rom span between p1 and p2 at
// s ∈ [0, 1], using p0 and p3 as the outer neighbours.
func catmullRom(p0, p1, p2, p3, s float64) float64 {
	return 0.5 * ((2 * p1) +
		(-p0+p2)*s +
		(2*p0-5*p1+4*p2-p3)*s*s +
		(-p0+3*p1-3*p2+p3)*s*s*s)
}

// Segment is one span of an interpolated curve, between two adjacent
// control points, expressed as a cubic Bézier in (time, value) space.
//
// The span's parameter s ∈ [0, 1] maps linearly onto [T0, T1], which makes
// the Bézier's time coordinates T0, T0+Δ/3, T0+2Δ/3 and T1. Only the value
// coordinates V0 through V3 have to be stored. V0 and V3 are the values of
// the control points the segment connects.
type Segment struct {
	T0, T1         float64
	V0, V1, V2, V3 float64
}

// catmullRomSegment converts the Catmull-Rom span between p1 and p2 into
// its exact Bézier form. The tangents of a uniform Catmull-Rom spline are
// (p2-p0)/2 and (p3-p1)/2 per unit of s, which places the inner Bézier
// control values a third of a tangent away from the ends.
func catmullRomSegment(t0, t1, p0, p1, p2, p3 float64) Segment {
	return Segment{
		T0: t0,
		T1: t1,
		V0: p1,
		V1: p1 + (p2-p0)/6,
		V2: p2 - (p3-p1)/6,
		V3: p2,
	}
}

// Eval evaluates the segment's value at parameter s ∈ [0, 1].
func (seg Segment) Eval(s float64) float64 {
	ms := 1.0 - s
	a := seg.V0 * (ms * ms * ms)
	b := seg.V1 * (ms * ms * 3.0)
	c := seg.V2 * (ms * 3.0)
	d := seg.V3
	return a + (b+(c+d*s)*s)*s
}

// At evaluates the segment's value at time t, which should lie in
// [T0, T1].
func (seg Segment) At(t float64) float64 {
	return seg.Eval(seg.Param(t))
}

// Param maps time t to the segment's parameter.
func (seg Segment) Param(t float64) float64 {
	return (t - seg.T0) / (seg.T1 - seg.T0)
}

// Time maps the parameter s to time.
func (seg Segment) Time(s float64) float64 {
	return seg.T0 + (seg.T1-seg.T0)*s
}

// ControlTimes returns the time coordinates of the Bézier's four control
// points.
func (seg Segment) ControlTimes() [4]float64 {
	d := seg.T1 - seg.T0
	return [4]float64{seg.T0, seg.T0 + d/3, seg.T0 + 2*d/3, seg.T1}
}

// Extrema returns the parameters of the segment's interior extrema in the
// value coordinate, in increasing order. A cubic has at most two.
func (seg Segment) Extrema() ([2]float64, int) {
	var out [2]float64
	var outN int
	d0 := seg.V1 - seg.V0
	d1 := seg.V2 - seg.V1
	d2 := seg.V3 - seg.V2
	a := d0 - 2*d1 + d2
	b := 2 * (d1 - d0)
	c := d0
	roots, n := solveQuadratic(c, b, a)
	for _, s := range roots[:n] {
		if s > 0.0 && s < 1.0 {
			out[outN] = s
			outN++
		}
	}
	sort.Float64s(out[:outN])
	return out, outN
}

// Bounds returns the smallest and largest value the segment takes.
func (seg Segment) Bounds() (lo, hi float64) {
	lo, hi = min(seg.V0, seg.V3), max(seg.V0, seg.V3)
	ex, n := seg.Extrema()
	for _, s := range ex[:n] {
		v := seg.Eval(s)
		lo, hi = min(lo, v), max(hi, v)
	}
	return lo, hi
}

// solveQuadratic returns the finite real roots of c0 + c1·x + c2·x² in
// increasing order. With c2 == 0 it solves the linear equation, and an
// equation without a unique solution has no roots.
func solveQuadratic(c0, c1, c2 float64) ([2]float64, int) {
	disc := c1*c1 - 4*c2*c0
	if disc < 0 || math.IsNaN(disc) {
		return [2]float64{}, 0
	}
	// q has the sign of c1, so c1 + copysign(√disc) never cancels.
	q := -0.5 * (c1 + math.Copysign(math.Sqrt(disc), c1))
	var out [2]float64
	n := 0
	for _, r := range [2]float64{q / c2, c0 / q} {
		if !math.IsInf(r, 0) && !math.IsNaN(r) {
			out[n] = r
			n++
		}
	}
	if n == 2 {
		if out[0] > out[1] {
			out[0], out[1] = out[1], out[0]
		} else if out[0] == out[1] {
			n = 1
		}
	}
	return out, n
}
