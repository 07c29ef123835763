package trajectory

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// curveOf builds a curve with default limits from (time, value) pairs.
func curveOf(t *testing.T, a Axis, pts ...ControlPoint) *AxisCurve {
	t.Helper()
	c := NewAxisCurve(a, DefaultLimit)
	for _, pt := range pts {
		if _, err := c.AddPoint(pt.Time, pt.Value); err != nil {
			t.Fatalf("adding %v: %s", pt, err)
		}
	}
	return c
}

// values returns the (time, value) pairs of a curve, without handles.
func values(c *AxisCurve) [][2]float64 {
	out := make([][2]float64, 0, c.Len())
	for _, pt := range c.points {
		out = append(out, [2]float64{pt.Time, pt.Value})
	}
	return out
}
