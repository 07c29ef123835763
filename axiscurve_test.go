package trajectory

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluatePassesThroughPoints(t *testing.T) {
	curves := [][]ControlPoint{
		{Pt(0, 0), Pt(1000, 1)},
		{Pt(0, 0), Pt(1000, 0.5), Pt(2000, -0.3)},
		{Pt(0, -1), Pt(100, 1), Pt(350, -0.25), Pt(351, 0.75), Pt(4000, 1.5)},
		{Pt(10, 0.1), Pt(20, 0.2), Pt(30, 0.3), Pt(40, 0.4), Pt(50, 0.5), Pt(60, 0.6)},
	}
	for _, pts := range curves {
		c := curveOf(t, J1, pts...)
		for _, pt := range c.Points() {
			if got := c.Evaluate(pt.Time); got != pt.Value {
				t.Errorf("%v: got %g at %g ms, want %g", pts, got, pt.Time, pt.Value)
			}
		}
	}
}

func TestEvaluateSinglePoint(t *testing.T) {
	c := curveOf(t, J2, Pt(700, 0.4))
	for _, ts := range []float64{-1e9, -1, 0, 700, 701, 1e12, math.Inf(1)} {
		if got := c.Evaluate(ts); got != 0.4 {
			t.Errorf("got %g at %g ms, want 0.4", got, ts)
		}
	}
}

func TestEvaluateEmpty(t *testing.T) {
	c := NewAxisCurve(J3, DefaultLimit)
	for _, ts := range []float64{-5, 0, 1234} {
		if got := c.Evaluate(ts); got != DefaultValue {
			t.Errorf("got %g at %g ms, want %g", got, ts, DefaultValue)
		}
	}
}

func TestEvaluateReference(t *testing.T) {
	c := NewAxisCurve(J1, AngleLimit{Min: -1.57, Max: 1.57})
	for _, pt := range []ControlPoint{Pt(0, 0.0), Pt(1000, 0.5), Pt(2000, -0.3)} {
		_, err := c.AddPoint(pt.Time, pt.Value)
		require.NoError(t, err)
	}

	// reference values of the uniform Catmull-Rom spline with mirrored ends
	tests := []struct {
		t, want float64
	}{
		{250, 0.15546875},
		{500, 0.33125},
		{750, 0.46640625},
		{1500, 0.18125},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, c.Evaluate(tt.t), 1e-12, "at %g ms", tt.t)
	}
	v := c.Evaluate(500)
	assert.True(t, v > 0 && v < 0.5, "evaluate(500) = %g should lie between its neighbours", v)

	assert.Equal(t, 0.0, c.Evaluate(0))
	assert.Equal(t, -0.3, c.Evaluate(2000))
	assert.Equal(t, -0.3, c.Evaluate(3000))
	assert.Equal(t, 0.0, c.Evaluate(-100))
}

func TestEvaluateTwoPointsIsLinear(t *testing.T) {
	// mirrored virtual neighbours make a two-point curve a straight line
	c := curveOf(t, J1, Pt(0, 0), Pt(1000, 1))
	for _, ts := range []float64{100, 250, 500, 900} {
		assert.InDelta(t, ts/1000, c.Evaluate(ts), 1e-12)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	c := curveOf(t, J1, Pt(0, 0.2), Pt(300, -0.7), Pt(1300, 1.1), Pt(1400, 0))
	before := c.Points()
	for ts := -100.0; ts < 1500; ts += 7.5 {
		if a, b := c.Evaluate(ts), c.Evaluate(ts); a != b {
			t.Fatalf("evaluating %g twice gave %g and %g", ts, a, b)
		}
	}
	diff(t, before, c.Points())
}

func TestAddPointClamps(t *testing.T) {
	c := NewAxisCurve(J1, AngleLimit{Min: -1.57, Max: 1.57})
	i, err := c.AddPoint(500, 10.0)
	require.NoError(t, err)
	pt, err := c.Point(i)
	require.NoError(t, err)
	assert.Equal(t, 1.57, pt.Value)

	_, err = c.AddPoint(600, math.Inf(-1))
	require.NoError(t, err)
	assert.Equal(t, -1.57, c.Evaluate(600))
}

func TestAddPointKeepsOrder(t *testing.T) {
	c := NewAxisCurve(J1, DefaultLimit)
	for _, ts := range []float64{500, 100, 900, 300, 700} {
		_, err := c.AddPoint(ts, ts/1000)
		require.NoError(t, err)
	}
	diff(t, [][2]float64{{100, 0.1}, {300, 0.3}, {500, 0.5}, {700, 0.7}, {900, 0.9}}, values(c))

	i, err := c.AddPoint(600, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, i)
}

func TestAddPointReplacesAtTime(t *testing.T) {
	c := curveOf(t, J1, Pt(0, 0), Pt(1000, 0.5))
	h := c.points[1].Handle

	i, err := c.AddPoint(1000, -0.5)
	require.NoError(t, err)
	assert.Equal(t, 1, i)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, h, c.points[1].Handle, "replacing keeps the handle")

	// within MinTimeDelta counts as the same time; the existing time is kept
	i, err = c.AddPoint(1000.5, 0.25)
	require.NoError(t, err)
	assert.Equal(t, 1, i)
	diff(t, [][2]float64{{0, 0}, {1000, 0.25}}, values(c))
}

func TestAddPointInvalid(t *testing.T) {
	c := curveOf(t, J1, Pt(0, 0))
	for _, ts := range []float64{-1, -1e-9, math.NaN(), math.Inf(1)} {
		_, err := c.AddPoint(ts, 0)
		assert.ErrorIs(t, err, ErrInvalidTime, "time %g", ts)
	}
	_, err := c.AddPoint(10, math.NaN())
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Equal(t, 1, c.Len(), "failed adds must not change the curve")
}

func TestDeletePoint(t *testing.T) {
	c := curveOf(t, J1, Pt(0, 0.3), Pt(1000, 0.5))
	require.NoError(t, c.DeletePoint(0))
	require.NoError(t, c.DeletePoint(0))
	assert.Equal(t, 0, c.Len())
	for _, ts := range []float64{-10, 0, 500, 5000} {
		assert.Equal(t, DefaultValue, c.Evaluate(ts))
	}

	err := c.DeletePoint(0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestDeletePointOutOfRange(t *testing.T) {
	c := curveOf(t, J1, Pt(0, 0.3), Pt(1000, 0.5))
	for _, i := range []int{-1, 2, 100} {
		assert.ErrorIs(t, c.DeletePoint(i), ErrIndexOutOfRange)
	}
	assert.Equal(t, 2, c.Len())
}

func TestMovePoint(t *testing.T) {
	c := curveOf(t, J1, Pt(0, 0), Pt(1000, 0.5), Pt(2000, -0.3))
	h := c.points[0].Handle

	// crossing a neighbour changes the index
	i, err := c.MovePoint(0, 1500, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, i)
	diff(t, [][2]float64{{1000, 0.5}, {1500, math.Pi / 2}, {2000, -0.3}}, values(c))

	j, ok := c.IndexOf(h)
	assert.True(t, ok)
	assert.Equal(t, i, j, "handle follows the point")

	// moving in place
	i, err = c.MovePoint(1, 1500, 0.1)
	require.NoError(t, err)
	assert.Equal(t, 1, i)
}

func TestMovePointInvalid(t *testing.T) {
	c := curveOf(t, J1, Pt(0, 0), Pt(1000, 0.5))
	before := c.Points()

	_, err := c.MovePoint(1, -5, 0)
	assert.ErrorIs(t, err, ErrInvalidTime)

	_, err = c.MovePoint(1, 0.5, 0)
	assert.ErrorIs(t, err, ErrTimeCollision)
	assert.ErrorIs(t, err, ErrInvalidTime)

	_, err = c.MovePoint(2, 10, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	diff(t, before, c.Points())
}

func TestClampInvariant(t *testing.T) {
	l := AngleLimit{Min: -0.5, Max: 0.75}
	c := NewAxisCurve(J2, l)
	raw := []float64{-100, -0.5, -0.49, 0, 0.74, 0.75, 0.76, 100, math.Inf(1)}
	for i, v := range raw {
		_, err := c.AddPoint(float64(i*100), v)
		require.NoError(t, err)
	}
	for i := range c.Len() {
		_, err := c.MovePoint(i, c.points[i].Time, raw[len(raw)-1-i]*3)
		require.NoError(t, err)
	}
	for _, pt := range c.Points() {
		assert.True(t, l.Contains(pt.Value), "stored value %g outside %v", pt.Value, l)
	}
}

func TestHandlesAreUnique(t *testing.T) {
	c := curveOf(t, J1, Pt(0, 0), Pt(100, 0), Pt(200, 0))
	require.NoError(t, c.DeletePoint(2))
	_, err := c.AddPoint(300, 0)
	require.NoError(t, err)

	seen := map[Handle]bool{}
	for _, pt := range c.points {
		assert.NotZero(t, pt.Handle)
		assert.False(t, seen[pt.Handle], "handle %d reused", pt.Handle)
		seen[pt.Handle] = true
	}
	assert.Equal(t, Handle(4), c.points[2].Handle)

	_, ok := c.IndexOf(0)
	assert.False(t, ok)
}

func TestBounds(t *testing.T) {
	c := curveOf(t, J1, Pt(0, 0), Pt(1000, 1), Pt(2000, 1), Pt(3000, 0))
	lo, hi := c.Bounds()
	assert.Equal(t, 0.0, lo)
	assert.InDelta(t, 1.125, hi, 1e-12)
	assert.False(t, c.Exceeds())

	tight := NewAxisCurve(J1, AngleLimit{Min: -1.1, Max: 1.1})
	for _, pt := range c.Points() {
		_, err := tight.AddPoint(pt.Time, pt.Value)
		require.NoError(t, err)
	}
	assert.True(t, tight.Exceeds(), "spline overshoots 1.1 between the two peaks")

	lo, hi = NewAxisCurve(J1, DefaultLimit).Bounds()
	assert.Equal(t, [2]float64{DefaultValue, DefaultValue}, [2]float64{lo, hi})
}

func TestSegments(t *testing.T) {
	c := curveOf(t, J1, Pt(0, 0), Pt(1000, 0.5), Pt(2000, -0.3))
	var n int
	for seg := range c.Segments() {
		for _, s := range []float64{0.1, 0.5, 0.9} {
			ts := seg.Time(s)
			assert.InDelta(t, c.Evaluate(ts), seg.At(ts), 1e-12)
		}
		n++
	}
	assert.Equal(t, 2, n)

	single := curveOf(t, J1, Pt(0, 0))
	for range single.Segments() {
		t.Error("a single point has no segments")
	}
}

func TestMovePointOntoNeighbour(t *testing.T) {
	c := curveOf(t, J1, Pt(0, 0), Pt(1.5, 0.5))
	for _, m := range [][2]float64{{1, 0.6}, {0, 0.9}, {1, 0}} {
		_, err := c.MovePoint(int(m[0]), m[1], 0)
		assert.ErrorIs(t, err, ErrTimeCollision, "moving #%v to %v", m[0], m[1])
	}
	diff(t, [][2]float64{{0, 0}, {1.5, 0.5}}, values(c))

	i, err := c.MovePoint(1, 1.2, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 1, i)
}

func TestNegativeZeroTime(t *testing.T) {
	c := NewAxisCurve(J1, DefaultLimit)
	negZero := math.Copysign(0, -1)
	_, err := c.AddPoint(negZero, 0.1)
	require.NoError(t, err)
	_, err = c.AddPoint(100, 0.2)
	require.NoError(t, err)
	_, err = c.MovePoint(1, negZero, 0.2)
	assert.ErrorIs(t, err, ErrTimeCollision)
	_, err = c.MovePoint(0, negZero, 0.3)
	require.NoError(t, err)
	assert.False(t, math.Signbit(c.points[0].Time))
}
