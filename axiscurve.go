package trajectory

import (
	"fmt"
	"iter"
	"math"
	"slices"
	"sort"
)

// MinTimeDelta is the smallest distance, in milliseconds, between the times
// of two control points of the same curve. Times closer than this are
// treated as the same time.
//
// Exported trajectories are sampled on a whole-millisecond grid, so points
// closer than a millisecond could never be told apart in the output, while
// allowing them would let the spline's spans shrink towards zero length.
const MinTimeDelta = 1.0

// DefaultValue is the value of a curve without any control points.
const DefaultValue = 0.0

// AxisCurve is the trajectory of a single axis: an ordered set of control
// points and the interpolating Catmull-Rom spline through them.
//
// Control points are kept sorted by ascending time, no two points share a
// time, and every value lies within the curve's angle limit. Values outside
// the limit are clamped when they are written.
//
// The methods that mutate the curve are not safe for concurrent use. Methods
// that only read, such as [AxisCurve.Evaluate], never modify the curve and
// may be called concurrently with each other.
type AxisCurve struct {
	axis   Axis
	limit  AngleLimit
	points []ControlPoint
	// last is the most recently assigned handle.
	last Handle
}

// NewAxisCurve returns an empty curve for axis a.
func NewAxisCurve(a Axis, limit AngleLimit) *AxisCurve {
	return &AxisCurve{axis: a, limit: limit}
}

// Axis returns the axis the curve belongs to.
func (c *AxisCurve) Axis() Axis { return c.axis }

// Limit returns the curve's angle limit.
func (c *AxisCurve) Limit() AngleLimit { return c.limit }

// Len returns the number of control points.
func (c *AxisCurve) Len() int { return len(c.points) }

// Points returns a copy of the control points, in order.
func (c *AxisCurve) Points() []ControlPoint {
	return slices.Clone(c.points)
}

// Point returns the control point at index i.
func (c *AxisCurve) Point(i int) (ControlPoint, error) {
	if err := c.checkIndex(i); err != nil {
		return ControlPoint{}, err
	}
	return c.points[i], nil
}

// IndexOf returns the current index of the point identified by h.
func (c *AxisCurve) IndexOf(h Handle) (int, bool) {
	if h == 0 {
		return 0, false
	}
	for i, pt := range c.points {
		if pt.Handle == h {
			return i, true
		}
	}
	return 0, false
}

// AddPoint inserts a control point. If a point already exists at time (see
// [MinTimeDelta]), its value is replaced instead and its time and handle are
// kept. The value is clamped to the curve's limit. AddPoint returns the
// index of the inserted or updated point.
func (c *AxisCurve) AddPoint(time, value float64) (int, error) {
	idx, _, err := c.add(time, value, 0)
	return idx, err
}

// DeletePoint removes the control point at index i. Removing the last
// remaining point is allowed.
func (c *AxisCurve) DeletePoint(i int) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	c.remove(i)
	return nil
}

// MovePoint sets the time and value of the control point at index i. The
// value is clamped to the curve's limit.
//
// Moving a point past one of its neighbours changes its position in the
// curve. MovePoint returns the point's new index; callers that need to
// refer to the point across mutations should use its [Handle].
func (c *AxisCurve) MovePoint(i int, time, value float64) (int, error) {
	if err := c.checkIndex(i); err != nil {
		return 0, err
	}
	if err := checkPoint(time, value); err != nil {
		return 0, err
	}
	if _, ok := c.near(time, i); ok {
		return 0, fmt.Errorf("%s: moving point %d to %g ms: %w", c.axis, i, time, ErrTimeCollision)
	}
	return c.move(i, time, value), nil
}

// Evaluate returns the interpolated angle at time t.
//
// A curve without points evaluates to [DefaultValue], and a curve with a
// single point to that point's value. Otherwise the curve is a uniform
// Catmull-Rom spline that passes exactly through every control point. Before
// the first and after the last point, the curve holds the boundary point's
// value. Between points, the spline may overshoot the values of its control
// points.
//
// The tangents at the first and last points are constructed from virtual
// neighbours obtained by mirroring the adjacent point about the boundary
// point.
func (c *AxisCurve) Evaluate(t float64) float64 {
	n := len(c.points)
	switch {
	case n == 0:
		return DefaultValue
	case n == 1:
		return c.points[0].Value
	case math.IsNaN(t):
		return math.NaN()
	case t <= c.points[0].Time:
		return c.points[0].Value
	case t >= c.points[n-1].Time:
		return c.points[n-1].Value
	}

	// i is the last point with Time <= t; i+1 exists because t is before the
	// last point.
	i := sort.Search(n, func(i int) bool { return c.points[i].Time > t }) - 1
	if c.points[i].Time == t {
		return c.points[i].Value
	}
	p0, p1, p2, p3 := c.neighbours(i)
	t0, t1 := c.points[i].Time, c.points[i+1].Time
	return catmullRom(p0, p1, p2, p3, (t-t0)/(t1-t0))
}

// Segments returns an iterator over the spans of the curve, in order. A
// curve with fewer than two points has no spans. The curve must not be
// modified while iterating.
func (c *AxisCurve) Segments() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		for i := 0; i+1 < len(c.points); i++ {
			if !yield(c.segment(i)) {
				return
			}
		}
	}
}

// Bounds returns the smallest and largest value the interpolated curve takes
// between its first and last control point. Because the spline may
// overshoot, these can lie outside the range of the control point values.
func (c *AxisCurve) Bounds() (lo, hi float64) {
	switch len(c.points) {
	case 0:
		return DefaultValue, DefaultValue
	case 1:
		v := c.points[0].Value
		return v, v
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for seg := range c.Segments() {
		slo, shi := seg.Bounds()
		lo, hi = min(lo, slo), max(hi, shi)
	}
	return lo, hi
}

// Exceeds reports whether the interpolated curve leaves the curve's angle
// limit anywhere. Control points never do, but the spline between them can.
func (c *AxisCurve) Exceeds() bool {
	lo, hi := c.Bounds()
	return lo < c.limit.Min || hi > c.limit.Max
}

// Clone returns a deep copy of the curve.
func (c *AxisCurve) Clone() *AxisCurve {
	cc := *c
	cc.points = slices.Clone(c.points)
	return &cc
}

func (c *AxisCurve) segment(i int) Segment {
	p0, p1, p2, p3 := c.neighbours(i)
	return catmullRomSegment(c.points[i].Time, c.points[i+1].Time, p0, p1, p2, p3)
}

// neighbours returns the four values that define the span between points i
// and i+1, mirroring virtual neighbours at the boundaries.
func (c *AxisCurve) neighbours(i int) (p0, p1, p2, p3 float64) {
	n := len(c.points)
	p1, p2 = c.points[i].Value, c.points[i+1].Value
	if i > 0 {
		p0 = c.points[i-1].Value
	} else {
		p0 = 2*p1 - p2
	}
	if i+2 < n {
		p3 = c.points[i+2].Value
	} else {
		p3 = 2*p2 - p1
	}
	return p0, p1, p2, p3
}

func checkPoint(time, value float64) error {
	if math.IsNaN(time) || math.IsInf(time, 0) || time < 0 {
		return fmt.Errorf("%w: %g ms", ErrInvalidTime, time)
	}
	if math.IsNaN(value) {
		return ErrInvalidValue
	}
	return nil
}

// positive turns -0 into 0, which checkPoint lets through.
func positive(t float64) float64 {
	if t == 0 {
		return 0
	}
	return t
}

func (c *AxisCurve) checkIndex(i int) error {
	if i < 0 || i >= len(c.points) {
		return fmt.Errorf("%s: index %d with %d points: %w", c.axis, i, len(c.points), ErrIndexOutOfRange)
	}
	return nil
}

// search returns the index at which a point at time t would be inserted.
func (c *AxisCurve) search(t float64) int {
	return sort.Search(len(c.points), func(i int) bool { return c.points[i].Time >= t })
}

// near returns the index of a point other than skip whose time is within
// MinTimeDelta of t, if any. Pass -1 to consider every point.
//
// Only the points on either side of t can be that close, as the points
// themselves are at least MinTimeDelta apart.
func (c *AxisCurve) near(t float64, skip int) (int, bool) {
	i := c.search(t)
	if i < len(c.points) && i != skip && c.points[i].Time-t < MinTimeDelta {
		return i, true
	}
	if i > 0 && i-1 != skip && t-c.points[i-1].Time < MinTimeDelta {
		return i - 1, true
	}
	return 0, false
}

// add inserts a point or replaces the value of the point at its time. If h
// is zero, a new handle is assigned to inserted points. It returns the
// point's index and, if an existing point was updated, its prior state.
func (c *AxisCurve) add(time, value float64, h Handle) (int, *ControlPoint, error) {
	if err := checkPoint(time, value); err != nil {
		return 0, nil, err
	}
	time, value = positive(time), c.limit.Clamp(value)
	if i, ok := c.near(time, -1); ok {
		prev := c.points[i]
		c.points[i].Value = value
		return i, &prev, nil
	}
	if h == 0 {
		h = c.nextHandle()
	}
	return c.insert(ControlPoint{Handle: h, Time: time, Value: value}), nil, nil
}

func (c *AxisCurve) nextHandle() Handle {
	c.last++
	return c.last
}

// insert places pt at its sorted position without any validation and
// returns its index.
func (c *AxisCurve) insert(pt ControlPoint) int {
	i := c.search(pt.Time)
	c.points = slices.Insert(c.points, i, pt)
	if pt.Handle > c.last {
		c.last = pt.Handle
	}
	return i
}

func (c *AxisCurve) remove(i int) ControlPoint {
	pt := c.points[i]
	c.points = slices.Delete(c.points, i, i+1)
	return pt
}

// move sets the time and clamped value of point i, keeping its handle, and
// returns its new index.
func (c *AxisCurve) move(i int, time, value float64) int {
	pt := c.remove(i)
	pt.Time = positive(time)
	pt.Value = c.limit.Clamp(value)
	return c.insert(pt)
}
