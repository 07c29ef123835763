package trajectory

// Evaluator is implemented by anything that can report the angle of every
// axis at a time, such as [Axes] and [Session].
type Evaluator interface {
	Evaluate(a Axis, t float64) float64
}

// Curves is implemented by collections of axis curves that edit commands
// can be applied to.
type Curves interface {
	Curve(a Axis) *AxisCurve
}

// Pose is the angle of every axis at one instant, indexed by [Axis].
type Pose [NumAxes]float64

// Axes holds one curve per axis.
type Axes [NumAxes]*AxisCurve

var (
	_ Evaluator = Axes{}
	_ Curves    = Axes{}
)

// NewAxes returns empty curves with the given limits.
func NewAxes(ls Limits) Axes {
	var as Axes
	for _, a := range AllAxes {
		as[a] = NewAxisCurve(a, ls[a])
	}
	return as
}

// Curve implements [Curves].
func (as Axes) Curve(a Axis) *AxisCurve {
	if !a.Valid() {
		return nil
	}
	return as[a]
}

// Evaluate implements [Evaluator].
func (as Axes) Evaluate(a Axis, t float64) float64 {
	return as[a].Evaluate(t)
}

// Pose evaluates all axes at time t.
func (as Axes) Pose(t float64) Pose {
	return PoseAt(as, t)
}

// Limits returns the angle limits of the curves.
func (as Axes) Limits() Limits {
	var ls Limits
	for _, a := range AllAxes {
		ls[a] = as[a].Limit()
	}
	return ls
}

// Clone returns a deep copy of the curves.
func (as Axes) Clone() Axes {
	var out Axes
	for i, c := range as {
		out[i] = c.Clone()
	}
	return out
}

// PoseAt evaluates every axis of e at time t.
func PoseAt(e Evaluator, t float64) Pose {
	var p Pose
	for _, a := range AllAxes {
		p[a] = e.Evaluate(a, t)
	}
	return p
}
