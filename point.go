package trajectory

import "fmt"

// Handle identifies a control point within its curve. Unlike positional
// indices, handles are stable: moving a point, or undoing and redoing edits,
// never changes its handle. Handles are never reused within a curve.
//
// The zero Handle never identifies a point.
type Handle uint32

// ControlPoint is a user-placed anchor that the curve passes through
// exactly. Time is in milliseconds and Value in radians.
type ControlPoint struct {
	Handle Handle
	Time   float64
	Value  float64
}

// Pt returns an anonymous control point at (time, value). Its handle is
// assigned when it is added to a curve.
func Pt(time, value float64) ControlPoint {
	return ControlPoint{Time: time, Value: value}
}

func (pt ControlPoint) String() string {
	return fmt.Sprintf("(%g ms, %g rad)", pt.Time, pt.Value)
}
