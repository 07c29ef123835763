// Package trajectory implements the model behind an editor for 3-axis robot
// joint trajectories. Users place control points on one graph per axis, the
// package interpolates a smooth curve through them, and the result is
// exported as a CSV table of joint angles sampled on a fixed time grid.
//
// The package contains no user interface. It provides the state that an
// editor's widgets manipulate and render, and guarantees that what is shown
// on screen and what is exported agree exactly.
//
// # Axes and curves
//
// A robot has three joints, [J1] (yaw), [J2] (roll) and [J3] (pitch). Each
// has an [AxisCurve]: an ordered set of [ControlPoint] values, each a time in
// milliseconds and an angle in radians, and an [AngleLimit] that every
// control point is clamped to.
//
// Curves interpolate their control points with a uniform Catmull-Rom
// spline. The spline passes through every control point exactly, holds the
// first and last values beyond the ends, and constructs the tangents at the
// ends from mirrored virtual neighbours. Like every interpolating cubic, it
// may overshoot between control points; [AxisCurve.Bounds] reports how far
// and [AxisCurve.Exceeds] whether the overshoot leaves the axis's limit.
//
// [AxisCurve.Evaluate] is a pure function of a curve's control points. Both
// the preview and [Export] call it, which is what keeps them consistent.
//
// Each span between two control points can also be obtained as an exact
// cubic Bézier via [AxisCurve.Segments], which is how [SVG] renders a curve.
//
// # Handles
//
// Positional indices of control points change whenever a point is inserted,
// deleted, or moved past a neighbour. Every point therefore also carries a
// [Handle] that stays the same for its whole life, including across undo and
// redo. Code that needs to refer to a point across edits, such as a
// selection, should hold on to its handle and resolve it with
// [AxisCurve.IndexOf].
//
// # Editing
//
// Edits are expressed as a closed set of commands, [AddPoint],
// [DeletePoint] and [MovePoint], that a [Session] executes through a single
// entry point, [Session.Dispatch]. Executed commands are recorded in a
// [History] shared by all three axes, so that undo always reverts the most
// recent edit, whichever graph it was made in. Commands capture the exact
// state they replace, so undoing and redoing reproduces curves bit for bit.
//
// # Export and projects
//
// [Export] samples all three axes on an inclusive time grid and returns the
// result as a lazy iter.Seq[Sample], and [WriteCSV] writes samples in the
// trajectory CSV format. [Serialize] and [Deserialize] convert a session to
// and from a [Document], which [Marshal] and [Unmarshal] encode as YAML or
// JSON. Loading a document either succeeds completely or fails without a
// session.
//
// # Configuration
//
// [LoadConfig] reads angle limits and editor defaults from YAML, failing
// with [ErrConfig] on malformed limits. Sessions are configured with
// functional options such as [WithConfig] and [WithLogger].
//
// # Errors
//
// All errors can be classified with [errors.Is] against the sentinel errors
// of this package, such as [ErrInvalidTime] and [ErrMalformedDocument]. A
// failing operation never leaves partial changes behind.
package trajectory
