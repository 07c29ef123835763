package trajectory

import (
	"fmt"
	"iter"
	"math"

	"github.com/edaniels/golog"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Option configures a [Session] when it is created.
type Option func(*Session)

// WithConfig applies a configuration: angle limits, sampling step, snap
// grid, timeline duration and playback speed.
func WithConfig(cfg Config) Option {
	return func(s *Session) {
		s.limits = cfg.Limits
		s.step = cfg.StepMs
		s.snap = cfg.SnapMs
		s.playback = newPlayback(cfg.DurationMs, cfg.Speed)
	}
}

// WithLimits sets the angle limits of the axes.
func WithLimits(ls Limits) Option {
	return func(s *Session) { s.limits = ls }
}

// WithLogger sets the logger that edits are reported to.
func WithLogger(l golog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithSnap snaps the times of added and moved points to multiples of ms.
// Zero disables snapping.
func WithSnap(ms float64) Option {
	return func(s *Session) { s.snap = ms }
}

// WithDuration sets the length of the timeline.
func WithDuration(ms float64) Option {
	return func(s *Session) { s.playback.duration = ms }
}

// WithName sets the project name.
func WithName(name string) Option {
	return func(s *Session) { s.name = name }
}

// WithID sets the project identifier instead of generating a new one.
func WithID(id uuid.UUID) Option {
	return func(s *Session) { s.id = id }
}

// Session is an editing session over the three axis curves of a project.
//
// All edits enter through [Session.Dispatch] or one of the convenience
// methods built on it, which records them in a single history shared by all
// axes. The session also tracks the selected point and the playback clock
// that the preview reads the pose from.
//
// A Session is not safe for concurrent use. Edits must be serialized by the
// caller; a renderer may call [Session.Evaluate] and [Session.Pose] while no
// edit is in progress.
type Session struct {
	id       uuid.UUID
	name     string
	limits   Limits
	axes     Axes
	history  History
	playback Playback
	sel      selection
	snap     float64
	step     int
	logger   golog.Logger
}

type selection struct {
	axis   Axis
	handle Handle
}

// NewSession returns a session with empty curves. It fails with an error
// matching [ErrConfig] if the configured limits, snap grid or duration are
// invalid.
func NewSession(opts ...Option) (*Session, error) {
	s := &Session{
		limits:   DefaultLimits(),
		playback: newPlayback(DefaultDurationMs, DefaultSpeed),
		step:     DefaultStepMs,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = zap.NewNop().Sugar()
	}
	if s.id == uuid.Nil {
		s.id = uuid.New()
	}
	if err := s.limits.Validate(); err != nil {
		return nil, err
	}
	if s.snap < 0 || math.IsNaN(s.snap) || math.IsInf(s.snap, 0) {
		return nil, configf("snap grid %g ms must be a non-negative number", s.snap)
	}
	if d := s.playback.duration; d <= 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return nil, configf("duration %g ms must be positive", d)
	}
	if s.step <= 0 {
		return nil, configf("sampling step %d ms must be positive", s.step)
	}
	s.axes = NewAxes(s.limits)
	return s, nil
}

// NewProject returns a session like [NewSession] in which every axis starts
// with two points at angle 0, one at the start and one at the end of the
// timeline.
func NewProject(opts ...Option) (*Session, error) {
	s, err := NewSession(opts...)
	if err != nil {
		return nil, err
	}
	for _, c := range s.axes {
		for _, t := range []float64{0, s.playback.duration} {
			if _, _, err := c.add(t, 0, 0); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}

// ID returns the project identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Name returns the project name.
func (s *Session) Name() string { return s.name }

// SetName sets the project name.
func (s *Session) SetName(name string) { s.name = name }

// Limits returns the angle limits of all axes.
func (s *Session) Limits() Limits { return s.limits }

// Limit returns the angle limit of axis a, or the zero limit for an
// invalid axis.
func (s *Session) Limit(a Axis) AngleLimit {
	if !a.Valid() {
		return AngleLimit{}
	}
	return s.limits[a]
}

// StepMs returns the default sampling step of exports.
func (s *Session) StepMs() int { return s.step }

// The read methods below treat an invalid axis like an axis without
// points.

// Points returns a copy of the control points of axis a.
func (s *Session) Points(a Axis) []ControlPoint {
	return s.curve(a).Points()
}

// Segments returns the spans of the curve of axis a, for rendering.
func (s *Session) Segments(a Axis) iter.Seq[Segment] {
	return s.curve(a).Segments()
}

// Bounds returns the range of values the curve of axis a takes, like
// [AxisCurve.Bounds].
func (s *Session) Bounds(a Axis) (lo, hi float64) {
	return s.curve(a).Bounds()
}

// Exceeds reports whether the interpolated curve of axis a leaves the
// axis's angle limit between control points.
func (s *Session) Exceeds(a Axis) bool {
	return s.curve(a).Exceeds()
}

// SVG returns the SVG path data of the curve of axis a.
func (s *Session) SVG(a Axis, opts SVGOptions) string {
	return SVG(s.curve(a), opts)
}

// Evaluate implements [Evaluator].
func (s *Session) Evaluate(a Axis, t float64) float64 {
	return s.curve(a).Evaluate(t)
}

func (s *Session) curve(a Axis) *AxisCurve {
	if c := s.axes.Curve(a); c != nil {
		return c
	}
	return &AxisCurve{axis: a}
}

// Pose returns the angles of all axes at time t.
func (s *Session) Pose(t float64) Pose {
	return s.axes.Pose(t)
}

// PoseAtCursor returns the angles of all axes at the playback cursor.
func (s *Session) PoseAtCursor() Pose {
	return s.axes.Pose(s.playback.Cursor())
}

// Playback returns the session's playback clock.
func (s *Session) Playback() *Playback { return &s.playback }

// Dispatch executes cmd and records it in the history. It returns the
// resolved command. A failing command leaves every curve unchanged.
func (s *Session) Dispatch(cmd Command) (Command, error) {
	rec, err := s.history.Execute(s.axes, cmd)
	if err != nil {
		s.logger.Debugw("edit rejected", "command", cmd.String(), "error", err)
		return nil, err
	}
	s.logger.Debugw("edit", "command", rec.String())
	s.fixSelection()
	return rec, nil
}

// AddPoint adds a point to axis a, or replaces the value of the point at
// that time, and selects it. The time is snapped to the session's grid.
func (s *Session) AddPoint(a Axis, t, v float64) (Handle, error) {
	rec, err := s.Dispatch(AddPoint{Axis: a, Time: s.snapTime(t), Value: v})
	if err != nil {
		return 0, err
	}
	h := rec.(AddPoint).Handle()
	s.sel = selection{axis: a, handle: h}
	return h, nil
}

// DeletePoint deletes the point at index i of axis a.
func (s *Session) DeletePoint(a Axis, i int) error {
	_, err := s.Dispatch(DeletePoint{Axis: a, Index: i})
	return err
}

// MovePoint moves the point at index i of axis a and returns its new index.
// The time is snapped to the session's grid.
func (s *Session) MovePoint(a Axis, i int, t, v float64) (int, error) {
	rec, err := s.Dispatch(MovePoint{Axis: a, Index: i, Time: s.snapTime(t), Value: v})
	if err != nil {
		return 0, err
	}
	idx, _ := s.axes[a].IndexOf(rec.(MovePoint).Handle())
	return idx, nil
}

// DeleteSelected deletes the selected point. It does nothing if no point is
// selected.
func (s *Session) DeleteSelected() error {
	a, i, ok := s.Selection()
	if !ok {
		return nil
	}
	return s.DeletePoint(a, i)
}

// Undo reverts the most recent edit, on whichever axis it was made. It does
// nothing if there is nothing to undo.
func (s *Session) Undo() error {
	cmd, err := s.history.Undo(s.axes)
	if err != nil {
		return err
	}
	if cmd != nil {
		s.logger.Debugw("undo", "command", cmd.String())
		s.fixSelection()
	}
	return nil
}

// Redo reapplies the most recently undone edit. It does nothing if there is
// nothing to redo.
func (s *Session) Redo() error {
	cmd, err := s.history.Redo(s.axes)
	if err != nil {
		return err
	}
	if cmd != nil {
		s.logger.Debugw("redo", "command", cmd.String())
		s.fixSelection()
	}
	return nil
}

// CanUndo reports whether there is an edit to undo.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether there is an edit to redo.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// Select selects the point at index i of axis a.
func (s *Session) Select(a Axis, i int) error {
	if err := checkAxis(a); err != nil {
		return err
	}
	pt, err := s.axes[a].Point(i)
	if err != nil {
		return err
	}
	s.sel = selection{axis: a, handle: pt.Handle}
	return nil
}

// Selection returns the axis and current index of the selected point. The
// index is resolved anew on every call, as edits may move the point.
func (s *Session) Selection() (Axis, int, bool) {
	if s.sel.handle == 0 {
		return 0, 0, false
	}
	i, ok := s.axes[s.sel.axis].IndexOf(s.sel.handle)
	return s.sel.axis, i, ok
}

// ClearSelection deselects the selected point.
func (s *Session) ClearSelection() { s.sel = selection{} }

// Export samples the trajectory like [Export].
func (s *Session) Export(startMs, endMs, stepMs int) (iter.Seq[Sample], error) {
	return Export(s, startMs, endMs, stepMs)
}

// ExportAll samples the whole timeline with the session's default step.
func (s *Session) ExportAll() (iter.Seq[Sample], error) {
	return Export(s, 0, int(math.Round(s.playback.duration)), s.step)
}

// fixSelection drops the selection if its point no longer exists.
func (s *Session) fixSelection() {
	if _, _, ok := s.Selection(); !ok {
		s.sel = selection{}
	}
}

// snapTime rounds t to the snap grid. Invalid times, including negative
// ones that would round to 0, are returned unchanged for the curve to
// reject.
func (s *Session) snapTime(t float64) float64 {
	if s.snap <= 0 || t < 0 || math.Signbit(t) || math.IsNaN(t) || math.IsInf(t, 0) {
		return t
	}
	return math.Round(t/s.snap) * s.snap
}

func (s *Session) String() string {
	return fmt.Sprintf("Session(%s, %q)", s.id, s.name)
}
