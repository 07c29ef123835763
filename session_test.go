package trajectory

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewProject(t *testing.T) {
	s, err := NewProject()
	require.NoError(t, err)
	for _, a := range AllAxes {
		diff(t, [][2]float64{{0, 0}, {DefaultDurationMs, 0}}, values(s.axes[a]))
	}
	assert.False(t, s.CanUndo(), "initial points are not edits")
	assert.NotEqual(t, uuid.Nil, s.ID())
}

func TestNewSessionInvalid(t *testing.T) {
	tests := map[string][]Option{
		"limits":   {WithLimits(Limits{{Min: 1, Max: 0}, DefaultLimit, DefaultLimit})},
		"snap":     {WithSnap(-1)},
		"duration": {WithDuration(0)},
		"step":     {WithConfig(Config{Limits: DefaultLimits(), DurationMs: 100, Speed: 1})},
	}
	for name, opts := range tests {
		s, err := NewSession(opts...)
		assert.ErrorIs(t, err, ErrConfig, name)
		assert.Nil(t, s, name)
	}
}

func TestSessionConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Limits[J2] = AngleLimit{Min: -0.1, Max: 0.1}
	cfg.SnapMs = 50
	cfg.DurationMs = 2000
	cfg.Speed = 2
	cfg.StepMs = 100

	s, err := NewSession(WithConfig(cfg), WithName("cfg"))
	require.NoError(t, err)
	assert.Equal(t, "cfg", s.Name())
	assert.Equal(t, cfg.Limits, s.Limits())
	assert.Equal(t, 100, s.StepMs())
	assert.Equal(t, 2000.0, s.Playback().Duration())
	assert.Equal(t, 2.0, s.Playback().Speed())

	_, err = s.AddPoint(J2, 1024, 1)
	require.NoError(t, err)
	diff(t, []ControlPoint{{Handle: 1, Time: 1000, Value: 0.1}}, s.Points(J2))
}

func TestSessionSnap(t *testing.T) {
	s, err := NewSession(WithSnap(100))
	require.NoError(t, err)
	_, err = s.AddPoint(J1, 1249, 0.2)
	require.NoError(t, err)
	_, err = s.AddPoint(J1, 1151, 0.3)
	require.NoError(t, err)
	diff(t, [][2]float64{{1200, 0.3}}, values(s.axes[J1]))

	i, err := s.MovePoint(J1, 0, 2960, 0.3)
	require.NoError(t, err)
	assert.Equal(t, 0, i)
	assert.Equal(t, 3000.0, s.Points(J1)[0].Time)
}

func TestSessionEditUndoRedo(t *testing.T) {
	s, err := NewProject()
	require.NoError(t, err)
	initial := s.axes.Clone()

	_, err = s.AddPoint(J1, 2500, 1)
	require.NoError(t, err)
	_, err = s.MovePoint(J3, 1, 4000, -0.5)
	require.NoError(t, err)
	require.NoError(t, s.DeletePoint(J2, 0))
	edited := s.axes.Clone()

	for s.CanUndo() {
		require.NoError(t, s.Undo())
	}
	for _, a := range AllAxes {
		diff(t, initial[a].Points(), s.Points(a))
	}
	require.NoError(t, s.Undo(), "undo with nothing to undo is a no-op")

	for s.CanRedo() {
		require.NoError(t, s.Redo())
	}
	for _, a := range AllAxes {
		diff(t, edited[a].Points(), s.Points(a))
	}
	require.NoError(t, s.Redo())
}

func TestSessionDispatchRejects(t *testing.T) {
	s, err := NewProject()
	require.NoError(t, err)

	_, err = s.Dispatch(DeletePoint{Axis: J1, Index: 2})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = s.Dispatch(AddPoint{Axis: Axis(-1), Time: 0, Value: 0})
	assert.ErrorIs(t, err, ErrUnknownAxis)
	_, err = s.AddPoint(J1, 100, math.NaN())
	assert.ErrorIs(t, err, ErrInvalidValue)
	_, err = s.MovePoint(J1, 0, DefaultDurationMs, 0)
	assert.ErrorIs(t, err, ErrTimeCollision)
	assert.False(t, s.CanUndo())
}

func TestSessionSelection(t *testing.T) {
	s, err := NewProject()
	require.NoError(t, err)
	_, _, ok := s.Selection()
	assert.False(t, ok)

	_, err = s.AddPoint(J2, 1000, 0.5)
	require.NoError(t, err)
	a, i, ok := s.Selection()
	require.True(t, ok)
	assert.Equal(t, J2, a)
	assert.Equal(t, 1, i)

	// moving the point past its neighbour keeps it selected
	i, err = s.MovePoint(J2, 1, 6000, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 2, i)
	require.NoError(t, s.DeletePoint(J2, 0))
	_, i, ok = s.Selection()
	require.True(t, ok)
	assert.Equal(t, 1, i)
	assert.Equal(t, 6000.0, s.Points(J2)[i].Time)

	require.NoError(t, s.DeleteSelected())
	_, _, ok = s.Selection()
	assert.False(t, ok, "deleting the selected point clears the selection")
	diff(t, [][2]float64{{DefaultDurationMs, 0}}, values(s.axes[J2]))

	require.NoError(t, s.DeleteSelected(), "deleting without a selection is a no-op")
	assert.Equal(t, 1, s.axes[J2].Len())

	require.NoError(t, s.Select(J3, 1))
	a, i, ok = s.Selection()
	assert.True(t, ok)
	assert.Equal(t, J3, a)
	assert.Equal(t, 1, i)
	assert.ErrorIs(t, s.Select(J3, 5), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.Select(Axis(4), 0), ErrUnknownAxis)

	s.ClearSelection()
	_, _, ok = s.Selection()
	assert.False(t, ok)
}

func TestSessionExport(t *testing.T) {
	s, err := NewProject()
	require.NoError(t, err)
	_, err = s.AddPoint(J1, 2500, 1)
	require.NoError(t, err)

	seq, err := s.ExportAll()
	require.NoError(t, err)
	n := 0
	var last Sample
	for smp := range seq {
		n++
		last = smp
		assert.Equal(t, s.Pose(float64(smp.TimeMs)), smp.J)
	}
	assert.Equal(t, 251, n)
	assert.Equal(t, 5000, last.TimeMs)

	_, err = s.Export(10, 0, 20)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestSessionPoseAtCursor(t *testing.T) {
	s, err := NewProject()
	require.NoError(t, err)
	_, err = s.AddPoint(J3, 2500, -1)
	require.NoError(t, err)

	s.Playback().Seek(2500)
	diff(t, Pose{0, 0, -1}, s.PoseAtCursor())
	s.Playback().Seek(1e9)
	assert.Equal(t, DefaultDurationMs, s.Playback().Cursor())
}

func TestSessionLogsEdits(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s, err := NewProject(WithLogger(zap.New(core).Sugar()))
	require.NoError(t, err)

	_, err = s.AddPoint(J1, 1000, 0.5)
	require.NoError(t, err)
	_, err = s.AddPoint(J1, -1, 0.5)
	require.Error(t, err)
	require.NoError(t, s.Undo())
	require.NoError(t, s.Redo())

	var msgs []string
	for _, e := range logs.All() {
		msgs = append(msgs, e.Message)
	}
	diff(t, []string{"edit", "edit rejected", "undo", "redo"}, msgs)
	assert.Equal(t, 1, logs.FilterField(zap.String("command", "add J1 (1000 ms, 0.5 rad)")).FilterMessage("edit").Len())
}

func TestSessionSnapNegativeTime(t *testing.T) {
	s, err := NewProject(WithSnap(100))
	require.NoError(t, err)
	for _, ts := range []float64{-20, -49.9, -60, -1e-9, math.Inf(-1)} {
		_, err := s.AddPoint(J1, ts, 0.1)
		assert.ErrorIs(t, err, ErrInvalidTime, "add at %v", ts)
		_, err = s.MovePoint(J1, 1, ts, 0.1)
		assert.ErrorIs(t, err, ErrInvalidTime, "move to %v", ts)
	}
	assert.False(t, s.CanUndo())

	_, err = s.AddPoint(J2, 20, 0.3)
	require.NoError(t, err)
	pts := s.Points(J2)
	assert.Len(t, pts, 2)
	assert.Equal(t, 0.3, pts[0].Value)
	assert.False(t, math.Signbit(pts[0].Time))
}

func TestSessionDispatchResolvedCommand(t *testing.T) {
	s, err := NewSession()
	require.NoError(t, err)
	rec, err := s.Dispatch(AddPoint{Axis: J1, Time: 500, Value: 0.2})
	require.NoError(t, err)
	_, err = s.Dispatch(rec)
	require.NoError(t, err)
	diff(t, [][2]float64{{500, 0.2}}, values(s.axes[J1]))

	require.NoError(t, s.Undo())
	require.NoError(t, s.Undo())
	assert.Empty(t, s.Points(J1))
}

func TestSessionInvalidAxisReads(t *testing.T) {
	s, err := NewProject()
	require.NoError(t, err)
	bad := Axis(5)
	assert.Zero(t, s.Evaluate(bad, 100))
	assert.Nil(t, s.Points(bad))
	lo, hi := s.Bounds(bad)
	assert.Zero(t, lo)
	assert.Zero(t, hi)
	assert.False(t, s.Exceeds(bad))
	assert.Empty(t, s.SVG(bad, SVGOptions{}))
	assert.Equal(t, AngleLimit{}, s.Limit(bad))
	for range s.Segments(bad) {
		t.Error("invalid axis has segments")
	}
}
