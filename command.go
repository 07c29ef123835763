package trajectory

import "fmt"

// Command is a reversible edit of a single axis curve. The set of commands
// is closed: [AddPoint], [DeletePoint] and [MovePoint].
//
// A command value describes the requested edit. Executing it through a
// [History] or a [Session] produces a resolved copy that additionally
// records the exact state it replaced, which is what undo and redo operate
// on. Executing a resolved copy again performs its edit anew, validated
// like any other request. Commands are values and are never modified once
// created.
type Command interface {
	fmt.Stringer

	target() Axis
	// do applies the requested edit and returns the resolved record to
	// store. It ignores any state recorded by an earlier execution.
	do(c *AxisCurve) (Command, error)
	// redo reapplies a resolved record.
	redo(c *AxisCurve) error
	undo(c *AxisCurve) error
}

var (
	_ Command = AddPoint{}
	_ Command = DeletePoint{}
	_ Command = MovePoint{}
)

// CommandAxis returns the axis that cmd edits.
func CommandAxis(cmd Command) Axis { return cmd.target() }

// AddPoint adds a control point at Time, or replaces the value of the point
// already at that time.
type AddPoint struct {
	Axis  Axis
	Time  float64
	Value float64

	handle   Handle
	replaced bool
	prev     float64
}

// Handle returns the handle of the added or updated point. It is zero for
// commands that have not been executed.
func (cmd AddPoint) Handle() Handle { return cmd.handle }

// Replaced reports whether executing the command updated an existing point
// rather than inserting a new one.
func (cmd AddPoint) Replaced() bool { return cmd.replaced }

func (cmd AddPoint) target() Axis { return cmd.Axis }

func (cmd AddPoint) String() string {
	return fmt.Sprintf("add %s %v", cmd.Axis, Pt(cmd.Time, cmd.Value))
}

func (cmd AddPoint) do(c *AxisCurve) (Command, error) {
	i, prev, err := c.add(cmd.Time, cmd.Value, 0)
	if err != nil {
		return nil, err
	}
	pt := c.points[i]
	out := AddPoint{Axis: cmd.Axis, Time: pt.Time, Value: pt.Value, handle: pt.Handle}
	if prev != nil {
		out.replaced, out.prev = true, prev.Value
	}
	return out, nil
}

func (cmd AddPoint) redo(c *AxisCurve) error {
	if cmd.replaced {
		i, ok := c.IndexOf(cmd.handle)
		if !ok {
			return staleHandle(c, cmd.handle)
		}
		c.points[i].Value = cmd.Value
		return nil
	}
	c.insert(ControlPoint{Handle: cmd.handle, Time: cmd.Time, Value: cmd.Value})
	return nil
}

func (cmd AddPoint) undo(c *AxisCurve) error {
	i, ok := c.IndexOf(cmd.handle)
	if !ok {
		return staleHandle(c, cmd.handle)
	}
	if cmd.replaced {
		c.points[i].Value = cmd.prev
	} else {
		c.remove(i)
	}
	return nil
}

// DeletePoint removes the control point at Index.
type DeletePoint struct {
	Axis  Axis
	Index int

	removed ControlPoint
}

// Removed returns the point that executing the command removed.
func (cmd DeletePoint) Removed() ControlPoint { return cmd.removed }

func (cmd DeletePoint) target() Axis { return cmd.Axis }

func (cmd DeletePoint) String() string {
	return fmt.Sprintf("delete %s #%d", cmd.Axis, cmd.Index)
}

func (cmd DeletePoint) do(c *AxisCurve) (Command, error) {
	if err := c.checkIndex(cmd.Index); err != nil {
		return nil, err
	}
	return DeletePoint{Axis: cmd.Axis, Index: cmd.Index, removed: c.remove(cmd.Index)}, nil
}

func (cmd DeletePoint) redo(c *AxisCurve) error {
	i, ok := c.IndexOf(cmd.removed.Handle)
	if !ok {
		return staleHandle(c, cmd.removed.Handle)
	}
	c.remove(i)
	return nil
}

func (cmd DeletePoint) undo(c *AxisCurve) error {
	c.insert(cmd.removed)
	return nil
}

// MovePoint sets the time and value of the control point at Index.
type MovePoint struct {
	Axis  Axis
	Index int
	Time  float64
	Value float64

	from, to ControlPoint
}

// Handle returns the handle of the moved point. It is zero for commands
// that have not been executed.
func (cmd MovePoint) Handle() Handle { return cmd.from.Handle }

// From returns the state of the point before the move.
func (cmd MovePoint) From() ControlPoint { return cmd.from }

// To returns the state of the point after the move.
func (cmd MovePoint) To() ControlPoint { return cmd.to }

func (cmd MovePoint) target() Axis { return cmd.Axis }

func (cmd MovePoint) String() string {
	return fmt.Sprintf("move %s #%d to %v", cmd.Axis, cmd.Index, Pt(cmd.Time, cmd.Value))
}

func (cmd MovePoint) do(c *AxisCurve) (Command, error) {
	if err := c.checkIndex(cmd.Index); err != nil {
		return nil, err
	}
	from := c.points[cmd.Index]
	i, err := c.MovePoint(cmd.Index, cmd.Time, cmd.Value)
	if err != nil {
		return nil, err
	}
	return MovePoint{
		Axis:  cmd.Axis,
		Index: cmd.Index,
		Time:  cmd.Time,
		Value: cmd.Value,
		from:  from,
		to:    c.points[i],
	}, nil
}

func (cmd MovePoint) redo(c *AxisCurve) error {
	i, ok := c.IndexOf(cmd.from.Handle)
	if !ok {
		return staleHandle(c, cmd.from.Handle)
	}
	c.move(i, cmd.to.Time, cmd.to.Value)
	return nil
}

func (cmd MovePoint) undo(c *AxisCurve) error {
	i, ok := c.IndexOf(cmd.from.Handle)
	if !ok {
		return staleHandle(c, cmd.from.Handle)
	}
	c.move(i, cmd.from.Time, cmd.from.Value)
	return nil
}

func staleHandle(c *AxisCurve, h Handle) error {
	return fmt.Errorf("%s: no point with handle %d: %w", c.axis, h, ErrIndexOutOfRange)
}
