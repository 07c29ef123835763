package trajectory

import "fmt"

// History is the undo/redo history of edits to a set of axis curves.
//
// A single history is shared by all axes, so undo reverts whichever axis
// was edited last. The history is unbounded.
//
// The zero value is an empty history ready to use.
type History struct {
	undo []Command
	redo []Command
}

// Execute applies cmd to its target curve in cs and records it. Recording a
// new command clears the redo stack. If cmd fails, nothing is recorded and
// the curve is left unchanged.
//
// Execute returns the resolved command, which records the state it
// replaced.
func (h *History) Execute(cs Curves, cmd Command) (Command, error) {
	c, err := curveFor(cs, cmd)
	if err != nil {
		return nil, err
	}
	rec, err := cmd.do(c)
	if err != nil {
		return nil, err
	}
	h.undo = append(h.undo, rec)
	clear(h.redo)
	h.redo = h.redo[:0]
	return rec, nil
}

// Undo reverts the most recent command and moves it to the redo stack. It
// returns the reverted command, or nil if there was nothing to undo.
func (h *History) Undo(cs Curves) (Command, error) {
	if len(h.undo) == 0 {
		return nil, nil
	}
	cmd := h.undo[len(h.undo)-1]
	c, err := curveFor(cs, cmd)
	if err != nil {
		return nil, err
	}
	if err := cmd.undo(c); err != nil {
		return nil, fmt.Errorf("undoing %s: %w", cmd, err)
	}
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, cmd)
	return cmd, nil
}

// Redo reapplies the most recently undone command and moves it back to the
// undo stack. It returns the reapplied command, or nil if there was nothing
// to redo.
func (h *History) Redo(cs Curves) (Command, error) {
	if len(h.redo) == 0 {
		return nil, nil
	}
	cmd := h.redo[len(h.redo)-1]
	c, err := curveFor(cs, cmd)
	if err != nil {
		return nil, err
	}
	if err := cmd.redo(c); err != nil {
		return nil, fmt.Errorf("redoing %s: %w", cmd, err)
	}
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, cmd)
	return cmd, nil
}

// CanUndo reports whether there is a command to undo.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether there is a command to redo.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Len returns the number of commands on the undo and redo stacks.
func (h *History) Len() (undo, redo int) { return len(h.undo), len(h.redo) }

// Clear empties both stacks.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}

func curveFor(cs Curves, cmd Command) (*AxisCurve, error) {
	a := cmd.target()
	if err := checkAxis(a); err != nil {
		return nil, err
	}
	c := cs.Curve(a)
	if c == nil {
		return nil, fmt.Errorf("%w: no curve for %s", ErrUnknownAxis, a)
	}
	return c, nil
}
