package trajectory

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// SVGOptions specifies optional settings for [SVG] and [WriteSVG].
type SVGOptions struct {
	// The maximum precision with which to format coordinates. A value of 0
	// chooses the highest precision necessary to unambiguously represent any
	// given coordinate.
	MaxPrecision int

	// TimeScale and ValueScale convert milliseconds and radians to user
	// units. Zero means 1. Values are negated so that larger angles point up.
	TimeScale  float64
	ValueScale float64
}

// SVG returns the SVG path data of c's interpolated curve.
//
// See [WriteSVG] for a version that writes to an [io.Writer] instead of
// returning a string.
func SVG(c *AxisCurve, opts SVGOptions) string {
	sb := &strings.Builder{}
	WriteSVG(sb, c, opts)
	return sb.String()
}

// WriteSVG writes the SVG path data of c's interpolated curve to w. Every
// span of the curve is written as an exact cubic Bézier. A curve with a
// single point produces a lone move command and an empty curve produces no
// output.
func WriteSVG(w io.Writer, c *AxisCurve, opts SVGOptions) error {
	sx, sy := opts.TimeScale, opts.ValueScale
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	format := func(n float64) string {
		maxPrec := opts.MaxPrecision
		if maxPrec <= 0 {
			return strconv.FormatFloat(n, 'f', -1, 64)
		}
		s := strconv.FormatFloat(n, 'f', maxPrec, 64)
		if strings.Contains(s, ".") {
			s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
		}
		return s
	}
	pt := func(t, v float64) string {
		// avoid emitting -0
		return format(t*sx) + "," + format(0-v*sy)
	}

	var err error
	writef := func(s string, v ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, s, v...)
	}

	switch c.Len() {
	case 0:
		return nil
	case 1:
		p := c.points[0]
		writef("M%s", pt(p.Time, p.Value))
		return err
	}
	first := true
	for seg := range c.Segments() {
		ts := seg.ControlTimes()
		if first {
			writef("M%s", pt(ts[0], seg.V0))
			first = false
		}
		writef(" C%s %s %s", pt(ts[1], seg.V1), pt(ts[2], seg.V2), pt(ts[3], seg.V3))
		if err != nil {
			return err
		}
	}
	return err
}
