package trajectory

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strconv"
)

// CSVHeader is the first line of exported trajectories.
const CSVHeader = "time(ms), J1(rad), J2(rad), J3(rad)"

// csvDelimiter separates fields of data rows, matching the header.
const csvDelimiter = ", "

// csvPrecision is the number of decimals of exported angles.
const csvPrecision = 6

// Sample is the pose of the robot at one point of the export grid.
type Sample struct {
	TimeMs int
	J      Pose
}

func (s Sample) J1() float64 { return s.J[J1] }
func (s Sample) J2() float64 { return s.J[J2] }
func (s Sample) J3() float64 { return s.J[J3] }

// Export returns the samples of e on the grid startMs, startMs+stepMs, …
// up to and including endMs. If endMs isn't on the grid, the final sample
// is taken at exactly endMs.
//
// The returned sequence is lazy and holds no state between iterations:
// iterating it again yields identical samples, as long as the curves behind
// e have not been modified. Callers may stop iterating at any point.
//
// Export fails with an error matching [ErrInvalidRange] if endMs < startMs
// or stepMs <= 0.
func Export(e Evaluator, startMs, endMs, stepMs int) (iter.Seq[Sample], error) {
	if err := checkRange(startMs, endMs, stepMs); err != nil {
		return nil, err
	}
	return func(yield func(Sample) bool) {
		t := startMs
		for {
			if !yield(Sample{TimeMs: t, J: PoseAt(e, float64(t))}) {
				return
			}
			if t == endMs {
				return
			}
			if endMs-t < stepMs {
				t = endMs
			} else {
				t += stepMs
			}
		}
	}, nil
}

// Count returns the number of samples Export produces for the range.
func Count(startMs, endMs, stepMs int) (int, error) {
	if err := checkRange(startMs, endMs, stepMs); err != nil {
		return 0, err
	}
	span := endMs - startMs
	n := span/stepMs + 1
	if span%stepMs != 0 {
		n++
	}
	return n, nil
}

func checkRange(startMs, endMs, stepMs int) error {
	if stepMs <= 0 {
		return fmt.Errorf("%w: step %d ms must be positive", ErrInvalidRange, stepMs)
	}
	if endMs < startMs {
		return fmt.Errorf("%w: end %d ms is before start %d ms", ErrInvalidRange, endMs, startMs)
	}
	return nil
}

// WriteCSV writes samples as a CSV trajectory: the [CSVHeader] line
// followed by one row per sample, holding the time in whole milliseconds
// and the three angles in radians with six decimals.
func WriteCSV(w io.Writer, samples iter.Seq[Sample]) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(CSVHeader + "\n"); err != nil {
		return err
	}
	var buf []byte
	for s := range samples {
		buf = strconv.AppendInt(buf[:0], int64(s.TimeMs), 10)
		for _, v := range s.J {
			buf = append(buf, csvDelimiter...)
			buf = strconv.AppendFloat(buf, v, 'f', csvPrecision, 64)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ExportCSV samples e like [Export] and writes the result like [WriteCSV].
func ExportCSV(w io.Writer, e Evaluator, startMs, endMs, stepMs int) error {
	samples, err := Export(e, startMs, endMs, stepMs)
	if err != nil {
		return err
	}
	return WriteCSV(w, samples)
}
