package trajectory

import (
	"fmt"
	"strings"
)

// Axis identifies one of the three joints of the robot.
type Axis int

const (
	J1 Axis = iota // yaw
	J2             // roll
	J3             // pitch

	// NumAxes is the number of axes of a trajectory.
	NumAxes = 3
)

var axisNames = [NumAxes]string{"J1", "J2", "J3"}

// axisKeys are the keys used for axes in configuration files and project
// documents.
var axisKeys = [NumAxes]string{"j1_yaw", "j2_roll", "j3_pitch"}

// AllAxes lists the axes in order.
var AllAxes = [NumAxes]Axis{J1, J2, J3}

// Valid reports whether a is one of J1, J2 and J3.
func (a Axis) Valid() bool {
	return a >= J1 && a <= J3
}

func (a Axis) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Axis(%d)", int(a))
	}
	return axisNames[a]
}

// Key returns the document key of the axis, such as "j1_yaw".
func (a Axis) Key() string {
	if !a.Valid() {
		return ""
	}
	return axisKeys[a]
}

// ParseAxis parses an axis name. It accepts both the short form ("J1",
// case-insensitively) and the document key ("j1_yaw").
func ParseAxis(s string) (Axis, error) {
	for _, a := range AllAxes {
		if strings.EqualFold(s, axisNames[a]) || s == axisKeys[a] {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAxis, s)
}

func checkAxis(a Axis) error {
	if !a.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownAxis, int(a))
	}
	return nil
}
