package trajectory

import (
	"fmt"
	"math"
)

// DefaultLimit is the angle limit used for axes that have not been
// configured otherwise.
var DefaultLimit = AngleLimit{Min: -math.Pi / 2, Max: math.Pi / 2}

// AngleLimit is the closed range [Min, Max] of angles, in radians, that
// control points of an axis may take.
type AngleLimit struct {
	Min float64
	Max float64
}

// Clamp returns v limited to [l.Min, l.Max].
func (l AngleLimit) Clamp(v float64) float64 {
	return max(l.Min, min(l.Max, v))
}

// Contains reports whether v lies within the limit.
func (l AngleLimit) Contains(v float64) bool {
	return v >= l.Min && v <= l.Max
}

// Validate returns an error matching [ErrConfig] unless Min < Max and both
// are finite.
func (l AngleLimit) Validate() error {
	if math.IsNaN(l.Min) || math.IsNaN(l.Max) || math.IsInf(l.Min, 0) || math.IsInf(l.Max, 0) {
		return configf("angle limit %v is not finite", l)
	}
	if l.Min >= l.Max {
		return configf("angle limit min %g must be below max %g", l.Min, l.Max)
	}
	return nil
}

func (l AngleLimit) String() string {
	return fmt.Sprintf("[%g, %g]", l.Min, l.Max)
}

// Limits holds one angle limit per axis.
type Limits [NumAxes]AngleLimit

// DefaultLimits returns ±π/2 for every axis.
func DefaultLimits() Limits {
	return Limits{DefaultLimit, DefaultLimit, DefaultLimit}
}

// Clamp limits v to the angle limit of axis a.
func (ls Limits) Clamp(a Axis, v float64) float64 {
	return ls[a].Clamp(v)
}

// Validate validates every limit, reporting the first offending axis.
func (ls Limits) Validate() error {
	for _, a := range AllAxes {
		if err := ls[a].Validate(); err != nil {
			return fmt.Errorf("%s: %w", a.Key(), err)
		}
	}
	return nil
}
