package trajectory

import (
	"errors"
	"fmt"
)

// Errors returned by this package. Callers should test for them with
// [errors.Is]; most are returned wrapped with additional context.
//
// Every operation that fails leaves the state it was called on unchanged.
var (
	// ErrInvalidTime is returned for negative or non-finite control point
	// times.
	ErrInvalidTime = errors.New("trajectory: invalid time")

	// ErrInvalidValue is returned for NaN control point values. Infinite
	// values are clamped like any other out-of-range value.
	ErrInvalidValue = errors.New("trajectory: invalid angle value")

	// ErrTimeCollision is returned when moving a point onto the time of
	// another point of the same curve. It matches ErrInvalidTime.
	ErrTimeCollision = fmt.Errorf("%w: another point occupies this time", ErrInvalidTime)

	// ErrIndexOutOfRange is returned for stale or invalid point references.
	ErrIndexOutOfRange = errors.New("trajectory: point index out of range")

	// ErrInvalidRange is returned for malformed export ranges and steps.
	ErrInvalidRange = errors.New("trajectory: invalid sampling range")

	// ErrConfig is returned for malformed configuration, such as an angle
	// limit whose minimum is not below its maximum.
	ErrConfig = errors.New("trajectory: invalid configuration")

	// ErrSchemaVersion is returned when loading a project document with an
	// unrecognized schema version.
	ErrSchemaVersion = errors.New("trajectory: unsupported schema version")

	// ErrMalformedDocument is returned when loading a structurally invalid
	// project document.
	ErrMalformedDocument = errors.New("trajectory: malformed project document")

	// ErrUnknownAxis is returned for axis identifiers other than J1, J2 and J3.
	ErrUnknownAxis = errors.New("trajectory: unknown axis")

	// ErrUnknownFormat is returned when a document format cannot be
	// determined.
	ErrUnknownFormat = errors.New("trajectory: unknown document format")
)

func malformedf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedDocument, fmt.Sprintf(format, args...))
}

func configf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfig, fmt.Sprintf(format, args...))
}
