package tide

import "fmt"

// RangeError indicates a canonical target offset fell outside the span of
// the raw data. Extrapolated tide heights are unsafe to display, so the
// resampler fails instead of guessing.
type RangeError struct {
	OffsetMinutes int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("target offset %d min is outside the raw data range", e.OffsetMinutes)
}

func NewRangeError(offsetMinutes int) *RangeError {
	return &RangeError{OffsetMinutes: offsetMinutes}
}
