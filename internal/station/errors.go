package station

import "fmt"

// NetworkError wraps a transport-level failure talking to the NOAA API.
// Timeouts surface here too; the caller treats them identically.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("NOAA request failed: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ParseError indicates the NOAA response could not be decoded into
// (timestamp, height) pairs.
type ParseError struct {
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parsing NOAA response: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("parsing NOAA response: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InsufficientDataError indicates the response parsed fine but does not
// cover the full display window. Guessing heights outside the covered
// range is unsafe, so the fetch fails instead.
type InsufficientDataError struct {
	Message string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient tide data: %s", e.Message)
}
