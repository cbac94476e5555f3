package models

import (
	"fmt"
	"math"
)

// Source identifies which branch of the acquisition pipeline produced a Series.
type Source string

const (
	SourceLive     Source = "LIVE"
	SourceCached   Source = "CACHED"
	SourceFallback Source = "FALLBACK"
)

const (
	// StepMinutes is the spacing between consecutive samples.
	StepMinutes = 10
	// WindowMinutes is the half-width of the display window (12 hours).
	WindowMinutes = 720
	// SampleCount covers -WindowMinutes..+WindowMinutes inclusive at StepMinutes.
	SampleCount = 2*WindowMinutes/StepMinutes + 1
)

// Sample is a single tide height at a time offset relative to "now".
// Negative offsets are the past, zero is the current instant.
type Sample struct {
	OffsetMinutes int     `json:"offset_minutes"`
	HeightFt      float64 `json:"tide_ft"`
}

// Series is a complete 24-hour tide dataset: exactly SampleCount samples
// on the canonical 10-minute grid, tagged with its origin.
type Series struct {
	Samples []Sample
	Source  Source
}

// CanonicalOffsets returns the 145 target offsets -720, -710, ..., 720.
func CanonicalOffsets() []int {
	offsets := make([]int, 0, SampleCount)
	for m := -WindowMinutes; m <= WindowMinutes; m += StepMinutes {
		offsets = append(offsets, m)
	}
	return offsets
}

// Validate checks the invariants every Series handed to a caller must hold:
// exactly SampleCount samples, endpoints at ±WindowMinutes, offsets strictly
// increasing by StepMinutes.
func (s Series) Validate() error {
	if len(s.Samples) != SampleCount {
		return fmt.Errorf("series has %d samples, want %d", len(s.Samples), SampleCount)
	}
	if s.Samples[0].OffsetMinutes != -WindowMinutes {
		return fmt.Errorf("first offset is %d, want %d", s.Samples[0].OffsetMinutes, -WindowMinutes)
	}
	if s.Samples[SampleCount-1].OffsetMinutes != WindowMinutes {
		return fmt.Errorf("last offset is %d, want %d", s.Samples[SampleCount-1].OffsetMinutes, WindowMinutes)
	}
	for i := 1; i < len(s.Samples); i++ {
		if s.Samples[i].OffsetMinutes-s.Samples[i-1].OffsetMinutes != StepMinutes {
			return fmt.Errorf("offset step %d -> %d at index %d",
				s.Samples[i-1].OffsetMinutes, s.Samples[i].OffsetMinutes, i)
		}
	}
	return nil
}

// NowSample returns the sample at offset zero.
func (s Series) NowSample() (Sample, bool) {
	for _, sample := range s.Samples {
		if sample.OffsetMinutes == 0 {
			return sample, true
		}
	}
	return Sample{}, false
}

// HeightRange returns the min and max heights over all samples.
func (s Series) HeightRange() (float64, float64) {
	min, max := math.Inf(1), math.Inf(-1)
	for _, sample := range s.Samples {
		min = math.Min(min, sample.HeightFt)
		max = math.Max(max, sample.HeightFt)
	}
	return min, max
}

// Offline reports whether the series came from the synthetic fallback model.
func (s Series) Offline() bool {
	return s.Source == SourceFallback
}

// WithDatum returns a copy adjusted for display relative to mean sea level.
// NOAA predictions are referenced to MLLW; subtracting the station's MSL
// offset recenters them around zero. When showMSL is false the series is
// returned unchanged.
func (s Series) WithDatum(mslOffsetFt float64, showMSL bool) Series {
	if !showMSL {
		return s
	}
	adjusted := Series{
		Samples: make([]Sample, len(s.Samples)),
		Source:  s.Source,
	}
	for i, sample := range s.Samples {
		adjusted.Samples[i] = Sample{
			OffsetMinutes: sample.OffsetMinutes,
			HeightFt:      sample.HeightFt - mslOffsetFt,
		}
	}
	return adjusted
}

// NoaaPrediction represents one raw NOAA API prediction entry.
type NoaaPrediction struct {
	Time   string `json:"t"` // Time of prediction, "2006-01-02 15:04"
	Height string `json:"v"` // Predicted water level in feet
}

type NoaaResponse struct {
	Predictions []NoaaPrediction `json:"predictions"`
}
