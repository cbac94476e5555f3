package tide

import (
	"sort"
	"time"

	"github.com/lcary/tide-tracker/internal/models"
	"github.com/lcary/tide-tracker/internal/station"
)

// Resample converts irregularly-timed raw samples into heights on the
// canonical 10-minute grid centered on now. Every target instant must be
// bracketed by two raw samples; an uncovered target yields a RangeError.
// The caller tags the resulting samples with their source.
func Resample(raw []station.RawSample, now time.Time) ([]models.Sample, error) {
	samples := make([]models.Sample, 0, models.SampleCount)

	for _, offset := range models.CanonicalOffsets() {
		target := now.Add(time.Duration(offset) * time.Minute)

		height, err := interpolateAt(raw, target, offset)
		if err != nil {
			return nil, err
		}

		samples = append(samples, models.Sample{
			OffsetMinutes: offset,
			HeightFt:      height,
		})
	}

	return samples, nil
}

// interpolateAt linearly interpolates the height at target between the two
// bracketing raw samples. A target that exactly matches a raw timestamp
// returns that raw height directly, avoiding floating round-off drift.
func interpolateAt(raw []station.RawSample, target time.Time, offset int) (float64, error) {
	idx := sort.Search(len(raw), func(i int) bool {
		return !raw[i].Time.Before(target)
	})

	if idx < len(raw) && raw[idx].Time.Equal(target) {
		return raw[idx].HeightFt, nil
	}
	if idx == 0 || idx == len(raw) {
		return 0, NewRangeError(offset)
	}

	p0, p1 := raw[idx-1], raw[idx]
	span := p1.Time.Sub(p0.Time)
	if span <= 0 {
		// Duplicate timestamps in the source data; either height works.
		return p0.HeightFt, nil
	}

	alpha := float64(target.Sub(p0.Time)) / float64(span)
	return p0.HeightFt + alpha*(p1.HeightFt-p0.HeightFt), nil
}
