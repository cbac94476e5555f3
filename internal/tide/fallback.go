package tide

import (
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lcary/tide-tracker/internal/models"
)

// Semidiurnal approximation constants. The period is the lunar M2
// constituent; amplitude and mean level are generic coastal values, not
// fitted to any station.
const (
	// periodHours is half a lunar day.
	periodHours = 12.42
	// baseAmplitudeFt is the sinusoid amplitude at mean spring/neap state.
	baseAmplitudeFt = 2.6
	// springNeapModulation scales the amplitude with the moon phase:
	// peak at new/full, trough at the quarters. Chosen so the full tidal
	// range never exceeds 6 ft.
	springNeapModulation = 0.15
	// meanLevelFt is the vertical offset above chart datum.
	meanLevelFt = 5.0
	// lunitidalOffsetHours is the interval from moon transit to local
	// high water, roughly 3 h 35 m for the US east coast.
	lunitidalOffsetHours = 3.59
)

// Approximate generates a synthetic tide series centered on now. It is a
// pure function of the clock: no I/O, no failure mode. The phase advances
// with real time so the sample at offset zero tracks the current tide
// state, and the amplitude follows the spring/neap cycle of the moon.
func Approximate(now time.Time) models.Series {
	eph := moonAt(now)

	// Real-time phase of the semidiurnal constituent.
	periodSecs := periodHours * 3600.0
	shifted := math.Mod(float64(now.Unix())+lunitidalOffsetHours*3600.0, periodSecs)
	if shifted < 0 {
		shifted += periodSecs
	}
	phase := shifted / periodSecs * 2 * math.Pi

	// cos(2φ) peaks at both new and full moon.
	moonPhaseAngle := eph.ageDays / synodicMonthDays * 2 * math.Pi
	amplitude := baseAmplitudeFt * (1 + springNeapModulation*math.Cos(2*moonPhaseAngle))

	log.Debug().
		Float64("moon_age_days", eph.ageDays).
		Int("moon_phase_index", eph.phaseIndex).
		Float64("amplitude_ft", amplitude).
		Msg("Generating fallback tide series")

	samples := make([]models.Sample, 0, models.SampleCount)
	for _, m := range models.CanonicalOffsets() {
		theta := phase + (float64(m)/60.0)*2*math.Pi/periodHours
		samples = append(samples, models.Sample{
			OffsetMinutes: m,
			HeightFt:      meanLevelFt + amplitude*math.Sin(theta),
		})
	}

	return models.Series{Samples: samples, Source: models.SourceFallback}
}
