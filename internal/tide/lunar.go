package tide

import (
	"math"
	"time"
)

// synodicMonthDays is the mean length of a lunation.
const synodicMonthDays = 29.5305882

// lunarEphemeris holds the low-precision moon state used to modulate the
// fallback tide amplitude.
type lunarEphemeris struct {
	// phaseIndex is 0-7, with 0 = new and 4 = full.
	phaseIndex int
	// ageDays is the age of the moon in civil days since new.
	ageDays float64
	// illumFrac is the illuminated fraction, 0-1.
	illumFrac float64
}

// schaeferMoon computes the moon's phase for a civil date using the
// Schaefer routine (Sky & Telescope, Mar 1985). Accuracy is about ±1 day
// of phase, which is plenty for a spring/neap amplitude envelope.
func schaeferMoon(year int, month time.Month, day float64) lunarEphemeris {
	y, m := year, int(month)
	if m < 3 {
		// Jan/Feb count as months 13/14 of the previous year.
		y--
		m += 12
	}
	m++

	// Days since the 1900-01-00 12 UT reference new moon.
	days := math.Floor(365.25*float64(y)) + math.Floor(30.6*float64(m)) + day - 694039.09

	cycles := days / synodicMonthDays
	frac := cycles - math.Floor(cycles)
	if frac < 0 {
		frac++
	}

	ageDays := frac * synodicMonthDays
	phaseIndex := int(math.Floor(frac*8.0+0.5)) & 7
	illumFrac := 1.0 - math.Abs(ageDays-synodicMonthDays/2)/(synodicMonthDays/2)
	illumFrac = math.Max(0, math.Min(1, illumFrac))

	return lunarEphemeris{
		phaseIndex: phaseIndex,
		ageDays:    ageDays,
		illumFrac:  illumFrac,
	}
}

// moonAt evaluates the ephemeris for an instant.
func moonAt(t time.Time) lunarEphemeris {
	utc := t.UTC()
	day := float64(utc.Day()) +
		(float64(utc.Hour())+float64(utc.Minute())/60.0+float64(utc.Second())/3600.0)/24.0
	return schaeferMoon(utc.Year(), utc.Month(), day)
}
