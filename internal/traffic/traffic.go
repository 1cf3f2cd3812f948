package traffic

import (
	"math"
	"math/rand"
	"time"
)

// Baseline journeys per second at full traffic.
const baseJourneysPerSecond = 0.1

// BatchParams sizes one continuous-mode batch.
type BatchParams struct {
	Duration          time.Duration
	JourneysPerSecond float64
	Journeys          int
	Multiplier        float64
}

// Multiplier returns the time-of-day traffic multiplier in [0.05, 1.0]:
// morning and evening peaks, an overnight trough, moderate daytime, a
// weekend discount, and ±20% jitter.
func Multiplier(now time.Time, rng *rand.Rand) float64 {
	var base float64
	switch hour := now.Hour(); {
	case hour >= 6 && hour <= 9:
		base = 0.8
	case hour >= 17 && hour <= 21:
		base = 1.0
	case hour <= 5:
		base = 0.1
	default:
		base = 0.5
	}

	jitter := 0.8 + 0.4*rng.Float64()

	day := 1.0
	if wd := now.Weekday(); wd == time.Saturday || wd == time.Sunday {
		day = 0.7
	}

	return clamp(base*jitter*day, 0.05, 1.0)
}

// NextBatch derives the next batch's duration and rate from the current
// traffic level. Duration is 5-15 minutes; the rate is bounded between one
// journey per 100 seconds and one per second.
func NextBatch(now time.Time, rng *rand.Rand) BatchParams {
	multiplier := Multiplier(now, rng)

	perSecond := clamp(baseJourneysPerSecond*multiplier, 0.01, 1.0)
	duration := time.Duration((5 + 10*rng.Float64()) * float64(time.Minute))
	journeys := int(math.Max(1, duration.Seconds()*perSecond))

	return BatchParams{
		Duration:          duration,
		JourneysPerSecond: perSecond,
		Journeys:          journeys,
		Multiplier:        multiplier,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
