package traffic

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour int, weekday time.Weekday) time.Time {
	// 2025-06-02 is a Monday
	base := time.Date(2025, 6, 2, hour, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, int(weekday-time.Monday))
}

func TestMultiplier_Bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for hour := 0; hour < 24; hour++ {
		for wd := time.Sunday; wd <= time.Saturday; wd++ {
			m := Multiplier(at(hour, wd), rng)
			assert.GreaterOrEqual(t, m, 0.05)
			assert.LessOrEqual(t, m, 1.0)
		}
	}
}

func TestMultiplier_TimeOfDayBands(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	// overnight traffic stays below the jittered evening-peak floor
	for i := 0; i < 200; i++ {
		overnight := Multiplier(at(3, time.Tuesday), rng)
		assert.LessOrEqual(t, overnight, 0.1*1.2)

		evening := Multiplier(at(19, time.Tuesday), rng)
		assert.GreaterOrEqual(t, evening, 1.0*0.8)
	}
}

func TestNextBatch(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 500; i++ {
		params := NextBatch(at(19, time.Wednesday), rng)

		assert.GreaterOrEqual(t, params.Journeys, 1)
		assert.GreaterOrEqual(t, params.JourneysPerSecond, 0.01)
		assert.LessOrEqual(t, params.JourneysPerSecond, 1.0)
		assert.GreaterOrEqual(t, params.Duration, 5*time.Minute)
		assert.LessOrEqual(t, params.Duration, 15*time.Minute)
	}
}
