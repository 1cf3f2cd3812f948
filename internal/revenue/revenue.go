package revenue

import (
	"math"
	"math/rand"
)

// Base monthly prices by plan type and pricing region.
var basePrices = map[string]map[string]float64{
	"basic":   {"US": 29.99, "CA": 39.99, "UK": 24.99, "EU": 27.99},
	"premium": {"US": 49.99, "CA": 64.99, "UK": 39.99, "EU": 44.99},
	"deluxe":  {"US": 79.99, "CA": 99.99, "UK": 59.99, "EU": 66.99},
}

const trialDaysPerMonth = 30

// Region maps a country to its pricing region. FR and DE share EU pricing.
func Region(country string) string {
	if country == "FR" || country == "DE" {
		return "EU"
	}
	return country
}

// BasePrice looks up the monthly base price for a plan in a country.
// Unknown plan types fall back to basic pricing; unknown regions fall back
// to US pricing within the resolved plan row.
func BasePrice(planType, country string) float64 {
	row, ok := basePrices[planType]
	if !ok {
		row = basePrices["basic"]
	}
	if price, ok := row[Region(country)]; ok {
		return price
	}
	return row["US"]
}

// SampleGross draws a gross revenue amount as the base price scaled by a
// uniform multiplier in [0.9, 1.1]. Fallback path; the engine's primary
// path draws from a per-variant normal distribution instead.
func SampleGross(rng *rand.Rand, planType, country string) float64 {
	return Round2(BasePrice(planType, country) * (0.9 + 0.2*rng.Float64()))
}

// Adjusted computes the trial-adjusted net revenue: the gross amount minus
// the pro-rated cost of the trial period. Never negative.
func Adjusted(gross float64, trialDays int, planType, country string) float64 {
	dailyRate := BasePrice(planType, country) / trialDaysPerMonth
	trialCost := dailyRate * float64(trialDays)
	return math.Max(0, Round2(gross-trialCost))
}

// Round2 rounds to two decimal places.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}
