package experiment

import (
	"strings"

	"github.com/s-shindeldecker/farm-fresh-simulator/internal/domain"
)

// RevenueStdDev is the standard deviation of the per-variant revenue draw.
const RevenueStdDev = 5.0

var conversionRates = map[domain.Variant]float64{
	domain.VariantControl: 0.05,
	domain.VariantOne:     0.07,
	domain.VariantNextGen: 0.09,
}

var revenueMeans = map[domain.Variant]float64{
	domain.VariantControl: 30.0,
	domain.VariantOne:     35.0,
	domain.VariantNextGen: 40.0,
}

// Classify maps hero banner text to an experiment variant. The checks are a
// priority cascade: the first matching rule wins, unmatched text defaults
// to Control.
func Classify(bannerText string) domain.Variant {
	text := strings.ToLower(bannerText)
	switch {
	case strings.Contains(text, "control"):
		return domain.VariantControl
	case strings.Contains(text, "next"):
		return domain.VariantNextGen
	case strings.Contains(text, "variant"), strings.Contains(text, "top"):
		return domain.VariantOne
	default:
		return domain.VariantControl
	}
}

// ConversionRate returns the trial-signup probability for a variant.
func ConversionRate(v domain.Variant) float64 {
	if rate, ok := conversionRates[v]; ok {
		return rate
	}
	return conversionRates[domain.VariantControl]
}

// RevenueMean returns the mean of the gross revenue distribution for a
// variant.
func RevenueMean(v domain.Variant) float64 {
	if mean, ok := revenueMeans[v]; ok {
		return mean
	}
	return revenueMeans[domain.VariantControl]
}
