package engine

import (
	"math"
	"math/rand"
	"time"

	"github.com/s-shindeldecker/farm-fresh-simulator/internal/domain"
	"github.com/s-shindeldecker/farm-fresh-simulator/internal/experiment"
	"github.com/s-shindeldecker/farm-fresh-simulator/internal/revenue"
)

// Downstream behavior probabilities shared by every variant.
const (
	trialToPaidRate    = 0.5
	bannerClickRate    = 0.1
	heroEngagementRate = 0.15
)

// Engine decides the ordered behavioral events for one journey. All
// randomness comes from the injected source, so journeys are reproducible
// under a fixed seed.
type Engine struct {
	rng *rand.Rand
	now func() time.Time
}

func New(rng *rand.Rand) *Engine {
	return &Engine{rng: rng, now: time.Now}
}

// Decide produces the event sequence for a user given their flag assignment
// and classified variant. The order is fixed: page_view, then the
// signup/conversion/revenue chain, then banner_click, then hero_engagement.
// Only the nested chain depends on earlier draws; emission must preserve
// this order for downstream causal-time assumptions.
func (e *Engine) Decide(user domain.UserProfile, assignment domain.FlagAssignment, variant domain.Variant) []domain.SimulatedEvent {
	now := e.now().UTC()
	events := []domain.SimulatedEvent{
		{Key: domain.EventPageView, OccurredAt: now},
	}

	if e.rng.Float64() < experiment.ConversionRate(variant) {
		events = append(events, domain.SimulatedEvent{Key: domain.EventTrialSignup, OccurredAt: now})

		if e.rng.Float64() < trialToPaidRate {
			events = append(events, domain.SimulatedEvent{Key: domain.EventTrialToPaid, OccurredAt: now})

			gross := e.rng.NormFloat64()*experiment.RevenueStdDev + experiment.RevenueMean(variant)
			gross = math.Max(0, revenue.Round2(gross))
			events = append(events, domain.SimulatedEvent{Key: domain.EventTotalRevenue, Value: ptr(gross), OccurredAt: now})

			trialDays := assignment.TrialDays.TrialDays(domain.DefaultTrialDays)
			adjusted := revenue.Adjusted(gross, trialDays, user.PlanType, user.Country)
			events = append(events, domain.SimulatedEvent{Key: domain.EventAdjustedRevenue, Value: ptr(adjusted), OccurredAt: now})
		}
	}

	if assignment.SeasonalBanner.IsTruthy() && e.rng.Float64() < bannerClickRate {
		events = append(events, domain.SimulatedEvent{Key: domain.EventBannerClick, OccurredAt: now})
	}

	if e.rng.Float64() < heroEngagementRate {
		events = append(events, domain.SimulatedEvent{Key: domain.EventHeroEngagement, OccurredAt: now})
	}

	return events
}

func ptr(v float64) *float64 {
	return &v
}
