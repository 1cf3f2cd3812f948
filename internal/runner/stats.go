package runner

import (
	"github.com/s-shindeldecker/farm-fresh-simulator/internal/domain"
)

// Stats accumulates journey outcomes across one batch.
type Stats struct {
	TotalUsers      int
	Events          map[domain.EventKey]int
	FlagEvaluations map[string]map[string]int
}

func NewStats() *Stats {
	return &Stats{
		Events:          make(map[domain.EventKey]int),
		FlagEvaluations: make(map[string]map[string]int),
	}
}

func (s *Stats) observe(result *JourneyResult) {
	s.TotalUsers++
	for _, event := range result.Events {
		s.Events[event.Key]++
	}
	s.observeFlag("trialDays", result.Assignment.TrialDays)
	s.observeFlag("seasonalBanner", result.Assignment.SeasonalBanner)
	s.observeFlag("heroBanner", result.Assignment.HeroBanner)
}

func (s *Stats) observeFlag(name string, value domain.FlagValue) {
	if s.FlagEvaluations[name] == nil {
		s.FlagEvaluations[name] = make(map[string]int)
	}
	s.FlagEvaluations[name][value.String()]++
}
