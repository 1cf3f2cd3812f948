package domain

import "time"

// EventKey names a behavioral event in the fixed outcome vocabulary.
type EventKey string

const (
	EventPageView        EventKey = "page_view"
	EventTrialSignup     EventKey = "trial_signup"
	EventTrialToPaid     EventKey = "trial_to_paid_conversion"
	EventTotalRevenue    EventKey = "total_revenue"
	EventAdjustedRevenue EventKey = "adjusted_revenue"
	EventBannerClick     EventKey = "banner_click"
	EventHeroEngagement  EventKey = "hero_engagement"
)

// SimulatedEvent is one decided behavioral event. Value is set only for
// revenue events.
type SimulatedEvent struct {
	Key        EventKey
	Value      *float64
	OccurredAt time.Time
}

// MetricEvent is the structured record inserted into the warehouse,
// following the metric-events schema of the experimentation platform.
type MetricEvent struct {
	EventID      string
	EventKey     string
	ContextKind  string
	ContextKey   string
	EventValue   *float64
	ReceivedTime time.Time
}
