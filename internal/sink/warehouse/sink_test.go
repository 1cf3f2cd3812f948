package warehouse

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/s-shindeldecker/farm-fresh-simulator/internal/domain"
)

func TestNewMetricEvent_ReportingLagWindow(t *testing.T) {
	sink := NewSink(nil, "metric_events", rand.New(rand.NewSource(1)), zap.NewNop())
	evalTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 1000; i++ {
		record := sink.newMetricEvent(domain.SimulatedEvent{Key: domain.EventTrialSignup}, "user-1", evalTime)

		assert.True(t, record.ReceivedTime.After(evalTime),
			"received time must be strictly after flag evaluation")
		assert.False(t, record.ReceivedTime.Before(evalTime.Add(5*time.Minute)))
		assert.False(t, record.ReceivedTime.After(evalTime.Add(10*time.Minute)))
	}
}

func TestNewMetricEvent_RecordShape(t *testing.T) {
	sink := NewSink(nil, "metric_events", rand.New(rand.NewSource(2)), zap.NewNop())
	evalTime := time.Now().UTC()

	value := 42.5
	withValue := sink.newMetricEvent(domain.SimulatedEvent{
		Key:   domain.EventTotalRevenue,
		Value: &value,
	}, "user-1", evalTime)

	assert.Equal(t, "total_revenue", withValue.EventKey)
	assert.Equal(t, "user", withValue.ContextKind)
	assert.Equal(t, "user-1", withValue.ContextKey)
	assert.NotNil(t, withValue.EventValue)
	assert.Equal(t, 42.5, *withValue.EventValue)
	assert.NotEmpty(t, withValue.EventID)

	withoutValue := sink.newMetricEvent(domain.SimulatedEvent{
		Key: domain.EventTrialSignup,
	}, "user-1", evalTime)

	assert.Nil(t, withoutValue.EventValue)
	assert.NotEqual(t, withValue.EventID, withoutValue.EventID)
}
