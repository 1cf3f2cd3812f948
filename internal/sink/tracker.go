package sink

import (
	"context"
	"time"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
	ld "github.com/launchdarkly/go-server-sdk/v7"
	"go.uber.org/zap"

	"github.com/s-shindeldecker/farm-fresh-simulator/internal/domain"
	"github.com/s-shindeldecker/farm-fresh-simulator/internal/flags"
)

// Tracker emits events as direct SDK track calls. Delivery timing is the
// SDK's concern; Flush forces the event buffer out.
type Tracker struct {
	client *ld.LDClient
	log    *zap.Logger
}

func NewTracker(client *ld.LDClient, log *zap.Logger) *Tracker {
	return &Tracker{client: client, log: log}
}

func (t *Tracker) Emit(ctx context.Context, event domain.SimulatedEvent, user domain.UserProfile, flagEvalTime time.Time) error {
	ldCtx := flags.BuildContext(user)

	if event.Value != nil {
		t.log.Debug("Tracking metric event",
			zap.String("event_key", string(event.Key)),
			zap.String("user_key", user.Key),
			zap.Float64("value", *event.Value))
		return t.client.TrackMetric(string(event.Key), ldCtx, *event.Value, ldvalue.Null())
	}

	t.log.Debug("Tracking event",
		zap.String("event_key", string(event.Key)),
		zap.String("user_key", user.Key))
	return t.client.TrackEvent(string(event.Key), ldCtx)
}

func (t *Tracker) Flush(ctx context.Context) error {
	t.client.Flush()
	return nil
}

// Close is a no-op; the SDK client is owned and closed by the caller that
// created it, since the evaluator shares it.
func (t *Tracker) Close() error {
	return nil
}
