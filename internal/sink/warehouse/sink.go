package warehouse

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/s-shindeldecker/farm-fresh-simulator/internal/domain"
)

// Reporting lag bounds for delayed records. A record's received time is the
// flag evaluation time plus a uniform offset in this window, keeping every
// event strictly after its causing evaluation.
const (
	minReportingLag = 5 * time.Minute
	maxReportingLag = 10 * time.Minute
)

// Sink inserts metric-event records into ClickHouse, one record per emit.
// A failed insert propagates to the caller; the caller logs and continues
// with the next record.
type Sink struct {
	client *Client
	table  string
	rng    *rand.Rand
	log    *zap.Logger
}

func NewSink(client *Client, table string, rng *rand.Rand, log *zap.Logger) *Sink {
	return &Sink{client: client, table: table, rng: rng, log: log}
}

// InitSchema creates the metric events table if it does not exist
func (s *Sink) InitSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		event_id String,
		event_key LowCardinality(String),
		context_kind LowCardinality(String),
		context_key String,
		event_value Nullable(Float64),
		received_time DateTime64(3, 'UTC')
	) ENGINE = MergeTree
	PRIMARY KEY (event_id)
	ORDER BY (event_id, received_time)
	PARTITION BY toYYYYMM(received_time)
	SETTINGS index_granularity = 8192
	`, s.table)

	if err := s.client.Conn().Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create %s table: %w", s.table, err)
	}

	s.log.Info("ClickHouse schema initialized successfully")
	return nil
}

// Emit builds the delayed record for one event and inserts it.
func (s *Sink) Emit(ctx context.Context, event domain.SimulatedEvent, user domain.UserProfile, flagEvalTime time.Time) error {
	record := s.newMetricEvent(event, user.Key, flagEvalTime)

	query := fmt.Sprintf(`
	INSERT INTO %s (event_id, event_key, context_kind, context_key, event_value, received_time)
	VALUES (?, ?, ?, ?, ?, ?)
	`, s.table)

	err := s.client.Conn().Exec(ctx, query,
		record.EventID,
		record.EventKey,
		record.ContextKind,
		record.ContextKey,
		record.EventValue,
		record.ReceivedTime,
	)
	if err != nil {
		return fmt.Errorf("failed to insert metric event %s: %w", record.EventKey, err)
	}

	s.log.Debug("Inserted metric event",
		zap.String("event_key", record.EventKey),
		zap.String("context_key", record.ContextKey))
	return nil
}

// Flush is a no-op; records are inserted synchronously.
func (s *Sink) Flush(ctx context.Context) error {
	return nil
}

// Close is a no-op; the client connection is owned by the caller.
func (s *Sink) Close() error {
	return nil
}

func (s *Sink) newMetricEvent(event domain.SimulatedEvent, userKey string, flagEvalTime time.Time) domain.MetricEvent {
	lag := minReportingLag + time.Duration(s.rng.Float64()*float64(maxReportingLag-minReportingLag))

	return domain.MetricEvent{
		EventID:      uuid.NewString(),
		EventKey:     string(event.Key),
		ContextKind:  "user",
		ContextKey:   userKey,
		EventValue:   event.Value,
		ReceivedTime: flagEvalTime.Add(lag).UTC(),
	}
}
