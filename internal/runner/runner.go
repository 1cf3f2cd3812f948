package runner

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/s-shindeldecker/farm-fresh-simulator/internal/domain"
	"github.com/s-shindeldecker/farm-fresh-simulator/internal/engine"
	"github.com/s-shindeldecker/farm-fresh-simulator/internal/experiment"
	"github.com/s-shindeldecker/farm-fresh-simulator/internal/flags"
	"github.com/s-shindeldecker/farm-fresh-simulator/internal/journal"
	"github.com/s-shindeldecker/farm-fresh-simulator/internal/sink"
	"github.com/s-shindeldecker/farm-fresh-simulator/internal/traffic"
	"github.com/s-shindeldecker/farm-fresh-simulator/internal/usergen"
)

// Pause bounds between continuous-mode batches.
const (
	minBatchPause = 30 * time.Second
	maxBatchPause = 90 * time.Second
)

// JourneyResult is one simulated user's full pass through generation, flag
// evaluation, and event decisioning.
type JourneyResult struct {
	User       domain.UserProfile
	Assignment domain.FlagAssignment
	Variant    domain.Variant
	Events     []domain.SimulatedEvent
}

// Runner drives journeys sequentially: generate a user, evaluate flags,
// journal the assignment, decide events, and emit them in order.
// Cancellation is checked between journeys; an in-flight journey is always
// finished.
type Runner struct {
	gen     *usergen.Generator
	eval    flags.Evaluator
	engine  *engine.Engine
	emitter sink.Emitter
	journal *journal.Writer
	rng     *rand.Rand
	log     *zap.Logger
}

func New(gen *usergen.Generator, eval flags.Evaluator, eng *engine.Engine, emitter sink.Emitter, jw *journal.Writer, rng *rand.Rand, log *zap.Logger) *Runner {
	return &Runner{
		gen:     gen,
		eval:    eval,
		engine:  eng,
		emitter: emitter,
		journal: jw,
		rng:     rng,
		log:     log,
	}
}

// RunJourney simulates one user end to end. Per-event sink errors are
// logged and the remaining events still go out; only a flag-evaluation
// failure aborts the journey.
func (r *Runner) RunJourney(ctx context.Context) (*JourneyResult, error) {
	user := r.gen.NewProfile()

	assignment, detail, err := r.eval.EvaluateAll(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate flags for user %s: %w", user.Key, err)
	}

	if r.journal != nil {
		record := journal.Record{
			Timestamp:        time.Now().UTC(),
			UserKey:          user.Key,
			TrialDaysDetail:  detail.TrialDays,
			HeroBannerDetail: detail.HeroBanner,
			SeasonalBanner:   assignment.SeasonalBanner.Text,
		}
		if err := r.journal.Append(record); err != nil {
			r.log.Warn("Failed to journal journey", zap.Error(err))
		}
	}

	variant := experiment.Classify(assignment.HeroBanner.DisplayText())
	events := r.engine.Decide(user, assignment, variant)

	for _, event := range events {
		if err := r.emitter.Emit(ctx, event, user, assignment.EvaluatedAt); err != nil {
			r.log.Error("Failed to emit event",
				zap.String("event_key", string(event.Key)),
				zap.String("user_key", user.Key),
				zap.Error(err))
		}
	}

	return &JourneyResult{
		User:       user,
		Assignment: assignment,
		Variant:    variant,
		Events:     events,
	}, nil
}

// RunBatch simulates up to journeys users, pacing them at perSecond. It
// stops early without error when the context is cancelled; journeys are
// never interrupted mid-flight.
func (r *Runner) RunBatch(ctx context.Context, journeys int, perSecond float64) (*Stats, error) {
	stats := NewStats()

	var pace time.Duration
	if perSecond > 0 {
		pace = time.Duration(float64(time.Second) / perSecond)
	}

	for i := 0; i < journeys; i++ {
		if ctx.Err() != nil {
			r.log.Info("Batch interrupted",
				zap.Int("completed", stats.TotalUsers),
				zap.Int("planned", journeys))
			break
		}

		result, err := r.RunJourney(ctx)
		if err != nil {
			r.log.Error("Journey failed", zap.Error(err))
			continue
		}
		stats.observe(result)

		if (i+1)%10 == 0 || i+1 == journeys {
			r.log.Info("Progress",
				zap.Int("completed", i+1),
				zap.Int("planned", journeys))
		}

		if pace > 0 && i+1 < journeys {
			sleepCtx(ctx, pace)
		}
	}

	if err := r.emitter.Flush(ctx); err != nil {
		r.log.Error("Failed to flush emitter", zap.Error(err))
	}

	r.logStats(stats)
	return stats, nil
}

// RunContinuous runs traffic-shaped batches until the context is cancelled,
// pausing between batches.
func (r *Runner) RunContinuous(ctx context.Context) error {
	iteration := 0
	for ctx.Err() == nil {
		iteration++
		params := traffic.NextBatch(time.Now(), r.rng)

		r.log.Info("Starting batch",
			zap.Int("iteration", iteration),
			zap.Float64("traffic_multiplier", params.Multiplier),
			zap.Float64("journeys_per_second", params.JourneysPerSecond),
			zap.Duration("duration", params.Duration),
			zap.Int("journeys", params.Journeys))

		if _, err := r.RunBatch(ctx, params.Journeys, params.JourneysPerSecond); err != nil {
			return err
		}

		if ctx.Err() == nil {
			pause := minBatchPause + time.Duration(r.rng.Float64()*float64(maxBatchPause-minBatchPause))
			r.log.Info("Pausing before next batch", zap.Duration("pause", pause))
			sleepCtx(ctx, pause)
		}
	}

	r.log.Info("Continuous simulation stopped", zap.Int("iterations", iteration))
	return nil
}

func (r *Runner) logStats(stats *Stats) {
	fields := []zap.Field{zap.Int("total_users", stats.TotalUsers)}
	for key, count := range stats.Events {
		fields = append(fields, zap.Int(string(key), count))
	}
	r.log.Info("Batch complete", fields...)

	for flag, values := range stats.FlagEvaluations {
		r.log.Info("Flag evaluations",
			zap.String("flag", flag),
			zap.Any("values", values))
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
