package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ld "github.com/launchdarkly/go-server-sdk/v7"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/s-shindeldecker/farm-fresh-simulator/internal/config"
	"github.com/s-shindeldecker/farm-fresh-simulator/internal/engine"
	"github.com/s-shindeldecker/farm-fresh-simulator/internal/flags"
	"github.com/s-shindeldecker/farm-fresh-simulator/internal/journal"
	"github.com/s-shindeldecker/farm-fresh-simulator/internal/logger"
	"github.com/s-shindeldecker/farm-fresh-simulator/internal/runner"
	"github.com/s-shindeldecker/farm-fresh-simulator/internal/sink"
	"github.com/s-shindeldecker/farm-fresh-simulator/internal/sink/warehouse"
	"github.com/s-shindeldecker/farm-fresh-simulator/internal/usergen"
)

var (
	flagRecords   int
	flagPerSecond float64
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate a fixed number of user journeys",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSimulator(func(ctx context.Context, sim *simulator) error {
			_, err := sim.runner.RunBatch(ctx, flagRecords, flagPerSecond)
			return err
		})
	},
}

var continuousCmd = &cobra.Command{
	Use:   "continuous",
	Short: "Run traffic-shaped simulation batches until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSimulator(func(ctx context.Context, sim *simulator) error {
			sim.startHealthServer()
			return sim.runner.RunContinuous(ctx)
		})
	},
}

func init() {
	runCmd.Flags().IntVar(&flagRecords, "records", 100, "number of user journeys to simulate")
	runCmd.Flags().Float64Var(&flagPerSecond, "per-second", 1.0, "journeys per second")
}

// simulator bundles the wired components for one invocation.
type simulator struct {
	cfg             *config.Config
	log             *zap.Logger
	runner          *runner.Runner
	warehouseClient *warehouse.Client
	cleanup         []func()
}

// withSimulator loads config, wires the components for the selected mode,
// installs signal handling, and runs fn. Configuration failures abort
// before any journey runs; an interrupt cancels the context so the runner
// finishes the current journey, flushes, and exits zero.
func withSimulator(fn func(ctx context.Context, sim *simulator) error) error {
	if err := validateMode(flagMode); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Service.Environment)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sim, err := newSimulator(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer sim.close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("Received interrupt, stopping after the current journey")
		cancel()
	}()

	log.Info("Starting simulation",
		zap.String("mode", flagMode),
		zap.String("environment", cfg.Service.Environment))

	return fn(ctx, sim)
}

func newSimulator(ctx context.Context, cfg *config.Config, log *zap.Logger) (*simulator, error) {
	sim := &simulator{cfg: cfg, log: log}

	if flagMode == modeWarehouse {
		if err := cfg.ValidateWarehouse(); err != nil {
			return nil, err
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	ldClient, err := ld.MakeClient(cfg.LaunchDarkly.SDKKey,
		time.Duration(cfg.LaunchDarkly.InitTimeoutSec)*time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LaunchDarkly client: %w", err)
	}
	sim.cleanup = append(sim.cleanup, func() {
		if err := ldClient.Close(); err != nil {
			log.Error("Failed to close LaunchDarkly client", zap.Error(err))
		}
	})

	var emitter sink.Emitter = sink.NewTracker(ldClient, log)
	if flagMode == modeWarehouse {
		chClient, err := warehouse.NewClient(ctx, &cfg.ClickHouse, log)
		if err != nil {
			sim.close()
			return nil, err
		}
		sim.warehouseClient = chClient
		sim.cleanup = append(sim.cleanup, func() {
			if err := chClient.Close(); err != nil {
				log.Error("Failed to close ClickHouse client", zap.Error(err))
			}
		})

		whSink := warehouse.NewSink(chClient, cfg.ClickHouse.Table, rng, log)
		if err := whSink.InitSchema(ctx); err != nil {
			sim.close()
			return nil, err
		}
		emitter = whSink
	}

	jw, err := journal.Open(cfg.Simulation.JournalPath)
	if err != nil {
		sim.close()
		return nil, err
	}
	sim.cleanup = append(sim.cleanup, func() {
		if err := jw.Close(); err != nil {
			log.Error("Failed to close journal", zap.Error(err))
		}
	})

	sim.runner = runner.New(
		usergen.New(rng),
		flags.NewLDEvaluator(ldClient),
		engine.New(rng),
		emitter,
		jw,
		rng,
		log,
	)
	return sim, nil
}

// startHealthServer exposes /health for continuous deployments, pinging the
// warehouse when one is wired.
func (s *simulator) startHealthServer() {
	go func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			if s.warehouseClient != nil {
				if err := s.warehouseClient.Ping(r.Context()); err != nil {
					s.log.Warn("Health check failed", zap.Error(err))
					w.WriteHeader(http.StatusServiceUnavailable)
					return
				}
			}
			w.WriteHeader(http.StatusOK)
		})

		addr := ":" + s.cfg.Service.HealthCheckPort
		s.log.Info("Health check server starting", zap.String("address", addr))
		if err := http.ListenAndServe(addr, mux); err != nil {
			s.log.Error("Health check server error", zap.Error(err))
		}
	}()
}

func (s *simulator) close() {
	for i := len(s.cleanup) - 1; i >= 0; i-- {
		s.cleanup[i]()
	}
	s.cleanup = nil
}
