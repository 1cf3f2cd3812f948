package flags

import (
	"context"

	"github.com/s-shindeldecker/farm-fresh-simulator/internal/domain"
)

// Flag keys the simulation evaluates per journey.
const (
	FlagTrialDays      = "number-of-days-trial"
	FlagSeasonalBanner = "seasonal-sale-banner-text"
	FlagHeroBanner     = "hero-banner-text"
)

// EvalDetail carries the evaluation metadata recorded in the journey
// journal for the experiment flags.
type EvalDetail struct {
	TrialDays  domain.FlagDetail
	HeroBanner domain.FlagDetail
}

// Evaluator resolves all experiment flags for one user. Implementations are
// treated as authoritative and side-effect-free.
type Evaluator interface {
	EvaluateAll(ctx context.Context, user domain.UserProfile) (domain.FlagAssignment, EvalDetail, error)
}
