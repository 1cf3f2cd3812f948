package flags

import (
	"context"
	"encoding/json"
	"time"

	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	"github.com/launchdarkly/go-sdk-common/v3/ldreason"
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
	ld "github.com/launchdarkly/go-server-sdk/v7"

	"github.com/s-shindeldecker/farm-fresh-simulator/internal/domain"
)

// bannerTextField is the display-text field of the structured hero banner
// flag value.
const bannerTextField = "banner-text"

// LDEvaluator evaluates flags through the LaunchDarkly server SDK.
type LDEvaluator struct {
	client *ld.LDClient
}

func NewLDEvaluator(client *ld.LDClient) *LDEvaluator {
	return &LDEvaluator{client: client}
}

// BuildContext maps a user profile onto an SDK evaluation context.
func BuildContext(user domain.UserProfile) ldcontext.Context {
	return ldcontext.NewBuilder(user.Key).
		Kind("user").
		Anonymous(false).
		Name(user.Name).
		SetString("country", user.Country).
		SetString("state", user.State).
		SetString("petType", user.PetType).
		SetString("planType", user.PlanType).
		SetString("paymentType", user.PaymentType).
		Build()
}

// EvaluateAll resolves the three experiment flags for the user, capturing
// evaluation detail for the journal. The assignment's EvaluatedAt is the
// causal anchor for every event timestamp derived from it.
func (e *LDEvaluator) EvaluateAll(ctx context.Context, user domain.UserProfile) (domain.FlagAssignment, EvalDetail, error) {
	ldCtx := BuildContext(user)

	trialDays, trialDetail, err := e.client.IntVariationDetail(FlagTrialDays, ldCtx, domain.DefaultTrialDays)
	if err != nil {
		return domain.FlagAssignment{}, EvalDetail{}, err
	}

	seasonalBanner, err := e.client.StringVariation(FlagSeasonalBanner, ldCtx, "")
	if err != nil {
		return domain.FlagAssignment{}, EvalDetail{}, err
	}

	heroBanner, heroDetail, err := e.client.JSONVariationDetail(FlagHeroBanner, ldCtx, ldvalue.Null())
	if err != nil {
		return domain.FlagAssignment{}, EvalDetail{}, err
	}

	assignment := domain.FlagAssignment{
		TrialDays:      domain.NumericFlag(float64(trialDays)),
		SeasonalBanner: domain.TextFlag(seasonalBanner),
		HeroBanner:     FlagValueFromLD(heroBanner),
		EvaluatedAt:    time.Now().UTC(),
	}

	detail := EvalDetail{
		TrialDays:  flagDetail(trialDays, trialDetail),
		HeroBanner: flagDetail(ldValueAny(heroBanner), heroDetail),
	}

	return assignment, detail, nil
}

// FlagValueFromLD converts an SDK value into the tagged flag-value shape
// the classifier and engine consume.
func FlagValueFromLD(v ldvalue.Value) domain.FlagValue {
	switch v.Type() {
	case ldvalue.ObjectType:
		return domain.StructuredFlag(v.GetByKey(bannerTextField).StringValue())
	case ldvalue.NumberType:
		return domain.NumericFlag(v.Float64Value())
	default:
		return domain.TextFlag(v.StringValue())
	}
}

func flagDetail(value any, detail ldreason.EvaluationDetail) domain.FlagDetail {
	var index *int
	if detail.VariationIndex.IsDefined() {
		i := detail.VariationIndex.IntValue()
		index = &i
	}

	reason, err := json.Marshal(detail.Reason)
	if err != nil {
		reason = nil
	}

	return domain.FlagDetail{
		Value:          value,
		VariationIndex: index,
		Reason:         reason,
	}
}

func ldValueAny(v ldvalue.Value) any {
	var out any
	if err := json.Unmarshal([]byte(v.JSONString()), &out); err != nil {
		return v.String()
	}
	return out
}
