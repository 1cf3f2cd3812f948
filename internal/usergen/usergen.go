package usergen

import (
	"math/rand"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	"github.com/s-shindeldecker/farm-fresh-simulator/internal/domain"
)

// Fixed attribute enumerations sampled uniformly per profile.
var (
	Countries    = []string{"US", "UK", "FR", "DE", "CA"}
	PetTypes     = []string{"dog", "cat", "both"}
	PlanTypes    = []string{"basic", "premium", "trial"}
	PaymentTypes = []string{"credit_card", "paypal", "apple_pay", "google_pay", "bank"}
)

// StatesByCountry lists the candidate sub-regions per modeled country.
// US states come from the faker instead; countries outside this map get an
// empty state.
var StatesByCountry = map[string][]string{
	"CA": {"ON", "QC", "BC", "AB", "MB", "SK", "NS", "NB", "NL", "PE", "YT", "NT", "NU"},
	"FR": {"Paris", "Bouches-du-Rhône", "Nord", "Rhône", "Haute-Garonne"},
	"DE": {"Berlin", "Bavaria", "North Rhine-Westphalia", "Baden-Württemberg", "Hesse"},
	"UK": {"Greater London", "West Midlands", "Greater Manchester", "West Yorkshire", "Kent"},
}

// Generator produces synthetic user profiles.
type Generator struct {
	rng   *rand.Rand
	faker *gofakeit.Faker
}

// New creates a generator drawing from the given source.
func New(rng *rand.Rand) *Generator {
	return &Generator{
		rng:   rng,
		faker: gofakeit.New(rng.Uint64()),
	}
}

// NewProfile samples one user profile. Purely generative; the only side
// effect is randomness consumption.
func (g *Generator) NewProfile() domain.UserProfile {
	country := g.pick(Countries)

	var state string
	if country == "US" {
		state = g.faker.State()
	} else if candidates, ok := StatesByCountry[country]; ok {
		state = g.pick(candidates)
	}

	return domain.UserProfile{
		Key:         uuid.NewString(),
		Name:        g.faker.Name(),
		Country:     country,
		State:       state,
		PetType:     g.pick(PetTypes),
		PlanType:    g.pick(PlanTypes),
		PaymentType: g.pick(PaymentTypes),
	}
}

func (g *Generator) pick(values []string) string {
	return values[g.rng.Intn(len(values))]
}
