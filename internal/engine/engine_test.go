package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/s-shindeldecker/farm-fresh-simulator/internal/domain"
	"github.com/s-shindeldecker/farm-fresh-simulator/internal/revenue"
)

func testUser() domain.UserProfile {
	return domain.UserProfile{
		Key:      "user-1",
		Country:  "US",
		PlanType: "basic",
	}
}

func testAssignment(seasonalBanner string) domain.FlagAssignment {
	return domain.FlagAssignment{
		TrialDays:      domain.NumericFlag(7),
		SeasonalBanner: domain.TextFlag(seasonalBanner),
		HeroBanner:     domain.StructuredFlag("Next Gen Experience"),
	}
}

func indexOf(events []domain.SimulatedEvent, key domain.EventKey) int {
	for i, ev := range events {
		if ev.Key == key {
			return i
		}
	}
	return -1
}

func TestDecide_PageViewAlwaysFirst(t *testing.T) {
	eng := New(rand.New(rand.NewSource(1)))
	for i := 0; i < 100; i++ {
		events := eng.Decide(testUser(), testAssignment("Summer Sale"), domain.VariantNextGen)
		assert.NotEmpty(t, events)
		assert.Equal(t, domain.EventPageView, events[0].Key)
	}
}

func TestDecide_CausalChain(t *testing.T) {
	eng := New(rand.New(rand.NewSource(2)))

	for i := 0; i < 5000; i++ {
		events := eng.Decide(testUser(), testAssignment("Summer Sale"), domain.VariantNextGen)

		signup := indexOf(events, domain.EventTrialSignup)
		conversion := indexOf(events, domain.EventTrialToPaid)
		gross := indexOf(events, domain.EventTotalRevenue)
		adjusted := indexOf(events, domain.EventAdjustedRevenue)

		if conversion >= 0 {
			assert.True(t, signup >= 0 && signup < conversion,
				"conversion without a preceding signup")
		}
		if gross >= 0 || adjusted >= 0 {
			assert.True(t, conversion >= 0, "revenue without a conversion")
			assert.True(t, conversion < gross && gross < adjusted,
				"revenue events out of order")
		}
	}
}

func TestDecide_RevenueValues(t *testing.T) {
	eng := New(rand.New(rand.NewSource(3)))
	sawRevenue := false

	for i := 0; i < 5000; i++ {
		events := eng.Decide(testUser(), testAssignment(""), domain.VariantNextGen)

		for _, ev := range events {
			switch ev.Key {
			case domain.EventTotalRevenue, domain.EventAdjustedRevenue:
				assert.NotNil(t, ev.Value)
			default:
				assert.Nil(t, ev.Value)
			}
		}

		gross := indexOf(events, domain.EventTotalRevenue)
		adjusted := indexOf(events, domain.EventAdjustedRevenue)
		if gross >= 0 {
			sawRevenue = true
			assert.GreaterOrEqual(t, *events[gross].Value, 0.0)
			assert.GreaterOrEqual(t, *events[adjusted].Value, 0.0)
			assert.LessOrEqual(t, *events[adjusted].Value, *events[gross].Value)

			expected := revenue.Adjusted(*events[gross].Value, 7, "basic", "US")
			assert.Equal(t, expected, *events[adjusted].Value)
		}
	}
	assert.True(t, sawRevenue, "no revenue events in 5000 journeys")
}

func TestDecide_SignupRateConverges(t *testing.T) {
	eng := New(rand.New(rand.NewSource(4)))
	assignment := testAssignment("")

	const journeys = 20000
	signups := 0
	for i := 0; i < journeys; i++ {
		events := eng.Decide(testUser(), assignment, domain.VariantNextGen)
		if indexOf(events, domain.EventTrialSignup) >= 0 {
			signups++
		}
	}

	rate := float64(signups) / journeys
	assert.InDelta(t, 0.09, rate, 0.01)
}

func TestDecide_BannerClickRequiresSeasonalBanner(t *testing.T) {
	eng := New(rand.New(rand.NewSource(5)))

	sawClick := false
	for i := 0; i < 2000; i++ {
		events := eng.Decide(testUser(), testAssignment(""), domain.VariantControl)
		assert.Equal(t, -1, indexOf(events, domain.EventBannerClick),
			"banner_click fired without a seasonal banner")

		events = eng.Decide(testUser(), testAssignment("Holiday Sale"), domain.VariantControl)
		if indexOf(events, domain.EventBannerClick) >= 0 {
			sawClick = true
		}
	}
	assert.True(t, sawClick, "banner_click never fired with a seasonal banner")
}

func TestDecide_MalformedTrialDaysUsesDefault(t *testing.T) {
	eng := New(rand.New(rand.NewSource(6)))
	assignment := testAssignment("")
	assignment.TrialDays = domain.TextFlag("not-a-number")

	for i := 0; i < 5000; i++ {
		events := eng.Decide(testUser(), assignment, domain.VariantNextGen)
		gross := indexOf(events, domain.EventTotalRevenue)
		if gross < 0 {
			continue
		}
		adjusted := indexOf(events, domain.EventAdjustedRevenue)
		expected := revenue.Adjusted(*events[gross].Value, domain.DefaultTrialDays, "basic", "US")
		assert.Equal(t, expected, *events[adjusted].Value)
		return
	}
	t.Fatal("no revenue journey sampled")
}
