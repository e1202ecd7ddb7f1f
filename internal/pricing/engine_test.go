package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/domain"
)

var webApp = domain.ProjectType{
	ID:        domain.ProjectWebApp,
	Name:      "Web Application",
	BasePrice: 5000,
	BaseDays:  35,
}

var stripe = domain.Feature{
	ID:           "stripe-payment",
	Name:         "Stripe Payment Gateway",
	Price:        1200,
	TimelineText: "4-6 days",
}

var (
	standard = domain.TimelineOption{ID: domain.TimelineStandard, Name: "Standard Timeline", PriceMultiplier: 1.0, DurationMultiplier: 1.0}
	urgent   = domain.TimelineOption{ID: domain.TimelineUrgent, Name: "Urgent Delivery", PriceMultiplier: 1.5, DurationMultiplier: 0.5}
	flexible = domain.TimelineOption{ID: domain.TimelineFlexible, Name: "Flexible Schedule", PriceMultiplier: 0.85, DurationMultiplier: 1.25}
)

func TestCalculateTotals(t *testing.T) {
	t.Run("web app with stripe on standard timeline", func(t *testing.T) {
		b := Calculate(Input{
			ProjectType: &webApp,
			Features:    []domain.Feature{stripe},
			Timeline:    &standard,
			Complexity:  domain.ComplexityMedium,
		})

		assert.True(t, b.Complete)
		assert.Equal(t, 5000.0, b.BasePrice)
		assert.Equal(t, 1200.0, b.FeaturesPrice)
		assert.Equal(t, 6200.0, b.Subtotal)
		assert.Equal(t, 6200.0, b.TotalPrice)
		assert.Equal(t, 0.0, b.TimelineAdjustment)
		assert.Equal(t, "$6,200", b.TotalFormatted)
	})

	t.Run("urgent timeline surcharge", func(t *testing.T) {
		b := Calculate(Input{
			ProjectType: &webApp,
			Features:    []domain.Feature{stripe},
			Timeline:    &urgent,
			Complexity:  domain.ComplexityMedium,
		})

		assert.Equal(t, 9300.0, b.TotalPrice)
		assert.Equal(t, 3100.0, b.TimelineAdjustment)
		assert.Equal(t, "$9,300", b.TotalFormatted)
	})

	t.Run("flexible timeline discount is negative adjustment", func(t *testing.T) {
		b := Calculate(Input{
			ProjectType: &webApp,
			Timeline:    &flexible,
			Complexity:  domain.ComplexityMedium,
		})

		assert.InDelta(t, 5000*0.85, b.TotalPrice, 0.001)
		assert.InDelta(t, 5000*-0.15, b.TimelineAdjustment, 0.001)
	})

	t.Run("multipliers compose in fixed order", func(t *testing.T) {
		features := []domain.Feature{
			{ID: "a", Price: 800, TimelineText: "3-5 days"},
			{ID: "b", Price: 1500, TimelineText: "5-7 days"},
		}
		for _, timeline := range []domain.TimelineOption{standard, urgent, flexible} {
			for _, level := range domain.ValidComplexityLevels() {
				b := Calculate(Input{
					ProjectType: &webApp,
					Features:    features,
					Timeline:    &timeline,
					Complexity:  level,
				})
				want := (5000.0 + 800 + 1500) * timeline.PriceMultiplier * level.PriceMultiplier()
				assert.InDelta(t, want, b.TotalPrice, 0.001)
			}
		}
	})

	t.Run("complexity scales the total", func(t *testing.T) {
		b := Calculate(Input{
			ProjectType: &webApp,
			Timeline:    &standard,
			Complexity:  domain.ComplexityEnterprise,
		})

		assert.Equal(t, 10000.0, b.TotalPrice)
		// The timeline adjustment reports only the timeline's share
		assert.Equal(t, 0.0, b.TimelineAdjustment)
	})
}

func TestCalculateIncomplete(t *testing.T) {
	t.Run("no project type", func(t *testing.T) {
		b := Calculate(Input{Timeline: &standard})
		assert.False(t, b.Complete)
		assert.Zero(t, b.TotalPrice)
		assert.Empty(t, b.TotalFormatted)
	})

	t.Run("no timeline still reports subtotal", func(t *testing.T) {
		b := Calculate(Input{ProjectType: &webApp, Features: []domain.Feature{stripe}})
		assert.False(t, b.Complete)
		assert.Equal(t, 6200.0, b.Subtotal)
		assert.Zero(t, b.TotalPrice)
		assert.Zero(t, b.DurationWeeks)
	})
}

func TestEstimateDuration(t *testing.T) {
	t.Run("base days only", func(t *testing.T) {
		b := Calculate(Input{ProjectType: &webApp, Timeline: &standard, Complexity: domain.ComplexityMedium})
		// 35 days -> 5 weeks
		assert.Equal(t, 5, b.DurationWeeks)
		assert.Equal(t, "5 weeks", b.DurationText)
	})

	t.Run("feature days add before scaling", func(t *testing.T) {
		b := Calculate(Input{
			ProjectType: &webApp,
			Features:    []domain.Feature{stripe}, // +4 days
			Timeline:    &urgent,                  // x0.5
			Complexity:  domain.ComplexityMedium,
		})
		// ceil(39 * 0.5) = 20 days -> ceil(20/7) = 3 weeks
		assert.Equal(t, 3, b.DurationWeeks)
	})

	t.Run("single week wording", func(t *testing.T) {
		landing := domain.ProjectType{ID: domain.ProjectLandingPage, Name: "Landing Page", BasePrice: 1500, BaseDays: 10}
		b := Calculate(Input{ProjectType: &landing, Timeline: &urgent, Complexity: domain.ComplexityMedium})
		// ceil(10 * 0.5) = 5 days -> 1 week
		assert.Equal(t, 1, b.DurationWeeks)
		assert.Equal(t, "1 week", b.DurationText)
	})
}

func TestLeadingDays(t *testing.T) {
	assert.Equal(t, 4, leadingDays("4-6 days"))
	assert.Equal(t, 10, leadingDays("10 days"))
	assert.Equal(t, defaultFeatureDays, leadingDays("about a week"))
	assert.Equal(t, defaultFeatureDays, leadingDays(""))
}

func TestFormatUSD(t *testing.T) {
	assert.Equal(t, "$0", FormatUSD(0))
	assert.Equal(t, "$950", FormatUSD(950))
	assert.Equal(t, "$6,200", FormatUSD(6200))
	assert.Equal(t, "$1,234,568", FormatUSD(1234567.89))
}

func TestDeliveryDate(t *testing.T) {
	now := time.Date(2025, time.March, 3, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "March 17, 2025", DeliveryDate(now, 2))
}
