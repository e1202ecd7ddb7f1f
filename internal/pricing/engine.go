// Package pricing computes cost and duration estimates from catalog
// selections. Everything here is a pure function of its inputs: totals
// are recomputed on every call and never cached.
package pricing

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/domain"
)

// defaultFeatureDays is used when a feature's timeline text has no
// parseable leading number.
const defaultFeatureDays = 3

var usdPrinter = message.NewPrinter(language.English)

// Input is the full set of selections feeding a price calculation.
// ProjectType and Timeline may be nil for an incomplete estimate.
type Input struct {
	ProjectType *domain.ProjectType
	Features    []domain.Feature
	Timeline    *domain.TimelineOption
	Complexity  domain.ComplexityLevel
}

// Calculate derives the pricing breakdown for the given selections.
// Multipliers compose strictly in the order base, features, timeline,
// complexity; nothing is rounded until the final duration-to-weeks step.
// A missing project type or timeline yields Complete=false with no total.
func Calculate(in Input) domain.PricingBreakdown {
	b := domain.PricingBreakdown{}

	if in.ProjectType == nil {
		return b
	}

	b.BasePrice = in.ProjectType.BasePrice
	for _, f := range in.Features {
		b.FeaturesPrice += f.Price
	}
	b.Subtotal = b.BasePrice + b.FeaturesPrice

	if in.Timeline == nil {
		return b
	}

	b.Complete = true
	b.TimelineMultiplier = in.Timeline.PriceMultiplier
	b.ComplexityMultiplier = in.Complexity.PriceMultiplier()
	b.TimelineAdjustment = b.Subtotal * (in.Timeline.PriceMultiplier - 1)
	b.TotalPrice = b.Subtotal * b.TimelineMultiplier * b.ComplexityMultiplier
	b.TotalFormatted = FormatUSD(b.TotalPrice)

	b.DurationWeeks = estimateWeeks(in)
	b.DurationText = FormatWeeks(b.DurationWeeks)

	return b
}

// estimateWeeks converts the base duration plus per-feature days into
// whole weeks, after scaling by the timeline's duration multiplier.
func estimateWeeks(in Input) int {
	days := in.ProjectType.BaseDays
	for _, f := range in.Features {
		days += leadingDays(f.TimelineText)
	}

	scaled := int(math.Ceil(float64(days) * in.Timeline.DurationMultiplier))
	return int(math.Ceil(float64(scaled) / 7))
}

// leadingDays parses the leading integer of a timeline text like
// "4-6 days"; malformed text falls back to defaultFeatureDays.
func leadingDays(timeline string) int {
	end := 0
	for end < len(timeline) && timeline[end] >= '0' && timeline[end] <= '9' {
		end++
	}
	if end == 0 {
		return defaultFeatureDays
	}
	n, err := strconv.Atoi(timeline[:end])
	if err != nil {
		return defaultFeatureDays
	}
	return n
}

// FormatUSD renders a price as whole dollars with thousands grouping
func FormatUSD(v float64) string {
	return usdPrinter.Sprintf("$%d", int64(math.Round(v)))
}

// FormatWeeks renders a duration as "1 week" / "N weeks"
func FormatWeeks(weeks int) string {
	if weeks == 1 {
		return "1 week"
	}
	return fmt.Sprintf("%d weeks", weeks)
}

// DeliveryDate projects the estimated delivery date from now
func DeliveryDate(now time.Time, weeks int) string {
	return now.AddDate(0, 0, weeks*7).Format("January 2, 2006")
}
