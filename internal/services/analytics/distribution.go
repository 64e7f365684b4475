// Package analytics – type distribution calculator
//
// A pure function over the normalized record set. It never mutates its input
// and shares no state with the other calculators, so results are stable for
// a given input and independently testable.
package analytics

import (
	"time"

	"github.com/crmkit/go-crm-backend/internal/domain"
)

// Baseline window for the per-type trend label. The current window is the
// trailing 30 days; the baseline is the 30 days before that.
const trendWindowDays = 30

// Trend labels attached to each type count.
const (
	trendIncreasing = "increasing"
	trendStable     = "stable"
	trendDecreasing = "decreasing"
)

// TypeDistributionOf counts interactions per type and derives per-type
// percentages and trend labels. Every known type appears in the output in
// canonical order, including zero-count types, so consumers never have to
// guard against missing keys.
//
// Percentage is round(count/total*100), 0 when the set is empty. The trend
// label compares the trailing 30-day count against the preceding 30-day
// baseline; with no baseline activity the label defaults to "stable".
func TypeDistributionOf(recs []domain.NormalizedInteraction, now time.Time) domain.TypeDistribution {
	counts := make(map[domain.InteractionType]int, len(domain.AllInteractionTypes))
	current := make(map[domain.InteractionType]int, len(domain.AllInteractionTypes))
	baseline := make(map[domain.InteractionType]int, len(domain.AllInteractionTypes))

	windowStart := now.AddDate(0, 0, -trendWindowDays)
	baselineStart := now.AddDate(0, 0, -2*trendWindowDays)

	for _, r := range recs {
		counts[r.Type]++
		switch {
		case r.Date.After(windowStart):
			current[r.Type]++
		case r.Date.After(baselineStart):
			baseline[r.Type]++
		}
	}

	dist := domain.TypeDistribution{
		Total:  len(recs),
		ByType: make([]domain.TypeCount, 0, len(domain.AllInteractionTypes)),
	}
	for _, typ := range domain.AllInteractionTypes {
		dist.ByType = append(dist.ByType, domain.TypeCount{
			Type:       typ,
			Count:      counts[typ],
			Percentage: roundPct(counts[typ], dist.Total),
			Trend:      trendLabel(current[typ], baseline[typ]),
		})
	}
	return dist
}

// trendLabel classifies current-window activity against the baseline. A
// ±10% band around the baseline reads as stable; no baseline reads as
// stable regardless of current activity.
func trendLabel(current, baseline int) string {
	if baseline == 0 {
		return trendStable
	}
	switch {
	case float64(current) > float64(baseline)*1.1:
		return trendIncreasing
	case float64(current) < float64(baseline)*0.9:
		return trendDecreasing
	default:
		return trendStable
	}
}
