// Package analytics – cross-cutting derived metrics
//
// Response-time statistics and efficiency scores are applied by the
// aggregation step on top of the per-family calculators. Like the
// calculators they are pure functions; every ratio guards its denominator so
// an empty record set yields documented defaults instead of NaN.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/crmkit/go-crm-backend/internal/domain"
)

// ResponseTimeStatsOf measures the gap in hours between an interaction and
// its follow-up date, over records that carry both dates with a strictly
// positive gap. An empty sample yields the zero value.
func ResponseTimeStatsOf(recs []domain.NormalizedInteraction) domain.ResponseTimeStats {
	var gaps []float64
	for _, r := range recs {
		due := r.EffectiveFollowUpDate()
		if due == nil {
			continue
		}
		h := due.Sub(r.Date).Hours()
		if h > 0 {
			gaps = append(gaps, h)
		}
	}
	if len(gaps) == 0 {
		return domain.ResponseTimeStats{}
	}
	sort.Float64s(gaps)

	sum := 0.0
	for _, g := range gaps {
		sum += g
	}
	n := len(gaps)
	median := gaps[n/2]
	if n%2 == 0 {
		median = (gaps[n/2-1] + gaps[n/2]) / 2
	}
	return domain.ResponseTimeStats{
		SampleSize:  n,
		MeanHours:   round2(sum / float64(n)),
		MedianHours: round2(median),
		MinHours:    round2(gaps[0]),
		MaxHours:    round2(gaps[n-1]),
	}
}

// EfficiencyMetricsOf derives the blended efficiency scores:
//
//	conversion rate:        % of records linked to an opportunity
//	follow-up success rate: the follow-up completion rate
//	interaction density:    round(total / uniqueContacts * 10)
//	engagement quality:     round((0.4*oppLinked + 0.3*completedFollowUps +
//	                        0.3*thisWeek) / (0.1*total))
//
// All denominators are zero-guarded; an empty record set scores 0 across the
// board except the success rate, which inherits the 100% empty default.
func EfficiencyMetricsOf(recs []domain.NormalizedInteraction, followUps domain.FollowUpMetrics, now time.Time) domain.EfficiencyMetrics {
	total := len(recs)
	withOpportunity := 0
	contacts := map[string]struct{}{}
	for _, r := range recs {
		if r.HasOpportunity() {
			withOpportunity++
		}
		if r.HasContact() {
			contacts[*r.ContactID] = struct{}{}
		}
	}
	thisWeek := countSince(recs, startOfDay(now).AddDate(0, 0, -7))
	completed := countCompletedFollowUps(recs)

	quality := 0
	if total > 0 {
		blend := 0.4*float64(withOpportunity) + 0.3*float64(completed) + 0.3*float64(thisWeek)
		quality = roundRatio(blend, 0.1*float64(total))
	}

	return domain.EfficiencyMetrics{
		ConversionRate:      roundPct(withOpportunity, total),
		FollowUpSuccessRate: followUps.CompletionRate,
		InteractionDensity:  roundRatio(float64(total)*10, float64(len(contacts))),
		EngagementQuality:   quality,
	}
}

// round2 rounds to two decimal places for presentation-stable hour values.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
