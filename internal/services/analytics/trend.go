// Package analytics – activity trend calculator
package analytics

import (
	"math"
	"time"

	"github.com/crmkit/go-crm-backend/internal/domain"
)

// periodDays maps a trend period to its trailing-window length in days.
// Periods are fixed-length trailing windows ending at now, so the current
// and previous periods are equal in length by construction.
func periodDays(p domain.TrendPeriod) int {
	switch p {
	case domain.TrendWeek:
		return 7
	case domain.TrendQuarter:
		return 90
	default:
		return 30
	}
}

// ActivityTrendOf compares activity in the current trailing window against
// the immediately preceding window of equal length and extrapolates the
// current daily rate to 30- and 90-day horizons.
//
// growth = round((current - previous) / previous * 100) per dimension,
// defined as 0 when the previous period had no activity (never NaN/Inf).
func ActivityTrendOf(recs []domain.NormalizedInteraction, period domain.TrendPeriod, now time.Time) domain.ActivityTrend {
	if !period.Valid() {
		period = domain.TrendMonth
	}
	days := periodDays(period)
	currentStart := now.AddDate(0, 0, -days)
	previousStart := now.AddDate(0, 0, -2*days)

	current := periodActivityOf(recs, currentStart, now, days)
	previous := periodActivityOf(recs, previousStart, currentStart, days)

	return domain.ActivityTrend{
		Period:   period,
		Current:  current,
		Previous: previous,
		Growth: domain.GrowthMetrics{
			Interactions:        growthPct(current.Interactions, previous.Interactions),
			UniqueContacts:      growthPct(current.UniqueContacts, previous.UniqueContacts),
			UniqueOpportunities: growthPct(current.UniqueOpportunities, previous.UniqueOpportunities),
			AvgDailyRate:        growthPctF(current.AvgDailyRate, previous.AvgDailyRate),
		},
		Projected30: int(math.Round(current.AvgDailyRate * 30)),
		Projected90: int(math.Round(current.AvgDailyRate * 90)),
	}
}

// periodActivityOf aggregates one half-open window (start, end].
func periodActivityOf(recs []domain.NormalizedInteraction, start, end time.Time, days int) domain.PeriodActivity {
	contacts := map[string]struct{}{}
	opportunities := map[string]struct{}{}
	count := 0
	for _, r := range recs {
		if !r.Date.After(start) || r.Date.After(end) {
			continue
		}
		count++
		if r.HasContact() {
			contacts[*r.ContactID] = struct{}{}
		}
		if r.HasOpportunity() {
			opportunities[*r.OpportunityID] = struct{}{}
		}
	}
	rate := 0.0
	if days > 0 {
		rate = float64(count) / float64(days)
	}
	return domain.PeriodActivity{
		Start:               start,
		End:                 end,
		Interactions:        count,
		UniqueContacts:      len(contacts),
		UniqueOpportunities: len(opportunities),
		AvgDailyRate:        rate,
	}
}

// growthPct is the period-over-period change in percent; 0 when there is no
// previous baseline.
func growthPct(current, previous int) int {
	if previous == 0 {
		return 0
	}
	return int(math.Round(float64(current-previous) / float64(previous) * 100))
}

// growthPctF is growthPct over float dimensions (daily rates).
func growthPctF(current, previous float64) int {
	if previous == 0 {
		return 0
	}
	return int(math.Round((current - previous) / previous * 100))
}
