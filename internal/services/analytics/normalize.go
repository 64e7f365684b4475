// Package analytics implements the interaction analytics/KPI engine: record
// normalization, the per-family metric calculators, the aggregation
// orchestrator with its time-bounded cache, and the synthetic fallback
// provider. The engine is an explicit component instance (see Service) that
// owns its cache; it is constructed once per process and injected into the
// HTTP layer.
//
// This file implements normalization: the projection of raw interaction
// records into the read-only view the calculators consume. Normalized views
// are created fresh on every fetch and never persisted.
package analytics

import (
	"math"
	"time"

	"github.com/crmkit/go-crm-backend/internal/domain"
)

// startOfDay returns midnight of the day containing t, in t's location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// wholeDays returns floor(d / 24h) as an int, correct for negative spans.
func wholeDays(d time.Duration) int {
	return int(math.Floor(d.Hours() / 24))
}

// sameDay reports whether a and b fall on the same calendar day.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Normalize projects raw interaction records into normalized views relative
// to now. The input is not mutated; output order follows input order.
//
// Derivations, per record:
//   - DaysSinceInteraction = floor((now - date) / 1 day)
//   - DaysToFollowUp = floor((follow-up date - now) / 1 day), nil when no
//     effective follow-up date exists (flag off or date missing)
//   - IsOverdueFollowUp = follow-up needed AND date present AND date strictly
//     before the start of today
//   - Priority per priorityOf (first matching rule wins)
func Normalize(recs []domain.Interaction, now time.Time) []domain.NormalizedInteraction {
	out := make([]domain.NormalizedInteraction, 0, len(recs))
	today := startOfDay(now)
	for _, r := range recs {
		n := domain.NormalizedInteraction{
			Interaction:          r,
			DaysSinceInteraction: wholeDays(now.Sub(r.Date)),
		}
		if due := r.EffectiveFollowUpDate(); due != nil {
			d := wholeDays(due.Sub(now))
			n.DaysToFollowUp = &d
			n.IsOverdueFollowUp = due.Before(today)
		}
		n.Priority = priorityOf(n)
		out = append(out, n)
	}
	return out
}

// priorityOf derives the interaction priority. The rule order is a fixed
// tie-break sequence; the first matching rule wins.
//
//	High:   overdue follow-up, or a DEMO linked to an opportunity
//	Medium: follow-up needed, or a CALL linked to an opportunity, or IN_PERSON
//	Low:    everything else
func priorityOf(n domain.NormalizedInteraction) domain.Priority {
	switch {
	case n.IsOverdueFollowUp:
		return domain.PriorityHigh
	case n.Type == domain.InteractionDemo && n.HasOpportunity():
		return domain.PriorityHigh
	case n.FollowUpNeeded:
		return domain.PriorityMedium
	case n.Type == domain.InteractionCall && n.HasOpportunity():
		return domain.PriorityMedium
	case n.Type == domain.InteractionInPerson:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

// roundPct returns round(part/total*100) guarding the zero denominator.
func roundPct(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// roundRatio returns round(a/b) guarding the zero denominator.
func roundRatio(a, b float64) int {
	if b == 0 {
		return 0
	}
	return int(math.Round(a / b))
}
