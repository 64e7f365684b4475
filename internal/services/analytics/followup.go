// Package analytics – follow-up metrics calculator
package analytics

import (
	"time"

	"github.com/crmkit/go-crm-backend/internal/domain"
)

// FollowUpMetricsOf buckets records that require a follow-up by due date,
// relative to now. All comparisons are date-only:
//
//	overdue:       due date strictly before today (a follow-up due exactly
//	               today is NOT overdue)
//	due today:     due date equals today
//	due this week: today <= due date <= today+7 (includes today)
//	due next week: today+7 < due date <= today+14
//
// completion_rate = round((needed - overdue) / needed * 100), defined as 100
// when nothing needs a follow-up. Records with the flag set but no due date
// count toward TotalNeeded only.
func FollowUpMetricsOf(recs []domain.NormalizedInteraction, now time.Time) domain.FollowUpMetrics {
	var m domain.FollowUpMetrics
	today := startOfDay(now)
	weekEnd := today.AddDate(0, 0, 7)
	nextWeekEnd := today.AddDate(0, 0, 14)

	for _, r := range recs {
		if !r.FollowUpNeeded {
			continue
		}
		m.TotalNeeded++
		due := r.EffectiveFollowUpDate()
		if due == nil {
			continue
		}
		day := startOfDay(*due)
		switch {
		case r.IsOverdueFollowUp:
			m.Overdue++
		case sameDay(day, today):
			m.DueToday++
		}
		// The weekly buckets overlap the daily one: due-today is also due
		// this week, matching how the dashboard stacks them.
		switch {
		case !day.Before(today) && !day.After(weekEnd):
			m.DueThisWeek++
		case day.After(weekEnd) && !day.After(nextWeekEnd):
			m.DueNextWeek++
		}
	}

	if m.TotalNeeded == 0 {
		m.CompletionRate = 100
	} else {
		m.CompletionRate = roundPct(m.TotalNeeded-m.Overdue, m.TotalNeeded)
	}
	return m
}

// countCompletedFollowUps counts logged FOLLOW_UP interactions, the engine's
// proxy for a follow-up that was actually carried out.
func countCompletedFollowUps(recs []domain.NormalizedInteraction) int {
	n := 0
	for _, r := range recs {
		if r.Type == domain.InteractionFollowUp {
			n++
		}
	}
	return n
}

// countSince counts interactions dated on or after the cutoff.
func countSince(recs []domain.NormalizedInteraction, cutoff time.Time) int {
	n := 0
	for _, r := range recs {
		if !r.Date.Before(cutoff) {
			n++
		}
	}
	return n
}
