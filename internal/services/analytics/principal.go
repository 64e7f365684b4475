// Package analytics – principal performance calculator
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/crmkit/go-crm-backend/internal/domain"
)

// PrincipalPerformanceOf rolls up interaction activity per principal (the
// authoring user). When principal is non-empty the result is scoped to just
// that principal; otherwise one entry per distinct principal is returned,
// sorted by engagement score descending (ties broken by principal id for
// deterministic output).
//
// Follow-up bookkeeping per principal:
//   - overdue:   records with an overdue follow-up
//   - pending:   records still flagged for follow-up and not overdue
//   - completed: logged FOLLOW_UP interactions (the engine's proxy for a
//     follow-up that was carried out)
//
// engagement_score = round(0.3*total + 0.4*completed + 0.3*thisWeek) * 10.
// The weights are carried-over business logic with no enforced upper bound.
func PrincipalPerformanceOf(recs []domain.NormalizedInteraction, principal string, now time.Time) []domain.PrincipalPerformance {
	weekStart := startOfDay(now).AddDate(0, 0, -7)
	byPrincipal := map[string]*domain.PrincipalPerformance{}

	for _, r := range recs {
		if principal != "" && r.CreatedBy != principal {
			continue
		}
		p := byPrincipal[r.CreatedBy]
		if p == nil {
			p = &domain.PrincipalPerformance{Principal: r.CreatedBy}
			byPrincipal[r.CreatedBy] = p
		}
		p.TotalInteractions++
		if !r.Date.Before(weekStart) {
			p.ThisWeek++
		}
		if r.Type == domain.InteractionFollowUp {
			p.CompletedFollowUps++
		}
		switch {
		case r.IsOverdueFollowUp:
			p.OverdueFollowUps++
		case r.FollowUpNeeded:
			p.PendingFollowUps++
		}
	}

	// A scoped request for a principal with no records still yields a row of
	// zeros, so the dashboard can render an empty scorecard.
	if principal != "" && byPrincipal[principal] == nil {
		byPrincipal[principal] = &domain.PrincipalPerformance{Principal: principal}
	}

	out := make([]domain.PrincipalPerformance, 0, len(byPrincipal))
	for _, p := range byPrincipal {
		p.EngagementScore = engagementScore(p.TotalInteractions, p.CompletedFollowUps, p.ThisWeek)
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EngagementScore != out[j].EngagementScore {
			return out[i].EngagementScore > out[j].EngagementScore
		}
		return out[i].Principal < out[j].Principal
	})
	return out
}

// engagementScore applies the carried-over scoring formula verbatim.
func engagementScore(total, completed, thisWeek int) int {
	return int(math.Round(0.3*float64(total)+0.4*float64(completed)+0.3*float64(thisWeek))) * 10
}
