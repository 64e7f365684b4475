// Package domain – analytics value types
//
// This file defines the derived, ephemeral types produced by the interaction
// analytics engine: the normalized interaction view, the per-family metric
// results, and the full KPI snapshot. None of these types are persisted; a
// snapshot is replaced wholesale on recomputation and never partially mutated.
package domain

import "time"

// Priority is the derived urgency of a normalized interaction.
type Priority string

// Priority levels, in decreasing urgency.
const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// TrendPeriod selects the granularity of the activity trend calculation.
type TrendPeriod string

// Supported trend periods.
const (
	TrendWeek    TrendPeriod = "week"
	TrendMonth   TrendPeriod = "month"
	TrendQuarter TrendPeriod = "quarter"
)

// Valid reports whether p is a supported trend period.
func (p TrendPeriod) Valid() bool {
	switch p {
	case TrendWeek, TrendMonth, TrendQuarter:
		return true
	}
	return false
}

// NormalizedInteraction is the read-only projection the calculators consume.
// It extends the raw record with day arithmetic and the derived priority.
// Created fresh on every fetch, never persisted, never mutated afterwards.
type NormalizedInteraction struct {
	Interaction

	// DaysSinceInteraction is floor(now - Date) in whole days.
	DaysSinceInteraction int `json:"days_since_interaction"`

	// DaysToFollowUp is floor(follow-up date - now) in whole days, negative
	// when the date has passed. Nil when no effective follow-up date exists.
	DaysToFollowUp *int `json:"days_to_follow_up,omitempty"`

	// IsOverdueFollowUp is true iff a follow-up is required, its date is set,
	// and that date is strictly before the start of today.
	IsOverdueFollowUp bool `json:"is_overdue_follow_up"`

	// Priority is derived from overdue state, type, and opportunity linkage.
	Priority Priority `json:"priority"`
}

// InteractionFilter is the query contract against the record source. All
// fields are optional and combine with logical AND; the zero value matches
// every non-deleted record.
type InteractionFilter struct {
	// Search is a free-text term matched against subject and notes. A
	// non-empty search term always bypasses the analytics cache.
	Search string

	// Types restricts results to the listed interaction types.
	Types []InteractionType

	// OpportunityID / ContactID / Organization scope to one entity.
	OpportunityID string
	ContactID     string
	Organization  string

	// DateFrom / DateTo bound the interaction date (inclusive). Zero values
	// leave the corresponding side unbounded.
	DateFrom time.Time
	DateTo   time.Time

	// FollowUpNeeded filters on the follow-up flag when non-nil.
	FollowUpNeeded *bool

	// Principal scopes to records authored by one principal.
	Principal string
}

// Empty reports whether the filter matches all records. Only empty filters
// produce cache-stable results.
func (f InteractionFilter) Empty() bool {
	return f.Search == "" &&
		len(f.Types) == 0 &&
		f.OpportunityID == "" &&
		f.ContactID == "" &&
		f.Organization == "" &&
		f.DateFrom.IsZero() &&
		f.DateTo.IsZero() &&
		f.FollowUpNeeded == nil &&
		f.Principal == ""
}

// TypeCount is one row of the type distribution.
type TypeCount struct {
	Type       InteractionType `json:"type"`
	Count      int             `json:"count"`
	Percentage int             `json:"percentage"` // round(count/total*100), 0 when total is 0
	Trend      string          `json:"trend"`      // "increasing" | "stable" | "decreasing"
}

// TypeDistribution covers all known interaction types in canonical order,
// including zero-count types.
type TypeDistribution struct {
	Total  int         `json:"total"`
	ByType []TypeCount `json:"by_type"`
}

// FollowUpMetrics summarizes outstanding follow-up work. The due buckets use
// date-only comparison: due today is not overdue, and the this-week bucket
// includes today through today+7.
type FollowUpMetrics struct {
	TotalNeeded    int `json:"total_needed"`
	Overdue        int `json:"overdue"`
	DueToday       int `json:"due_today"`
	DueThisWeek    int `json:"due_this_week"`
	DueNextWeek    int `json:"due_next_week"`
	CompletionRate int `json:"completion_rate"` // 100 when TotalNeeded is 0
}

// PeriodActivity describes one bounded activity period.
type PeriodActivity struct {
	Start               time.Time `json:"start"`
	End                 time.Time `json:"end"`
	Interactions        int       `json:"interactions"`
	UniqueContacts      int       `json:"unique_contacts"`
	UniqueOpportunities int       `json:"unique_opportunities"`
	AvgDailyRate        float64   `json:"avg_daily_rate"`
}

// GrowthMetrics holds the period-over-period change in percent per
// dimension. Each value is 0 when the previous period had no activity.
type GrowthMetrics struct {
	Interactions        int `json:"interactions"`
	UniqueContacts      int `json:"unique_contacts"`
	UniqueOpportunities int `json:"unique_opportunities"`
	AvgDailyRate        int `json:"avg_daily_rate"`
}

// ActivityTrend compares the current period against the immediately
// preceding period of equal length and extrapolates the current daily rate.
type ActivityTrend struct {
	Period      TrendPeriod    `json:"period"`
	Current     PeriodActivity `json:"current"`
	Previous    PeriodActivity `json:"previous"`
	Growth      GrowthMetrics  `json:"growth"`
	Projected30 int            `json:"projected_30_days"`
	Projected90 int            `json:"projected_90_days"`
}

// PrincipalPerformance rolls up one principal's interaction activity.
type PrincipalPerformance struct {
	Principal          string `json:"principal"`
	TotalInteractions  int    `json:"total_interactions"`
	ThisWeek           int    `json:"this_week"`
	CompletedFollowUps int    `json:"completed_follow_ups"`
	PendingFollowUps   int    `json:"pending_follow_ups"`
	OverdueFollowUps   int    `json:"overdue_follow_ups"`
	EngagementScore    int    `json:"engagement_score"`
}

// ResponseTimeStats describes the distribution of hours between an
// interaction and its follow-up date, computed only over records that carry
// both dates with a positive gap.
type ResponseTimeStats struct {
	SampleSize  int     `json:"sample_size"`
	MeanHours   float64 `json:"mean_hours"`
	MedianHours float64 `json:"median_hours"`
	MinHours    float64 `json:"min_hours"`
	MaxHours    float64 `json:"max_hours"`
}

// EfficiencyMetrics are the cross-cutting derived scores applied by the
// aggregation step. The exact weights are carried-over business logic, not
// an algorithmic contract.
type EfficiencyMetrics struct {
	ConversionRate      int `json:"conversion_rate"`       // % of records linked to an opportunity
	FollowUpSuccessRate int `json:"follow_up_success_rate"`
	InteractionDensity  int `json:"interaction_density"` // round(total/uniqueContacts*10)
	EngagementQuality   int `json:"engagement_quality"`
}

// BasicCounts are the headline numbers of a snapshot.
type BasicCounts struct {
	TotalInteractions   int `json:"total_interactions"`
	UniqueContacts      int `json:"unique_contacts"`
	UniqueOpportunities int `json:"unique_opportunities"`
	ThisWeek            int `json:"this_week"`
	ThisMonth           int `json:"this_month"`
}

// KPISnapshot is the complete computed metrics bundle for one filter
// context. It is owned by the cache layer and replaced wholesale on every
// recomputation.
type KPISnapshot struct {
	Totals        BasicCounts            `json:"totals"`
	Types         TypeDistribution       `json:"type_distribution"`
	FollowUps     FollowUpMetrics        `json:"follow_ups"`
	ResponseTimes ResponseTimeStats      `json:"response_times"`
	Trend         ActivityTrend          `json:"activity_trend"`
	Principals    []PrincipalPerformance `json:"principals"`
	Efficiency    EfficiencyMetrics      `json:"efficiency"`
	ComputedAt    time.Time              `json:"computed_at"`
}

// Degradation tags a result that was served from synthetic fallback data.
// The zero value means the result was computed from live records.
type Degradation struct {
	Degraded bool   `json:"degraded"`
	Reason   string `json:"reason,omitempty"`
}

// CalculationStatus describes the engine's last run for callers that want to
// surface degradation instead of silently displaying fallback numbers.
type CalculationStatus struct {
	IsCalculating bool      `json:"is_calculating"`
	LastError     string    `json:"last_error,omitempty"`
	LastUpdated   time.Time `json:"last_updated"`
}
