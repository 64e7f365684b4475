// Analytics HTTP handlers.
//
// This file exposes REST endpoints for the interaction analytics engine:
//   - GET    /analytics/kpis               (full KPI snapshot)
//   - GET    /analytics/type-distribution  (per-type counts and trends)
//   - GET    /analytics/follow-ups         (follow-up buckets and rate)
//   - GET    /analytics/trend              (period-over-period activity)
//   - GET    /analytics/principals         (per-principal rollups)
//   - GET    /analytics/status             (engine calculation status)
//   - POST   /analytics/cache/clear        (drop cached results)
//
// Handlers are transport-thin: they parse the filter from query parameters,
// call the engine, and translate results into HTTP responses. The engine
// never returns errors; degraded results are delivered with HTTP 200 and a
// degradation tag so dashboards keep rendering.
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/crmkit/go-crm-backend/internal/domain"
)

//
// Service contracts (context-aware)
//

// AnalyticsService defines the KPI operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type AnalyticsService interface {
	// CalculateKPIs produces the full KPI snapshot for the filter context.
	CalculateKPIs(ctx context.Context, f domain.InteractionFilter) (domain.KPISnapshot, domain.Degradation)
	// TypeDistribution computes per-type counts, percentages, and trends.
	TypeDistribution(ctx context.Context, f domain.InteractionFilter) (domain.TypeDistribution, domain.Degradation)
	// FollowUpMetrics computes the follow-up buckets and completion rate.
	FollowUpMetrics(ctx context.Context, f domain.InteractionFilter) (domain.FollowUpMetrics, domain.Degradation)
	// ActivityTrend compares the current period against the previous one.
	ActivityTrend(ctx context.Context, f domain.InteractionFilter, period domain.TrendPeriod) (domain.ActivityTrend, domain.Degradation)
	// PrincipalPerformance rolls up activity per principal.
	PrincipalPerformance(ctx context.Context, f domain.InteractionFilter, principal string) ([]domain.PrincipalPerformance, domain.Degradation)
	// Interactions returns normalized records matching the filter.
	Interactions(ctx context.Context, f domain.InteractionFilter) ([]domain.NormalizedInteraction, domain.Degradation)
	// ClearCache drops every cached result.
	ClearCache()
	// Status reports the engine's last run.
	Status() domain.CalculationStatus
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for interactions and analytics. It
// depends on the abstract service interface to keep transport concerns
// separate from the calculation engine.
type Handlers struct {
	analyticsSvc AnalyticsService
}

// New constructs and returns a Handlers instance bound to the given service.
func New(analyticsSvc AnalyticsService) *Handlers {
	return &Handlers{analyticsSvc: analyticsSvc}
}

//
// DTOs
//

// KPIResponse wraps the full snapshot with its degradation tag.
type KPIResponse struct {
	Data        domain.KPISnapshot `json:"data"`
	Degradation domain.Degradation `json:"degradation"`
}

// TypeDistributionResponse wraps the distribution with its degradation tag.
type TypeDistributionResponse struct {
	Data        domain.TypeDistribution `json:"data"`
	Degradation domain.Degradation      `json:"degradation"`
}

// FollowUpResponse wraps the follow-up metrics with their degradation tag.
type FollowUpResponse struct {
	Data        domain.FollowUpMetrics `json:"data"`
	Degradation domain.Degradation     `json:"degradation"`
}

// TrendResponse wraps the activity trend with its degradation tag.
type TrendResponse struct {
	Data        domain.ActivityTrend `json:"data"`
	Degradation domain.Degradation   `json:"degradation"`
}

// PrincipalsResponse wraps the principal rollups with their degradation tag.
type PrincipalsResponse struct {
	Data        []domain.PrincipalPerformance `json:"data"`
	Degradation domain.Degradation            `json:"degradation"`
}

//
// Helpers
//

// filterFromQuery builds the interaction filter from the request's query
// parameters. Unknown interaction types and unparseable dates are rejected
// by the caller via the returned ok flag.
func filterFromQuery(c *gin.Context) (domain.InteractionFilter, bool) {
	f := domain.InteractionFilter{
		Search:        strings.TrimSpace(c.Query("search")),
		OpportunityID: strings.TrimSpace(c.Query("opportunity_id")),
		ContactID:     strings.TrimSpace(c.Query("contact_id")),
		Organization:  strings.TrimSpace(c.Query("organization")),
		Principal:     strings.TrimSpace(c.Query("principal")),
	}

	if raw := strings.TrimSpace(c.Query("types")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			typ := domain.InteractionType(strings.ToUpper(strings.TrimSpace(part)))
			if !typ.Valid() {
				fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unknown interaction type: "+string(typ))
				return f, false
			}
			f.Types = append(f.Types, typ)
		}
	}

	var ok bool
	if f.DateFrom, ok = parseDateParam(c, "date_from"); !ok {
		return f, false
	}
	if f.DateTo, ok = parseDateParam(c, "date_to"); !ok {
		return f, false
	}

	if raw := strings.TrimSpace(c.Query("follow_up_needed")); raw != "" {
		switch strings.ToLower(raw) {
		case "true", "1":
			v := true
			f.FollowUpNeeded = &v
		case "false", "0":
			v := false
			f.FollowUpNeeded = &v
		default:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "follow_up_needed must be true or false")
			return f, false
		}
	}
	return f, true
}

// parseDateParam reads an optional date query parameter, accepting RFC 3339
// timestamps and bare dates (2006-01-02). A missing parameter yields the
// zero time with ok=true.
func parseDateParam(c *gin.Context, name string) (time.Time, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return time.Time{}, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	fail(c, http.StatusBadRequest, ErrCodeBadRequest, name+" must be RFC 3339 or YYYY-MM-DD")
	return time.Time{}, false
}

//
// Handlers
//

// GetKPIs godoc
// @ID          getKPIs
// @Summary     Full KPI snapshot
// @Description Computes the complete metrics bundle for the filter context. Degraded results are returned with HTTP 200 and a degradation tag.
// @Tags        Analytics
// @Produce     json
//
// @Param       search            query  string  false "Free-text search over subject and notes (bypasses the cache)"
// @Param       types             query  string  false "Comma-separated interaction types"  example(EMAIL,CALL)
// @Param       opportunity_id    query  string  false "Scope to one opportunity"
// @Param       contact_id        query  string  false "Scope to one contact"
// @Param       organization      query  string  false "Scope to one organization"
// @Param       principal         query  string  false "Scope to one principal"
// @Param       date_from         query  string  false "Earliest interaction date (inclusive)"  example(2026-01-01)
// @Param       date_to           query  string  false "Latest interaction date (inclusive)"    example(2026-06-30)
// @Param       follow_up_needed  query  bool    false "Filter on the follow-up flag"
//
// @Success     200  {object}  handlers.KPIResponse
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Router      /analytics/kpis [get]
func (h *Handlers) GetKPIs(c *gin.Context) {
	f, valid := filterFromQuery(c)
	if !valid {
		return
	}
	snap, deg := h.analyticsSvc.CalculateKPIs(c.Request.Context(), f)
	ok(c, http.StatusOK, KPIResponse{Data: snap, Degradation: deg})
}

// GetTypeDistribution godoc
// @ID          getTypeDistribution
// @Summary     Interaction type distribution
// @Description Returns per-type counts, percentages, and 30-day trend labels. Every known type is present, including zero counts.
// @Tags        Analytics
// @Produce     json
//
// @Param       search        query  string  false "Free-text search (bypasses the cache)"
// @Param       organization  query  string  false "Scope to one organization"
//
// @Success     200  {object}  handlers.TypeDistributionResponse
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Router      /analytics/type-distribution [get]
func (h *Handlers) GetTypeDistribution(c *gin.Context) {
	f, valid := filterFromQuery(c)
	if !valid {
		return
	}
	dist, deg := h.analyticsSvc.TypeDistribution(c.Request.Context(), f)
	ok(c, http.StatusOK, TypeDistributionResponse{Data: dist, Degradation: deg})
}

// GetFollowUps godoc
// @ID          getFollowUps
// @Summary     Follow-up metrics
// @Description Returns the outstanding follow-up buckets (overdue, due today, this week, next week) and the completion rate.
// @Tags        Analytics
// @Produce     json
//
// @Param       principal  query  string  false "Scope to one principal"
//
// @Success     200  {object}  handlers.FollowUpResponse
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Router      /analytics/follow-ups [get]
func (h *Handlers) GetFollowUps(c *gin.Context) {
	f, valid := filterFromQuery(c)
	if !valid {
		return
	}
	m, deg := h.analyticsSvc.FollowUpMetrics(c.Request.Context(), f)
	ok(c, http.StatusOK, FollowUpResponse{Data: m, Degradation: deg})
}

// GetTrend godoc
// @ID          getTrend
// @Summary     Activity trend
// @Description Compares activity in the current period against the preceding period of equal length. Supported periods: week, month, quarter.
// @Tags        Analytics
// @Produce     json
//
// @Param       period  query  string  false "Trend period"  Enums(week, month, quarter)  default(month)
//
// @Success     200  {object}  handlers.TrendResponse
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Router      /analytics/trend [get]
func (h *Handlers) GetTrend(c *gin.Context) {
	f, valid := filterFromQuery(c)
	if !valid {
		return
	}
	period := domain.TrendPeriod(strings.ToLower(strings.TrimSpace(c.Query("period"))))
	if period != "" && !period.Valid() {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "period must be week, month, or quarter")
		return
	}
	tr, deg := h.analyticsSvc.ActivityTrend(c.Request.Context(), f, period)
	ok(c, http.StatusOK, TrendResponse{Data: tr, Degradation: deg})
}

// GetPrincipals godoc
// @ID          getPrincipals
// @Summary     Principal performance
// @Description Rolls up interaction activity per principal, sorted by engagement score. Scope to one principal via the id query parameter.
// @Tags        Analytics
// @Produce     json
//
// @Param       id  query  string  false "Principal id to scope to"
//
// @Success     200  {object}  handlers.PrincipalsResponse
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Router      /analytics/principals [get]
func (h *Handlers) GetPrincipals(c *gin.Context) {
	f, valid := filterFromQuery(c)
	if !valid {
		return
	}
	principal := strings.TrimSpace(c.Query("id"))
	rows, deg := h.analyticsSvc.PrincipalPerformance(c.Request.Context(), f, principal)
	ok(c, http.StatusOK, PrincipalsResponse{Data: rows, Degradation: deg})
}

// GetStatus godoc
// @ID          getAnalyticsStatus
// @Summary     Engine calculation status
// @Description Reports whether a calculation is in flight, the last degradation reason, and when results were last refreshed.
// @Tags        Analytics
// @Produce     json
//
// @Success     200  {object}  domain.CalculationStatus
// @Router      /analytics/status [get]
func (h *Handlers) GetStatus(c *gin.Context) {
	ok(c, http.StatusOK, h.analyticsSvc.Status())
}

// ClearCache godoc
// @ID          clearAnalyticsCache
// @Summary     Clear cached results
// @Description Drops every cached KPI result; the next read per metric family recomputes from the record store.
// @Tags        Analytics
//
// @Success     204  {string} string "No Content"
// @Router      /analytics/cache/clear [post]
func (h *Handlers) ClearCache(c *gin.Context) {
	h.analyticsSvc.ClearCache()
	noContent(c)
}
