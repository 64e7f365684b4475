// Package analytics: aggregation orchestrator.
//
// Service composes the fetcher and the per-family calculators into one
// engine instance. It is the only component that reads from or writes to
// the cache, and the only place where calculator failures are caught: a
// panic anywhere in a computation is recovered at this boundary, logged,
// and masked with the fallback provider's synthetic result, so the HTTP
// layer never sees a hard failure from analytics. Callers that care can
// inspect the Degradation tag on each result or the engine's Status.
package analytics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/crmkit/go-crm-backend/internal/domain"
)

// Service is the interaction analytics engine. Construct it once with
// NewService and inject it where needed; it owns its cache and status, so
// two instances are fully isolated (important for tests).
type Service struct {
	// Fetcher is the engine's record source with failure masking.
	Fetcher *Fetcher
	// Cache holds per-family results with a fixed expiry.
	Cache *Cache
	// Fallback supplies synthetic results when a computation fails.
	Fallback FallbackProvider
	// TrendPeriod is the default activity-trend granularity.
	TrendPeriod domain.TrendPeriod
	// Now is the clock; defaults to time.Now when nil.
	Now func() time.Time

	statusMu sync.Mutex
	status   domain.CalculationStatus
}

// NewService constructs an analytics engine over the given database handle
// and record source. A non-positive ttl falls back to DefaultCacheTTL; an
// unknown period falls back to monthly.
func NewService(db *gorm.DB, src InteractionSource, ttl time.Duration, period domain.TrendPeriod) *Service {
	if !period.Valid() {
		period = domain.TrendMonth
	}
	return &Service{
		Fetcher:     &Fetcher{DB: db, Source: src},
		Cache:       NewCache(ttl),
		TrendPeriod: period,
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// buildSnapshot assembles the full KPI snapshot from one normalized record
// set. Pure; shared by the orchestrator and the fallback provider so
// synthetic snapshots stay consistent with real ones.
func buildSnapshot(recs []domain.NormalizedInteraction, period domain.TrendPeriod, now time.Time) domain.KPISnapshot {
	contacts := map[string]struct{}{}
	opportunities := map[string]struct{}{}
	for _, r := range recs {
		if r.HasContact() {
			contacts[*r.ContactID] = struct{}{}
		}
		if r.HasOpportunity() {
			opportunities[*r.OpportunityID] = struct{}{}
		}
	}
	followUps := FollowUpMetricsOf(recs, now)

	return domain.KPISnapshot{
		Totals: domain.BasicCounts{
			TotalInteractions:   len(recs),
			UniqueContacts:      len(contacts),
			UniqueOpportunities: len(opportunities),
			ThisWeek:            countSince(recs, startOfDay(now).AddDate(0, 0, -7)),
			ThisMonth:           countSince(recs, startOfDay(now).AddDate(0, 0, -30)),
		},
		Types:         TypeDistributionOf(recs, now),
		FollowUps:     followUps,
		ResponseTimes: ResponseTimeStatsOf(recs),
		Trend:         ActivityTrendOf(recs, period, now),
		Principals:    PrincipalPerformanceOf(recs, "", now),
		Efficiency:    EfficiencyMetricsOf(recs, followUps, now),
		ComputedAt:    now,
	}
}

// run is the shared orchestration path: cache lookup (bypassed for free-text
// searches), fetch with failure masking, computation with panic recovery,
// and cache fill. compute produces the family value from the normalized
// records; fallback produces the synthetic value when compute panics.
//
// Clean results for cache-stable filters are stored; degraded results are
// never cached, so the engine retries the real path on the next call.
func (s *Service) run(
	ctx context.Context,
	family string,
	f domain.InteractionFilter,
	compute func(recs []domain.NormalizedInteraction, now time.Time) any,
	fallback func(now time.Time) any,
) (out any, deg domain.Degradation) {
	key := cacheKey(family, f)
	if f.Search != "" {
		kpiCacheEvents.WithLabelValues(family, "bypass").Inc()
	} else {
		if v, ok := s.Cache.Get(key); ok {
			kpiCacheEvents.WithLabelValues(family, "hit").Inc()
			return v, domain.Degradation{}
		}
		kpiCacheEvents.WithLabelValues(family, "miss").Inc()
	}

	s.setCalculating(true)
	defer s.setCalculating(false)
	start := time.Now()
	defer func() {
		kpiDuration.WithLabelValues(family).Observe(time.Since(start).Seconds())
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("family", family).
				Msg("kpi calculation failed; serving fallback result")
			kpiFallbacks.WithLabelValues("compute").Inc()
			out = fallback(s.now())
			deg = domain.Degradation{Degraded: true, Reason: fmt.Sprintf("calculation failed: %v", r)}
			s.recordResult(deg)
		}
	}()

	recs, deg := s.Fetcher.Fetch(ctx, f)
	out = compute(recs, s.now())
	kpiComputations.WithLabelValues(family).Inc()
	s.recordResult(deg)

	if f.Search == "" && !deg.Degraded {
		s.Cache.Set(key, out)
	}
	return out, deg
}

// CalculateKPIs produces the full KPI snapshot for the filter context.
func (s *Service) CalculateKPIs(ctx context.Context, f domain.InteractionFilter) (domain.KPISnapshot, domain.Degradation) {
	v, deg := s.run(ctx, familySnapshot, f,
		func(recs []domain.NormalizedInteraction, now time.Time) any {
			return buildSnapshot(recs, s.TrendPeriod, now)
		},
		func(now time.Time) any { return s.Fallback.Snapshot(s.TrendPeriod, now) },
	)
	return v.(domain.KPISnapshot), deg
}

// TypeDistribution computes the per-type counts, percentages, and trend
// labels for the filter context.
func (s *Service) TypeDistribution(ctx context.Context, f domain.InteractionFilter) (domain.TypeDistribution, domain.Degradation) {
	v, deg := s.run(ctx, familyDistribution, f,
		func(recs []domain.NormalizedInteraction, now time.Time) any {
			return TypeDistributionOf(recs, now)
		},
		func(now time.Time) any { return TypeDistributionOf(s.Fallback.NormalizedRecords(now), now) },
	)
	return v.(domain.TypeDistribution), deg
}

// FollowUpMetrics computes the follow-up buckets and completion rate for
// the filter context.
func (s *Service) FollowUpMetrics(ctx context.Context, f domain.InteractionFilter) (domain.FollowUpMetrics, domain.Degradation) {
	v, deg := s.run(ctx, familyFollowUps, f,
		func(recs []domain.NormalizedInteraction, now time.Time) any {
			return FollowUpMetricsOf(recs, now)
		},
		func(now time.Time) any { return FollowUpMetricsOf(s.Fallback.NormalizedRecords(now), now) },
	)
	return v.(domain.FollowUpMetrics), deg
}

// ActivityTrend computes period-over-period activity. An invalid period
// falls back to the engine default.
func (s *Service) ActivityTrend(ctx context.Context, f domain.InteractionFilter, period domain.TrendPeriod) (domain.ActivityTrend, domain.Degradation) {
	if !period.Valid() {
		period = s.TrendPeriod
	}
	// The period is part of the cache identity; fold it into the filter
	// fingerprint through the family name.
	family := familyTrend + ":" + string(period)
	v, deg := s.run(ctx, family, f,
		func(recs []domain.NormalizedInteraction, now time.Time) any {
			return ActivityTrendOf(recs, period, now)
		},
		func(now time.Time) any { return ActivityTrendOf(s.Fallback.NormalizedRecords(now), period, now) },
	)
	return v.(domain.ActivityTrend), deg
}

// PrincipalPerformance rolls up per-principal activity, optionally scoped
// to one principal id.
func (s *Service) PrincipalPerformance(ctx context.Context, f domain.InteractionFilter, principal string) ([]domain.PrincipalPerformance, domain.Degradation) {
	family := familyPrincipals
	if principal != "" {
		family += ":" + principal
	}
	v, deg := s.run(ctx, family, f,
		func(recs []domain.NormalizedInteraction, now time.Time) any {
			return PrincipalPerformanceOf(recs, principal, now)
		},
		func(now time.Time) any {
			return PrincipalPerformanceOf(s.Fallback.NormalizedRecords(now), principal, now)
		},
	)
	return v.([]domain.PrincipalPerformance), deg
}

// Interactions exposes the fetcher's contract to read consumers: normalized
// views matching the filter, with the same failure-masking policy as every
// other engine path. Results are never cached, and a plain list read is not
// a KPI refresh: it leaves Status() untouched. Degradation still reaches the
// caller through the returned tag.
func (s *Service) Interactions(ctx context.Context, f domain.InteractionFilter) ([]domain.NormalizedInteraction, domain.Degradation) {
	return s.Fetcher.Fetch(ctx, f)
}

// Snapshot returns the last cached full snapshot for the unfiltered
// context, if one is still valid.
func (s *Service) Snapshot() (domain.KPISnapshot, bool) {
	v, ok := s.Cache.Get(cacheKey(familySnapshot, domain.InteractionFilter{}))
	if !ok {
		return domain.KPISnapshot{}, false
	}
	return v.(domain.KPISnapshot), true
}

// ClearCache resets every cached result; the next call per family
// recomputes from the record source.
func (s *Service) ClearCache() {
	s.Cache.Clear()
}

// Status reports the engine's last run: whether a calculation is in flight,
// the last degradation reason (empty when healthy), and when results were
// last refreshed.
func (s *Service) Status() domain.CalculationStatus {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	return s.status
}

func (s *Service) setCalculating(v bool) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.IsCalculating = v
}

// recordResult stamps the status after a computation. A clean result clears
// the last error; a degraded one records its reason for callers that want
// to surface degradation instead of silently showing demo numbers.
func (s *Service) recordResult(deg domain.Degradation) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.LastError = deg.Reason
	s.status.LastUpdated = s.now()
}
