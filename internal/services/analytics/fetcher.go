// Package analytics – record fetcher
//
// The fetcher is the engine's only I/O path: it pulls raw interaction rows
// from the record source, applies the free-text filter in memory, and
// normalizes the result. It never returns an error: on any store failure it
// logs, bumps the fallback counter, and substitutes the synthetic record
// set, so downstream calculators always receive a valid list.
package analytics

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/crmkit/go-crm-backend/internal/domain"
	"github.com/crmkit/go-crm-backend/internal/search"
)

// InteractionSource is the record-source contract required by the fetcher.
// The production implementation is the repo package; tests substitute fakes.
type InteractionSource interface {
	// ListInteractions returns all non-deleted interactions matching the
	// structured filter fields, date descending. Free-text search is the
	// fetcher's concern, not the source's.
	ListInteractions(ctx context.Context, db *gorm.DB, f domain.InteractionFilter) ([]domain.Interaction, error)
}

// Fetcher retrieves and normalizes interaction records. Degradation to
// synthetic data on fetch failure is deliberate policy: analytics must
// render demo numbers rather than crash the dashboard.
type Fetcher struct {
	// DB is the GORM handle passed through to the source.
	DB *gorm.DB
	// Source is the record source (repo functions in production).
	Source InteractionSource
	// Fallback supplies the synthetic record set on failure.
	Fallback FallbackProvider
	// Now is the clock; defaults to time.Now when nil.
	Now func() time.Time
}

func (f *Fetcher) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

// Fetch returns normalized interactions matching the filter. The returned
// Degradation is tagged when the store could not be read and the synthetic
// set was substituted; the record list itself is always valid and non-nil.
func (f *Fetcher) Fetch(ctx context.Context, filter domain.InteractionFilter) ([]domain.NormalizedInteraction, domain.Degradation) {
	now := f.now()

	rows, err := f.Source.ListInteractions(ctx, f.DB, filter)
	if err != nil {
		log.Error().Err(err).Msg("interaction fetch failed; serving fallback records")
		kpiFallbacks.WithLabelValues("fetch").Inc()
		return f.Fallback.NormalizedRecords(now), domain.Degradation{
			Degraded: true,
			Reason:   "record fetch failed: " + err.Error(),
		}
	}

	// Free-text search over subject and notes, token-based AND semantics.
	if m := search.NewMatcher(filter.Search); !m.Empty() {
		matched := rows[:0:0]
		for _, r := range rows {
			if m.Matches(r.Subject, r.Notes) {
				matched = append(matched, r)
			}
		}
		rows = matched
	}

	return Normalize(rows, now), domain.Degradation{}
}
