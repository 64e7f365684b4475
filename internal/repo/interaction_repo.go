// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the interaction query functions consumed
// by the analytics record fetcher and the read-only HTTP endpoints.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only query
// composition. In particular, free-text search is NOT applied here; the
// fetcher matches subject/notes in memory with the search package, so the
// repository stays limited to indexable, structured predicates.
//
// Error semantics:
//   - On DB errors (constraint violations, connectivity issues, etc.), the
//     raw gorm error is propagated. The analytics fetcher converts failures
//     into fallback data; HTTP callers map them to 5xx.
//
// Functions:
//
//   - ListInteractions(ctx, db, filter) -> []domain.Interaction, error
//     Returns all non-deleted interactions matching the filter, date
//     descending. Filter fields are optional and combine with AND.
//
//   - CountInteractions(ctx, db, filter) -> (int64, error)
//     Returns the number of rows ListInteractions would return.
//
// This repository is designed to be wrapped by the analytics fetcher
// (see services/analytics.Fetcher) which performs normalization, free-text
// matching, and failure masking.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/crmkit/go-crm-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// interactionQuery builds the filtered query shared by list and count.
// Every populated filter field narrows the result with AND semantics.
func interactionQuery(ctx context.Context, db *gorm.DB, f domain.InteractionFilter) *gorm.DB {
	q := db.WithContext(ctx).Model(&domain.Interaction{})
	if len(f.Types) > 0 {
		q = q.Where("type IN ?", f.Types)
	}
	if f.OpportunityID != "" {
		q = q.Where("opportunity_id = ?", f.OpportunityID)
	}
	if f.ContactID != "" {
		q = q.Where("contact_id = ?", f.ContactID)
	}
	if f.Organization != "" {
		q = q.Where("contact_organization = ?", f.Organization)
	}
	if !f.DateFrom.IsZero() {
		q = q.Where("date >= ?", f.DateFrom)
	}
	if !f.DateTo.IsZero() {
		q = q.Where("date <= ?", f.DateTo)
	}
	if f.FollowUpNeeded != nil {
		q = q.Where("follow_up_needed = ?", *f.FollowUpNeeded)
	}
	if f.Principal != "" {
		q = q.Where("created_by = ?", f.Principal)
	}
	return q
}

// ListInteractions returns all non-deleted interactions matching the filter,
// ordered by interaction date descending (most recent first). An empty
// filter returns every record. On DB error, it returns the error.
//
// Free-text search (filter.Search) is intentionally ignored here; the
// fetcher applies it in memory over the returned rows.
func ListInteractions(ctx context.Context, db *gorm.DB, f domain.InteractionFilter) ([]domain.Interaction, error) {
	var out []domain.Interaction
	err := interactionQuery(ctx, db, f).
		Order("date desc").
		Find(&out).Error
	return out, err
}

// CountInteractions returns the number of non-deleted interactions matching
// the filter. On DB error, it returns the error.
func CountInteractions(ctx context.Context, db *gorm.DB, f domain.InteractionFilter) (int64, error) {
	var total int64
	err := interactionQuery(ctx, db, f).Count(&total).Error
	return total, err
}
