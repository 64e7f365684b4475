// Package repo – demo seeding
//
// SeedInteractions lets a fresh install start with the same deterministic
// demo records the analytics fallback provider serves, so the dashboard has
// data before any real CRM activity exists.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/crmkit/go-crm-backend/internal/domain"
)

// SeedInteractions inserts the given records when the interactions table is
// empty. It is a no-op on a populated database, so it is safe to run on
// every startup. Returns the number of rows inserted.
func SeedInteractions(ctx context.Context, db *gorm.DB, recs []domain.Interaction) (int, error) {
	var existing int64
	if err := db.WithContext(ctx).Model(&domain.Interaction{}).Count(&existing).Error; err != nil {
		return 0, err
	}
	if existing > 0 {
		return 0, nil
	}
	if len(recs) == 0 {
		return 0, nil
	}
	if err := db.WithContext(ctx).Create(&recs).Error; err != nil {
		return 0, err
	}
	return len(recs), nil
}
