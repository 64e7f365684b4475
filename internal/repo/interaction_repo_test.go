package repo

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crmkit/go-crm-backend/internal/domain"
)

// newRepoDB opens a throwaway file-backed SQLite database with the full
// schema migrated.
func newRepoDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "repo.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	return db
}

func mustCreate(t *testing.T, db *gorm.DB, i *domain.Interaction) *domain.Interaction {
	t.Helper()
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Subject == "" {
		i.Subject = "subject"
	}
	if i.CreatedBy == "" {
		i.CreatedBy = "u1"
	}
	if err := db.Create(i).Error; err != nil {
		t.Fatalf("insert interaction: %v", err)
	}
	return i
}

func TestListInteractions_EmptyFilter_OrdersByDateDesc(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	mustCreate(t, db, &domain.Interaction{Type: domain.InteractionEmail, Date: base})
	mustCreate(t, db, &domain.Interaction{Type: domain.InteractionCall, Date: base.Add(48 * time.Hour)})
	mustCreate(t, db, &domain.Interaction{Type: domain.InteractionDemo, Date: base.Add(24 * time.Hour)})

	out, err := ListInteractions(ctx, db, domain.InteractionFilter{})
	if err != nil {
		t.Fatalf("ListInteractions: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(out))
	}
	for i := 1; i < len(out); i++ {
		if out[i].Date.After(out[i-1].Date) {
			t.Fatalf("rows not in date-descending order: %v before %v", out[i-1].Date, out[i].Date)
		}
	}
}

func TestListInteractions_FiltersCombineWithAND(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	opp := "opp-1"

	match := mustCreate(t, db, &domain.Interaction{
		Type:           domain.InteractionCall,
		Date:           base,
		OpportunityID:  &opp,
		FollowUpNeeded: true,
		CreatedBy:      "alice",
	})
	// Same type, different opportunity.
	mustCreate(t, db, &domain.Interaction{Type: domain.InteractionCall, Date: base, CreatedBy: "alice"})
	// Same opportunity, different type.
	mustCreate(t, db, &domain.Interaction{Type: domain.InteractionEmail, Date: base, OpportunityID: &opp, CreatedBy: "alice"})
	// Outside the date range.
	mustCreate(t, db, &domain.Interaction{
		Type:          domain.InteractionCall,
		Date:          base.AddDate(0, -2, 0),
		OpportunityID: &opp,
		CreatedBy:     "alice",
	})

	yes := true
	out, err := ListInteractions(ctx, db, domain.InteractionFilter{
		Types:          []domain.InteractionType{domain.InteractionCall},
		OpportunityID:  opp,
		DateFrom:       base.AddDate(0, -1, 0),
		DateTo:         base.AddDate(0, 0, 1),
		FollowUpNeeded: &yes,
		Principal:      "alice",
	})
	if err != nil {
		t.Fatalf("ListInteractions: %v", err)
	}
	if len(out) != 1 || out[0].ID != match.ID {
		t.Fatalf("expected exactly the matching row, got %d rows", len(out))
	}
}

func TestListInteractions_OrganizationAndContactScope(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()
	date := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	ct := "contact-1"

	mustCreate(t, db, &domain.Interaction{
		Type: domain.InteractionInPerson, Date: date,
		ContactID: &ct, ContactOrganization: "Acme Foods",
	})
	mustCreate(t, db, &domain.Interaction{
		Type: domain.InteractionInPerson, Date: date,
		ContactOrganization: "Globex",
	})

	out, err := ListInteractions(ctx, db, domain.InteractionFilter{Organization: "Acme Foods"})
	if err != nil {
		t.Fatalf("ListInteractions: %v", err)
	}
	if len(out) != 1 || out[0].ContactOrganization != "Acme Foods" {
		t.Fatalf("organization filter failed: %d rows", len(out))
	}

	out, err = ListInteractions(ctx, db, domain.InteractionFilter{ContactID: ct})
	if err != nil {
		t.Fatalf("ListInteractions: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("contact filter failed: %d rows", len(out))
	}
}

func TestListInteractions_ExcludesSoftDeleted(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	keep := mustCreate(t, db, &domain.Interaction{Type: domain.InteractionEmail, Date: time.Now().UTC()})
	gone := mustCreate(t, db, &domain.Interaction{Type: domain.InteractionEmail, Date: time.Now().UTC()})
	if err := db.Delete(&domain.Interaction{ID: gone.ID}).Error; err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	out, err := ListInteractions(ctx, db, domain.InteractionFilter{})
	if err != nil {
		t.Fatalf("ListInteractions: %v", err)
	}
	if len(out) != 1 || out[0].ID != keep.ID {
		t.Fatalf("soft-deleted row leaked into results: %d rows", len(out))
	}
}

func TestCountInteractions_MatchesList(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()
	date := time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC)

	for range 4 {
		mustCreate(t, db, &domain.Interaction{Type: domain.InteractionDemo, Date: date})
	}
	mustCreate(t, db, &domain.Interaction{Type: domain.InteractionCall, Date: date})

	f := domain.InteractionFilter{Types: []domain.InteractionType{domain.InteractionDemo}}
	total, err := CountInteractions(ctx, db, f)
	if err != nil {
		t.Fatalf("CountInteractions: %v", err)
	}
	rows, err := ListInteractions(ctx, db, f)
	if err != nil {
		t.Fatalf("ListInteractions: %v", err)
	}
	if int(total) != len(rows) || total != 4 {
		t.Fatalf("count %d does not match list %d", total, len(rows))
	}
}
