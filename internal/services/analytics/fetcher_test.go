package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/crmkit/go-crm-backend/internal/domain"
)

// fakeSource is an in-memory InteractionSource that records call counts and
// the last filter it saw.
type fakeSource struct {
	rows       []domain.Interaction
	err        error
	calls      int
	lastFilter domain.InteractionFilter
}

func (s *fakeSource) ListInteractions(_ context.Context, _ *gorm.DB, f domain.InteractionFilter) ([]domain.Interaction, error) {
	s.calls++
	s.lastFilter = f
	if s.err != nil {
		return nil, s.err
	}
	return s.rows, nil
}

func TestFetcher_NormalizesSourceRows(t *testing.T) {
	src := &fakeSource{rows: []domain.Interaction{
		{ID: "1", Type: domain.InteractionEmail, Date: daysAgo(2), Subject: "Quarterly review"},
	}}
	f := &Fetcher{Source: src, Now: func() time.Time { return testNow }}

	recs, deg := f.Fetch(context.Background(), domain.InteractionFilter{})
	if deg.Degraded {
		t.Fatalf("unexpected degradation: %+v", deg)
	}
	if len(recs) != 1 || recs[0].ID != "1" {
		t.Fatalf("got %d records; want the source row", len(recs))
	}
	if recs[0].DaysSinceInteraction != 2 {
		t.Fatalf("row was not normalized: DaysSinceInteraction = %d", recs[0].DaysSinceInteraction)
	}
}

func TestFetcher_FreeTextSearch(t *testing.T) {
	src := &fakeSource{rows: []domain.Interaction{
		{ID: "1", Type: domain.InteractionEmail, Date: daysAgo(1), Subject: "Pricing proposal", Notes: "sent to Acme"},
		{ID: "2", Type: domain.InteractionCall, Date: daysAgo(2), Subject: "Intro call", Notes: "pricing discussed"},
		{ID: "3", Type: domain.InteractionEmail, Date: daysAgo(3), Subject: "Contract draft", Notes: "awaiting redlines"},
	}}
	f := &Fetcher{Source: src, Now: func() time.Time { return testNow }}

	recs, deg := f.Fetch(context.Background(), domain.InteractionFilter{Search: "pricing"})
	if deg.Degraded {
		t.Fatalf("unexpected degradation: %+v", deg)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records; want 2 matching either subject or notes", len(recs))
	}
	for _, r := range recs {
		if r.ID == "3" {
			t.Fatalf("record %s must not match %q", r.ID, "pricing")
		}
	}
}

func TestFetcher_SearchTokensCombineWithAND(t *testing.T) {
	src := &fakeSource{rows: []domain.Interaction{
		{ID: "1", Type: domain.InteractionEmail, Date: daysAgo(1), Subject: "Pricing proposal", Notes: "for Acme"},
		{ID: "2", Type: domain.InteractionEmail, Date: daysAgo(2), Subject: "Pricing update", Notes: "for Globex"},
	}}
	f := &Fetcher{Source: src, Now: func() time.Time { return testNow }}

	recs, _ := f.Fetch(context.Background(), domain.InteractionFilter{Search: "pricing acme"})
	if len(recs) != 1 || recs[0].ID != "1" {
		t.Fatalf("multi-token search must require every token, got %d records", len(recs))
	}
}

func TestFetcher_FallbackOnSourceError(t *testing.T) {
	src := &fakeSource{err: errors.New("disk on fire")}
	f := &Fetcher{Source: src, Now: func() time.Time { return testNow }}

	recs, deg := f.Fetch(context.Background(), domain.InteractionFilter{})
	if !deg.Degraded {
		t.Fatalf("source failure must tag the result degraded")
	}
	if deg.Reason == "" {
		t.Fatalf("degradation must carry a reason")
	}
	if len(recs) == 0 {
		t.Fatalf("fallback records must be served on failure")
	}
	want := FallbackProvider{}.NormalizedRecords(testNow)
	if len(recs) != len(want) {
		t.Fatalf("got %d fallback records; want %d", len(recs), len(want))
	}
}

func TestFetcher_PassesFilterToSource(t *testing.T) {
	src := &fakeSource{}
	f := &Fetcher{Source: src, Now: func() time.Time { return testNow }}

	filter := domain.InteractionFilter{Organization: "Acme Foods", Principal: "alex"}
	f.Fetch(context.Background(), filter)
	if src.lastFilter.Organization != "Acme Foods" || src.lastFilter.Principal != "alex" {
		t.Fatalf("filter not forwarded to source: %+v", src.lastFilter)
	}
}
