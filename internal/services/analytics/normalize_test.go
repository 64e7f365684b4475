package analytics

import (
	"testing"
	"time"

	"github.com/crmkit/go-crm-backend/internal/domain"
)

// testNow is the fixed reference clock used across the calculator tests.
var testNow = time.Date(2026, 8, 28, 15, 30, 0, 0, time.UTC)

func daysAgo(n int) time.Time { return testNow.AddDate(0, 0, -n) }

func ptr[T any](v T) *T { return &v }

func TestNormalize_DayArithmetic(t *testing.T) {
	due := testNow.Add(60 * time.Hour) // 2.5 days ahead
	recs := []domain.Interaction{
		{ID: "a", Type: domain.InteractionEmail, Date: testNow.Add(-36 * time.Hour)},
		{ID: "b", Type: domain.InteractionEmail, Date: testNow, FollowUpNeeded: true, FollowUpDate: &due},
	}

	out := Normalize(recs, testNow)
	if len(out) != 2 {
		t.Fatalf("expected 2 normalized records, got %d", len(out))
	}

	// 36h ago floors to 1 whole day.
	if out[0].DaysSinceInteraction != 1 {
		t.Errorf("DaysSinceInteraction = %d; want 1", out[0].DaysSinceInteraction)
	}
	if out[0].DaysToFollowUp != nil {
		t.Errorf("expected nil DaysToFollowUp without follow-up date")
	}

	// 60h ahead floors to 2 whole days.
	if out[1].DaysToFollowUp == nil || *out[1].DaysToFollowUp != 2 {
		t.Errorf("DaysToFollowUp = %v; want 2", out[1].DaysToFollowUp)
	}
}

func TestNormalize_NegativeDaysToFollowUp(t *testing.T) {
	due := testNow.Add(-30 * time.Hour) // 1.25 days past -> floor(-1.25) = -2
	recs := []domain.Interaction{
		{ID: "a", Type: domain.InteractionCall, Date: daysAgo(3), FollowUpNeeded: true, FollowUpDate: &due},
	}
	out := Normalize(recs, testNow)
	if out[0].DaysToFollowUp == nil || *out[0].DaysToFollowUp != -2 {
		t.Fatalf("DaysToFollowUp = %v; want -2 (floor of negative span)", out[0].DaysToFollowUp)
	}
}

func TestNormalize_OverdueBoundary_DueTodayIsNotOverdue(t *testing.T) {
	today := startOfDay(testNow).Add(9 * time.Hour) // this morning
	yesterday := startOfDay(testNow).Add(-time.Hour)

	recs := []domain.Interaction{
		{ID: "today", Type: domain.InteractionCall, Date: daysAgo(2), FollowUpNeeded: true, FollowUpDate: &today},
		{ID: "yesterday", Type: domain.InteractionCall, Date: daysAgo(2), FollowUpNeeded: true, FollowUpDate: &yesterday},
	}
	out := Normalize(recs, testNow)

	if out[0].IsOverdueFollowUp {
		t.Errorf("a follow-up due today must NOT be overdue")
	}
	if !out[1].IsOverdueFollowUp {
		t.Errorf("a follow-up due yesterday must be overdue")
	}
}

func TestNormalize_StaleFollowUpDateIgnoredWhenFlagOff(t *testing.T) {
	past := daysAgo(10)
	recs := []domain.Interaction{
		{ID: "a", Type: domain.InteractionEmail, Date: daysAgo(1), FollowUpNeeded: false, FollowUpDate: &past},
	}
	out := Normalize(recs, testNow)
	if out[0].IsOverdueFollowUp {
		t.Fatalf("stored date with flag off must not produce an overdue record")
	}
	if out[0].DaysToFollowUp != nil {
		t.Fatalf("stored date with flag off must not produce DaysToFollowUp")
	}
}

func TestPriority_RuleOrder(t *testing.T) {
	overdueDate := startOfDay(testNow).AddDate(0, 0, -1)
	future := startOfDay(testNow).AddDate(0, 0, 5)

	cases := map[string]struct {
		rec  domain.Interaction
		want domain.Priority
	}{
		"overdue wins over everything": {
			domain.Interaction{Type: domain.InteractionEmail, Date: daysAgo(3), FollowUpNeeded: true, FollowUpDate: &overdueDate},
			domain.PriorityHigh,
		},
		"demo with opportunity is high": {
			domain.Interaction{Type: domain.InteractionDemo, Date: daysAgo(1), OpportunityID: ptr("op1")},
			domain.PriorityHigh,
		},
		"demo without opportunity is low": {
			domain.Interaction{Type: domain.InteractionDemo, Date: daysAgo(1)},
			domain.PriorityLow,
		},
		"follow-up needed is medium": {
			domain.Interaction{Type: domain.InteractionEmail, Date: daysAgo(1), FollowUpNeeded: true, FollowUpDate: &future},
			domain.PriorityMedium,
		},
		"call with opportunity is medium": {
			domain.Interaction{Type: domain.InteractionCall, Date: daysAgo(1), OpportunityID: ptr("op1")},
			domain.PriorityMedium,
		},
		"call without opportunity is low": {
			domain.Interaction{Type: domain.InteractionCall, Date: daysAgo(1)},
			domain.PriorityLow,
		},
		"in-person is medium": {
			domain.Interaction{Type: domain.InteractionInPerson, Date: daysAgo(1)},
			domain.PriorityMedium,
		},
		"plain email is low": {
			domain.Interaction{Type: domain.InteractionEmail, Date: daysAgo(1)},
			domain.PriorityLow,
		},
	}

	for name, tc := range cases {
		out := Normalize([]domain.Interaction{tc.rec}, testNow)
		if out[0].Priority != tc.want {
			t.Errorf("%s: priority = %q; want %q", name, out[0].Priority, tc.want)
		}
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	due := daysAgo(1)
	recs := []domain.Interaction{
		{ID: "a", Type: domain.InteractionCall, Date: daysAgo(2), FollowUpNeeded: true, FollowUpDate: &due},
	}
	before := recs[0]
	_ = Normalize(recs, testNow)
	if recs[0] != before {
		t.Fatalf("Normalize must not mutate its input")
	}
}
