package analytics

import (
	"testing"

	"github.com/crmkit/go-crm-backend/internal/domain"
)

func byPrincipal(id string, rec domain.Interaction) domain.Interaction {
	rec.CreatedBy = id
	return rec
}

func TestPrincipalPerformanceOf_Rollup(t *testing.T) {
	recs := normalized(t,
		byPrincipal("alex", domain.Interaction{ID: "1", Type: domain.InteractionEmail, Date: daysAgo(1)}),
		byPrincipal("alex", domain.Interaction{ID: "2", Type: domain.InteractionFollowUp, Date: daysAgo(2)}),
		byPrincipal("alex", followUpRec("3", dueIn(-1))),
		byPrincipal("alex", followUpRec("4", dueIn(3))),
		byPrincipal("sam", domain.Interaction{ID: "5", Type: domain.InteractionCall, Date: daysAgo(20)}),
	)

	out := PrincipalPerformanceOf(recs, "alex", testNow)
	if len(out) != 1 {
		t.Fatalf("scoped request returned %d rows; want 1", len(out))
	}
	p := out[0]
	if p.Principal != "alex" {
		t.Fatalf("Principal = %q; want alex", p.Principal)
	}
	if p.TotalInteractions != 4 {
		t.Errorf("TotalInteractions = %d; want 4", p.TotalInteractions)
	}
	if p.CompletedFollowUps != 1 {
		t.Errorf("CompletedFollowUps = %d; want 1", p.CompletedFollowUps)
	}
	if p.OverdueFollowUps != 1 {
		t.Errorf("OverdueFollowUps = %d; want 1", p.OverdueFollowUps)
	}
	if p.PendingFollowUps != 1 {
		t.Errorf("PendingFollowUps = %d; want 1", p.PendingFollowUps)
	}
	if p.ThisWeek != 4 {
		t.Errorf("ThisWeek = %d; want 4", p.ThisWeek)
	}
	// round(0.3*4 + 0.4*1 + 0.3*4) * 10 = round(2.8) * 10 = 30.
	if p.EngagementScore != 30 {
		t.Errorf("EngagementScore = %d; want 30", p.EngagementScore)
	}
}

func TestPrincipalPerformanceOf_AllPrincipalsSorted(t *testing.T) {
	recs := normalized(t,
		byPrincipal("quiet", domain.Interaction{ID: "1", Type: domain.InteractionEmail, Date: daysAgo(40)}),
		byPrincipal("busy", domain.Interaction{ID: "2", Type: domain.InteractionCall, Date: daysAgo(1)}),
		byPrincipal("busy", domain.Interaction{ID: "3", Type: domain.InteractionFollowUp, Date: daysAgo(2)}),
		byPrincipal("busy", domain.Interaction{ID: "4", Type: domain.InteractionEmail, Date: daysAgo(3)}),
	)

	out := PrincipalPerformanceOf(recs, "", testNow)
	if len(out) != 2 {
		t.Fatalf("returned %d rows; want 2", len(out))
	}
	if out[0].Principal != "busy" || out[1].Principal != "quiet" {
		t.Fatalf("order = [%s %s]; want engagement-descending [busy quiet]", out[0].Principal, out[1].Principal)
	}
	if out[0].EngagementScore <= out[1].EngagementScore {
		t.Fatalf("scores not descending: %d <= %d", out[0].EngagementScore, out[1].EngagementScore)
	}
}

func TestPrincipalPerformanceOf_TieBreaksByID(t *testing.T) {
	recs := normalized(t,
		byPrincipal("zoe", domain.Interaction{ID: "1", Type: domain.InteractionEmail, Date: daysAgo(1)}),
		byPrincipal("amy", domain.Interaction{ID: "2", Type: domain.InteractionEmail, Date: daysAgo(1)}),
	)
	out := PrincipalPerformanceOf(recs, "", testNow)
	if len(out) != 2 || out[0].Principal != "amy" || out[1].Principal != "zoe" {
		t.Fatalf("equal scores must sort by principal id, got %+v", out)
	}
}

func TestPrincipalPerformanceOf_UnknownPrincipalYieldsZeroRow(t *testing.T) {
	out := PrincipalPerformanceOf(nil, "ghost", testNow)
	if len(out) != 1 {
		t.Fatalf("returned %d rows; want 1 zero row", len(out))
	}
	p := out[0]
	if p.Principal != "ghost" || p.TotalInteractions != 0 || p.EngagementScore != 0 {
		t.Fatalf("expected zero scorecard for unknown principal, got %+v", p)
	}
}
