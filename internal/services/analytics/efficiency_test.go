package analytics

import (
	"testing"
	"time"

	"github.com/crmkit/go-crm-backend/internal/domain"
)

func TestResponseTimeStatsOf_PositiveGapsOnly(t *testing.T) {
	mk := func(id string, gap time.Duration) domain.Interaction {
		date := daysAgo(10)
		due := date.Add(gap)
		return domain.Interaction{
			ID: id, Type: domain.InteractionCall, Date: date,
			FollowUpNeeded: true, FollowUpDate: &due,
		}
	}
	recs := normalized(t,
		mk("a", 24*time.Hour),
		mk("b", 48*time.Hour),
		mk("c", 96*time.Hour),
		mk("negative", -12*time.Hour),
		mk("zero", 0),
		domain.Interaction{ID: "nodate", Type: domain.InteractionEmail, Date: daysAgo(1), FollowUpNeeded: true},
	)

	stats := ResponseTimeStatsOf(recs)
	if stats.SampleSize != 3 {
		t.Fatalf("SampleSize = %d; want 3 (non-positive gaps excluded)", stats.SampleSize)
	}
	if stats.MinHours != 24 || stats.MaxHours != 96 {
		t.Errorf("min/max = %.2f/%.2f; want 24/96", stats.MinHours, stats.MaxHours)
	}
	if stats.MeanHours != 56 {
		t.Errorf("MeanHours = %.2f; want 56", stats.MeanHours)
	}
	if stats.MedianHours != 48 {
		t.Errorf("MedianHours = %.2f; want 48", stats.MedianHours)
	}
}

func TestResponseTimeStatsOf_EvenSampleMedian(t *testing.T) {
	mk := func(id string, gap time.Duration) domain.Interaction {
		date := daysAgo(10)
		due := date.Add(gap)
		return domain.Interaction{
			ID: id, Type: domain.InteractionCall, Date: date,
			FollowUpNeeded: true, FollowUpDate: &due,
		}
	}
	recs := normalized(t,
		mk("a", 10*time.Hour),
		mk("b", 20*time.Hour),
		mk("c", 30*time.Hour),
		mk("d", 40*time.Hour),
	)
	stats := ResponseTimeStatsOf(recs)
	if stats.MedianHours != 25 {
		t.Fatalf("MedianHours = %.2f; want 25 (mean of middle pair)", stats.MedianHours)
	}
}

func TestResponseTimeStatsOf_EmptySample(t *testing.T) {
	stats := ResponseTimeStatsOf(nil)
	if stats != (domain.ResponseTimeStats{}) {
		t.Fatalf("expected zero stats for empty sample, got %+v", stats)
	}
}

func TestEfficiencyMetricsOf(t *testing.T) {
	recs := normalized(t,
		domain.Interaction{ID: "1", Type: domain.InteractionEmail, Date: daysAgo(1), ContactID: ptr("ct1"), OpportunityID: ptr("op1")},
		domain.Interaction{ID: "2", Type: domain.InteractionFollowUp, Date: daysAgo(2), ContactID: ptr("ct1")},
		domain.Interaction{ID: "3", Type: domain.InteractionCall, Date: daysAgo(20), ContactID: ptr("ct2")},
		domain.Interaction{ID: "4", Type: domain.InteractionDemo, Date: daysAgo(30), ContactID: ptr("ct2"), OpportunityID: ptr("op2")},
	)
	followUps := FollowUpMetricsOf(recs, testNow)

	m := EfficiencyMetricsOf(recs, followUps, testNow)
	// 2 of 4 linked to an opportunity.
	if m.ConversionRate != 50 {
		t.Errorf("ConversionRate = %d; want 50", m.ConversionRate)
	}
	if m.FollowUpSuccessRate != followUps.CompletionRate {
		t.Errorf("FollowUpSuccessRate = %d; want completion rate %d", m.FollowUpSuccessRate, followUps.CompletionRate)
	}
	// round(4 / 2 contacts * 10) = 20.
	if m.InteractionDensity != 20 {
		t.Errorf("InteractionDensity = %d; want 20", m.InteractionDensity)
	}
	// round((0.4*2 + 0.3*1 + 0.3*2) / (0.1*4)) = round(1.7 / 0.4) = 4.
	if m.EngagementQuality != 4 {
		t.Errorf("EngagementQuality = %d; want 4", m.EngagementQuality)
	}
}

func TestEfficiencyMetricsOf_EmptySet(t *testing.T) {
	followUps := FollowUpMetricsOf(nil, testNow)
	m := EfficiencyMetricsOf(nil, followUps, testNow)
	if m.ConversionRate != 0 || m.InteractionDensity != 0 || m.EngagementQuality != 0 {
		t.Fatalf("empty set must score zero, got %+v", m)
	}
	if m.FollowUpSuccessRate != 100 {
		t.Fatalf("FollowUpSuccessRate = %d; want the 100%% empty default", m.FollowUpSuccessRate)
	}
}
