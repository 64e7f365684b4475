// Package analytics – synthetic fallback data
//
// The fallback provider is the engine's sole recovery path: whenever the
// record fetch or a computation fails, the caller is handed deterministic
// demo data instead of an error, so the dashboard renders numbers rather
// than a failure state. There is no retry; failure is masked once, at each
// call site, and surfaced only through the Degradation tag and the
// calculation status.
package analytics

import (
	"time"

	"github.com/crmkit/go-crm-backend/internal/domain"
)

// FallbackProvider produces the synthetic record set and, via the normal
// calculator pipeline, internally consistent per-family results. Record
// dates are fixed offsets from the provided time, so demo data always shows
// current activity, an overdue follow-up, and upcoming due dates.
type FallbackProvider struct{}

// demoRecord is a compact row spec for the synthetic data set.
type demoRecord struct {
	id         string
	typ        domain.InteractionType
	daysAgo    int
	subject    string
	notes      string
	opp        string
	oppName    string
	contact    string
	contactOrg string
	followUp   bool
	dueInDays  int // relative to now; only read when followUp is true
	principal  string
}

// demoRecords is the fixed synthetic data set. Offsets are chosen so the
// set exercises every metric family: one overdue follow-up, one due today,
// follow-ups due this week and next, a demo linked to an opportunity, both
// demo principals, and activity in both the current and previous trend
// windows.
var demoRecords = []demoRecord{
	{id: "demo-0001", typ: domain.InteractionDemo, daysAgo: 2,
		subject: "Platform demo for Acme Foods", notes: "walked through reporting module",
		opp: "demo-opp-1", oppName: "Acme rollout", contact: "demo-ct-1", contactOrg: "Acme Foods",
		followUp: true, dueInDays: 3, principal: "demo-alex"},
	{id: "demo-0002", typ: domain.InteractionCall, daysAgo: 5,
		subject: "Pricing call with Globex", notes: "needs board approval",
		opp: "demo-opp-2", oppName: "Globex renewal", contact: "demo-ct-2", contactOrg: "Globex",
		followUp: true, dueInDays: -2, principal: "demo-alex"},
	{id: "demo-0003", typ: domain.InteractionEmail, daysAgo: 1,
		subject: "Contract draft sent", notes: "awaiting redlines",
		contact: "demo-ct-3", contactOrg: "Initech",
		followUp: true, dueInDays: 0, principal: "demo-sam"},
	{id: "demo-0004", typ: domain.InteractionInPerson, daysAgo: 9,
		subject: "Site visit at Initech", notes: "toured production floor",
		contact: "demo-ct-3", contactOrg: "Initech", principal: "demo-sam"},
	{id: "demo-0005", typ: domain.InteractionFollowUp, daysAgo: 4,
		subject: "Follow-up on demo feedback", notes: "positive signals",
		opp: "demo-opp-1", oppName: "Acme rollout", contact: "demo-ct-1", contactOrg: "Acme Foods",
		principal: "demo-alex"},
	{id: "demo-0006", typ: domain.InteractionEmail, daysAgo: 40,
		subject: "Initial outreach to Globex", notes: "cold intro",
		contact: "demo-ct-2", contactOrg: "Globex", principal: "demo-sam"},
	{id: "demo-0007", typ: domain.InteractionCall, daysAgo: 45,
		subject: "Discovery call with Acme Foods", notes: "mapped current tooling",
		opp: "demo-opp-1", oppName: "Acme rollout", contact: "demo-ct-1", contactOrg: "Acme Foods",
		principal: "demo-alex"},
	{id: "demo-0008", typ: domain.InteractionFollowUp, daysAgo: 12,
		subject: "Checked in after site visit", notes: "scheduling next steps",
		contact: "demo-ct-3", contactOrg: "Initech",
		followUp: true, dueInDays: 10, principal: "demo-sam"},
}

// Records returns the synthetic interaction set with dates anchored to now.
// The output is freshly allocated on every call; callers may normalize or
// persist it freely.
func (FallbackProvider) Records(now time.Time) []domain.Interaction {
	out := make([]domain.Interaction, 0, len(demoRecords))
	for _, d := range demoRecords {
		rec := domain.Interaction{
			ID:        d.id,
			Type:      d.typ,
			Date:      now.AddDate(0, 0, -d.daysAgo),
			Subject:   d.subject,
			Notes:     d.notes,
			CreatedBy: d.principal,
			CreatedAt: now.AddDate(0, 0, -d.daysAgo),
			UpdatedAt: now.AddDate(0, 0, -d.daysAgo),
		}
		if d.opp != "" {
			opp := d.opp
			rec.OpportunityID = &opp
			rec.OpportunityName = d.oppName
			rec.OpportunityStage = "demo"
		}
		if d.contact != "" {
			ct := d.contact
			rec.ContactID = &ct
			rec.ContactName = "Demo Contact"
			rec.ContactOrganization = d.contactOrg
		}
		if d.followUp {
			rec.FollowUpNeeded = true
			due := startOfDay(now).AddDate(0, 0, d.dueInDays)
			rec.FollowUpDate = &due
		}
		out = append(out, rec)
	}
	return out
}

// NormalizedRecords returns the synthetic set already normalized against now.
func (p FallbackProvider) NormalizedRecords(now time.Time) []domain.NormalizedInteraction {
	return Normalize(p.Records(now), now)
}

// Snapshot runs the normal aggregation pipeline over the synthetic records,
// guaranteeing the fallback snapshot is internally consistent with what the
// calculators would produce for real data of the same shape.
func (p FallbackProvider) Snapshot(period domain.TrendPeriod, now time.Time) domain.KPISnapshot {
	return buildSnapshot(p.NormalizedRecords(now), period, now)
}
