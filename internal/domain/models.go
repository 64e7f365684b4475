// Package domain defines the persistence models for organizations, contacts,
// opportunities, and interactions. These types are mapped with GORM and form
// the core data layer of the CRM application.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// InteractionType classifies an interaction record. The set is closed; the
// analytics engine iterates over AllInteractionTypes so that every type shows
// up in distributions even with a zero count.
type InteractionType string

// Known interaction types.
const (
	InteractionEmail    InteractionType = "EMAIL"
	InteractionCall     InteractionType = "CALL"
	InteractionInPerson InteractionType = "IN_PERSON"
	InteractionDemo     InteractionType = "DEMO"
	InteractionFollowUp InteractionType = "FOLLOW_UP"
)

// AllInteractionTypes lists every known interaction type in canonical order.
// Metric output is keyed in this order to keep responses deterministic.
var AllInteractionTypes = []InteractionType{
	InteractionEmail,
	InteractionCall,
	InteractionInPerson,
	InteractionDemo,
	InteractionFollowUp,
}

// Valid reports whether t is one of the known interaction types.
func (t InteractionType) Valid() bool {
	switch t {
	case InteractionEmail, InteractionCall, InteractionInPerson, InteractionDemo, InteractionFollowUp:
		return true
	}
	return false
}

// Organization represents a company the CRM tracks. Contacts and
// opportunities hang off an organization.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Name: display name; indexed for lookup.
//   - Segment: free-form market segment label.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
//   - DeletedAt: soft deletion marker (retains row for audit/history).
type Organization struct {
	ID        string         `json:"id"         gorm:"type:char(36);primaryKey"`
	Name      string         `json:"name"       gorm:"type:varchar(255);not null;index:idx_org_name"`
	Segment   string         `json:"segment"    gorm:"type:varchar(64)"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"          gorm:"index"`
}

// TableName returns the database table name for Organization.
func (Organization) TableName() string { return "organizations" }

// Contact represents a person at an organization.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - OrganizationID: owning organization (indexed).
//   - Name / Position: display fields denormalized onto interactions.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
//   - DeletedAt: soft deletion marker.
type Contact struct {
	ID             string         `json:"id"              gorm:"type:char(36);primaryKey"`
	OrganizationID string         `json:"organization_id" gorm:"type:char(36);not null;index:idx_contact_org"`
	Name           string         `json:"name"            gorm:"type:varchar(255);not null"`
	Position       string         `json:"position"        gorm:"type:varchar(128)"`
	Email          string         `json:"email"           gorm:"type:varchar(255)"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-"               gorm:"index"`

	// Organization is the employer. Contacts are cascade-deleted if their
	// organization is removed.
	Organization Organization `json:"-" gorm:"foreignKey:OrganizationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Contact.
func (Contact) TableName() string { return "contacts" }

// Opportunity represents a potential deal attached to an organization.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - OrganizationID: owning organization (indexed).
//   - Name / Stage: display fields denormalized onto interactions.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
//   - DeletedAt: soft deletion marker.
type Opportunity struct {
	ID             string         `json:"id"              gorm:"type:char(36);primaryKey"`
	OrganizationID string         `json:"organization_id" gorm:"type:char(36);not null;index:idx_opp_org"`
	Name           string         `json:"name"            gorm:"type:varchar(255);not null"`
	Stage          string         `json:"stage"           gorm:"type:varchar(64);not null;default:'prospect'"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-"               gorm:"index"`

	// Organization is the account the deal belongs to.
	Organization Organization `json:"-" gorm:"foreignKey:OrganizationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Opportunity.
func (Opportunity) TableName() string { return "opportunities" }

// Interaction is the atomic record the analytics engine consumes. It is
// created by the CRUD layer and is strictly read-only to analytics.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - Type: one of the InteractionType constants (enforced by DB constraint).
//   - Date: when the interaction happened (indexed, list ordering key).
//   - Subject / Notes: free text, matched by the free-text search filter.
//   - OpportunityID + OpportunityName/OpportunityStage: optional opportunity
//     link with denormalized display fields.
//   - ContactID + ContactName/ContactOrganization/ContactPosition: optional
//     contact link with denormalized display fields.
//   - FollowUpNeeded / FollowUpDate: follow-up flag and optional target date.
//     When FollowUpNeeded is false, FollowUpDate carries no meaning and must
//     be read through EffectiveFollowUpDate.
//   - CreatedBy: principal (user) who authored the record.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
//   - DeletedAt: soft deletion marker; deleted rows never reach analytics.
type Interaction struct {
	ID      string          `json:"id"      gorm:"type:char(36);primaryKey"`
	Type    InteractionType `json:"type"    gorm:"type:varchar(16);not null;index:idx_interaction_type;check:type IN ('EMAIL','CALL','IN_PERSON','DEMO','FOLLOW_UP')"`
	Date    time.Time       `json:"date"    gorm:"not null;index:idx_interaction_date"`
	Subject string          `json:"subject" gorm:"type:varchar(255);not null"`
	Notes   string          `json:"notes"   gorm:"type:text"`

	OpportunityID    *string `json:"opportunity_id,omitempty"    gorm:"type:char(36);index:idx_interaction_opp"`
	OpportunityName  string  `json:"opportunity_name,omitempty"  gorm:"type:varchar(255)"`
	OpportunityStage string  `json:"opportunity_stage,omitempty" gorm:"type:varchar(64)"`

	ContactID           *string `json:"contact_id,omitempty"           gorm:"type:char(36);index:idx_interaction_contact"`
	ContactName         string  `json:"contact_name,omitempty"         gorm:"type:varchar(255)"`
	ContactOrganization string  `json:"contact_organization,omitempty" gorm:"type:varchar(255);index:idx_interaction_org"`
	ContactPosition     string  `json:"contact_position,omitempty"     gorm:"type:varchar(128)"`

	FollowUpNeeded bool       `json:"follow_up_needed"`
	FollowUpDate   *time.Time `json:"follow_up_date,omitempty"`

	CreatedBy string         `json:"created_by" gorm:"type:varchar(64);not null;index:idx_interaction_principal"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"          gorm:"index"`
}

// TableName returns the database table name for Interaction.
func (Interaction) TableName() string { return "interactions" }

// EffectiveFollowUpDate returns the follow-up date only when a follow-up is
// actually required. A stored date on a record with FollowUpNeeded=false is
// stale data from the CRUD layer and must be ignored.
func (i Interaction) EffectiveFollowUpDate() *time.Time {
	if !i.FollowUpNeeded {
		return nil
	}
	return i.FollowUpDate
}

// HasOpportunity reports whether the interaction is linked to an opportunity.
func (i Interaction) HasOpportunity() bool {
	return i.OpportunityID != nil && *i.OpportunityID != ""
}

// HasContact reports whether the interaction is linked to a contact.
func (i Interaction) HasContact() bool {
	return i.ContactID != nil && *i.ContactID != ""
}
