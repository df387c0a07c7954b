// ABOUTME: Data models for CRM entities served to the UI
// ABOUTME: Defines Contact, Company, Activity, and dashboard/calendar view structs
package models

// Contact is the caller-facing shape of a Contacts record. Identifiers come
// from the remote store; this system never mints its own.
type Contact struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Position    string `json:"position,omitempty"`
	Status      string `json:"status,omitempty"`
	LinkedInURL string `json:"linkedin_url,omitempty"`
	Notes       string `json:"notes,omitempty"`
	CompanyID   string `json:"company_id,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	OwnerEmail  string `json:"owner_email,omitempty"`
}

type Company struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Domain   string `json:"domain,omitempty"`
	Industry string `json:"industry,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// Activity is a timestamped event linked to exactly one contact and, when
// resolvable, the contact's parent company.
type Activity struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Notes        string `json:"notes,omitempty"`
	Date         string `json:"date,omitempty"`           // YYYY-MM-DD
	NextFollowUp string `json:"next_follow_up,omitempty"` // YYYY-MM-DD
	ContactID    string `json:"contact_id,omitempty"`
	ContactName  string `json:"contact_name,omitempty"`
	CompanyID    string `json:"company_id,omitempty"`
	OwnerEmail   string `json:"owner_email,omitempty"`
}

// Lead pipeline status constants.
const (
	StatusNew       = "New"
	StatusContacted = "Contacted"
	StatusQualified = "Qualified"
	StatusProposal  = "Proposal"
	StatusCustomer  = "Customer"
	StatusLost      = "Lost"
)

// Activity type constants.
const (
	ActivityCall    = "Call"
	ActivityEmail   = "Email"
	ActivityMeeting = "Meeting"
	ActivityMessage = "Message"
	ActivityNote    = "Note"
)

// DashboardStats summarizes the caller's slice of the base.
type DashboardStats struct {
	TotalContacts    int            `json:"total_contacts"`
	ContactsByStatus map[string]int `json:"contacts_by_status"`
	ActivitiesLast7d int            `json:"activities_last_7d"`
	FollowupsNext7d  int            `json:"followups_next_7d"`
	OverdueFollowups int            `json:"overdue_followups"`
	TotalCompanies   int            `json:"total_companies"`
}

// CalendarEvent is one entry in the calendar view, derived from activity
// dates and follow-up dates.
type CalendarEvent struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"` // YYYY-MM-DD
	ContactID   string `json:"contact_id,omitempty"`
	ContactName string `json:"contact_name,omitempty"`
	Kind        string `json:"kind"` // "activity" or "followup"
}

// Calendar event kinds.
const (
	EventKindActivity = "activity"
	EventKindFollowup = "followup"
)
