package domain

import "time"

// TicketStatus enumerates lifecycle states for change-request tickets.
type TicketStatus string

const (
	TicketStatusNew        TicketStatus = "New"
	TicketStatusAssigned   TicketStatus = "Assigned"
	TicketStatusInProgress TicketStatus = "In Progress"
	TicketStatusPending    TicketStatus = "Pending"
	TicketStatusCompleted  TicketStatus = "Completed"
	TicketStatusClosed     TicketStatus = "Closed"
)

// ValidStatuses lists every accepted status value.
var ValidStatuses = []TicketStatus{
	TicketStatusNew,
	TicketStatusAssigned,
	TicketStatusInProgress,
	TicketStatusPending,
	TicketStatusCompleted,
	TicketStatusClosed,
}

// IsValidStatus reports whether s is part of the status enumeration.
func IsValidStatus(s TicketStatus) bool {
	for _, candidate := range ValidStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ResolutionTypes is the fixed set accepted when completing a ticket.
var ResolutionTypes = []string{
	"Fixed",
	"Enhancement Implemented",
	"Configuration Change",
	"Data Correction",
	"Duplicate / Not Required",
	"User Error",
	"Deferred",
	"Cannot Reproduce",
}

// IsValidResolutionType reports whether rt is an accepted resolution type.
func IsValidResolutionType(rt string) bool {
	for _, candidate := range ResolutionTypes {
		if candidate == rt {
			return true
		}
	}
	return false
}

// Ticket is the aggregate for customer change requests. Routing fields
// (SupportEngineer, Developer, DeveloperEmail) are derived from the
// assignment directory at creation and are never requester-supplied.
type Ticket struct {
	ID                string
	TicketNumber      string
	Customer          string
	CRType            string
	IssueType         string
	Type              *string
	CRDate            string
	CRTime            string
	Module            string
	Description       string
	AMCCost           *string
	PRApproval        *string
	Priority          string
	Status            TicketStatus
	SupportEngineer   string
	Developer         string
	DeveloperEmail    string
	PlannedDate       *string
	CommitmentDate    *string
	CompletedOn       *string
	CompletedBy       *string
	CompletedTime     *string
	TimeDuration      *string
	ResolutionType    *string
	CompletionRemarks *string
	ExeSent           *string
	ReasonForIssue    *string
	CustomerCall      *string
	Remarks           *string
	CreatedBy         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
