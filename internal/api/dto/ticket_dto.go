package dto

import (
	"time"

	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/domain"
)

// CreateTicketRequest payload. Routing fields are never accepted here.
type CreateTicketRequest struct {
	Customer       string  `json:"customer"`
	CRType         string  `json:"cr_type"`
	IssueType      string  `json:"issue_type"`
	Type           *string `json:"type"`
	Module         string  `json:"module"`
	Description    string  `json:"description"`
	AMCCost        *string `json:"amc_cost"`
	PRApproval     *string `json:"pr_approval"`
	Priority       string  `json:"priority"`
	PlannedDate    *string `json:"planned_date"`
	CommitmentDate *string `json:"commitment_date"`
	Remarks        *string `json:"remarks"`
}

// UpdateTicketRequest payload. Absent fields are left unchanged.
type UpdateTicketRequest struct {
	Customer       *string `json:"customer"`
	CRType         *string `json:"cr_type"`
	IssueType      *string `json:"issue_type"`
	Type           *string `json:"type"`
	Module         *string `json:"module"`
	Description    *string `json:"description"`
	AMCCost        *string `json:"amc_cost"`
	PRApproval     *string `json:"pr_approval"`
	Priority       *string `json:"priority"`
	PlannedDate    *string `json:"planned_date"`
	CommitmentDate *string `json:"commitment_date"`
	ExeSent        *string `json:"exe_sent"`
	ReasonForIssue *string `json:"reason_for_issue"`
	CustomerCall   *string `json:"customer_call"`
	Remarks        *string `json:"remarks"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status            string  `json:"status"`
	CompletedBy       *string `json:"completed_by"`
	ResolutionType    *string `json:"resolution_type"`
	CompletionRemarks *string `json:"completion_remarks"`
}

// TicketResponse carries the full stored ticket.
type TicketResponse struct {
	ID                string              `json:"id"`
	TicketNumber      string              `json:"ticket_number"`
	Customer          string              `json:"customer"`
	CRType            string              `json:"cr_type"`
	IssueType         string              `json:"issue_type"`
	Type              *string             `json:"type"`
	CRDate            string              `json:"cr_date"`
	CRTime            string              `json:"cr_time"`
	Module            string              `json:"module"`
	Description       string              `json:"description"`
	AMCCost           *string             `json:"amc_cost"`
	PRApproval        *string             `json:"pr_approval"`
	Priority          string              `json:"priority"`
	Status            domain.TicketStatus `json:"status"`
	SupportEngineer   string              `json:"support_engineer"`
	Developer         string              `json:"developer"`
	DeveloperEmail    string              `json:"developer_email"`
	PlannedDate       *string             `json:"planned_date"`
	CommitmentDate    *string             `json:"commitment_date"`
	CompletedOn       *string             `json:"completed_on"`
	CompletedBy       *string             `json:"completed_by"`
	CompletedTime     *string             `json:"completed_time"`
	TimeDuration      *string             `json:"time_duration"`
	ResolutionType    *string             `json:"resolution_type"`
	CompletionRemarks *string             `json:"completion_remarks"`
	ExeSent           *string             `json:"exe_sent"`
	ReasonForIssue    *string             `json:"reason_for_issue"`
	CustomerCall      *string             `json:"customer_call"`
	Remarks           *string             `json:"remarks"`
	CreatedBy         string              `json:"created_by"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// AuditLogResponse represents one audit trail entry.
type AuditLogResponse struct {
	ID           string             `json:"id"`
	TicketNumber string             `json:"ticket_number"`
	Action       domain.AuditAction `json:"action"`
	Username     string             `json:"username"`
	Changes      map[string]any     `json:"changes"`
	CreatedAt    time.Time          `json:"created_at"`
}
