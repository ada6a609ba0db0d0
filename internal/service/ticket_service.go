package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/assignment"
	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/cache"
	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/domain"
	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/events"
	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/repository"
	apperrors "github.com/MohanBabu05/Ticktet-Generation-Management-System/pkg/util"
)

// maxAllocationRetries bounds re-allocation when a freshly minted ticket
// number collides on insert. Numbers burned by a failed attempt are never
// reused.
const maxAllocationRetries = 3

// TicketService owns the ticket lifecycle: creation with auto-assignment and
// numbering, field edits, and status transitions. Every successful mutation
// writes exactly one audit entry; audit write failures are escalated, never
// swallowed.
type TicketService struct {
	tickets    repository.TicketRepository
	audits     repository.AuditLogRepository
	counter    repository.TicketCounterRepository
	directory  *assignment.Directory
	cache      *cache.TicketCache
	dispatcher events.Dispatcher

	now func() time.Time
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo  repository.TicketRepository
	AuditRepo   repository.AuditLogRepository
	CounterRepo repository.TicketCounterRepository
	Directory   *assignment.Directory
	Cache       *cache.TicketCache
	Dispatcher  events.Dispatcher
}

// TicketCreateInput describes ticket creation payload. Routing fields are
// absent on purpose: they are derived from the assignment directory.
type TicketCreateInput struct {
	Customer       string
	CRType         string
	IssueType      string
	Type           *string
	Module         string
	Description    string
	AMCCost        *string
	PRApproval     *string
	Priority       string
	PlannedDate    *string
	CommitmentDate *string
	Remarks        *string
}

// TicketPatch carries the editable fields of an update request. Nil fields
// are left untouched. Ticket number, routing, and creation metadata are not
// patchable.
type TicketPatch struct {
	Customer       *string
	CRType         *string
	IssueType      *string
	Type           *string
	Module         *string
	Description    *string
	AMCCost        *string
	PRApproval     *string
	Priority       *string
	PlannedDate    *string
	CommitmentDate *string
	ExeSent        *string
	ReasonForIssue *string
	CustomerCall   *string
	Remarks        *string
}

// StatusUpdateInput describes a status transition request.
type StatusUpdateInput struct {
	Status            string
	CompletedBy       *string
	ResolutionType    *string
	CompletionRemarks *string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		audits:     deps.AuditRepo,
		counter:    deps.CounterRepo,
		directory:  deps.Directory,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		now:        time.Now,
	}
}

// Create resolves assignment, mints a ticket number and persists the record
// directly in Assigned status: no caller ever observes a New ticket. The
// developer notification is published to the dispatcher and handled off the
// request path.
func (s *TicketService) Create(ctx context.Context, input TicketCreateInput, actor *domain.User) (*domain.Ticket, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	assigned := s.directory.Resolve(input.Module)
	now := s.now().UTC()

	priority := strings.TrimSpace(input.Priority)
	if priority == "" {
		priority = "Medium"
	}

	ticket := &domain.Ticket{
		Customer:        strings.TrimSpace(input.Customer),
		CRType:          strings.TrimSpace(input.CRType),
		IssueType:       strings.TrimSpace(input.IssueType),
		Type:            input.Type,
		CRDate:          now.Format("2006-01-02"),
		CRTime:          now.Format("15:04:05"),
		Module:          strings.TrimSpace(input.Module),
		Description:     strings.TrimSpace(input.Description),
		AMCCost:         input.AMCCost,
		PRApproval:      input.PRApproval,
		Priority:        priority,
		Status:          domain.TicketStatusAssigned,
		SupportEngineer: assigned.SupportEngineer,
		Developer:       assigned.Developer,
		DeveloperEmail:  assigned.DeveloperEmail,
		PlannedDate:     input.PlannedDate,
		CommitmentDate:  input.CommitmentDate,
		Remarks:         input.Remarks,
		CreatedBy:       actor.Username,
	}

	year := now.Year()
	for attempt := 0; ; attempt++ {
		seq, err := s.counter.Next(ctx, year)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		ticket.TicketNumber = FormatTicketNumber(year, seq)

		err = s.tickets.Create(ctx, ticket)
		if err == nil {
			break
		}
		// A duplicate number should not occur given the allocator's
		// atomicity, but a collision burns the number and retries.
		if apperrors.IsUniqueViolation(err) && attempt < maxAllocationRetries-1 {
			continue
		}
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("duplicate ticket number", map[string]any{
				"ticket_number": ticket.TicketNumber,
			})
		}
		return nil, apperrors.MapError(err)
	}

	if err := s.recordAudit(ctx, ticket.TicketNumber, domain.AuditActionCreated, actor.Username, ticketSnapshot(ticket)); err != nil {
		return nil, err
	}

	s.cache.Set(ctx, ticket)
	s.publishEvent(ctx, events.Event{
		Type:         events.EventTicketCreated,
		TicketNumber: ticket.TicketNumber,
		Actor:        actor.Username,
		Payload:      events.TicketCreatedPayload{Ticket: ticket},
	})
	return ticket, nil
}

// Get returns a ticket by number, serving repeated lookups from the cache.
func (s *TicketService) Get(ctx context.Context, ticketNumber string) (*domain.Ticket, error) {
	if cached, ok := s.cache.Get(ctx, ticketNumber); ok {
		return cached, nil
	}
	ticket, err := s.tickets.GetByNumber(ctx, ticketNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_number": ticketNumber})
		}
		return nil, apperrors.MapError(err)
	}
	s.cache.Set(ctx, ticket)
	return ticket, nil
}

// List returns tickets matching the filter.
func (s *TicketService) List(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// UpdateFields applies the non-nil patch fields. On a Completed ticket a
// non-admin actor may only update remarks; a patch without remarks is
// rejected outright. All rejections leave the stored ticket untouched.
func (s *TicketService) UpdateFields(ctx context.Context, ticketNumber string, patch TicketPatch, actor *domain.User) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByNumber(ctx, ticketNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_number": ticketNumber})
		}
		return nil, apperrors.MapError(err)
	}

	locked := ticket.Status == domain.TicketStatusCompleted && !actor.IsAdmin()
	if locked && patch.Remarks == nil {
		return nil, apperrors.NewForbidden("ticket is completed and locked")
	}
	if locked {
		patch = TicketPatch{Remarks: patch.Remarks}
	}

	changes := applyPatch(ticket, patch)
	if len(changes) == 0 {
		return nil, apperrors.NewValidationError("no fields to update", nil)
	}

	ticket.UpdatedAt = s.now().UTC()
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.recordAudit(ctx, ticket.TicketNumber, domain.AuditActionUpdated, actor.Username, changes); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, ticket.TicketNumber)
	s.publishEvent(ctx, events.Event{
		Type:         events.EventTicketUpdated,
		TicketNumber: ticket.TicketNumber,
		Actor:        actor.Username,
		Payload:      events.TicketUpdatedPayload{Changes: changes},
	})
	return ticket, nil
}

// UpdateStatus moves the ticket through the lifecycle. Entering Completed
// requires a valid resolution type and completion remarks, and stamps the
// completion fields atomically with the transition.
func (s *TicketService) UpdateStatus(ctx context.Context, ticketNumber string, input StatusUpdateInput, actor *domain.User) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByNumber(ctx, ticketNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_number": ticketNumber})
		}
		return nil, apperrors.MapError(err)
	}

	requested := domain.TicketStatus(input.Status)
	if err := validateTransition(ticket.Status, requested); err != nil {
		return nil, err
	}
	if requested == domain.TicketStatusCompleted {
		if err := validateCompletion(input.ResolutionType, input.CompletionRemarks); err != nil {
			return nil, err
		}
	}

	oldStatus := ticket.Status
	ticket.Status = requested
	changes := map[string]any{"status": string(requested)}

	if requested == domain.TicketStatusCompleted {
		now := s.now().UTC()
		completedOn := now.Format("2006-01-02")
		completedTime := now.Format("15:04:05")
		completedBy := actor.FullName
		if input.CompletedBy != nil && strings.TrimSpace(*input.CompletedBy) != "" {
			completedBy = *input.CompletedBy
		}
		duration := completionDuration(ticket.CRDate, now)

		ticket.CompletedOn = &completedOn
		ticket.CompletedTime = &completedTime
		ticket.CompletedBy = &completedBy
		ticket.TimeDuration = &duration
		ticket.ResolutionType = input.ResolutionType
		ticket.CompletionRemarks = input.CompletionRemarks

		changes["completed_on"] = completedOn
		changes["completed_time"] = completedTime
		changes["completed_by"] = completedBy
		changes["time_duration"] = duration
		changes["resolution_type"] = *input.ResolutionType
		changes["completion_remarks"] = *input.CompletionRemarks
	}

	ticket.UpdatedAt = s.now().UTC()
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.recordAudit(ctx, ticket.TicketNumber, domain.AuditActionStatusUpdated, actor.Username, changes); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, ticket.TicketNumber)
	s.publishEvent(ctx, events.Event{
		Type:         events.EventTicketStatusChanged,
		TicketNumber: ticket.TicketNumber,
		Actor:        actor.Username,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: requested,
		},
	})
	return ticket, nil
}

// AuditTrail returns the mutation history for an existing ticket.
func (s *TicketService) AuditTrail(ctx context.Context, ticketNumber string) ([]domain.AuditLog, error) {
	if _, err := s.Get(ctx, ticketNumber); err != nil {
		return nil, err
	}
	entries, err := s.audits.ListByTicket(ctx, ticketNumber)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return entries, nil
}

// FormatTicketNumber renders the persisted-state number format YYYY-NNNNN.
func FormatTicketNumber(year, seq int) string {
	return fmt.Sprintf("%d-%05d", year, seq)
}

func validateCreateInput(input TicketCreateInput) error {
	missing := []string{}
	if strings.TrimSpace(input.Customer) == "" {
		missing = append(missing, "customer")
	}
	if strings.TrimSpace(input.CRType) == "" {
		missing = append(missing, "cr_type")
	}
	if strings.TrimSpace(input.IssueType) == "" {
		missing = append(missing, "issue_type")
	}
	if strings.TrimSpace(input.Module) == "" {
		missing = append(missing, "module")
	}
	if strings.TrimSpace(input.Description) == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("required fields missing", map[string]any{"fields": missing})
	}
	return nil
}

// completionDuration renders the whole-day difference between the ticket's
// creation date and the completion instant, e.g. "3 days".
func completionDuration(crDate string, completedAt time.Time) string {
	created, err := time.Parse("2006-01-02", crDate)
	if err != nil {
		return "0 days"
	}
	days := int(completedAt.Sub(created).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return fmt.Sprintf("%d days", days)
}

// applyPatch copies non-nil patch fields onto the ticket and returns the map
// of applied changes.
func applyPatch(ticket *domain.Ticket, patch TicketPatch) map[string]any {
	changes := map[string]any{}
	setString := func(field string, dst *string, src *string) {
		if src != nil {
			*dst = *src
			changes[field] = *src
		}
	}
	setOptional := func(field string, dst **string, src *string) {
		if src != nil {
			*dst = src
			changes[field] = *src
		}
	}

	setString("customer", &ticket.Customer, patch.Customer)
	setString("cr_type", &ticket.CRType, patch.CRType)
	setString("issue_type", &ticket.IssueType, patch.IssueType)
	setOptional("type", &ticket.Type, patch.Type)
	setString("module", &ticket.Module, patch.Module)
	setString("description", &ticket.Description, patch.Description)
	setOptional("amc_cost", &ticket.AMCCost, patch.AMCCost)
	setOptional("pr_approval", &ticket.PRApproval, patch.PRApproval)
	setString("priority", &ticket.Priority, patch.Priority)
	setOptional("planned_date", &ticket.PlannedDate, patch.PlannedDate)
	setOptional("commitment_date", &ticket.CommitmentDate, patch.CommitmentDate)
	setOptional("exe_sent", &ticket.ExeSent, patch.ExeSent)
	setOptional("reason_for_issue", &ticket.ReasonForIssue, patch.ReasonForIssue)
	setOptional("customer_call", &ticket.CustomerCall, patch.CustomerCall)
	setOptional("remarks", &ticket.Remarks, patch.Remarks)
	return changes
}

// ticketSnapshot captures the persisted fields of a freshly created ticket
// for its audit entry.
func ticketSnapshot(t *domain.Ticket) map[string]any {
	snapshot := map[string]any{
		"ticket_number":    t.TicketNumber,
		"customer":         t.Customer,
		"cr_type":          t.CRType,
		"issue_type":       t.IssueType,
		"cr_date":          t.CRDate,
		"cr_time":          t.CRTime,
		"module":           t.Module,
		"description":      t.Description,
		"priority":         t.Priority,
		"status":           string(t.Status),
		"support_engineer": t.SupportEngineer,
		"developer":        t.Developer,
		"developer_email":  t.DeveloperEmail,
		"created_by":       t.CreatedBy,
	}
	addOptional := func(field string, v *string) {
		if v != nil {
			snapshot[field] = *v
		}
	}
	addOptional("type", t.Type)
	addOptional("amc_cost", t.AMCCost)
	addOptional("pr_approval", t.PRApproval)
	addOptional("planned_date", t.PlannedDate)
	addOptional("commitment_date", t.CommitmentDate)
	addOptional("remarks", t.Remarks)
	return snapshot
}

// recordAudit writes the audit entry for a mutation. A failed audit write is
// surfaced to the caller: an untraceable mutation is an error, not a warning.
func (s *TicketService) recordAudit(ctx context.Context, ticketNumber string, action domain.AuditAction, username string, changes map[string]any) error {
	entry := &domain.AuditLog{
		TicketNumber: ticketNumber,
		Action:       action,
		Username:     username,
		Changes:      changes,
	}
	if err := s.audits.Create(ctx, entry); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
