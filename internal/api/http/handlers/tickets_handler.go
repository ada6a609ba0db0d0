package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/api/dto"
	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/auth"
	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/domain"
	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/repository"
	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/service"
	apperrors "github.com/MohanBabu05/Ticktet-Generation-Management-System/pkg/util"
)

// TicketsHandler manages change-request ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /api/tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	actor, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.TicketCreateInput{
		Customer:       req.Customer,
		CRType:         req.CRType,
		IssueType:      req.IssueType,
		Type:           req.Type,
		Module:         req.Module,
		Description:    req.Description,
		AMCCost:        req.AMCCost,
		PRApproval:     req.PRApproval,
		Priority:       req.Priority,
		PlannedDate:    req.PlannedDate,
		CommitmentDate: req.CommitmentDate,
		Remarks:        req.Remarks,
	}
	ticket, err := h.service.Create(c.Context(), input, actor)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// ListTickets GET /api/tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	filter := parseTicketFilter(c)
	tickets, err := h.service.List(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTicket GET /api/tickets/:ticket_number.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	ticket, err := h.service.Get(c.Context(), c.Params("ticket_number"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// UpdateTicket PUT /api/tickets/:ticket_number.
func (h *TicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	actor, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	patch := service.TicketPatch{
		Customer:       req.Customer,
		CRType:         req.CRType,
		IssueType:      req.IssueType,
		Type:           req.Type,
		Module:         req.Module,
		Description:    req.Description,
		AMCCost:        req.AMCCost,
		PRApproval:     req.PRApproval,
		Priority:       req.Priority,
		PlannedDate:    req.PlannedDate,
		CommitmentDate: req.CommitmentDate,
		ExeSent:        req.ExeSent,
		ReasonForIssue: req.ReasonForIssue,
		CustomerCall:   req.CustomerCall,
		Remarks:        req.Remarks,
	}
	ticket, err := h.service.UpdateFields(c.Context(), c.Params("ticket_number"), patch, actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// UpdateStatus PUT /api/tickets/:ticket_number/status.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	actor, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.StatusUpdateInput{
		Status:            req.Status,
		CompletedBy:       req.CompletedBy,
		ResolutionType:    req.ResolutionType,
		CompletionRemarks: req.CompletionRemarks,
	}
	ticket, err := h.service.UpdateStatus(c.Context(), c.Params("ticket_number"), input, actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// AuditTrail GET /api/tickets/:ticket_number/audit.
func (h *TicketsHandler) AuditTrail(c *fiber.Ctx) error {
	entries, err := h.service.AuditTrail(c.Context(), c.Params("ticket_number"))
	if err != nil {
		return err
	}
	items := make([]dto.AuditLogResponse, 0, len(entries))
	for i := range entries {
		items = append(items, auditLogResponse(&entries[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func parseTicketFilter(c *fiber.Ctx) repository.TicketFilter {
	filter := repository.TicketFilter{}
	if v := strings.TrimSpace(c.Query("status")); v != "" {
		status := domain.TicketStatus(v)
		filter.Status = &status
	}
	filter.Module = queryString(c, "module")
	filter.Customer = queryString(c, "customer")
	filter.Developer = queryString(c, "developer")
	filter.SupportEngineer = queryString(c, "support_engineer")
	filter.CRType = queryString(c, "cr_type")
	filter.IssueType = queryString(c, "issue_type")
	filter.FromDate = queryString(c, "from_date")
	filter.ToDate = queryString(c, "to_date")

	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 100)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func queryString(c *fiber.Ctx, key string) *string {
	if v := strings.TrimSpace(c.Query(key)); v != "" {
		return &v
	}
	return nil
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func ticketResponse(ticket *domain.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:                ticket.ID,
		TicketNumber:      ticket.TicketNumber,
		Customer:          ticket.Customer,
		CRType:            ticket.CRType,
		IssueType:         ticket.IssueType,
		Type:              ticket.Type,
		CRDate:            ticket.CRDate,
		CRTime:            ticket.CRTime,
		Module:            ticket.Module,
		Description:       ticket.Description,
		AMCCost:           ticket.AMCCost,
		PRApproval:        ticket.PRApproval,
		Priority:          ticket.Priority,
		Status:            ticket.Status,
		SupportEngineer:   ticket.SupportEngineer,
		Developer:         ticket.Developer,
		DeveloperEmail:    ticket.DeveloperEmail,
		PlannedDate:       ticket.PlannedDate,
		CommitmentDate:    ticket.CommitmentDate,
		CompletedOn:       ticket.CompletedOn,
		CompletedBy:       ticket.CompletedBy,
		CompletedTime:     ticket.CompletedTime,
		TimeDuration:      ticket.TimeDuration,
		ResolutionType:    ticket.ResolutionType,
		CompletionRemarks: ticket.CompletionRemarks,
		ExeSent:           ticket.ExeSent,
		ReasonForIssue:    ticket.ReasonForIssue,
		CustomerCall:      ticket.CustomerCall,
		Remarks:           ticket.Remarks,
		CreatedBy:         ticket.CreatedBy,
		CreatedAt:         ticket.CreatedAt,
		UpdatedAt:         ticket.UpdatedAt,
	}
}

func auditLogResponse(entry *domain.AuditLog) dto.AuditLogResponse {
	return dto.AuditLogResponse{
		ID:           entry.ID,
		TicketNumber: entry.TicketNumber,
		Action:       entry.Action,
		Username:     entry.Username,
		Changes:      entry.Changes,
		CreatedAt:    entry.CreatedAt,
	}
}
