package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/domain"
)

// TicketFilter captures listing parameters.
type TicketFilter struct {
	Status          *domain.TicketStatus
	Module          *string
	Customer        *string
	Developer       *string
	SupportEngineer *string
	CRType          *string
	IssueType       *string
	FromDate        *string
	ToDate          *string
	Limit           int
	Offset          int
}

// TicketRepository encapsulates ticket persistence. Missing tickets are
// reported as pgx.ErrNoRows; services map that to NOT_FOUND.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	GetByNumber(ctx context.Context, ticketNumber string) (*domain.Ticket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, ticket_number, customer, cr_type, issue_type, type, cr_date, cr_time,
        module, description, amc_cost, pr_approval, priority, status,
        support_engineer, developer, developer_email, planned_date, commitment_date,
        completed_on, completed_by, completed_time, time_duration,
        resolution_type, completion_remarks, exe_sent, reason_for_issue,
        customer_call, remarks, created_by, created_at, updated_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (ticket_number, customer, cr_type, issue_type, type, cr_date, cr_time,
            module, description, amc_cost, pr_approval, priority, status,
            support_engineer, developer, developer_email, planned_date, commitment_date, remarks, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.TicketNumber,
		ticket.Customer,
		ticket.CRType,
		ticket.IssueType,
		ticket.Type,
		ticket.CRDate,
		ticket.CRTime,
		ticket.Module,
		ticket.Description,
		ticket.AMCCost,
		ticket.PRApproval,
		ticket.Priority,
		ticket.Status,
		ticket.SupportEngineer,
		ticket.Developer,
		ticket.DeveloperEmail,
		ticket.PlannedDate,
		ticket.CommitmentDate,
		ticket.Remarks,
		ticket.CreatedBy,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET customer=$1, cr_type=$2, issue_type=$3, type=$4, module=$5,
            description=$6, amc_cost=$7, pr_approval=$8, priority=$9, status=$10,
            planned_date=$11, commitment_date=$12, completed_on=$13, completed_by=$14,
            completed_time=$15, time_duration=$16, resolution_type=$17, completion_remarks=$18,
            exe_sent=$19, reason_for_issue=$20, customer_call=$21, remarks=$22, updated_at=$23
        WHERE ticket_number=$24`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.Customer,
		ticket.CRType,
		ticket.IssueType,
		ticket.Type,
		ticket.Module,
		ticket.Description,
		ticket.AMCCost,
		ticket.PRApproval,
		ticket.Priority,
		ticket.Status,
		ticket.PlannedDate,
		ticket.CommitmentDate,
		ticket.CompletedOn,
		ticket.CompletedBy,
		ticket.CompletedTime,
		ticket.TimeDuration,
		ticket.ResolutionType,
		ticket.CompletionRemarks,
		ticket.ExeSent,
		ticket.ReasonForIssue,
		ticket.CustomerCall,
		ticket.Remarks,
		ticket.UpdatedAt,
		ticket.TicketNumber,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetByNumber(ctx context.Context, ticketNumber string) (*domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE ticket_number=$1`, ticketColumns)
	var ticket domain.Ticket
	if err := scanTicket(r.pool.QueryRow(ctx, query, ticketNumber), &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Module != nil {
		args = append(args, *filter.Module)
		clauses = append(clauses, fmt.Sprintf("module=$%d", len(args)))
	}
	if filter.Developer != nil {
		args = append(args, *filter.Developer)
		clauses = append(clauses, fmt.Sprintf("developer=$%d", len(args)))
	}
	if filter.SupportEngineer != nil {
		args = append(args, *filter.SupportEngineer)
		clauses = append(clauses, fmt.Sprintf("support_engineer=$%d", len(args)))
	}
	if filter.CRType != nil {
		args = append(args, *filter.CRType)
		clauses = append(clauses, fmt.Sprintf("cr_type=$%d", len(args)))
	}
	if filter.IssueType != nil {
		args = append(args, *filter.IssueType)
		clauses = append(clauses, fmt.Sprintf("issue_type=$%d", len(args)))
	}
	if filter.Customer != nil && strings.TrimSpace(*filter.Customer) != "" {
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(*filter.Customer))+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(customer) LIKE $%d", len(args)))
	}
	if filter.FromDate != nil {
		args = append(args, *filter.FromDate)
		clauses = append(clauses, fmt.Sprintf("cr_date >= $%d", len(args)))
	}
	if filter.ToDate != nil {
		args = append(args, *filter.ToDate)
		clauses = append(clauses, fmt.Sprintf("cr_date <= $%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE %s ORDER BY cr_date DESC, ticket_number DESC LIMIT %d OFFSET %d`,
		ticketColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func scanTicket(row pgx.Row, ticket *domain.Ticket) error {
	return row.Scan(
		&ticket.ID,
		&ticket.TicketNumber,
		&ticket.Customer,
		&ticket.CRType,
		&ticket.IssueType,
		&ticket.Type,
		&ticket.CRDate,
		&ticket.CRTime,
		&ticket.Module,
		&ticket.Description,
		&ticket.AMCCost,
		&ticket.PRApproval,
		&ticket.Priority,
		&ticket.Status,
		&ticket.SupportEngineer,
		&ticket.Developer,
		&ticket.DeveloperEmail,
		&ticket.PlannedDate,
		&ticket.CommitmentDate,
		&ticket.CompletedOn,
		&ticket.CompletedBy,
		&ticket.CompletedTime,
		&ticket.TimeDuration,
		&ticket.ResolutionType,
		&ticket.CompletionRemarks,
		&ticket.ExeSent,
		&ticket.ReasonForIssue,
		&ticket.CustomerCall,
		&ticket.Remarks,
		&ticket.CreatedBy,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := scanTicket(rows, &ticket); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
