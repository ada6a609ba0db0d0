package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/domain"
)

// AuditLogRepository stores the append-only mutation trail. Entries are
// never updated or deleted.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
	ListByTicket(ctx context.Context, ticketNumber string) ([]domain.AuditLog, error)
}

type auditLogRepository struct {
	pool *pgxpool.Pool
}

// NewAuditLogRepository builds repository.
func NewAuditLogRepository(pool *pgxpool.Pool) AuditLogRepository {
	return &auditLogRepository{pool: pool}
}

func (r *auditLogRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	const query = `
        INSERT INTO audit_logs (ticket_number, action, username, changes)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		entry.TicketNumber,
		entry.Action,
		entry.Username,
		entry.Changes,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *auditLogRepository) ListByTicket(ctx context.Context, ticketNumber string) ([]domain.AuditLog, error) {
	const query = `
        SELECT id, ticket_number, action, username, changes, created_at
        FROM audit_logs WHERE ticket_number=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, ticketNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AuditLog
	for rows.Next() {
		var entry domain.AuditLog
		if err := rows.Scan(
			&entry.ID,
			&entry.TicketNumber,
			&entry.Action,
			&entry.Username,
			&entry.Changes,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
