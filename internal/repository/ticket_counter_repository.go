package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TicketCounterRepository issues strictly increasing per-year sequence
// numbers for ticket identifiers.
type TicketCounterRepository interface {
	// Next returns the next sequence number for year, starting at 1.
	Next(ctx context.Context, year int) (int, error)
}

type ticketCounterRepository struct {
	pool *pgxpool.Pool
}

// NewTicketCounterRepository builds repository.
func NewTicketCounterRepository(pool *pgxpool.Pool) TicketCounterRepository {
	return &ticketCounterRepository{pool: pool}
}

// Next allocates via a single upsert statement: first-call initialization
// and increment are one atomic operation, so concurrent callers for the same
// year always receive distinct, contiguous values.
func (r *ticketCounterRepository) Next(ctx context.Context, year int) (int, error) {
	const query = `
        INSERT INTO ticket_counters (year, counter) VALUES ($1, 1)
        ON CONFLICT (year) DO UPDATE SET counter = ticket_counters.counter + 1
        RETURNING counter`
	var counter int
	if err := r.pool.QueryRow(ctx, query, year).Scan(&counter); err != nil {
		return 0, err
	}
	return counter, nil
}
