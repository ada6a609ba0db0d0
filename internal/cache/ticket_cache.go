// Package cache provides a redis read-through cache for ticket lookups by
// number. The database stays authoritative; every ticket mutation
// invalidates the cached copy.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/domain"
)

const ticketKeyPrefix = "ticket:"

// TicketCache caches tickets keyed by ticket number.
type TicketCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewTicketCache builds the cache. A nil client yields a cache whose
// operations are no-ops, so callers need no configuration checks.
func NewTicketCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *TicketCache {
	return &TicketCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached ticket or (nil, false). Cache errors are logged and
// treated as misses.
func (c *TicketCache) Get(ctx context.Context, ticketNumber string) (*domain.Ticket, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, ticketKeyPrefix+ticketNumber).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("ticket cache get failed", zap.String("ticket_number", ticketNumber), zap.Error(err))
		}
		return nil, false
	}
	var ticket domain.Ticket
	if err := json.Unmarshal(payload, &ticket); err != nil {
		c.logger.Debug("ticket cache decode failed", zap.String("ticket_number", ticketNumber), zap.Error(err))
		return nil, false
	}
	return &ticket, true
}

// Set stores the ticket for the configured TTL.
func (c *TicketCache) Set(ctx context.Context, ticket *domain.Ticket) {
	if c == nil || c.client == nil || ticket == nil {
		return
	}
	payload, err := json.Marshal(ticket)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, ticketKeyPrefix+ticket.TicketNumber, payload, c.ttl).Err(); err != nil {
		c.logger.Debug("ticket cache set failed", zap.String("ticket_number", ticket.TicketNumber), zap.Error(err))
	}
}

// Invalidate drops the cached copy after a mutation.
func (c *TicketCache) Invalidate(ctx context.Context, ticketNumber string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, ticketKeyPrefix+ticketNumber).Err(); err != nil {
		c.logger.Debug("ticket cache invalidate failed", zap.String("ticket_number", ticketNumber), zap.Error(err))
	}
}
