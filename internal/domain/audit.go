package domain

import "time"

// AuditAction tags what kind of mutation produced an audit entry.
type AuditAction string

const (
	AuditActionCreated       AuditAction = "created"
	AuditActionUpdated       AuditAction = "updated"
	AuditActionStatusUpdated AuditAction = "status_updated"
)

// AuditLog is an immutable record of a single ticket mutation. Changes holds
// exactly the fields the mutation persisted. Entries are never updated or
// deleted.
type AuditLog struct {
	ID           string
	TicketNumber string
	Action       AuditAction
	Username     string
	Changes      map[string]any
	CreatedAt    time.Time
}
