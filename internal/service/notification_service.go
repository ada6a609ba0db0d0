package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/config"
	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/domain"
	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/events"
)

// MailSender delivers a composed message. Satisfied by gomail.Dialer.
type MailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// NotificationService emails the assigned developer when a ticket is
// created. It runs off the request path: every failure here is logged and
// swallowed, and never affects the ticket operation that triggered it.
type NotificationService struct {
	dispatcher events.Dispatcher
	sender     MailSender
	logger     *zap.Logger
	cfg        config.SMTPConfig
}

// NewNotificationService creates the service with the default SMTP dialer.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.SMTPConfig) *NotificationService {
	var sender MailSender
	if cfg.Configured() {
		sender = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return &NotificationService{dispatcher: dispatcher, sender: sender, logger: logger, cfg: cfg}
}

// RegisterHandlers subscribes to ticket events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
}

func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok || payload.Ticket == nil {
		n.logger.Warn("ticket created event without ticket payload", zap.String("ticket_number", event.TicketNumber))
		return nil
	}
	n.Notify(ctx, payload.Ticket)
	return nil
}

// Notify composes and sends the assignment mail for a stored ticket.
// Delivery failures are logged, never returned.
func (n *NotificationService) Notify(_ context.Context, ticket *domain.Ticket) {
	if n.sender == nil {
		n.logger.Info("email credentials not configured; skipping assignment notification",
			zap.String("ticket_number", ticket.TicketNumber))
		return
	}
	if ticket.DeveloperEmail == "" {
		n.logger.Warn("no email found for developer; skipping assignment notification",
			zap.String("ticket_number", ticket.TicketNumber),
			zap.String("developer", ticket.Developer))
		return
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", n.cfg.From)
	msg.SetHeader("To", ticket.DeveloperEmail)
	if n.cfg.CC != "" {
		msg.SetHeader("Cc", n.cfg.CC)
	}
	msg.SetHeader("Subject", fmt.Sprintf("New CR Assigned - Ticket %s", ticket.TicketNumber))
	msg.SetBody("text/plain", assignmentBody(ticket))

	if err := n.sender.DialAndSend(msg); err != nil {
		n.logger.Error("failed to send assignment email",
			zap.String("ticket_number", ticket.TicketNumber),
			zap.String("developer_email", ticket.DeveloperEmail),
			zap.Error(err))
		return
	}
	n.logger.Info("assignment email sent",
		zap.String("ticket_number", ticket.TicketNumber),
		zap.String("developer_email", ticket.DeveloperEmail))
}

func assignmentBody(ticket *domain.Ticket) string {
	return fmt.Sprintf(`Dear Team,

A new Change Request (CR) has been received and assigned.
Please find the details below:

Ticket No: %s
Customer: %s
Module: %s

Original Message:
%s

Please review the request and take appropriate action at the earliest.

Regards,
CR Automation System`,
		ticket.TicketNumber,
		ticket.Customer,
		ticket.Module,
		ticket.Description,
	)
}
