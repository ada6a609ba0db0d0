package mailer

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-message/mail"
	"go.uber.org/zap"

	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/config"
	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/domain"
	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/service"
)

// Listener polls the configured mailbox and creates a ticket for every
// unseen message whose subject parses. Messages are marked seen only after
// the ticket was created, so transient failures are retried on the next
// poll. Malformed subjects are logged and skipped (and stay unseen).
type Listener struct {
	cfg     config.IMAPConfig
	tickets *service.TicketService
	logger  *zap.Logger
}

// NewListener builds the mailbox listener.
func NewListener(cfg config.IMAPConfig, tickets *service.TicketService, logger *zap.Logger) *Listener {
	return &Listener{cfg: cfg, tickets: tickets, logger: logger}
}

// Run polls until the context is cancelled. One failed cycle never stops the
// loop.
func (l *Listener) Run(ctx context.Context) {
	l.logger.Info("email listener started",
		zap.String("mailbox", l.cfg.Mailbox),
		zap.Duration("interval", l.cfg.PollInterval()))

	ticker := time.NewTicker(l.cfg.PollInterval())
	defer ticker.Stop()

	for {
		if err := l.checkOnce(ctx); err != nil {
			l.logger.Error("mailbox check failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			l.logger.Info("email listener stopped")
			return
		case <-ticker.C:
		}
	}
}

type inboundMessage struct {
	seqNum  uint32
	subject string
	body    string
}

func (l *Listener) checkOnce(ctx context.Context) error {
	c, err := client.DialTLS(l.cfg.Addr, nil)
	if err != nil {
		return err
	}
	defer c.Logout() //nolint:errcheck

	if err := c.Login(l.cfg.Username, l.cfg.Password); err != nil {
		return err
	}
	if _, err := c.Select(l.cfg.Mailbox, false); err != nil {
		return err
	}

	criteria := imap.NewSearchCriteria()
	criteria.WithoutFlags = []string{imap.SeenFlag}
	seqNums, err := c.Search(criteria)
	if err != nil {
		return err
	}
	if len(seqNums) == 0 {
		return nil
	}
	l.logger.Info("found new emails", zap.Int("count", len(seqNums)))

	messages, err := fetchMessages(c, seqNums)
	if err != nil {
		return err
	}

	processed := new(imap.SeqSet)
	for _, msg := range messages {
		if l.ingest(ctx, msg) {
			processed.AddNum(msg.seqNum)
		}
	}
	if processed.Empty() {
		return nil
	}
	item := imap.FormatFlagsOp(imap.AddFlags, true)
	return c.Store(processed, item, []interface{}{imap.SeenFlag}, nil)
}

func fetchMessages(c *client.Client, seqNums []uint32) ([]inboundMessage, error) {
	seqset := new(imap.SeqSet)
	seqset.AddNum(seqNums...)

	section := &imap.BodySectionName{}
	ch := make(chan *imap.Message, len(seqNums))
	done := make(chan error, 1)
	go func() {
		done <- c.Fetch(seqset, []imap.FetchItem{section.FetchItem()}, ch)
	}()

	var result []inboundMessage
	for msg := range ch {
		body := msg.GetBody(section)
		if body == nil {
			continue
		}
		subject, text, err := decodeMessage(body)
		if err != nil {
			continue
		}
		result = append(result, inboundMessage{seqNum: msg.SeqNum, subject: subject, body: text})
	}
	if err := <-done; err != nil {
		return nil, err
	}
	return result, nil
}

// decodeMessage extracts the decoded subject and the first plain-text part.
func decodeMessage(r io.Reader) (subject, body string, err error) {
	mr, err := mail.CreateReader(r)
	if err != nil {
		return "", "", err
	}
	subject, err = mr.Header.Subject()
	if err != nil {
		subject = ""
	}

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}
		header, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		contentType, _, _ := header.ContentType()
		if contentType != "text/plain" && body != "" {
			continue
		}
		raw, err := io.ReadAll(part.Body)
		if err != nil {
			continue
		}
		body = strings.TrimSpace(string(raw))
		if contentType == "text/plain" {
			break
		}
	}
	return subject, body, nil
}

// ingest creates a ticket for one message. Returns true when the message
// should be marked seen.
func (l *Listener) ingest(ctx context.Context, msg inboundMessage) bool {
	parsed, ok := ParseSubject(msg.subject)
	if !ok {
		l.logger.Warn("skipping email with invalid subject format", zap.String("subject", msg.subject))
		return false
	}

	remarks := "Auto-created from email. Subject: " + msg.subject
	input := service.TicketCreateInput{
		Customer:    parsed.Customer,
		Module:      parsed.Module,
		CRType:      parsed.CRType,
		IssueType:   parsed.IssueType,
		Description: ComposeDescription(parsed, msg.body),
		Priority:    "Medium",
		Remarks:     &remarks,
	}

	ticket, err := l.tickets.Create(ctx, input, l.systemActor())
	if err != nil {
		l.logger.Error("failed to create ticket from email",
			zap.String("subject", msg.subject),
			zap.Error(err))
		return false
	}
	l.logger.Info("created ticket from email",
		zap.String("ticket_number", ticket.TicketNumber),
		zap.String("customer", ticket.Customer),
		zap.String("module", ticket.Module),
		zap.String("developer", ticket.Developer))
	return true
}

func (l *Listener) systemActor() *domain.User {
	return &domain.User{
		Username: l.cfg.ActorUsername,
		FullName: "CR Automation System",
		Role:     domain.RoleAdmin,
	}
}
