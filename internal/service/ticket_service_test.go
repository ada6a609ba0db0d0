package service

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/assignment"
	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/domain"
	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/repository"
	apperrors "github.com/MohanBabu05/Ticktet-Generation-Management-System/pkg/util"
)

type fakeTicketRepo struct {
	mu      sync.Mutex
	tickets map[string]domain.Ticket
	// failCreates injects a unique violation for the first N inserts.
	failCreates int
	nextID      int
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: map[string]domain.Ticket{}}
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreates > 0 {
		r.failCreates--
		return &pgconn.PgError{Code: "23505"}
	}
	if _, exists := r.tickets[ticket.TicketNumber]; exists {
		return &pgconn.PgError{Code: "23505"}
	}
	r.nextID++
	ticket.ID = fmt.Sprintf("id-%d", r.nextID)
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	r.tickets[ticket.TicketNumber] = *ticket
	return nil
}

func (r *fakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tickets[ticket.TicketNumber]; !exists {
		return pgx.ErrNoRows
	}
	r.tickets[ticket.TicketNumber] = *ticket
	return nil
}

func (r *fakeTicketRepo) GetByNumber(_ context.Context, ticketNumber string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, exists := r.tickets[ticketNumber]
	if !exists {
		return nil, pgx.ErrNoRows
	}
	clone := ticket
	return &clone, nil
}

func (r *fakeTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Ticket{}
	for _, ticket := range r.tickets {
		if filter.Status != nil && ticket.Status != *filter.Status {
			continue
		}
		if filter.Module != nil && ticket.Module != *filter.Module {
			continue
		}
		out = append(out, ticket)
	}
	return out, nil
}

func (r *fakeTicketRepo) stored(t *testing.T, ticketNumber string) domain.Ticket {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, exists := r.tickets[ticketNumber]
	require.True(t, exists, "ticket %s not stored", ticketNumber)
	return ticket
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []domain.AuditLog
}

func (r *fakeAuditRepo) Create(_ context.Context, entry *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.CreatedAt = time.Now()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeAuditRepo) ListByTicket(_ context.Context, ticketNumber string) ([]domain.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.AuditLog{}
	for _, entry := range r.entries {
		if entry.TicketNumber == ticketNumber {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (r *fakeAuditRepo) forTicket(ticketNumber string) []domain.AuditLog {
	entries, _ := r.ListByTicket(context.Background(), ticketNumber)
	return entries
}

type fakeCounterRepo struct {
	mu       sync.Mutex
	counters map[int]int
}

func newFakeCounterRepo() *fakeCounterRepo {
	return &fakeCounterRepo{counters: map[int]int{}}
}

func (r *fakeCounterRepo) Next(_ context.Context, year int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters[year]++
	return r.counters[year], nil
}

type fixture struct {
	svc     *TicketService
	tickets *fakeTicketRepo
	audits  *fakeAuditRepo
	counter *fakeCounterRepo
}

func newFixture() *fixture {
	tickets := newFakeTicketRepo()
	audits := &fakeAuditRepo{}
	counter := newFakeCounterRepo()
	svc := NewTicketService(TicketDependencies{
		TicketRepo:  tickets,
		AuditRepo:   audits,
		CounterRepo: counter,
		Directory:   assignment.Default(),
	})
	return &fixture{svc: svc, tickets: tickets, audits: audits, counter: counter}
}

func (f *fixture) at(t time.Time) *fixture {
	f.svc.now = func() time.Time { return t }
	return f
}

func manager() *domain.User {
	return &domain.User{Username: "ravi", FullName: "Ravi Kumar", Role: domain.RoleManager}
}

func admin() *domain.User {
	return &domain.User{Username: "root", FullName: "System Admin", Role: domain.RoleAdmin}
}

func createInput() TicketCreateInput {
	return TicketCreateInput{
		Customer:    "Acme Textiles",
		CRType:      "Issue",
		IssueType:   "Bug",
		Module:      "PPC",
		Description: "Work order report totals are wrong",
	}
}

func domainErr(t *testing.T, err error) *apperrors.DomainError {
	t.Helper()
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	require.NotNil(t, de)
	return de
}

var ticketNumberPattern = regexp.MustCompile(`^\d{4}-\d{5}$`)

func TestCreateAssignsAndNumbersTicket(t *testing.T) {
	f := newFixture().at(time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC))

	ticket, err := f.svc.Create(context.Background(), createInput(), manager())
	require.NoError(t, err)

	assert.Equal(t, "2025-00001", ticket.TicketNumber)
	assert.Regexp(t, ticketNumberPattern, ticket.TicketNumber)
	assert.Equal(t, domain.TicketStatusAssigned, ticket.Status)
	assert.Equal(t, "2025-03-10", ticket.CRDate)
	assert.Equal(t, "09:30:00", ticket.CRTime)
	assert.Equal(t, "Medium", ticket.Priority)
	assert.Equal(t, "ravi", ticket.CreatedBy)

	// Routing comes from the directory, never from the request.
	assert.Equal(t, "Vignesh", ticket.SupportEngineer)
	assert.Equal(t, "Annamalai", ticket.Developer)
	assert.Equal(t, "annamalai.s@kalsofte.com", ticket.DeveloperEmail)
}

func TestCreateUnknownModuleGetsSentinelRouting(t *testing.T) {
	f := newFixture()
	input := createInput()
	input.Module = "Mystery Module"

	ticket, err := f.svc.Create(context.Background(), input, manager())
	require.NoError(t, err)

	assert.Equal(t, assignment.Unassigned, ticket.SupportEngineer)
	assert.Equal(t, assignment.Unassigned, ticket.Developer)
	assert.Empty(t, ticket.DeveloperEmail)
	assert.Equal(t, domain.TicketStatusAssigned, ticket.Status)
}

func TestCreateRejectsMissingRequiredFields(t *testing.T) {
	f := newFixture()
	input := createInput()
	input.Customer = "  "
	input.Description = ""

	_, err := f.svc.Create(context.Background(), input, manager())
	de := domainErr(t, err)
	assert.Equal(t, "VALIDATION_FAILED", de.Code)
	assert.ElementsMatch(t, []string{"customer", "description"}, de.Details["fields"])
}

func TestCreateNumbersAreSequentialWithinYear(t *testing.T) {
	f := newFixture().at(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	for i := 1; i <= 3; i++ {
		ticket, err := f.svc.Create(context.Background(), createInput(), manager())
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("2025-%05d", i), ticket.TicketNumber)
	}
}

func TestConcurrentCreatesYieldContiguousNumbers(t *testing.T) {
	f := newFixture().at(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	const n = 20
	numbers := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ticket, err := f.svc.Create(context.Background(), createInput(), manager())
			assert.NoError(t, err)
			numbers <- ticket.TicketNumber
		}()
	}
	wg.Wait()
	close(numbers)

	seen := map[string]bool{}
	for num := range numbers {
		assert.False(t, seen[num], "duplicate ticket number %s", num)
		seen[num] = true
	}
	// No gaps: every number in [1, n] was handed out exactly once.
	for i := 1; i <= n; i++ {
		assert.True(t, seen[fmt.Sprintf("2025-%05d", i)])
	}
}

func TestCreateSequencesAreIndependentPerYear(t *testing.T) {
	f := newFixture().at(time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC))

	ticket, err := f.svc.Create(context.Background(), createInput(), manager())
	require.NoError(t, err)
	assert.Equal(t, "2025-00001", ticket.TicketNumber)

	f.at(time.Date(2026, 1, 1, 1, 0, 0, 0, time.UTC))
	ticket, err = f.svc.Create(context.Background(), createInput(), manager())
	require.NoError(t, err)
	assert.Equal(t, "2026-00001", ticket.TicketNumber)
}

func TestCreateRetriesBurnedNumberOnCollision(t *testing.T) {
	f := newFixture().at(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	f.tickets.failCreates = 1

	ticket, err := f.svc.Create(context.Background(), createInput(), manager())
	require.NoError(t, err)
	// 2025-00001 was burned by the failed insert and is never reused.
	assert.Equal(t, "2025-00002", ticket.TicketNumber)
}

func TestCreateGivesUpAfterRepeatedCollisions(t *testing.T) {
	f := newFixture()
	f.tickets.failCreates = maxAllocationRetries

	_, err := f.svc.Create(context.Background(), createInput(), manager())
	de := domainErr(t, err)
	assert.Equal(t, "CONFLICT", de.Code)
}

func TestCreateWritesSingleAuditEntry(t *testing.T) {
	f := newFixture()

	ticket, err := f.svc.Create(context.Background(), createInput(), manager())
	require.NoError(t, err)

	entries := f.audits.forTicket(ticket.TicketNumber)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.AuditActionCreated, entries[0].Action)
	assert.Equal(t, "ravi", entries[0].Username)
	assert.Equal(t, ticket.TicketNumber, entries[0].Changes["ticket_number"])
	assert.Equal(t, "Acme Textiles", entries[0].Changes["customer"])
}

func TestGetUnknownTicketIsNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Get(context.Background(), "2025-99999")
	de := domainErr(t, err)
	assert.Equal(t, "NOT_FOUND", de.Code)
}

func TestUpdateFieldsAppliesPatchAndAudits(t *testing.T) {
	f := newFixture()
	ticket, err := f.svc.Create(context.Background(), createInput(), manager())
	require.NoError(t, err)

	priority := "High"
	remarks := "Customer escalated"
	updated, err := f.svc.UpdateFields(context.Background(), ticket.TicketNumber, TicketPatch{
		Priority: &priority,
		Remarks:  &remarks,
	}, manager())
	require.NoError(t, err)

	assert.Equal(t, "High", updated.Priority)
	require.NotNil(t, updated.Remarks)
	assert.Equal(t, "Customer escalated", *updated.Remarks)

	entries := f.audits.forTicket(ticket.TicketNumber)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.AuditActionUpdated, entries[1].Action)
	assert.Equal(t, map[string]any{"priority": "High", "remarks": "Customer escalated"}, entries[1].Changes)
}

func TestUpdateFieldsRejectsEmptyPatch(t *testing.T) {
	f := newFixture()
	ticket, err := f.svc.Create(context.Background(), createInput(), manager())
	require.NoError(t, err)

	_, err = f.svc.UpdateFields(context.Background(), ticket.TicketNumber, TicketPatch{}, manager())
	de := domainErr(t, err)
	assert.Equal(t, "VALIDATION_FAILED", de.Code)

	// Rejection leaves the audit trail untouched.
	assert.Len(t, f.audits.forTicket(ticket.TicketNumber), 1)
}

func completeTicket(t *testing.T, f *fixture, ticketNumber string) {
	t.Helper()
	resolution := "Fixed"
	remarks := "Patched report query"
	_, err := f.svc.UpdateStatus(context.Background(), ticketNumber, StatusUpdateInput{
		Status:            string(domain.TicketStatusCompleted),
		ResolutionType:    &resolution,
		CompletionRemarks: &remarks,
	}, admin())
	require.NoError(t, err)
}

func TestCompletedTicketLockedForNonAdmin(t *testing.T) {
	f := newFixture()
	ticket, err := f.svc.Create(context.Background(), createInput(), manager())
	require.NoError(t, err)
	completeTicket(t, f, ticket.TicketNumber)

	priority := "Low"
	_, err = f.svc.UpdateFields(context.Background(), ticket.TicketNumber, TicketPatch{Priority: &priority}, manager())
	de := domainErr(t, err)
	assert.Equal(t, "FORBIDDEN", de.Code)

	stored := f.tickets.stored(t, ticket.TicketNumber)
	assert.Equal(t, "Medium", stored.Priority)
}

func TestCompletedTicketAllowsRemarksForNonAdmin(t *testing.T) {
	f := newFixture()
	ticket, err := f.svc.Create(context.Background(), createInput(), manager())
	require.NoError(t, err)
	completeTicket(t, f, ticket.TicketNumber)

	remarks := "Verified with customer"
	priority := "Low"
	updated, err := f.svc.UpdateFields(context.Background(), ticket.TicketNumber, TicketPatch{
		Remarks:  &remarks,
		Priority: &priority,
	}, manager())
	require.NoError(t, err)

	// The remarks land; the rest of the patch is discarded.
	require.NotNil(t, updated.Remarks)
	assert.Equal(t, "Verified with customer", *updated.Remarks)
	assert.Equal(t, "Medium", updated.Priority)
}

func TestCompletedTicketFullyEditableByAdmin(t *testing.T) {
	f := newFixture()
	ticket, err := f.svc.Create(context.Background(), createInput(), manager())
	require.NoError(t, err)
	completeTicket(t, f, ticket.TicketNumber)

	priority := "Low"
	updated, err := f.svc.UpdateFields(context.Background(), ticket.TicketNumber, TicketPatch{Priority: &priority}, admin())
	require.NoError(t, err)
	assert.Equal(t, "Low", updated.Priority)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	f := newFixture()
	ticket, err := f.svc.Create(context.Background(), createInput(), manager())
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(context.Background(), ticket.TicketNumber, StatusUpdateInput{Status: "Resolved"}, manager())
	de := domainErr(t, err)
	assert.Equal(t, "INVALID_STATUS", de.Code)
}

func TestCloseRequiresCompletedFirst(t *testing.T) {
	f := newFixture()
	ticket, err := f.svc.Create(context.Background(), createInput(), manager())
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(context.Background(), ticket.TicketNumber, StatusUpdateInput{
		Status: string(domain.TicketStatusClosed),
	}, manager())
	de := domainErr(t, err)
	assert.Equal(t, "ILLEGAL_TRANSITION", de.Code)

	stored := f.tickets.stored(t, ticket.TicketNumber)
	assert.Equal(t, domain.TicketStatusAssigned, stored.Status)
}

func TestClosedIsTerminal(t *testing.T) {
	f := newFixture()
	ticket, err := f.svc.Create(context.Background(), createInput(), manager())
	require.NoError(t, err)
	completeTicket(t, f, ticket.TicketNumber)

	_, err = f.svc.UpdateStatus(context.Background(), ticket.TicketNumber, StatusUpdateInput{
		Status: string(domain.TicketStatusClosed),
	}, manager())
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(context.Background(), ticket.TicketNumber, StatusUpdateInput{
		Status: string(domain.TicketStatusInProgress),
	}, admin())
	de := domainErr(t, err)
	assert.Equal(t, "ILLEGAL_TRANSITION", de.Code)
}

func TestCompletionRequiresResolutionFields(t *testing.T) {
	f := newFixture()
	ticket, err := f.svc.Create(context.Background(), createInput(), manager())
	require.NoError(t, err)

	cases := []struct {
		name  string
		input StatusUpdateInput
	}{
		{"no resolution", StatusUpdateInput{Status: string(domain.TicketStatusCompleted)}},
		{"unknown resolution", StatusUpdateInput{
			Status:            string(domain.TicketStatusCompleted),
			ResolutionType:    strPtr("Sorted Out"),
			CompletionRemarks: strPtr("done"),
		}},
		{"no remarks", StatusUpdateInput{
			Status:         string(domain.TicketStatusCompleted),
			ResolutionType: strPtr("Fixed"),
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.UpdateStatus(context.Background(), ticket.TicketNumber, tc.input, manager())
			de := domainErr(t, err)
			assert.Equal(t, "MISSING_RESOLUTION", de.Code)

			stored := f.tickets.stored(t, ticket.TicketNumber)
			assert.Equal(t, domain.TicketStatusAssigned, stored.Status)
			assert.Nil(t, stored.ResolutionType)
			assert.Nil(t, stored.CompletedOn)
		})
	}
}

func TestCompletionStampsResolutionFields(t *testing.T) {
	f := newFixture().at(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	ticket, err := f.svc.Create(context.Background(), createInput(), manager())
	require.NoError(t, err)

	f.at(time.Date(2025, 3, 13, 17, 30, 0, 0, time.UTC))
	resolution := "Data Correction"
	remarks := "Rebuilt the totals"
	updated, err := f.svc.UpdateStatus(context.Background(), ticket.TicketNumber, StatusUpdateInput{
		Status:            string(domain.TicketStatusCompleted),
		ResolutionType:    &resolution,
		CompletionRemarks: &remarks,
	}, admin())
	require.NoError(t, err)

	assert.Equal(t, domain.TicketStatusCompleted, updated.Status)
	assert.Equal(t, "2025-03-13", *updated.CompletedOn)
	assert.Equal(t, "17:30:00", *updated.CompletedTime)
	assert.Equal(t, "System Admin", *updated.CompletedBy)
	assert.Equal(t, "3 days", *updated.TimeDuration)
	assert.Equal(t, "Data Correction", *updated.ResolutionType)
	assert.Equal(t, "Rebuilt the totals", *updated.CompletionRemarks)

	entries := f.audits.forTicket(ticket.TicketNumber)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.AuditActionStatusUpdated, entries[1].Action)
	assert.Equal(t, "Completed", entries[1].Changes["status"])
	assert.Equal(t, "3 days", entries[1].Changes["time_duration"])
}

func TestCompletionHonorsExplicitCompletedBy(t *testing.T) {
	f := newFixture()
	ticket, err := f.svc.Create(context.Background(), createInput(), manager())
	require.NoError(t, err)

	resolution := "Fixed"
	remarks := "done"
	completedBy := "Annamalai"
	updated, err := f.svc.UpdateStatus(context.Background(), ticket.TicketNumber, StatusUpdateInput{
		Status:            string(domain.TicketStatusCompleted),
		CompletedBy:       &completedBy,
		ResolutionType:    &resolution,
		CompletionRemarks: &remarks,
	}, admin())
	require.NoError(t, err)
	assert.Equal(t, "Annamalai", *updated.CompletedBy)
}

func TestAuditTrailReturnsEntriesInOrder(t *testing.T) {
	f := newFixture()
	ticket, err := f.svc.Create(context.Background(), createInput(), manager())
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(context.Background(), ticket.TicketNumber, StatusUpdateInput{
		Status: string(domain.TicketStatusInProgress),
	}, manager())
	require.NoError(t, err)

	entries, err := f.svc.AuditTrail(context.Background(), ticket.TicketNumber)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.AuditActionCreated, entries[0].Action)
	assert.Equal(t, domain.AuditActionStatusUpdated, entries[1].Action)
}

func TestAuditTrailUnknownTicketIsNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.AuditTrail(context.Background(), "2025-00042")
	de := domainErr(t, err)
	assert.Equal(t, "NOT_FOUND", de.Code)
}

func TestFormatTicketNumber(t *testing.T) {
	assert.Equal(t, "2025-00001", FormatTicketNumber(2025, 1))
	assert.Equal(t, "2025-00123", FormatTicketNumber(2025, 123))
	assert.Equal(t, "2026-99999", FormatTicketNumber(2026, 99999))
}

func TestCompletionDuration(t *testing.T) {
	completed := time.Date(2025, 3, 13, 17, 30, 0, 0, time.UTC)
	assert.Equal(t, "3 days", completionDuration("2025-03-10", completed))
	assert.Equal(t, "0 days", completionDuration("2025-03-13", completed))
	assert.Equal(t, "0 days", completionDuration("garbage", completed))
}

func strPtr(s string) *string { return &s }
