package sla

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/process-tracker/internal/domain"
	apperrors "github.com/spec-kit/process-tracker/pkg/util"
)

func newTestEngine() *Engine {
	return NewEngine(domain.DefaultOriginRules())
}

func validInput(origin domain.TicketOrigin) OpenInput {
	return OpenInput{
		Origin:      origin,
		CustomerID:  "cus-1",
		ContractID:  "ctr-1",
		Description: "missing equipment batch",
	}
}

func TestOpenResolvesOriginTable(t *testing.T) {
	engine := newTestEngine()
	openedAt := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	ticket, err := engine.Open(validInput(domain.OriginPurchasing), openedAt)
	require.NoError(t, err)
	assert.Equal(t, "Purchasing", ticket.Sector)
	assert.Equal(t, 10, ticket.SLADays)
	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.Equal(t, time.Date(2024, 1, 11, 10, 0, 0, 0, time.UTC), ticket.DueAt)
}

func TestOpenClientOriginFallsBackToThirtyDays(t *testing.T) {
	engine := newTestEngine()
	openedAt := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)

	ticket, err := engine.Open(validInput(domain.OriginClientVegetation), openedAt)
	require.NoError(t, err)
	assert.Equal(t, 0, ticket.SLADays)
	assert.Equal(t, openedAt.AddDate(0, 0, 30), ticket.DueAt)
}

func TestOpenValidation(t *testing.T) {
	engine := newTestEngine()
	now := time.Now()

	tests := []struct {
		name   string
		mutate func(*OpenInput)
	}{
		{"unknown origin", func(in *OpenInput) { in.Origin = "DEPT_UNKNOWN" }},
		{"missing customer", func(in *OpenInput) { in.CustomerID = " " }},
		{"missing contract", func(in *OpenInput) { in.ContractID = "" }},
		{"missing description", func(in *OpenInput) { in.Description = "  " }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput(domain.OriginBilling)
			tt.mutate(&input)
			_, err := engine.Open(input, now)
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
		})
	}
}

func TestTransitionLifecycle(t *testing.T) {
	engine := newTestEngine()
	now := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	opened, err := engine.Open(validInput(domain.OriginWarehouse), now)
	require.NoError(t, err)

	inProgress, err := engine.Transition(*opened, domain.TicketStatusInProgress, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusInProgress, inProgress.Status)
	assert.Nil(t, inProgress.ClosedAt)
	assert.Equal(t, opened.DueAt, inProgress.DueAt, "due date never recomputed")

	closed, err := engine.Transition(inProgress, domain.TicketStatusClosed, now.Add(2*time.Hour))
	require.NoError(t, err)
	require.NotNil(t, closed.ClosedAt)
	assert.Equal(t, now.Add(2*time.Hour), *closed.ClosedAt)
	assert.Equal(t, opened.DueAt, closed.DueAt)
}

func TestTransitionDirectCloseAndCancel(t *testing.T) {
	engine := newTestEngine()
	now := time.Now()
	opened, err := engine.Open(validInput(domain.OriginFiscal), now)
	require.NoError(t, err)

	closed, err := engine.Transition(*opened, domain.TicketStatusClosed, now)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusClosed, closed.Status)
	require.NotNil(t, closed.ClosedAt)

	cancelled, err := engine.Transition(*opened, domain.TicketStatusCancelled, now)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusCancelled, cancelled.Status)
	assert.Nil(t, cancelled.ClosedAt)
}

func TestTransitionTerminalRejected(t *testing.T) {
	engine := newTestEngine()
	now := time.Now()

	for _, status := range []domain.TicketStatus{domain.TicketStatusClosed, domain.TicketStatusCancelled} {
		ticket := domain.Ticket{Status: status, DueAt: now.AddDate(0, 0, 5)}
		got, err := engine.Transition(ticket, domain.TicketStatusOpen, now)
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "INVALID_STATE"))
		assert.Equal(t, ticket, got, "rejected transition leaves snapshot unchanged")
	}
}

func TestTransitionUnknownStatus(t *testing.T) {
	engine := newTestEngine()
	ticket := domain.Ticket{Status: domain.TicketStatusOpen}
	_, err := engine.Transition(ticket, "ARCHIVED", time.Now())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestReassign(t *testing.T) {
	engine := newTestEngine()

	live := domain.Ticket{Status: domain.TicketStatusInProgress, Sector: "Billing"}
	got, err := engine.Reassign(live, "Fiscal")
	require.NoError(t, err)
	assert.Equal(t, "Fiscal", got.Sector)

	_, err = engine.Reassign(live, "  ")
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	done := domain.Ticket{Status: domain.TicketStatusClosed, Sector: "Billing"}
	_, err = engine.Reassign(done, "Fiscal")
	assert.True(t, apperrors.IsCode(err, "INVALID_STATE"))
}

func TestClassify(t *testing.T) {
	dueAt := time.Date(2024, 1, 11, 10, 0, 0, 0, time.UTC)
	ticket := domain.Ticket{Status: domain.TicketStatusOpen, DueAt: dueAt}

	tests := []struct {
		name string
		now  time.Time
		want domain.DeadlineClass
	}{
		{"week before", dueAt.AddDate(0, 0, -7), domain.DeadlineOnTrack},
		{"two days before", dueAt.Add(-47 * time.Hour), domain.DeadlineDueSoon},
		{"morning of the due day", time.Date(2024, 1, 11, 8, 0, 0, 0, time.UTC), domain.DeadlineDueToday},
		{"evening of the due day", time.Date(2024, 1, 11, 23, 0, 0, 0, time.UTC), domain.DeadlineOverdue},
		{"next day", time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC), domain.DeadlineOverdue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(ticket, tt.now))
		})
	}
}

func TestClassifyTerminalIsNone(t *testing.T) {
	dueAt := time.Now()
	for _, status := range []domain.TicketStatus{domain.TicketStatusClosed, domain.TicketStatusCancelled} {
		ticket := domain.Ticket{Status: status, DueAt: dueAt}
		assert.Equal(t, domain.DeadlineNone, Classify(ticket, dueAt.AddDate(0, 0, 10)))
	}
}

// Once a ticket classifies Overdue it must never move back as time advances.
func TestClassifyMonotonic(t *testing.T) {
	dueAt := time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC)
	ticket := domain.Ticket{Status: domain.TicketStatusOpen, DueAt: dueAt}

	rank := map[domain.DeadlineClass]int{
		domain.DeadlineOnTrack:  0,
		domain.DeadlineDueSoon:  1,
		domain.DeadlineDueToday: 2,
		domain.DeadlineOverdue:  3,
	}
	prev := -1
	for now := dueAt.AddDate(0, 0, -10); now.Before(dueAt.AddDate(0, 0, 3)); now = now.Add(6 * time.Hour) {
		got, ok := rank[Classify(ticket, now)]
		require.True(t, ok)
		assert.GreaterOrEqual(t, got, prev, "classification regressed at %s", now)
		prev = got
	}
	assert.Equal(t, rank[domain.DeadlineOverdue], prev)
}

func TestAverageResolutionDays(t *testing.T) {
	opened := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	closeAfter := func(days int) *time.Time {
		c := opened.AddDate(0, 0, days)
		return &c
	}

	_, ok := AverageResolutionDays(nil)
	assert.False(t, ok)

	tickets := []domain.Ticket{
		{Status: domain.TicketStatusClosed, OpenedAt: opened, ClosedAt: closeAfter(2)},
		{Status: domain.TicketStatusClosed, OpenedAt: opened, ClosedAt: closeAfter(5)},
		{Status: domain.TicketStatusCancelled, OpenedAt: opened},
		{Status: domain.TicketStatusOpen, OpenedAt: opened},
	}
	avg, ok := AverageResolutionDays(tickets)
	require.True(t, ok)
	assert.InDelta(t, 3.5, avg, 1e-9)
}

func TestCriticalCount(t *testing.T) {
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	tickets := []domain.Ticket{
		{Status: domain.TicketStatusOpen, DueAt: now.Add(30 * time.Minute)},
		{Status: domain.TicketStatusInProgress, DueAt: now.AddDate(0, -1, 0)},
		{Status: domain.TicketStatusOpen, DueAt: now.Add(25 * time.Hour)},
		{Status: domain.TicketStatusClosed, DueAt: now.Add(-time.Hour)},
	}
	assert.Equal(t, 2, CriticalCount(tickets, now))
}
