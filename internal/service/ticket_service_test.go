package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/process-tracker/internal/domain"
	"github.com/spec-kit/process-tracker/internal/events"
	"github.com/spec-kit/process-tracker/internal/repository"
	"github.com/spec-kit/process-tracker/internal/sla"
	apperrors "github.com/spec-kit/process-tracker/pkg/util"
)

type fakeTicketRepo struct {
	byID   map[string]domain.Ticket
	nextID int
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{byID: map[string]domain.Ticket{}}
}

func (f *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	f.nextID++
	ticket.ID = "T" + strconv.Itoa(f.nextID)
	ticket.CreatedAt = ticket.OpenedAt
	ticket.UpdatedAt = ticket.OpenedAt
	f.byID[ticket.ID] = *ticket
	return nil
}

func (f *fakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	f.byID[ticket.ID] = *ticket
	return nil
}

func (f *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	ticket, ok := f.byID[id]
	if !ok {
		return nil, apperrors.NewNotFound("ticket", nil)
	}
	return &ticket, nil
}

func (f *fakeTicketRepo) GetByExternalKey(_ context.Context, key string) (*domain.Ticket, error) {
	for _, ticket := range f.byID {
		if ticket.ExternalKey == key {
			t := ticket
			return &t, nil
		}
	}
	return nil, apperrors.NewNotFound("ticket", nil)
}

func (f *fakeTicketRepo) ListWithFilter(_ context.Context, _ repository.TicketFilter) ([]domain.Ticket, error) {
	out := make([]domain.Ticket, 0, len(f.byID))
	for _, ticket := range f.byID {
		out = append(out, ticket)
	}
	return out, nil
}

type recordingDispatcher struct {
	published []events.Event
}

func (r *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	r.published = append(r.published, event)
	return nil
}

func (r *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestTicketService(repo *fakeTicketRepo, dispatcher *recordingDispatcher, now time.Time) *TicketService {
	return NewTicketService(TicketDependencies{
		TicketRepo: repo,
		Engine:     sla.NewEngine(domain.DefaultOriginRules()),
		Dispatcher: dispatcher,
		Now:        fixedClock(now),
	})
}

func TestOpenTicketPersistsAndPublishes(t *testing.T) {
	repo := newFakeTicketRepo()
	dispatcher := &recordingDispatcher{}
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	svc := newTestTicketService(repo, dispatcher, now)

	ticket, err := svc.OpenTicket(context.Background(), "op-1", sla.OpenInput{
		Origin:      domain.OriginPurchasing,
		CustomerID:  "cust-1",
		ContractID:  "ctr-1",
		Description: "missing camera mounts",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.Equal(t, "Purchasing", ticket.Sector)
	assert.Equal(t, time.Date(2024, 1, 11, 9, 0, 0, 0, time.UTC), ticket.DueAt)
	assert.Contains(t, ticket.ExternalKey, "PND-")

	stored, err := repo.GetByID(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, ticket.DueAt, stored.DueAt)

	require.Len(t, dispatcher.published, 1)
	event := dispatcher.published[0]
	assert.Equal(t, events.EventTicketOpened, event.Type)
	assert.NotEmpty(t, event.ID)
	require.NotNil(t, event.Actor.OperatorID)
	assert.Equal(t, "op-1", *event.Actor.OperatorID)
}

func TestOpenTicketValidationDoesNotPersist(t *testing.T) {
	repo := newFakeTicketRepo()
	dispatcher := &recordingDispatcher{}
	svc := newTestTicketService(repo, dispatcher, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))

	_, err := svc.OpenTicket(context.Background(), "op-1", sla.OpenInput{
		Origin:     domain.OriginPurchasing,
		CustomerID: "cust-1",
		ContractID: "ctr-1",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
	assert.Empty(t, repo.byID)
	assert.Empty(t, dispatcher.published)
}

func TestUpdateStatusStampsClosedAt(t *testing.T) {
	repo := newFakeTicketRepo()
	dispatcher := &recordingDispatcher{}
	openedAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestTicketService(repo, dispatcher, openedAt)

	ticket, err := svc.OpenTicket(context.Background(), "", sla.OpenInput{
		Origin:      domain.OriginBilling,
		CustomerID:  "cust-2",
		ContractID:  "ctr-2",
		Description: "invoice mismatch",
	})
	require.NoError(t, err)

	closedAt := openedAt.Add(72 * time.Hour)
	svc.now = fixedClock(closedAt)

	updated, err := svc.UpdateStatus(context.Background(), "op-2", ticket.ID, domain.TicketStatusClosed)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusClosed, updated.Status)
	require.NotNil(t, updated.ClosedAt)
	assert.Equal(t, closedAt, *updated.ClosedAt)

	stored, err := repo.GetByID(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusClosed, stored.Status)
}

func TestUpdateStatusTerminalRejected(t *testing.T) {
	repo := newFakeTicketRepo()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestTicketService(repo, &recordingDispatcher{}, now)

	ticket, err := svc.OpenTicket(context.Background(), "", sla.OpenInput{
		Origin:      domain.OriginClientServiceHiring,
		CustomerID:  "cust-3",
		ContractID:  "ctr-3",
		Description: "alarm keeps triggering",
	})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), "", ticket.ID, domain.TicketStatusCancelled)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), "", ticket.ID, domain.TicketStatusOpen)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "INVALID_STATE"))

	stored, err := repo.GetByID(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusCancelled, stored.Status)
}

func TestReassignSectorTerminalRejected(t *testing.T) {
	repo := newFakeTicketRepo()
	dispatcher := &recordingDispatcher{}
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestTicketService(repo, dispatcher, now)

	ticket, err := svc.OpenTicket(context.Background(), "", sla.OpenInput{
		Origin:      domain.OriginWarehouse,
		CustomerID:  "cust-4",
		ContractID:  "ctr-4",
		Description: "stock divergence",
	})
	require.NoError(t, err)

	updated, err := svc.ReassignSector(context.Background(), "op-9", ticket.ID, "Fiscal")
	require.NoError(t, err)
	assert.Equal(t, "Fiscal", updated.Sector)

	_, err = svc.UpdateStatus(context.Background(), "", ticket.ID, domain.TicketStatusClosed)
	require.NoError(t, err)

	_, err = svc.ReassignSector(context.Background(), "op-9", ticket.ID, "Billing")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "INVALID_STATE"))
}

func TestListTicketsClassifies(t *testing.T) {
	repo := newFakeTicketRepo()
	openedAt := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	svc := newTestTicketService(repo, &recordingDispatcher{}, openedAt)

	_, err := svc.OpenTicket(context.Background(), "", sla.OpenInput{
		Origin:      domain.OriginRegistration,
		CustomerID:  "cust-5",
		ContractID:  "ctr-5",
		Description: "wrong address on file",
	})
	require.NoError(t, err)

	// 5-day SLA, viewed 6 days later.
	svc.now = fixedClock(openedAt.AddDate(0, 0, 6))
	views, err := svc.ListTickets(context.Background(), repository.TicketFilter{})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, domain.DeadlineOverdue, views[0].Class)
}
