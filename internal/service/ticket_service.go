package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/process-tracker/internal/domain"
	"github.com/spec-kit/process-tracker/internal/events"
	"github.com/spec-kit/process-tracker/internal/repository"
	"github.com/spec-kit/process-tracker/internal/sla"
)

// TicketService coordinates ticket workflows around the SLA engine.
type TicketService struct {
	tickets    repository.TicketRepository
	engine     *sla.Engine
	dispatcher events.Dispatcher
	now        func() time.Time
}

// TicketDependencies bundles collaborators for ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Engine     *sla.Engine
	Dispatcher events.Dispatcher
	Now        func() time.Time
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &TicketService{
		tickets:    deps.TicketRepo,
		engine:     deps.Engine,
		dispatcher: deps.Dispatcher,
		now:        now,
	}
}

// TicketView pairs a ticket snapshot with its deadline classification.
type TicketView struct {
	Ticket domain.Ticket
	Class  domain.DeadlineClass
}

// OpenTicket opens a ticket through the SLA engine and persists it.
func (s *TicketService) OpenTicket(ctx context.Context, operatorID string, input sla.OpenInput) (*domain.Ticket, error) {
	ticket, err := s.engine.Open(input, s.now())
	if err != nil {
		return nil, err
	}
	ticket.ExternalKey = generateTicketKey()

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventTicketOpened,
		SubjectID: ticket.ID,
		Actor:     operatorActor(operatorID),
		Payload: events.TicketOpenedPayload{
			Origin:     ticket.Origin,
			Sector:     ticket.Sector,
			CustomerID: ticket.CustomerID,
			DueAt:      ticket.DueAt,
		},
	})
	return ticket, nil
}

// GetTicket fetches a single ticket with its classification.
func (s *TicketService) GetTicket(ctx context.Context, ticketID string) (*TicketView, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	return &TicketView{Ticket: *ticket, Class: sla.Classify(*ticket, s.now())}, nil
}

// ListTickets returns tickets with their deadline classifications.
func (s *TicketService) ListTickets(ctx context.Context, filter repository.TicketFilter) ([]TicketView, error) {
	tickets, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	now := s.now()
	views := make([]TicketView, 0, len(tickets))
	for _, ticket := range tickets {
		views = append(views, TicketView{Ticket: ticket, Class: sla.Classify(ticket, now)})
	}
	return views, nil
}

// UpdateStatus transitions a ticket through the SLA state machine.
func (s *TicketService) UpdateStatus(ctx context.Context, operatorID, ticketID string, next domain.TicketStatus) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	oldStatus := ticket.Status
	updated, err := s.engine.Transition(*ticket, next, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.tickets.Update(ctx, &updated); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventTicketStatusChanged,
		SubjectID: updated.ID,
		Actor:     operatorActor(operatorID),
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: updated.Status,
		},
	})
	return &updated, nil
}

// ReassignSector moves a live ticket to another answering sector.
func (s *TicketService) ReassignSector(ctx context.Context, operatorID, ticketID, sector string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	oldSector := ticket.Sector
	updated, err := s.engine.Reassign(*ticket, sector)
	if err != nil {
		return nil, err
	}
	if err := s.tickets.Update(ctx, &updated); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventTicketSectorChanged,
		SubjectID: updated.ID,
		Actor:     operatorActor(operatorID),
		Payload: events.TicketSectorChangedPayload{
			OldSector: oldSector,
			NewSector: updated.Sector,
		},
	})
	return &updated, nil
}

func generateTicketKey() string {
	return "PND-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func operatorActor(operatorID string) events.Actor {
	if operatorID == "" {
		return events.Actor{System: true}
	}
	return events.Actor{OperatorID: &operatorID}
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
