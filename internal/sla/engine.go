// Package sla owns the ticket lifecycle and every deadline-derived value.
// All operations are snapshot-in/snapshot-out and take now as a parameter.
package sla

import (
	"strings"
	"time"

	"github.com/spec-kit/process-tracker/internal/domain"
	"github.com/spec-kit/process-tracker/internal/timewindow"
	apperrors "github.com/spec-kit/process-tracker/pkg/util"
)

// DefaultSLADays applies when an origin carries no SLA allowance of its own
// (all client origins).
const DefaultSLADays = 30

// criticalHorizon is how far ahead a due date may sit and still flag the
// ticket as critical.
const criticalHorizon = 24 * time.Hour

// Engine evaluates tickets against an immutable origin table.
type Engine struct {
	rules map[domain.TicketOrigin]domain.OriginRule
}

// NewEngine copies the rule table so later mutation by the caller cannot
// leak into the engine.
func NewEngine(rules map[domain.TicketOrigin]domain.OriginRule) *Engine {
	copied := make(map[domain.TicketOrigin]domain.OriginRule, len(rules))
	for origin, rule := range rules {
		copied[origin] = rule
	}
	return &Engine{rules: copied}
}

// OpenInput carries everything needed to open a ticket.
type OpenInput struct {
	Origin      domain.TicketOrigin
	CustomerID  string
	ContractID  string
	Description string
}

// Open builds a new ticket snapshot: sector and SLA days resolve from the
// origin table and the due date is fixed once, never to be recomputed.
func (e *Engine) Open(input OpenInput, now time.Time) (*domain.Ticket, error) {
	rule, ok := e.rules[input.Origin]
	if !ok {
		return nil, apperrors.NewValidationError("unknown ticket origin", map[string]any{"origin": input.Origin})
	}
	if strings.TrimSpace(input.CustomerID) == "" {
		return nil, apperrors.NewValidationError("customer reference required", nil)
	}
	if strings.TrimSpace(input.ContractID) == "" {
		return nil, apperrors.NewValidationError("contract reference required", nil)
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.NewValidationError("description required", nil)
	}

	return &domain.Ticket{
		CustomerID:  input.CustomerID,
		ContractID:  input.ContractID,
		Origin:      input.Origin,
		Sector:      rule.Sector,
		Description: strings.TrimSpace(input.Description),
		Status:      domain.TicketStatusOpen,
		SLADays:     rule.SLADays,
		OpenedAt:    now,
		DueAt:       DueDate(now, rule.SLADays),
	}, nil
}

// DueDate computes the immutable deadline for a ticket opened at openedAt.
func DueDate(openedAt time.Time, slaDays int) time.Time {
	if slaDays <= 0 {
		slaDays = DefaultSLADays
	}
	return openedAt.AddDate(0, 0, slaDays)
}

// Transition moves the ticket to next. Closed and Cancelled are terminal;
// every other move is permitted without an approval gate. Entering Closed
// stamps ClosedAt.
func (e *Engine) Transition(ticket domain.Ticket, next domain.TicketStatus, now time.Time) (domain.Ticket, error) {
	if !next.Valid() {
		return ticket, apperrors.NewValidationError("unknown ticket status", map[string]any{"status": next})
	}
	if ticket.Status.Terminal() {
		return ticket, apperrors.NewInvalidStateError("ticket already finalized", map[string]any{"status": ticket.Status})
	}
	ticket.Status = next
	if next == domain.TicketStatusClosed {
		closed := now
		ticket.ClosedAt = &closed
	}
	return ticket, nil
}

// Reassign changes the answering sector while the ticket is still live.
func (e *Engine) Reassign(ticket domain.Ticket, sector string) (domain.Ticket, error) {
	if ticket.Status.Terminal() {
		return ticket, apperrors.NewInvalidStateError("cannot reassign a finalized ticket", map[string]any{"status": ticket.Status})
	}
	sector = strings.TrimSpace(sector)
	if sector == "" {
		return ticket, apperrors.NewValidationError("sector required", nil)
	}
	ticket.Sector = sector
	return ticket, nil
}

// Classify buckets a live ticket against its due date. Terminal tickets
// classify as None. Once now passes the due date the result is Overdue and
// stays there regardless of calendar day.
func Classify(ticket domain.Ticket, now time.Time) domain.DeadlineClass {
	if ticket.Status.Terminal() {
		return domain.DeadlineNone
	}
	if now.After(ticket.DueAt) {
		return domain.DeadlineOverdue
	}
	if sameDay(now, ticket.DueAt) {
		return domain.DeadlineDueToday
	}
	if ticket.DueAt.Sub(now) <= 48*time.Hour {
		return domain.DeadlineDueSoon
	}
	return domain.DeadlineOnTrack
}

// AverageResolutionDays returns the mean resolution time in whole days over
// closed tickets, or ok=false when none qualify.
func AverageResolutionDays(tickets []domain.Ticket) (float64, bool) {
	var sum, count int
	for _, t := range tickets {
		if t.Status != domain.TicketStatusClosed || t.ClosedAt == nil {
			continue
		}
		sum += int(t.ClosedAt.Sub(t.OpenedAt).Hours() / 24)
		count++
	}
	if count == 0 {
		return 0, false
	}
	return float64(sum) / float64(count), true
}

// CriticalCount counts live tickets due within the next 24 hours or already
// past due. A ticket due in 30 minutes and one overdue by a month both count.
func CriticalCount(tickets []domain.Ticket, now time.Time) int {
	cuts := timewindow.DurationCuts(now, criticalHorizon)
	count := 0
	for _, t := range tickets {
		if t.Status.Terminal() {
			continue
		}
		switch timewindow.Classify(now, t.DueAt, cuts) {
		case timewindow.BucketBeforeNow, timewindow.Bucket(0):
			count++
		}
	}
	return count
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
