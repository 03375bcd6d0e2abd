package domain

import "time"

// TicketStatus enumerates lifecycle states for cross-department tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusClosed     TicketStatus = "CLOSED"
	TicketStatusCancelled  TicketStatus = "CANCELLED"
)

// Terminal reports whether the status admits no further transitions.
func (s TicketStatus) Terminal() bool {
	return s == TicketStatusClosed || s == TicketStatusCancelled
}

// Valid reports whether the status is a known lifecycle state.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusClosed, TicketStatusCancelled:
		return true
	}
	return false
}

// DeadlineClass buckets a ticket relative to its due date.
type DeadlineClass string

const (
	DeadlineNone     DeadlineClass = "NONE"
	DeadlineOnTrack  DeadlineClass = "ON_TRACK"
	DeadlineDueSoon  DeadlineClass = "DUE_SOON"
	DeadlineDueToday DeadlineClass = "DUE_TODAY"
	DeadlineOverdue  DeadlineClass = "OVERDUE"
)

// Ticket is the aggregate for follow-up work items ("pendencias") raised
// either by a client or by an internal department.
type Ticket struct {
	ID          string
	ExternalKey string
	CustomerID  string
	ContractID  string
	Origin      TicketOrigin
	Sector      string
	Description string
	Status      TicketStatus
	SLADays     int
	OpenedAt    time.Time
	DueAt       time.Time
	ClosedAt    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
