package events

import (
	"time"

	"github.com/spec-kit/process-tracker/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketOpened        EventType = "ticket_opened"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketSectorChanged EventType = "ticket_sector_changed"
	EventStageItemChecked    EventType = "stage_item_checked"
	EventInteractionLogged   EventType = "interaction_logged"
	EventProjectCompleted    EventType = "project_completed"
	EventDeadlineSweep       EventType = "deadline_sweep"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	OperatorID *string `json:"operator_id,omitempty"`
	System     bool    `json:"system,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketOpenedPayload payload.
type TicketOpenedPayload struct {
	Origin     domain.TicketOrigin `json:"origin"`
	Sector     string              `json:"sector"`
	CustomerID string              `json:"customer_id"`
	DueAt      time.Time           `json:"due_at"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketSectorChangedPayload payload.
type TicketSectorChangedPayload struct {
	OldSector string `json:"old_sector"`
	NewSector string `json:"new_sector"`
}

// StageItemCheckedPayload payload.
type StageItemCheckedPayload struct {
	ProjectID     string  `json:"project_id"`
	Field         string  `json:"field"`
	Value         bool    `json:"value"`
	ProgressRatio float64 `json:"progress_ratio"`
}

// InteractionLoggedPayload payload.
type InteractionLoggedPayload struct {
	ProjectID string `json:"project_id"`
	Author    string `json:"author"`
	Preview   string `json:"preview"`
}

// ProjectCompletedPayload payload.
type ProjectCompletedPayload struct {
	ProjectID     string  `json:"project_id"`
	ProgressRatio float64 `json:"progress_ratio"`
}

// DeadlineSweepPayload payload.
type DeadlineSweepPayload struct {
	OpenTickets     int `json:"open_tickets"`
	CriticalTickets int `json:"critical_tickets"`
	OverdueTickets  int `json:"overdue_tickets"`
}
