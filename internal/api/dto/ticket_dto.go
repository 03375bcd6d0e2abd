package dto

import (
	"time"

	"github.com/spec-kit/process-tracker/internal/domain"
)

// OpenTicketRequest payload.
type OpenTicketRequest struct {
	Origin      domain.TicketOrigin `json:"origin"`
	CustomerID  string              `json:"customer_id"`
	ContractID  string              `json:"contract_id"`
	Description string              `json:"description"`
}

// UpdateTicketStatusRequest payload.
type UpdateTicketStatusRequest struct {
	Status domain.TicketStatus `json:"status"`
}

// ReassignSectorRequest payload.
type ReassignSectorRequest struct {
	Sector string `json:"sector"`
}

// TicketResponse is the full ticket view including the derived deadline class.
type TicketResponse struct {
	ID            string               `json:"id"`
	ExternalKey   string               `json:"external_key"`
	CustomerID    string               `json:"customer_id"`
	ContractID    string               `json:"contract_id"`
	Origin        domain.TicketOrigin  `json:"origin"`
	Sector        string               `json:"sector"`
	Description   string               `json:"description"`
	Status        domain.TicketStatus  `json:"status"`
	SLADays       int                  `json:"sla_days"`
	OpenedAt      time.Time            `json:"opened_at"`
	DueAt         time.Time            `json:"due_at"`
	ClosedAt      *time.Time           `json:"closed_at"`
	DeadlineClass domain.DeadlineClass `json:"deadline_class"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}
