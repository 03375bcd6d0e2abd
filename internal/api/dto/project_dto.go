package dto

import "time"

// CreateProjectRequest payload.
type CreateProjectRequest struct {
	CustomerID            string     `json:"customer_id"`
	ContractID            string     `json:"contract_id"`
	Name                  string     `json:"name"`
	ImplantationStartedAt *time.Time `json:"implantation_started_at"`
	ContractSignedAt      *time.Time `json:"contract_signed_at"`
	DeliveryDate          *time.Time `json:"delivery_date"`
}

// UpdateWindowRequest payload for explicit timeline edits.
type UpdateWindowRequest struct {
	ImplantationStartedAt *time.Time `json:"implantation_started_at"`
	DeliveryDate          *time.Time `json:"delivery_date"`
}

// TimelineResponse is the derived delivery-window view.
type TimelineResponse struct {
	Start         time.Time `json:"start"`
	Deadline      time.Time `json:"deadline"`
	ElapsedDays   int       `json:"elapsed_days"`
	TotalDays     int       `json:"total_days"`
	RemainingDays int       `json:"remaining_days"`
	ProgressRatio float64   `json:"progress_ratio"`
	Overdue       bool      `json:"overdue"`
}

// ProjectResponse pairs a project with its timeline.
type ProjectResponse struct {
	ID                    string           `json:"id"`
	ExternalKey           string           `json:"external_key"`
	CustomerID            string           `json:"customer_id"`
	ContractID            string           `json:"contract_id"`
	Name                  string           `json:"name"`
	ImplantationStartedAt *time.Time       `json:"implantation_started_at"`
	ContractSignedAt      *time.Time       `json:"contract_signed_at"`
	DeliveryDate          *time.Time       `json:"delivery_date"`
	Timeline              TimelineResponse `json:"timeline"`
	CreatedAt             time.Time        `json:"created_at"`
	UpdatedAt             time.Time        `json:"updated_at"`
}
