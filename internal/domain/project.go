package domain

import "time"

// Project models one engineering/implantation project for a customer.
// Timeline fields are all optional; the scheduler applies defaulting rules.
type Project struct {
	ID                    string
	ExternalKey           string
	CustomerID            string
	ContractID            string
	Name                  string
	ImplantationStartedAt *time.Time
	ContractSignedAt      *time.Time
	DeliveryDate          *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
