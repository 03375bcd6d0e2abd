package domain

import "time"

// OperatorRole enumerates internal operator roles.
type OperatorRole string

const (
	OperatorRoleOperator OperatorRole = "OPERATOR"
	OperatorRoleManager  OperatorRole = "MANAGER"
	OperatorRoleAdmin    OperatorRole = "ADMIN"
)

// Operator models a back-office user of the tracker.
type Operator struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         OperatorRole
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
