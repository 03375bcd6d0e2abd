package domain

import "time"

// Contract term assumed when no explicit termination date exists.
const ContractTermMonths = 36

// Customer is a customer-success record tracked for contract renewal.
type Customer struct {
	ID              string
	Name            string
	ContractID      string
	ActivationDate  *time.Time
	TerminationDate *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EffectiveEndDate derives when the customer's contract runs out: the
// explicit termination date if present, otherwise activation plus the
// standard term. Customers with neither date report ok=false and are
// excluded from renewal bucketing.
func (c Customer) EffectiveEndDate() (end time.Time, ok bool) {
	if c.TerminationDate != nil {
		return *c.TerminationDate, true
	}
	if c.ActivationDate != nil {
		return c.ActivationDate.AddDate(0, ContractTermMonths, 0), true
	}
	return time.Time{}, false
}
