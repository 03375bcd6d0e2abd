package dto

import "time"

// RenewalEntryResponse is one customer inside a renewal bucket.
type RenewalEntryResponse struct {
	CustomerID       string    `json:"customer_id"`
	CustomerName     string    `json:"customer_name"`
	ContractID       string    `json:"contract_id"`
	EffectiveEndDate time.Time `json:"effective_end_date"`
}

// RenewalReportResponse groups customers by time to contract expiry.
type RenewalReportResponse struct {
	GeneratedAt time.Time                         `json:"generated_at"`
	Buckets     map[string][]RenewalEntryResponse `json:"buckets"`
}

// DashboardResponse carries the KPI summary.
type DashboardResponse struct {
	GeneratedAt           time.Time `json:"generated_at"`
	OpenTickets           int       `json:"open_tickets"`
	InProgressTickets     int       `json:"in_progress_tickets"`
	OverdueTickets        int       `json:"overdue_tickets"`
	DueTodayTickets       int       `json:"due_today_tickets"`
	CriticalTickets       int       `json:"critical_tickets"`
	AverageResolutionDays *float64  `json:"average_resolution_days"`
	RenewalWithin3Months  int       `json:"renewal_within_3_months"`
	Renewal3To6Months     int       `json:"renewal_3_to_6_months"`
	Renewal6To12Months    int       `json:"renewal_6_to_12_months"`
}
