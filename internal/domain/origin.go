package domain

// TicketOrigin identifies who raised a ticket and which sector answers it.
type TicketOrigin string

const (
	OriginClientWorksite      TicketOrigin = "CLIENT_WORKSITE"
	OriginClientSchedule      TicketOrigin = "CLIENT_SCHEDULE"
	OriginClientVegetation    TicketOrigin = "CLIENT_VEGETATION"
	OriginClientServiceHiring TicketOrigin = "CLIENT_SERVICE_HIRING"
	OriginPurchasing          TicketOrigin = "DEPT_PURCHASING"
	OriginRegistration        TicketOrigin = "DEPT_REGISTRATION"
	OriginWarehouse           TicketOrigin = "DEPT_WAREHOUSE"
	OriginBilling             TicketOrigin = "DEPT_BILLING"
	OriginReceivables         TicketOrigin = "DEPT_RECEIVABLES"
	OriginFiscal              TicketOrigin = "DEPT_FISCAL"
	OriginImplantation        TicketOrigin = "DEPT_IMPLANTATION"
)

// OriginRule fixes the initial sector and SLA allowance for an origin.
// Client origins carry zero SLA days and fall back to the engine default.
type OriginRule struct {
	Sector  string
	SLADays int
}

// DefaultOriginRules returns the static origin table. Callers receive a
// fresh map so the engine can treat its copy as immutable.
func DefaultOriginRules() map[TicketOrigin]OriginRule {
	return map[TicketOrigin]OriginRule{
		OriginClientWorksite:      {Sector: "Client"},
		OriginClientSchedule:      {Sector: "Client"},
		OriginClientVegetation:    {Sector: "Client"},
		OriginClientServiceHiring: {Sector: "Client"},
		OriginPurchasing:          {Sector: "Purchasing", SLADays: 10},
		OriginRegistration:        {Sector: "Registration", SLADays: 5},
		OriginWarehouse:           {Sector: "Warehouse", SLADays: 7},
		OriginBilling:             {Sector: "Billing", SLADays: 5},
		OriginReceivables:         {Sector: "Receivables", SLADays: 5},
		OriginFiscal:              {Sector: "Fiscal", SLADays: 7},
		OriginImplantation:        {Sector: "Implantation", SLADays: 15},
	}
}
