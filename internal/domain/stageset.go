package domain

import "time"

// Interaction is one logged contact during the assisted-operation period.
// Entries are append-only; they are never edited or removed.
type Interaction struct {
	At     time.Time `json:"at"`
	Author string    `json:"author"`
	Note   string    `json:"note"`
}

// StageSet holds the implementation checklist for one project. Every boolean
// sub-item has a paired *At stamp recording when it first became true; the
// stamp survives the flag being unchecked again.
type StageSet struct {
	ID        string
	ProjectID string

	ContractSigned       bool
	ContractSignedAt     *time.Time
	ContractRegistered   bool
	ContractRegisteredAt *time.Time

	WelcomeCall          bool
	WelcomeCallAt        *time.Time
	SystemRegistration   bool
	SystemRegistrationAt *time.Time
	ResidentAppInstall   bool
	ResidentAppInstallAt *time.Time
	TagAudit             bool
	TagAuditAt           *time.Time

	ProjectCheck     bool
	ProjectCheckAt   *time.Time
	VisitScheduled   bool
	VisitScheduledAt *time.Time
	VisitReport      bool
	VisitReportAt    *time.Time

	InstallerReport    bool
	InstallerReportAt  *time.Time
	GlazierReport      bool
	GlazierReportAt    *time.Time
	LocksmithReport    bool
	LocksmithReportAt  *time.Time
	SupervisorReport   bool
	SupervisorReportAt *time.Time

	ProgrammingCheck               bool
	ProgrammingCheckAt             *time.Time
	FinancialActivationConfirmed   bool
	FinancialActivationConfirmedAt *time.Time

	CommercialVisitScheduled   bool
	CommercialVisitScheduledAt *time.Time
	CommercialVisitReport      bool
	CommercialVisitReportAt    *time.Time

	Completed   bool
	CompletedAt *time.Time

	SatisfactionSurveyDone   bool
	SatisfactionSurveyDoneAt *time.Time
	SatisfactionScore        *int
	WouldRecommend           *bool

	VisitNotes       string
	ProgrammingNotes string

	Interactions      []Interaction
	AssistedOpStartAt *time.Time
	AssistedOpEndAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
