package dto

import (
	"time"

	"github.com/spec-kit/process-tracker/internal/domain"
)

// CheckItemRequest payload.
type CheckItemRequest struct {
	Field string `json:"field"`
	Value bool   `json:"value"`
}

// LogInteractionRequest payload.
type LogInteractionRequest struct {
	Author string `json:"author"`
	Text   string `json:"text"`
}

// RecordSurveyRequest payload.
type RecordSurveyRequest struct {
	Score          int  `json:"score"`
	WouldRecommend bool `json:"would_recommend"`
}

// SubItemState pairs a checklist boolean with its first-checked stamp.
type SubItemState struct {
	Checked   bool       `json:"checked"`
	CheckedAt *time.Time `json:"checked_at"`
}

// InteractionResponse mirrors one logged contact.
type InteractionResponse struct {
	At     time.Time `json:"at"`
	Author string    `json:"author"`
	Note   string    `json:"note"`
}

// ChecklistResponse is the checklist read model for one project.
type ChecklistResponse struct {
	ID                string                  `json:"id"`
	ProjectID         string                  `json:"project_id"`
	Items             map[string]SubItemState `json:"items"`
	Stages            []bool                  `json:"stages"`
	ProgressRatio     float64                 `json:"progress_ratio"`
	SatisfactionScore *int                    `json:"satisfaction_score"`
	WouldRecommend    *bool                   `json:"would_recommend"`
	Interactions      []InteractionResponse   `json:"interactions"`
	AssistedOpStartAt *time.Time              `json:"assisted_op_start_at"`
	AssistedOpEndAt   *time.Time              `json:"assisted_op_end_at"`
	UpdatedAt         time.Time               `json:"updated_at"`
}

// NewChecklistItems maps the domain stage set into named sub-item states.
func NewChecklistItems(set domain.StageSet) map[string]SubItemState {
	return map[string]SubItemState{
		"contractSigned":               {Checked: set.ContractSigned, CheckedAt: set.ContractSignedAt},
		"contractRegistered":           {Checked: set.ContractRegistered, CheckedAt: set.ContractRegisteredAt},
		"welcomeCall":                  {Checked: set.WelcomeCall, CheckedAt: set.WelcomeCallAt},
		"systemRegistration":           {Checked: set.SystemRegistration, CheckedAt: set.SystemRegistrationAt},
		"residentAppInstall":           {Checked: set.ResidentAppInstall, CheckedAt: set.ResidentAppInstallAt},
		"tagAudit":                     {Checked: set.TagAudit, CheckedAt: set.TagAuditAt},
		"projectCheck":                 {Checked: set.ProjectCheck, CheckedAt: set.ProjectCheckAt},
		"visitScheduled":               {Checked: set.VisitScheduled, CheckedAt: set.VisitScheduledAt},
		"visitReport":                  {Checked: set.VisitReport, CheckedAt: set.VisitReportAt},
		"installerReport":              {Checked: set.InstallerReport, CheckedAt: set.InstallerReportAt},
		"glazierReport":                {Checked: set.GlazierReport, CheckedAt: set.GlazierReportAt},
		"locksmithReport":              {Checked: set.LocksmithReport, CheckedAt: set.LocksmithReportAt},
		"supervisorReport":             {Checked: set.SupervisorReport, CheckedAt: set.SupervisorReportAt},
		"programmingCheck":             {Checked: set.ProgrammingCheck, CheckedAt: set.ProgrammingCheckAt},
		"financialActivationConfirmed": {Checked: set.FinancialActivationConfirmed, CheckedAt: set.FinancialActivationConfirmedAt},
		"commercialVisitScheduled":     {Checked: set.CommercialVisitScheduled, CheckedAt: set.CommercialVisitScheduledAt},
		"commercialVisitReport":        {Checked: set.CommercialVisitReport, CheckedAt: set.CommercialVisitReportAt},
		"completed":                    {Checked: set.Completed, CheckedAt: set.CompletedAt},
		"satisfactionSurveyDone":       {Checked: set.SatisfactionSurveyDone, CheckedAt: set.SatisfactionSurveyDoneAt},
	}
}
