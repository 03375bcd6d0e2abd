package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/process-tracker/internal/domain"
)

// StageSetRepository persists implementation checklists, one row per project.
type StageSetRepository interface {
	Create(ctx context.Context, set *domain.StageSet) error
	Update(ctx context.Context, set *domain.StageSet) error
	GetByProject(ctx context.Context, projectID string) (*domain.StageSet, error)
}

type stageSetRepository struct {
	pool *pgxpool.Pool
}

// NewStageSetRepository instantiates repository.
func NewStageSetRepository(pool *pgxpool.Pool) StageSetRepository {
	return &stageSetRepository{pool: pool}
}

const stageSetColumns = `
    id, project_id,
    contract_signed, contract_signed_at, contract_registered, contract_registered_at,
    welcome_call, welcome_call_at, system_registration, system_registration_at,
    resident_app_install, resident_app_install_at, tag_audit, tag_audit_at,
    project_check, project_check_at, visit_scheduled, visit_scheduled_at, visit_report, visit_report_at,
    installer_report, installer_report_at, glazier_report, glazier_report_at,
    locksmith_report, locksmith_report_at, supervisor_report, supervisor_report_at,
    programming_check, programming_check_at, financial_activation_confirmed, financial_activation_confirmed_at,
    commercial_visit_scheduled, commercial_visit_scheduled_at, commercial_visit_report, commercial_visit_report_at,
    completed, completed_at, satisfaction_survey_done, satisfaction_survey_done_at,
    satisfaction_score, would_recommend, visit_notes, programming_notes,
    interactions, assisted_op_start_at, assisted_op_end_at, created_at, updated_at`

func (r *stageSetRepository) Create(ctx context.Context, set *domain.StageSet) error {
	const query = `
        INSERT INTO stage_sets (project_id, interactions)
        VALUES ($1, $2)
        RETURNING id, created_at, updated_at`
	interactions := set.Interactions
	if interactions == nil {
		interactions = []domain.Interaction{}
	}
	return r.pool.QueryRow(ctx, query, set.ProjectID, interactions).
		Scan(&set.ID, &set.CreatedAt, &set.UpdatedAt)
}

func (r *stageSetRepository) Update(ctx context.Context, set *domain.StageSet) error {
	const query = `
        UPDATE stage_sets SET
            contract_signed=$1, contract_signed_at=$2, contract_registered=$3, contract_registered_at=$4,
            welcome_call=$5, welcome_call_at=$6, system_registration=$7, system_registration_at=$8,
            resident_app_install=$9, resident_app_install_at=$10, tag_audit=$11, tag_audit_at=$12,
            project_check=$13, project_check_at=$14, visit_scheduled=$15, visit_scheduled_at=$16,
            visit_report=$17, visit_report_at=$18,
            installer_report=$19, installer_report_at=$20, glazier_report=$21, glazier_report_at=$22,
            locksmith_report=$23, locksmith_report_at=$24, supervisor_report=$25, supervisor_report_at=$26,
            programming_check=$27, programming_check_at=$28,
            financial_activation_confirmed=$29, financial_activation_confirmed_at=$30,
            commercial_visit_scheduled=$31, commercial_visit_scheduled_at=$32,
            commercial_visit_report=$33, commercial_visit_report_at=$34,
            completed=$35, completed_at=$36, satisfaction_survey_done=$37, satisfaction_survey_done_at=$38,
            satisfaction_score=$39, would_recommend=$40, visit_notes=$41, programming_notes=$42,
            interactions=$43, assisted_op_start_at=$44, assisted_op_end_at=$45, updated_at=NOW()
        WHERE id=$46`
	interactions := set.Interactions
	if interactions == nil {
		interactions = []domain.Interaction{}
	}
	cmd, err := r.pool.Exec(ctx, query,
		set.ContractSigned, set.ContractSignedAt, set.ContractRegistered, set.ContractRegisteredAt,
		set.WelcomeCall, set.WelcomeCallAt, set.SystemRegistration, set.SystemRegistrationAt,
		set.ResidentAppInstall, set.ResidentAppInstallAt, set.TagAudit, set.TagAuditAt,
		set.ProjectCheck, set.ProjectCheckAt, set.VisitScheduled, set.VisitScheduledAt,
		set.VisitReport, set.VisitReportAt,
		set.InstallerReport, set.InstallerReportAt, set.GlazierReport, set.GlazierReportAt,
		set.LocksmithReport, set.LocksmithReportAt, set.SupervisorReport, set.SupervisorReportAt,
		set.ProgrammingCheck, set.ProgrammingCheckAt,
		set.FinancialActivationConfirmed, set.FinancialActivationConfirmedAt,
		set.CommercialVisitScheduled, set.CommercialVisitScheduledAt,
		set.CommercialVisitReport, set.CommercialVisitReportAt,
		set.Completed, set.CompletedAt, set.SatisfactionSurveyDone, set.SatisfactionSurveyDoneAt,
		set.SatisfactionScore, set.WouldRecommend, set.VisitNotes, set.ProgrammingNotes,
		interactions, set.AssistedOpStartAt, set.AssistedOpEndAt,
		set.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *stageSetRepository) GetByProject(ctx context.Context, projectID string) (*domain.StageSet, error) {
	query := `SELECT` + stageSetColumns + ` FROM stage_sets WHERE project_id=$1`
	var set domain.StageSet
	if err := r.pool.QueryRow(ctx, query, projectID).Scan(
		&set.ID, &set.ProjectID,
		&set.ContractSigned, &set.ContractSignedAt, &set.ContractRegistered, &set.ContractRegisteredAt,
		&set.WelcomeCall, &set.WelcomeCallAt, &set.SystemRegistration, &set.SystemRegistrationAt,
		&set.ResidentAppInstall, &set.ResidentAppInstallAt, &set.TagAudit, &set.TagAuditAt,
		&set.ProjectCheck, &set.ProjectCheckAt, &set.VisitScheduled, &set.VisitScheduledAt,
		&set.VisitReport, &set.VisitReportAt,
		&set.InstallerReport, &set.InstallerReportAt, &set.GlazierReport, &set.GlazierReportAt,
		&set.LocksmithReport, &set.LocksmithReportAt, &set.SupervisorReport, &set.SupervisorReportAt,
		&set.ProgrammingCheck, &set.ProgrammingCheckAt,
		&set.FinancialActivationConfirmed, &set.FinancialActivationConfirmedAt,
		&set.CommercialVisitScheduled, &set.CommercialVisitScheduledAt,
		&set.CommercialVisitReport, &set.CommercialVisitReportAt,
		&set.Completed, &set.CompletedAt, &set.SatisfactionSurveyDone, &set.SatisfactionSurveyDoneAt,
		&set.SatisfactionScore, &set.WouldRecommend, &set.VisitNotes, &set.ProgrammingNotes,
		&set.Interactions, &set.AssistedOpStartAt, &set.AssistedOpEndAt, &set.CreatedAt, &set.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &set, nil
}
