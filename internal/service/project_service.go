package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/process-tracker/internal/domain"
	"github.com/spec-kit/process-tracker/internal/repository"
	"github.com/spec-kit/process-tracker/internal/schedule"
	apperrors "github.com/spec-kit/process-tracker/pkg/util"
)

// ProjectService manages projects and their delivery timelines.
type ProjectService struct {
	projects repository.ProjectRepository
	now      func() time.Time
}

// NewProjectService constructs the service.
func NewProjectService(projects repository.ProjectRepository, now func() time.Time) *ProjectService {
	if now == nil {
		now = time.Now
	}
	return &ProjectService{projects: projects, now: now}
}

// ProjectView pairs a project with its derived timeline status.
type ProjectView struct {
	Project  domain.Project
	Timeline schedule.TimelineStatus
}

// ProjectCreateInput describes project creation payload.
type ProjectCreateInput struct {
	CustomerID            string
	ContractID            string
	Name                  string
	ImplantationStartedAt *time.Time
	ContractSignedAt      *time.Time
	DeliveryDate          *time.Time
}

// WindowUpdateInput carries an operator's explicit window edit. Role gating
// happens at the HTTP layer; the scheduler just recomputes from whatever
// window it is given.
type WindowUpdateInput struct {
	ImplantationStartedAt *time.Time
	DeliveryDate          *time.Time
}

// CreateProject persists a new project.
func (s *ProjectService) CreateProject(ctx context.Context, input ProjectCreateInput) (*ProjectView, error) {
	if strings.TrimSpace(input.CustomerID) == "" || strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("customer and name required", nil)
	}
	project := &domain.Project{
		ExternalKey:           generateProjectKey(),
		CustomerID:            input.CustomerID,
		ContractID:            input.ContractID,
		Name:                  strings.TrimSpace(input.Name),
		ImplantationStartedAt: input.ImplantationStartedAt,
		ContractSignedAt:      input.ContractSignedAt,
		DeliveryDate:          input.DeliveryDate,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return s.view(*project), nil
}

// GetTimeline loads a project and derives its timeline status.
func (s *ProjectService) GetTimeline(ctx context.Context, projectID string) (*ProjectView, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return s.view(*project), nil
}

// ListProjects returns projects with timeline status.
func (s *ProjectService) ListProjects(ctx context.Context, limit, offset int) ([]ProjectView, error) {
	projects, err := s.projects.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	views := make([]ProjectView, 0, len(projects))
	for _, project := range projects {
		views = append(views, *s.view(project))
	}
	return views, nil
}

// UpdateWindow applies an explicit window edit and recomputes the timeline.
func (s *ProjectService) UpdateWindow(ctx context.Context, projectID string, input WindowUpdateInput) (*ProjectView, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if input.ImplantationStartedAt != nil {
		project.ImplantationStartedAt = input.ImplantationStartedAt
	}
	if input.DeliveryDate != nil {
		project.DeliveryDate = input.DeliveryDate
	}
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return s.view(*project), nil
}

func (s *ProjectService) view(project domain.Project) *ProjectView {
	return &ProjectView{
		Project:  project,
		Timeline: schedule.Status(project, s.now()),
	}
}

func generateProjectKey() string {
	return "PRJ-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
