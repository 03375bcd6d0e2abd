package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/process-tracker/internal/api/dto"
	"github.com/spec-kit/process-tracker/internal/service"
	apperrors "github.com/spec-kit/process-tracker/pkg/util"
)

// ProjectsHandler manages project and timeline endpoints.
type ProjectsHandler struct {
	projects     *service.ProjectService
	implantation *service.ImplantationService
}

// NewProjectsHandler constructs handler.
func NewProjectsHandler(projects *service.ProjectService, implantation *service.ImplantationService) *ProjectsHandler {
	return &ProjectsHandler{projects: projects, implantation: implantation}
}

// CreateProject POST /projects. The checklist is initialized alongside.
func (h *ProjectsHandler) CreateProject(c *fiber.Ctx) error {
	var req dto.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	view, err := h.projects.CreateProject(c.Context(), service.ProjectCreateInput{
		CustomerID:            req.CustomerID,
		ContractID:            req.ContractID,
		Name:                  req.Name,
		ImplantationStartedAt: req.ImplantationStartedAt,
		ContractSignedAt:      req.ContractSignedAt,
		DeliveryDate:          req.DeliveryDate,
	})
	if err != nil {
		return err
	}
	if _, err := h.implantation.InitChecklist(c.Context(), view.Project.ID); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": projectResponse(*view)})
}

// ListProjects GET /projects.
func (h *ProjectsHandler) ListProjects(c *fiber.Ctx) error {
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	views, err := h.projects.ListProjects(c.Context(), pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}
	items := make([]dto.ProjectResponse, 0, len(views))
	for _, view := range views {
		items = append(items, projectResponse(view))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTimeline GET /projects/:id/timeline.
func (h *ProjectsHandler) GetTimeline(c *fiber.Ctx) error {
	view, err := h.projects.GetTimeline(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": projectResponse(*view)})
}

// UpdateWindow PATCH /projects/:id/window.
func (h *ProjectsHandler) UpdateWindow(c *fiber.Ctx) error {
	var req dto.UpdateWindowRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	view, err := h.projects.UpdateWindow(c.Context(), c.Params("id"), service.WindowUpdateInput{
		ImplantationStartedAt: req.ImplantationStartedAt,
		DeliveryDate:          req.DeliveryDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": projectResponse(*view)})
}

func projectResponse(view service.ProjectView) dto.ProjectResponse {
	return dto.ProjectResponse{
		ID:                    view.Project.ID,
		ExternalKey:           view.Project.ExternalKey,
		CustomerID:            view.Project.CustomerID,
		ContractID:            view.Project.ContractID,
		Name:                  view.Project.Name,
		ImplantationStartedAt: view.Project.ImplantationStartedAt,
		ContractSignedAt:      view.Project.ContractSignedAt,
		DeliveryDate:          view.Project.DeliveryDate,
		Timeline: dto.TimelineResponse{
			Start:         view.Timeline.Start,
			Deadline:      view.Timeline.Deadline,
			ElapsedDays:   view.Timeline.ElapsedDays,
			TotalDays:     view.Timeline.TotalDays,
			RemainingDays: view.Timeline.RemainingDays,
			ProgressRatio: view.Timeline.ProgressRatio,
			Overdue:       view.Timeline.Overdue,
		},
		CreatedAt: view.Project.CreatedAt,
		UpdatedAt: view.Project.UpdatedAt,
	}
}
