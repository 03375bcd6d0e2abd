package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/process-tracker/internal/api/dto"
	"github.com/spec-kit/process-tracker/internal/service"
	apperrors "github.com/spec-kit/process-tracker/pkg/util"
)

// StagesHandler manages checklist endpoints under /projects/:id/stages.
type StagesHandler struct {
	implantation *service.ImplantationService
}

// NewStagesHandler constructs handler.
func NewStagesHandler(implantation *service.ImplantationService) *StagesHandler {
	return &StagesHandler{implantation: implantation}
}

// GetChecklist GET /projects/:id/stages.
func (h *StagesHandler) GetChecklist(c *fiber.Ctx) error {
	view, err := h.implantation.GetChecklist(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": checklistResponse(view)})
}

// CheckItem POST /projects/:id/stages/check.
func (h *StagesHandler) CheckItem(c *fiber.Ctx) error {
	var req dto.CheckItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	view, err := h.implantation.CheckItem(c.Context(), requireOperatorID(c), c.Params("id"), req.Field, req.Value)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": checklistResponse(view)})
}

// LogInteraction POST /projects/:id/stages/interactions.
func (h *StagesHandler) LogInteraction(c *fiber.Ctx) error {
	var req dto.LogInteractionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	view, err := h.implantation.LogInteraction(c.Context(), requireOperatorID(c), c.Params("id"), req.Author, req.Text)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": checklistResponse(view)})
}

// RecordSurvey POST /projects/:id/stages/survey.
func (h *StagesHandler) RecordSurvey(c *fiber.Ctx) error {
	var req dto.RecordSurveyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	view, err := h.implantation.RecordSurvey(c.Context(), requireOperatorID(c), c.Params("id"), req.Score, req.WouldRecommend)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": checklistResponse(view)})
}

// MarkComplete POST /projects/:id/stages/complete.
func (h *StagesHandler) MarkComplete(c *fiber.Ctx) error {
	view, err := h.implantation.MarkComplete(c.Context(), requireOperatorID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": checklistResponse(view)})
}

func checklistResponse(view *service.ChecklistView) dto.ChecklistResponse {
	set := view.StageSet
	interactions := make([]dto.InteractionResponse, 0, len(set.Interactions))
	for _, entry := range set.Interactions {
		interactions = append(interactions, dto.InteractionResponse{
			At:     entry.At,
			Author: entry.Author,
			Note:   entry.Note,
		})
	}
	return dto.ChecklistResponse{
		ID:                set.ID,
		ProjectID:         set.ProjectID,
		Items:             dto.NewChecklistItems(set),
		Stages:            view.Stages[:],
		ProgressRatio:     view.ProgressRatio,
		SatisfactionScore: set.SatisfactionScore,
		WouldRecommend:    set.WouldRecommend,
		Interactions:      interactions,
		AssistedOpStartAt: set.AssistedOpStartAt,
		AssistedOpEndAt:   set.AssistedOpEndAt,
		UpdatedAt:         set.UpdatedAt,
	}
}
