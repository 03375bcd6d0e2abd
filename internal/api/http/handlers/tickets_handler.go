package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/process-tracker/internal/api/dto"
	"github.com/spec-kit/process-tracker/internal/auth"
	"github.com/spec-kit/process-tracker/internal/domain"
	"github.com/spec-kit/process-tracker/internal/repository"
	"github.com/spec-kit/process-tracker/internal/service"
	"github.com/spec-kit/process-tracker/internal/sla"
	apperrors "github.com/spec-kit/process-tracker/pkg/util"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// OpenTicket POST /tickets.
func (h *TicketsHandler) OpenTicket(c *fiber.Ctx) error {
	operatorID := requireOperatorID(c)
	var req dto.OpenTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.OpenTicket(c.Context(), operatorID, sla.OpenInput{
		Origin:      req.Origin,
		CustomerID:  req.CustomerID,
		ContractID:  req.ContractID,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticketResponse(*ticket, sla.Classify(*ticket, time.Now()))})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	views, err := h.service.ListTickets(c.Context(), parseTicketQuery(c))
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(views))
	for _, view := range views {
		items = append(items, ticketResponse(view.Ticket, view.Class))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	view, err := h.service.GetTicket(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(view.Ticket, view.Class)})
}

// UpdateStatus POST /tickets/:id/status.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	operatorID := requireOperatorID(c)
	var req dto.UpdateTicketStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.UpdateStatus(c.Context(), operatorID, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(*ticket, sla.Classify(*ticket, time.Now()))})
}

// ReassignSector POST /tickets/:id/sector.
func (h *TicketsHandler) ReassignSector(c *fiber.Ctx) error {
	operatorID := requireOperatorID(c)
	var req dto.ReassignSectorRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.ReassignSector(c.Context(), operatorID, c.Params("id"), req.Sector)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(*ticket, sla.Classify(*ticket, time.Now()))})
}

func requireOperatorID(c *fiber.Ctx) string {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Operator == nil {
		return ""
	}
	return principal.Operator.ID
}

func parseTicketQuery(c *fiber.Ctx) repository.TicketFilter {
	filter := repository.TicketFilter{}
	if customerID := c.Query("customer_id"); customerID != "" {
		filter.CustomerID = &customerID
	}
	if contractID := c.Query("contract_id"); contractID != "" {
		filter.ContractID = &contractID
	}
	if sector := c.Query("sector"); sector != "" {
		filter.Sector = &sector
	}
	if originStr := c.Query("origin"); originStr != "" {
		origin := domain.TicketOrigin(originStr)
		filter.Origin = &origin
	}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.TicketStatus(strings.TrimSpace(part)))
		}
	}
	if from := parseTime(c.Query("opened_from")); from != nil {
		filter.OpenedFrom = from
	}
	if to := parseTime(c.Query("opened_to")); to != nil {
		filter.OpenedTo = to
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func parseTime(val string) *time.Time {
	if val == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return nil
	}
	return &t
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func ticketResponse(ticket domain.Ticket, class domain.DeadlineClass) dto.TicketResponse {
	return dto.TicketResponse{
		ID:            ticket.ID,
		ExternalKey:   ticket.ExternalKey,
		CustomerID:    ticket.CustomerID,
		ContractID:    ticket.ContractID,
		Origin:        ticket.Origin,
		Sector:        ticket.Sector,
		Description:   ticket.Description,
		Status:        ticket.Status,
		SLADays:       ticket.SLADays,
		OpenedAt:      ticket.OpenedAt,
		DueAt:         ticket.DueAt,
		ClosedAt:      ticket.ClosedAt,
		DeadlineClass: class,
		CreatedAt:     ticket.CreatedAt,
		UpdatedAt:     ticket.UpdatedAt,
	}
}
