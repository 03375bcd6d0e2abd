package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/process-tracker/internal/api/dto"
	"github.com/spec-kit/process-tracker/internal/service"
)

// RenewalsHandler serves the contract-renewal report.
type RenewalsHandler struct {
	renewals *service.RenewalService
}

// NewRenewalsHandler constructs handler.
func NewRenewalsHandler(renewals *service.RenewalService) *RenewalsHandler {
	return &RenewalsHandler{renewals: renewals}
}

// Report GET /renewals.
func (h *RenewalsHandler) Report(c *fiber.Ctx) error {
	report, err := h.renewals.Report(c.Context())
	if err != nil {
		return err
	}

	buckets := make(map[string][]dto.RenewalEntryResponse, len(report.Buckets))
	for bucket, entries := range report.Buckets {
		items := make([]dto.RenewalEntryResponse, 0, len(entries))
		for _, entry := range entries {
			items = append(items, dto.RenewalEntryResponse{
				CustomerID:       entry.Customer.ID,
				CustomerName:     entry.Customer.Name,
				ContractID:       entry.Customer.ContractID,
				EffectiveEndDate: entry.EffectiveEndDate,
			})
		}
		buckets[string(bucket)] = items
	}

	return c.JSON(fiber.Map{"data": dto.RenewalReportResponse{
		GeneratedAt: report.GeneratedAt,
		Buckets:     buckets,
	}})
}
