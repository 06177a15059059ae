package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/simindustries/bizdocs-api/internal/application/reports"
)

// ReportHandler serves the dashboard figures.
type ReportHandler struct {
	uc *reports.ReportUseCase
}

func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Summary GET /api/reports/summary
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PendingQuantities GET /api/reports/pending-quantities
func (h *ReportHandler) PendingQuantities(c *fiber.Ctx) error {
	out, err := h.uc.PendingQuantities(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
