package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/simindustries/bizdocs-api/internal/application/documents"
	"github.com/simindustries/bizdocs-api/internal/application/dto"
)

// QuotationHandler serves quotations.
type QuotationHandler struct {
	uc *documents.QuotationUseCase
}

func NewQuotationHandler(uc *documents.QuotationUseCase) *QuotationHandler {
	return &QuotationHandler{uc: uc}
}

// Create POST /api/quotations
func (h *QuotationHandler) Create(c *fiber.Ctx) error {
	var in dto.QuotationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed request body"})
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/quotations?from_date=&to_date=
func (h *QuotationHandler) List(c *fiber.Ctx) error {
	from, to, ok := dateRangeQuery(c)
	if !ok {
		return nil
	}
	out, err := h.uc.List(c.Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// NextNumber GET /api/quotations/next-number
func (h *QuotationHandler) NextNumber(c *fiber.Ctx) error {
	number, err := h.uc.NextNumber(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"quotation_no": number})
}

// Get GET /api/quotations/:id
func (h *QuotationHandler) Get(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	out, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/quotations/:id
func (h *QuotationHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PDF GET /api/quotations/:id/pdf
func (h *QuotationHandler) PDF(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	pdf, err := h.uc.RenderPDF(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return sendPDF(c, "quotation.pdf", pdf)
}
