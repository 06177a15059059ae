package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/simindustries/bizdocs-api/internal/application/documents"
	"github.com/simindustries/bizdocs-api/internal/application/dto"
)

// ChallanHandler serves delivery challans.
type ChallanHandler struct {
	uc *documents.ChallanUseCase
}

func NewChallanHandler(uc *documents.ChallanUseCase) *ChallanHandler {
	return &ChallanHandler{uc: uc}
}

// Create POST /api/challans
func (h *ChallanHandler) Create(c *fiber.Ctx) error {
	var in dto.ChallanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed request body"})
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/challans?from_date=&to_date=
func (h *ChallanHandler) List(c *fiber.Ctx) error {
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

// NextNumber GET /api/challans/next-number
func (h *ChallanHandler) NextNumber(c *fiber.Ctx) error {
	number, err := h.uc.NextNumber(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"dc_number": number})
}

// Get GET /api/challans/:id
func (h *ChallanHandler) Get(c *fiber.Ctx) error {
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

// Delete DELETE /api/challans/:id
func (h *ChallanHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PDF GET /api/challans/:id/pdf
func (h *ChallanHandler) PDF(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	pdf, err := h.uc.RenderPDF(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return sendPDF(c, "delivery-challan.pdf", pdf)
}
