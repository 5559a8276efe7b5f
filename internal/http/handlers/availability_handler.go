package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/3DMakc/3d-makc-fishing-store/internal/services"
)

type AvailabilityHandler struct {
	Avail *services.AvailabilityService
}

// GET /api/v1/availability?product_id=N
func (h *AvailabilityHandler) Check(c *fiber.Ctx) error {
	productID, err := strconv.ParseInt(c.Query("product_id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing product_id"})
	}
	a, err := h.Avail.Check(productID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not check availability"})
	}
	return c.JSON(a)
}
