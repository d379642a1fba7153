package handler

import (
	"errors"

	"styllobarber-pdv/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CommissionHandler struct {
	service service.CommissionService
}

func NewCommissionHandler(s service.CommissionService) *CommissionHandler {
	return &CommissionHandler{service: s}
}

// SetPercentage creates or replaces a barber's commission percentage
// PUT /api/v1/commissions/config
func (h *CommissionHandler) SetPercentage(c *fiber.Ctx) error {
	var req service.SetCommissionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	cfg, err := h.service.SetPercentage(c.UserContext(), &req, getProfileID(c))
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(cfg)
}

// GetConfigs lists configured percentages
// GET /api/v1/commissions/config
func (h *CommissionHandler) GetConfigs(c *fiber.Ctx) error {
	configs, err := h.service.ListConfigs(c.UserContext())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch commission configs"})
	}
	return c.JSON(configs)
}
