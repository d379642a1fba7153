package handler

import (
	"strings"

	"styllobarber-pdv/internal/model"
	"styllobarber-pdv/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(s service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

// CreateService adds an entry to the service catalog
// POST /api/v1/services
func (h *CatalogHandler) CreateService(c *fiber.Ctx) error {
	var req service.CreateServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	svc, err := h.service.CreateService(c.UserContext(), &req, getProfileID(c))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(svc)
}

// GetServices lists the catalog
// GET /api/v1/services?active=true
func (h *CatalogHandler) GetServices(c *fiber.Ctx) error {
	services, err := h.service.ListServices(c.UserContext(), c.QueryBool("active", false))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch services"})
	}
	return c.JSON(services)
}

// GetCategories lists financial categories
// GET /api/v1/categories?kind=DESPESA
func (h *CatalogHandler) GetCategories(c *fiber.Ctx) error {
	var kind *model.TransactionKind
	if raw := strings.ToUpper(c.Query("kind")); raw != "" {
		k := model.TransactionKind(raw)
		if k != model.KindRevenue && k != model.KindExpense {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid kind"})
		}
		kind = &k
	}

	categories, err := h.service.ListCategories(c.UserContext(), kind)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch categories"})
	}
	return c.JSON(categories)
}
