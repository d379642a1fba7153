package handler

import (
	"errors"
	"strings"
	"time"

	"styllobarber-pdv/internal/model"
	"styllobarber-pdv/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PDVHandler struct {
	service service.PDVService
	loc     *time.Location
}

func NewPDVHandler(s service.PDVService, loc *time.Location) *PDVHandler {
	return &PDVHandler{service: s, loc: loc}
}

// RecordTransaction registers a quick transaction
// POST /api/v1/pdv/transactions
func (h *PDVHandler) RecordTransaction(c *fiber.Ctx) error {
	var req service.RecordTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid JSON"})
	}
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = c.Get("Idempotency-Key")
	}

	id, err := h.service.RecordTransaction(c.UserContext(), &req, getProfileID(c))
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			return c.Status(400).JSON(fiber.Map{
				"success": false,
				"error":   vErr.Error(),
				"errors":  vErr.Errors,
			})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to record transaction"})
	}

	return c.Status(201).JSON(fiber.Map{
		"success":        true,
		"transaction_id": id,
	})
}

// ValidateTransaction checks a transaction without saving it
// POST /api/v1/pdv/transactions/validate
func (h *PDVHandler) ValidateTransaction(c *fiber.Ctx) error {
	var req service.RecordTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	return c.JSON(h.service.ValidateTransaction(&req))
}

// CancelTransaction flips a transaction to CANCELADA
// POST /api/v1/pdv/transactions/:id/cancel
func (h *PDVHandler) CancelTransaction(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid transaction ID"})
	}

	if err := h.service.CancelTransaction(c.UserContext(), id, getProfileID(c)); err != nil {
		switch {
		case errors.Is(err, service.ErrTransactionNotFound):
			return c.Status(404).JSON(fiber.Map{"success": false, "error": err.Error()})
		case errors.Is(err, service.ErrTransactionAlreadyCancelled):
			return c.Status(409).JSON(fiber.Map{"success": false, "error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to cancel transaction"})
		}
	}

	return c.JSON(fiber.Map{"success": true})
}

// GetRecentHistory lists the latest transactions
// GET /api/v1/pdv/transactions/recent?limit=10&staff_id=&kind=
func (h *PDVHandler) GetRecentHistory(c *fiber.Ctx) error {
	staffID, err := queryUUID(c, "staff_id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid staff_id"})
	}

	filter := service.HistoryFilter{StaffID: staffID}
	if raw := strings.ToUpper(c.Query("kind")); raw != "" {
		kind := model.TransactionKind(raw)
		switch kind {
		case model.KindRevenue, model.KindExpense, model.KindCommission:
			filter.Kind = &kind
		default:
			return c.Status(400).JSON(fiber.Map{"error": "Invalid kind"})
		}
	}

	entries, err := h.service.GetRecentHistory(c.UserContext(), c.QueryInt("limit", service.DefaultHistoryLimit), filter)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch transactions"})
	}
	return c.JSON(entries)
}

// GetDailyStats returns the totals of one day (today by default)
// GET /api/v1/pdv/stats/daily?date=2024-05-10&staff_id=
func (h *PDVHandler) GetDailyStats(c *fiber.Ctx) error {
	staffID, err := queryUUID(c, "staff_id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid staff_id"})
	}
	day, err := queryDate(c, "date", h.loc)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date, use YYYY-MM-DD"})
	}

	stats, err := h.service.GetDailyStats(c.UserContext(), service.StatsFilter{StaffID: staffID, Day: day})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch daily stats"})
	}
	return c.JSON(stats)
}
