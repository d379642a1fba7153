package handler

import (
	"time"

	"styllobarber-pdv/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
	loc     *time.Location
}

func NewDashboardHandler(s service.DashboardService, loc *time.Location) *DashboardHandler {
	return &DashboardHandler{service: s, loc: loc}
}

// GetCashFlow returns daily inflow/outflow for charts
// Query params: days (default 7)
func (h *DashboardHandler) GetCashFlow(c *fiber.Ctx) error {
	days := c.QueryInt("days", 7)
	if days <= 0 || days > 366 {
		days = 7
	}

	data, err := h.service.GetCashFlow(c.UserContext(), days)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch cash flow"})
	}

	return c.JSON(fiber.Map{
		"period": days,
		"data":   data,
	})
}

// period reads from/to (YYYY-MM-DD), defaulting to the current month.
func (h *DashboardHandler) period(c *fiber.Ctx) (time.Time, time.Time, error) {
	now := time.Now().In(h.loc)
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, h.loc)
	to := now

	if d, err := queryDate(c, "from", h.loc); err != nil {
		return from, to, err
	} else if d != nil {
		from = *d
	}
	if d, err := queryDate(c, "to", h.loc); err != nil {
		return from, to, err
	} else if d != nil {
		to = *d
	}
	return from, to, nil
}

// GetCashFlowSummary returns inflow, outflow and balance for a period
// Query params: from, to (YYYY-MM-DD)
func (h *DashboardHandler) GetCashFlowSummary(c *fiber.Ctx) error {
	from, to, err := h.period(c)
	if err != nil || to.Before(from) {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid period"})
	}

	summary, err := h.service.GetCashFlowSummary(c.UserContext(), from, to)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch cash flow summary"})
	}
	return c.JSON(summary)
}

// GetCommissionReport returns confirmed commissions per barber
// Query params: from, to (YYYY-MM-DD)
func (h *DashboardHandler) GetCommissionReport(c *fiber.Ctx) error {
	from, to, err := h.period(c)
	if err != nil || to.Before(from) {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid period"})
	}

	report, err := h.service.GetCommissionReport(c.UserContext(), from, to)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch commission report"})
	}
	return c.JSON(fiber.Map{
		"from": from.Format(dateLayout),
		"to":   to.Format(dateLayout),
		"data": report,
	})
}
