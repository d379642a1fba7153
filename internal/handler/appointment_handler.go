package handler

import (
	"errors"

	"styllobarber-pdv/internal/model"
	"styllobarber-pdv/internal/repository"
	"styllobarber-pdv/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AppointmentHandler struct {
	service service.AppointmentService
}

func NewAppointmentHandler(s service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: s}
}

// GetAppointments lists appointments
// GET /api/v1/appointments?client_id=&staff_id=&status=&limit=
func (h *AppointmentHandler) GetAppointments(c *fiber.Ctx) error {
	clientID, err := queryUUID(c, "client_id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid client_id"})
	}
	staffID, err := queryUUID(c, "staff_id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid staff_id"})
	}

	filter := repository.AppointmentFilter{
		ClientID: clientID,
		StaffID:  staffID,
		Limit:    c.QueryInt("limit", 0),
	}
	if raw := c.Query("status"); raw != "" {
		status := model.AppointmentStatus(raw)
		switch status {
		case model.AppointmentConfirmed, model.AppointmentCompleted, model.AppointmentCancelled, model.AppointmentPendingPayment:
			filter.Status = &status
		default:
			return c.Status(400).JSON(fiber.Map{"error": "Invalid status"})
		}
	}

	appointments, err := h.service.ListAppointments(c.UserContext(), filter)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch appointments"})
	}
	return c.JSON(appointments)
}

// GetAppointment returns one appointment
// GET /api/v1/appointments/:id
func (h *AppointmentHandler) GetAppointment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid appointment ID"})
	}

	appointment, err := h.service.GetAppointment(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, service.ErrAppointmentNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch appointment"})
	}
	return c.JSON(appointment)
}
