package handler

import (
	"errors"

	"styllobarber-pdv/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProfileHandler struct {
	profileService service.ProfileService
}

func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// CreateProfile handles profile creation
// POST /api/v1/profiles
func (h *ProfileHandler) CreateProfile(c *fiber.Ctx) error {
	var req service.CreateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	profile, err := h.profileService.CreateProfile(c.UserContext(), &req, getProfileID(c))
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Profile created successfully",
		"data":    profile.ToResponse(),
	})
}

// UpdateProfilePrivileges handles privilege assignment
// PUT /api/v1/profiles/:id/privileges
func (h *ProfileHandler) UpdateProfilePrivileges(c *fiber.Ctx) error {
	profileID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid profile ID"})
	}

	var req struct {
		Privileges []string `json:"privileges"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	profile, err := h.profileService.UpdateProfilePrivileges(c.UserContext(), profileID, req.Privileges, getProfileID(c))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message": "Privileges updated successfully",
		"data":    profile.ToResponse(),
	})
}

// GetProfiles returns all profiles, optionally filtered by role
// GET /api/v1/profiles?role=barber
func (h *ProfileHandler) GetProfiles(c *fiber.Ctx) error {
	profiles, err := h.profileService.GetProfiles(c.UserContext(), c.Query("role"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch profiles"})
	}
	return c.JSON(profiles)
}

// GetProfile returns a single profile by ID
// GET /api/v1/profiles/:id
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	profileID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid profile ID"})
	}

	profile, err := h.profileService.GetProfileByID(c.UserContext(), profileID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Profile not found"})
	}

	return c.JSON(profile)
}

// UpdateProfile handles profile update
// PUT /api/v1/profiles/:id
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	profileID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid profile ID"})
	}

	var req service.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	profile, err := h.profileService.UpdateProfile(c.UserContext(), profileID, &req, getProfileID(c))
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"data":    profile.ToResponse(),
	})
}

// DeleteProfile soft deletes a profile
// DELETE /api/v1/profiles/:id
func (h *ProfileHandler) DeleteProfile(c *fiber.Ctx) error {
	profileID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid profile ID"})
	}

	if err := h.profileService.DeleteProfile(c.UserContext(), profileID, getProfileID(c)); err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Profile deleted successfully"})
}
