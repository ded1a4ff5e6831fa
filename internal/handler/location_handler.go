package handler

import (
	"it-inventory/internal/middleware"
	"it-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type LocationHandler struct {
	l               logrus.FieldLogger
	locationService service.LocationService
}

func NewLocationHandler(l logrus.FieldLogger, locationService service.LocationService) *LocationHandler {
	return &LocationHandler{l: l, locationService: locationService}
}

// GET /api/v1/locations?active=true
func (h *LocationHandler) GetLocations(c *fiber.Ctx) error {
	locations, err := h.locationService.List(c.QueryBool("active", false))
	if err != nil {
		return writeError(c, h.l, err)
	}
	return c.JSON(fiber.Map{"data": locations})
}

// GET /api/v1/locations/:id
func (h *LocationHandler) GetLocation(c *fiber.Ctx) error {
	id, ok, err := pathID(c, "location")
	if !ok {
		return err
	}
	location, err := h.locationService.Get(id)
	if err != nil {
		return writeError(c, h.l, err)
	}
	return c.JSON(fiber.Map{"data": location})
}

// POST /api/v1/locations
func (h *LocationHandler) CreateLocation(c *fiber.Ctx) error {
	var req service.LocationRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	location, err := h.locationService.Create(middleware.CurrentViewer(c), &req)
	if err != nil {
		return writeError(c, h.l, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Location created successfully",
		"data":    location,
	})
}

// PUT /api/v1/locations/:id
func (h *LocationHandler) UpdateLocation(c *fiber.Ctx) error {
	id, ok, err := pathID(c, "location")
	if !ok {
		return err
	}
	var req service.LocationRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	location, err := h.locationService.Update(middleware.CurrentViewer(c), id, &req)
	if err != nil {
		return writeError(c, h.l, err)
	}
	return c.JSON(fiber.Map{
		"message": "Location updated successfully",
		"data":    location,
	})
}

// DeleteLocation fails with 422 while users or movements still reference the location
// DELETE /api/v1/locations/:id
func (h *LocationHandler) DeleteLocation(c *fiber.Ctx) error {
	id, ok, err := pathID(c, "location")
	if !ok {
		return err
	}
	if err := h.locationService.Delete(id); err != nil {
		return writeError(c, h.l, err)
	}
	return c.JSON(fiber.Map{"message": "Location deleted successfully"})
}
