package handler

import (
	"it-inventory/internal/middleware"
	"it-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type MovementHandler struct {
	l               logrus.FieldLogger
	movementService service.MovementService
}

func NewMovementHandler(l logrus.FieldLogger, movementService service.MovementService) *MovementHandler {
	return &MovementHandler{l: l, movementService: movementService}
}

// GetMovements returns one page of movements, newest first
// GET /api/v1/movements?page=N
func (h *MovementHandler) GetMovements(c *fiber.Ctx) error {
	page, err := h.movementService.List(middleware.CurrentViewer(c), c.QueryInt("page", 1))
	if err != nil {
		return writeError(c, h.l, err)
	}
	return c.JSON(page)
}

// GET /api/v1/movements/:id
func (h *MovementHandler) GetMovement(c *fiber.Ctx) error {
	id, ok, err := pathID(c, "movement")
	if !ok {
		return err
	}
	movement, err := h.movementService.Get(middleware.CurrentViewer(c), id)
	if err != nil {
		return writeError(c, h.l, err)
	}
	return c.JSON(fiber.Map{"data": movement})
}

// RecordMovement stamps the movement with the caller's location and identity
// POST /api/v1/movements
func (h *MovementHandler) RecordMovement(c *fiber.Ctx) error {
	var req service.MovementRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	movement, err := h.movementService.Record(middleware.CurrentViewer(c), &req)
	if err != nil {
		return writeError(c, h.l, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Asset movement recorded successfully.",
		"data":    movement,
	})
}

// PUT /api/v1/movements/:id
func (h *MovementHandler) UpdateMovement(c *fiber.Ctx) error {
	id, ok, err := pathID(c, "movement")
	if !ok {
		return err
	}
	var req service.MovementRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	movement, err := h.movementService.Update(middleware.CurrentViewer(c), id, &req)
	if err != nil {
		return writeError(c, h.l, err)
	}
	return c.JSON(fiber.Map{
		"message": "Asset movement updated successfully.",
		"data":    movement,
	})
}

// DELETE /api/v1/movements/:id
func (h *MovementHandler) DeleteMovement(c *fiber.Ctx) error {
	id, ok, err := pathID(c, "movement")
	if !ok {
		return err
	}
	if err := h.movementService.Delete(middleware.CurrentViewer(c), id); err != nil {
		return writeError(c, h.l, err)
	}
	return c.JSON(fiber.Map{"message": "Asset movement deleted successfully."})
}
