package handler

import (
	"it-inventory/internal/middleware"
	"it-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type UserHandler struct {
	l           logrus.FieldLogger
	userService service.UserService
}

func NewUserHandler(l logrus.FieldLogger, userService service.UserService) *UserHandler {
	return &UserHandler{l: l, userService: userService}
}

func actorID(c *fiber.Ctx) string {
	if u, ok := middleware.CurrentUser(c); ok {
		return u.ID.String()
	}
	return "system"
}

// CreateUser handles user creation
// POST /api/v1/users
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req service.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	user, err := h.userService.CreateUser(&req, actorID(c))
	if err != nil {
		return writeError(c, h.l, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "User created successfully",
		"data":    user.ToResponse(),
	})
}

// UpdateUserPrivileges handles privilege assignment
// PUT /api/v1/users/:id/privileges
func (h *UserHandler) UpdateUserPrivileges(c *fiber.Ctx) error {
	userID, ok, err := pathID(c, "user")
	if !ok {
		return err
	}

	var req service.UpdatePrivilegesRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	user, err := h.userService.UpdateUserPrivileges(userID, req.Privileges, actorID(c))
	if err != nil {
		return writeError(c, h.l, err)
	}

	return c.JSON(fiber.Map{
		"message": "Privileges updated successfully",
		"data":    user.ToResponse(),
	})
}

// GetUsers returns all users
// GET /api/v1/users
func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		return writeError(c, h.l, err)
	}
	return c.JSON(users)
}

// GetUser returns a single user by ID
// GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	userID, ok, err := pathID(c, "user")
	if !ok {
		return err
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		return writeError(c, h.l, err)
	}
	return c.JSON(user)
}

// UpdateUser handles user update
// PUT /api/v1/users/:id
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	userID, ok, err := pathID(c, "user")
	if !ok {
		return err
	}

	var req service.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	user, err := h.userService.UpdateUser(userID, &req, actorID(c))
	if err != nil {
		return writeError(c, h.l, err)
	}

	return c.JSON(fiber.Map{
		"message": "User updated successfully",
		"data":    user.ToResponse(),
	})
}

// DeleteUser handles user deletion
// DELETE /api/v1/users/:id
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	userID, ok, err := pathID(c, "user")
	if !ok {
		return err
	}

	if err := h.userService.DeleteUser(userID); err != nil {
		return writeError(c, h.l, err)
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}
