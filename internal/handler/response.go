package handler

import (
	"strings"

	"it-inventory/internal/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const msgInvalidData = "The given data was invalid."

// writeError maps service errors onto status codes. Unknown errors are logged
// and hidden behind a 500.
func writeError(c *fiber.Ctx, l logrus.FieldLogger, err error) error {
	if fields, ok := apperror.FieldErrors(err); ok {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  msgInvalidData,
			"errors": fields,
		})
	}
	if apperror.IsNotFound(err) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": capitalize(err.Error())})
	}

	l.WithError(err).WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
	}).Error("Request failed")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
}

func invalidJSON(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
}

// pathID parses the :id route parameter. ok is false once the 400 response
// has been written.
func pathID(c *fiber.Ctx, entity string) (uuid.UUID, bool, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid " + entity + " ID"})
	}
	return id, true, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
