package handler

import (
	"it-inventory/internal/middleware"
	"it-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type CategoryHandler struct {
	l               logrus.FieldLogger
	categoryService service.CategoryService
}

func NewCategoryHandler(l logrus.FieldLogger, categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{l: l, categoryService: categoryService}
}

// GET /api/v1/categories?active=true
func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.categoryService.List(c.QueryBool("active", false))
	if err != nil {
		return writeError(c, h.l, err)
	}
	return c.JSON(fiber.Map{"data": categories})
}

// GET /api/v1/categories/:id
func (h *CategoryHandler) GetCategory(c *fiber.Ctx) error {
	id, ok, err := pathID(c, "category")
	if !ok {
		return err
	}
	category, err := h.categoryService.Get(id)
	if err != nil {
		return writeError(c, h.l, err)
	}
	return c.JSON(fiber.Map{"data": category})
}

// POST /api/v1/categories
func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var req service.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	category, err := h.categoryService.Create(middleware.CurrentViewer(c), &req)
	if err != nil {
		return writeError(c, h.l, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Category created successfully",
		"data":    category,
	})
}

// PUT /api/v1/categories/:id
func (h *CategoryHandler) UpdateCategory(c *fiber.Ctx) error {
	id, ok, err := pathID(c, "category")
	if !ok {
		return err
	}
	var req service.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	category, err := h.categoryService.Update(middleware.CurrentViewer(c), id, &req)
	if err != nil {
		return writeError(c, h.l, err)
	}
	return c.JSON(fiber.Map{
		"message": "Category updated successfully",
		"data":    category,
	})
}

// DeleteCategory fails with 422 while assets still belong to the category
// DELETE /api/v1/categories/:id
func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	id, ok, err := pathID(c, "category")
	if !ok {
		return err
	}
	if err := h.categoryService.Delete(id); err != nil {
		return writeError(c, h.l, err)
	}
	return c.JSON(fiber.Map{"message": "Category deleted successfully"})
}
