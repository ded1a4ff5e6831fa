package handler

import (
	"it-inventory/internal/middleware"
	"it-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AssetHandler struct {
	l            logrus.FieldLogger
	assetService service.AssetService
}

func NewAssetHandler(l logrus.FieldLogger, assetService service.AssetService) *AssetHandler {
	return &AssetHandler{l: l, assetService: assetService}
}

// GetAssets returns one page of the assets visible to the caller
// GET /api/v1/assets?page=N
func (h *AssetHandler) GetAssets(c *fiber.Ctx) error {
	page, err := h.assetService.List(middleware.CurrentViewer(c), c.QueryInt("page", 1))
	if err != nil {
		return writeError(c, h.l, err)
	}
	return c.JSON(page)
}

// GetOptions lists every asset by name for movement forms
// GET /api/v1/assets/options
func (h *AssetHandler) GetOptions(c *fiber.Ctx) error {
	assets, err := h.assetService.Options()
	if err != nil {
		return writeError(c, h.l, err)
	}
	return c.JSON(fiber.Map{"data": assets})
}

// GET /api/v1/assets/:id
func (h *AssetHandler) GetAsset(c *fiber.Ctx) error {
	id, ok, err := pathID(c, "asset")
	if !ok {
		return err
	}
	asset, err := h.assetService.Get(id)
	if err != nil {
		return writeError(c, h.l, err)
	}
	return c.JSON(fiber.Map{"data": asset})
}

// POST /api/v1/assets
func (h *AssetHandler) CreateAsset(c *fiber.Ctx) error {
	var req service.AssetRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	asset, err := h.assetService.Create(middleware.CurrentViewer(c), &req)
	if err != nil {
		return writeError(c, h.l, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Asset created successfully",
		"data":    asset,
	})
}

// PUT /api/v1/assets/:id
func (h *AssetHandler) UpdateAsset(c *fiber.Ctx) error {
	id, ok, err := pathID(c, "asset")
	if !ok {
		return err
	}
	var req service.AssetRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	asset, err := h.assetService.Update(middleware.CurrentViewer(c), id, &req)
	if err != nil {
		return writeError(c, h.l, err)
	}
	return c.JSON(fiber.Map{
		"message": "Asset updated successfully",
		"data":    asset,
	})
}

// DeleteAsset removes the asset and every movement recorded for it
// DELETE /api/v1/assets/:id
func (h *AssetHandler) DeleteAsset(c *fiber.Ctx) error {
	id, ok, err := pathID(c, "asset")
	if !ok {
		return err
	}
	if err := h.assetService.Delete(middleware.CurrentViewer(c), id); err != nil {
		return writeError(c, h.l, err)
	}
	return c.JSON(fiber.Map{"message": "Asset deleted successfully"})
}
