package service

import (
	"errors"
	"time"

	"it-inventory/internal/apperror"
	"it-inventory/internal/event"
	"it-inventory/internal/model"
	"it-inventory/internal/repository"
	"it-inventory/internal/scope"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	entityAsset   = "asset"
	msgTagInUse   = "This asset tag is already in use."
	msgNoCategory = "Selected category does not exist."
)

type AssetRequest struct {
	AssetTag        string           `json:"asset_tag" validate:"required,max=255"`
	Name            string           `json:"name" validate:"required,max=255"`
	AssetCategoryID string           `json:"asset_category_id" validate:"required,uuid"`
	Brand           *string          `json:"brand" validate:"omitempty,max=255"`
	Model           *string          `json:"model" validate:"omitempty,max=255"`
	SerialNumber    *string          `json:"serial_number" validate:"omitempty,max=255"`
	PurchaseDate    *string          `json:"purchase_date" validate:"omitempty,date"`
	PurchasePrice   *decimal.Decimal `json:"purchase_price" validate:"omitempty,gte=0"`
	Condition       string           `json:"condition" validate:"required,oneof=excellent good fair poor damaged"`
	Description     *string          `json:"description"`
	WarrantyUntil   *string          `json:"warranty_until" validate:"omitempty,max=255"`
	Status          string           `json:"status" validate:"required,oneof=available in_use maintenance disposed"`
}

func (AssetRequest) Messages() map[string]string {
	return map[string]string{
		"asset_tag.required":         "Asset tag is required.",
		"name.required":              "Asset name is required.",
		"asset_category_id.required": "Asset category is required.",
		"condition.required":         "Asset condition is required.",
		"status.required":            "Asset status is required.",
		"purchase_price.gte":         "The purchase price must be at least 0.",
	}
}

type AssetService interface {
	Create(v scope.Viewer, req *AssetRequest) (*model.Asset, error)
	Update(v scope.Viewer, id uuid.UUID, req *AssetRequest) (*model.Asset, error)
	Delete(v scope.Viewer, id uuid.UUID) error
	Get(id uuid.UUID) (*model.Asset, error)
	List(v scope.Viewer, page int) (*repository.Page[model.Asset], error)
	Options() ([]model.Asset, error)
}

type assetService struct {
	l            logrus.FieldLogger
	assetRepo    repository.AssetRepository
	categoryRepo repository.CategoryRepository
	events       event.Publisher
}

func NewAssetService(l logrus.FieldLogger, assetRepo repository.AssetRepository, categoryRepo repository.CategoryRepository, events event.Publisher) AssetService {
	return &assetService{l: l, assetRepo: assetRepo, categoryRepo: categoryRepo, events: events}
}

// apply validates req and copies it onto a. excludeID skips a itself in the
// uniqueness check on update.
func (s *assetService) apply(a *model.Asset, req *AssetRequest, excludeID *uuid.UUID) error {
	if err := validate(req); err != nil {
		return err
	}

	condition, err := model.ParseAssetCondition(req.Condition)
	if err != nil {
		return apperror.Validation("condition", "The selected condition is invalid.")
	}
	status, err := model.ParseAssetStatus(req.Status)
	if err != nil {
		return apperror.Validation("status", "The selected status is invalid.")
	}
	categoryID, err := parseID("asset_category_id", req.AssetCategoryID)
	if err != nil {
		return err
	}
	var purchaseDate *datatypes.Date
	if req.PurchaseDate != nil && *req.PurchaseDate != "" {
		t, err := parseDate("purchase_date", *req.PurchaseDate, time.UTC)
		if err != nil {
			return err
		}
		d := datatypes.Date(t)
		purchaseDate = &d
	}

	taken, err := s.assetRepo.ExistsByTag(req.AssetTag, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperror.Validation("asset_tag", msgTagInUse)
	}
	if _, err := s.categoryRepo.FindByID(categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.Reference("asset_category_id", msgNoCategory)
		}
		return err
	}

	a.AssetTag = req.AssetTag
	a.Name = req.Name
	a.AssetCategoryID = categoryID
	a.Category = nil
	a.Brand = emptyToNil(req.Brand)
	a.ModelNumber = emptyToNil(req.Model)
	a.SerialNumber = emptyToNil(req.SerialNumber)
	a.PurchaseDate = purchaseDate
	a.PurchasePrice = req.PurchasePrice
	a.Condition = condition
	a.Description = emptyToNil(req.Description)
	a.WarrantyUntil = emptyToNil(req.WarrantyUntil)
	a.Status = status
	return nil
}

func (s *assetService) Create(v scope.Viewer, req *AssetRequest) (*model.Asset, error) {
	a := &model.Asset{}
	if err := s.apply(a, req, nil); err != nil {
		return nil, err
	}
	a.CreatedBy = v.UserID.String()
	a.UpdatedBy = v.UserID.String()

	if err := s.assetRepo.Create(a); err != nil {
		return nil, s.storeError(err)
	}
	s.l.WithFields(logrus.Fields{"asset_id": a.ID, "asset_tag": a.AssetTag}).Info("Asset created")

	s.publish(event.AssetCreated, a, v)
	return s.assetRepo.FindByID(a.ID)
}

func (s *assetService) Update(v scope.Viewer, id uuid.UUID, req *AssetRequest) (*model.Asset, error) {
	a, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(a, req, &a.ID); err != nil {
		return nil, err
	}
	a.UpdatedBy = v.UserID.String()

	if err := s.assetRepo.Update(a); err != nil {
		return nil, s.storeError(err)
	}

	s.publish(event.AssetUpdated, a, v)
	return s.assetRepo.FindByID(a.ID)
}

// Delete removes the asset together with its movements.
func (s *assetService) Delete(v scope.Viewer, id uuid.UUID) error {
	if err := s.assetRepo.Delete(id); err != nil {
		return s.storeError(err)
	}
	s.l.WithField("asset_id", id).Info("Asset deleted")

	s.publish(event.AssetDeleted, &model.Asset{BaseModel: model.BaseModel{ID: id}}, v)
	return nil
}

func (s *assetService) Get(id uuid.UUID) (*model.Asset, error) {
	a, err := s.assetRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound(entityAsset)
	}
	return a, err
}

func (s *assetService) List(v scope.Viewer, page int) (*repository.Page[model.Asset], error) {
	return s.assetRepo.FindPage(v, page)
}

func (s *assetService) Options() ([]model.Asset, error) {
	return s.assetRepo.FindOptions()
}

func (s *assetService) storeError(err error) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return apperror.Reference("asset_category_id", msgNoCategory)
	}
	return storeError(err, entityAsset, "asset_tag", msgTagInUse)
}

type assetBody struct {
	AssetTag string            `json:"asset_tag,omitempty"`
	Status   model.AssetStatus `json:"status,omitempty"`
}

func (s *assetService) publish(t event.Type, a *model.Asset, v scope.Viewer) {
	e := event.NewStatusEvent(t, a.ID, v.UserID, assetBody{AssetTag: a.AssetTag, Status: a.Status})
	if err := s.events.Publish(event.TopicAsset, e); err != nil {
		s.l.WithError(err).WithField("event", t).Warn("Unable to publish asset event")
	}
}
