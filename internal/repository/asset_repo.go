package repository

import (
	"it-inventory/internal/model"
	"it-inventory/internal/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssetRepository interface {
	Create(asset *model.Asset) error
	Update(asset *model.Asset) error
	Delete(id uuid.UUID) error
	FindByID(id uuid.UUID) (*model.Asset, error)
	Exists(id uuid.UUID) (bool, error)
	ExistsByTag(tag string, excludeID *uuid.UUID) (bool, error)
	FindPage(v scope.Viewer, page int) (*Page[model.Asset], error)
	FindOptions() ([]model.Asset, error)
}

type assetRepo struct {
	db *gorm.DB
}

func NewAssetRepo(db *gorm.DB) AssetRepository {
	return &assetRepo{db}
}

func (r *assetRepo) Create(asset *model.Asset) error {
	return r.db.Omit(clause.Associations).Create(asset).Error
}

func (r *assetRepo) Update(asset *model.Asset) error {
	return r.db.Omit(clause.Associations).Save(asset).Error
}

// Delete removes the asset; its movements go with it through the foreign key.
func (r *assetRepo) Delete(id uuid.UUID) error {
	res := r.db.Delete(&model.Asset{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *assetRepo) FindByID(id uuid.UUID) (*model.Asset, error) {
	var asset model.Asset
	if err := r.db.Preload("Category").First(&asset, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepo) Exists(id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&model.Asset{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *assetRepo) ExistsByTag(tag string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	q := r.db.Model(&model.Asset{}).Where("asset_tag = ?", tag)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *assetRepo) FindPage(v scope.Viewer, page int) (*Page[model.Asset], error) {
	return Paginate[model.Asset](func() *gorm.DB {
		return r.db.Model(&model.Asset{}).Scopes(scope.Assets(v))
	}, page, DefaultPageSize, func(q *gorm.DB) *gorm.DB {
		return q.Preload("Category").Order("assets.created_at DESC").Order("assets.asset_tag ASC")
	})
}

// FindOptions lists every asset by name for movement forms.
func (r *assetRepo) FindOptions() ([]model.Asset, error) {
	var assets []model.Asset
	err := r.db.Preload("Category").Order("name ASC").Find(&assets).Error
	return assets, err
}
