package repository

import (
	"errors"

	"it-inventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoryRepository interface {
	FindAll(activeOnly bool) ([]model.AssetCategory, error)
	FindByID(id uuid.UUID) (*model.AssetCategory, error)
	FindBySlug(slug string) (*model.AssetCategory, error)
	ExistsBySlug(slug string, excludeID *uuid.UUID) (bool, error)
	Create(category *model.AssetCategory) error
	Update(category *model.AssetCategory) error
	Delete(id uuid.UUID) error
	CountAssets(id uuid.UUID) (int64, error)
	SeedDefaults() error
}

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db}
}

func (r *categoryRepo) FindAll(activeOnly bool) ([]model.AssetCategory, error) {
	var categories []model.AssetCategory
	q := r.db.Order("name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepo) FindByID(id uuid.UUID) (*model.AssetCategory, error) {
	var category model.AssetCategory
	if err := r.db.First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) FindBySlug(slug string) (*model.AssetCategory, error) {
	var category model.AssetCategory
	if err := r.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) ExistsBySlug(slug string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	q := r.db.Model(&model.AssetCategory{}).Where("slug = ?", slug)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *categoryRepo) Create(category *model.AssetCategory) error {
	return r.db.Omit(clause.Associations).Create(category).Error
}

func (r *categoryRepo) Update(category *model.AssetCategory) error {
	return r.db.Omit(clause.Associations).Save(category).Error
}

func (r *categoryRepo) Delete(id uuid.UUID) error {
	res := r.db.Delete(&model.AssetCategory{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *categoryRepo) CountAssets(id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Asset{}).Where("asset_category_id = ?", id).Count(&count).Error
	return count, err
}

// SeedDefaults creates the default categories if they don't exist
func (r *categoryRepo) SeedDefaults() error {
	for _, c := range model.DefaultCategories {
		var existing model.AssetCategory
		err := r.db.Where("slug = ?", c.Slug).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := r.db.Create(&c).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}
	return nil
}
