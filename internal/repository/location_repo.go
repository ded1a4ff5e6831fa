package repository

import (
	"errors"

	"it-inventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LocationRepository interface {
	FindAll(activeOnly bool) ([]model.Location, error)
	FindByID(id uuid.UUID) (*model.Location, error)
	FindByCode(code string) (*model.Location, error)
	ExistsByCode(code string, excludeID *uuid.UUID) (bool, error)
	Create(location *model.Location) error
	Update(location *model.Location) error
	Delete(id uuid.UUID) error
	CountReferences(id uuid.UUID) (users int64, movements int64, err error)
	SeedDefaults() error
}

type locationRepo struct {
	db *gorm.DB
}

func NewLocationRepo(db *gorm.DB) LocationRepository {
	return &locationRepo{db}
}

func (r *locationRepo) FindAll(activeOnly bool) ([]model.Location, error) {
	var locations []model.Location
	q := r.db.Order("name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *locationRepo) FindByID(id uuid.UUID) (*model.Location, error) {
	var location model.Location
	if err := r.db.First(&location, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *locationRepo) FindByCode(code string) (*model.Location, error) {
	var location model.Location
	if err := r.db.Where("code = ?", code).First(&location).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *locationRepo) ExistsByCode(code string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	q := r.db.Model(&model.Location{}).Where("code = ?", code)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *locationRepo) Create(location *model.Location) error {
	return r.db.Omit(clause.Associations).Create(location).Error
}

func (r *locationRepo) Update(location *model.Location) error {
	return r.db.Omit(clause.Associations).Save(location).Error
}

func (r *locationRepo) Delete(id uuid.UUID) error {
	res := r.db.Delete(&model.Location{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *locationRepo) CountReferences(id uuid.UUID) (int64, int64, error) {
	var users, movements int64
	if err := r.db.Model(&model.User{}).Where("location_id = ?", id).Count(&users).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.Model(&model.AssetMovement{}).Where("location_id = ?", id).Count(&movements).Error; err != nil {
		return 0, 0, err
	}
	return users, movements, nil
}

// SeedDefaults creates the default offices if they don't exist
func (r *locationRepo) SeedDefaults() error {
	for _, l := range model.DefaultLocations {
		var existing model.Location
		err := r.db.Where("code = ?", l.Code).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := r.db.Create(&l).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}
	return nil
}
