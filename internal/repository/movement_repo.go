package repository

import (
	"it-inventory/internal/model"
	"it-inventory/internal/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MovementRepository interface {
	Create(movement *model.AssetMovement) error
	// Update writes only the named columns.
	Update(movement *model.AssetMovement, columns ...string) error
	Delete(id uuid.UUID) error
	FindVisible(v scope.Viewer, id uuid.UUID) (*model.AssetMovement, error)
	FindPage(v scope.Viewer, page int) (*Page[model.AssetMovement], error)
}

type movementRepo struct {
	db *gorm.DB
}

func NewMovementRepo(db *gorm.DB) MovementRepository {
	return &movementRepo{db}
}

func withDisplayRelations(q *gorm.DB) *gorm.DB {
	return q.Preload("Asset.Category").Preload("Location").Preload("User")
}

func (r *movementRepo) Create(movement *model.AssetMovement) error {
	return r.db.Omit(clause.Associations).Create(movement).Error
}

func (r *movementRepo) Update(movement *model.AssetMovement, columns ...string) error {
	return r.db.Model(movement).Omit(clause.Associations).Select(columns).Updates(movement).Error
}

func (r *movementRepo) Delete(id uuid.UUID) error {
	res := r.db.Delete(&model.AssetMovement{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindVisible returns gorm.ErrRecordNotFound for movements outside the viewer's scope.
func (r *movementRepo) FindVisible(v scope.Viewer, id uuid.UUID) (*model.AssetMovement, error) {
	var movement model.AssetMovement
	err := withDisplayRelations(r.db).
		Scopes(scope.Movements(v)).
		First(&movement, "asset_movements.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &movement, nil
}

func (r *movementRepo) FindPage(v scope.Viewer, page int) (*Page[model.AssetMovement], error) {
	return Paginate[model.AssetMovement](func() *gorm.DB {
		return r.db.Model(&model.AssetMovement{}).Scopes(scope.Movements(v))
	}, page, DefaultPageSize, func(q *gorm.DB) *gorm.DB {
		return withDisplayRelations(q).
			Order("asset_movements.movement_date DESC").
			Order("asset_movements.created_at DESC")
	})
}
