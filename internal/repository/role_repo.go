package repository

import (
	"errors"

	"it-inventory/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoleRepository interface {
	FindAll() ([]model.Role, error)
	FindByID(id uint) (*model.Role, error)
	FindByCode(code model.RoleCode) (*model.Role, error)
	SeedDefaults() error
}

type roleRepo struct {
	db *gorm.DB
}

func NewRoleRepo(db *gorm.DB) RoleRepository {
	return &roleRepo{db: db}
}

func (r *roleRepo) FindAll() ([]model.Role, error) {
	var roles []model.Role
	err := r.db.Preload("Privileges").Order("id ASC").Find(&roles).Error
	return roles, err
}

func (r *roleRepo) FindByID(id uint) (*model.Role, error) {
	var role model.Role
	err := r.db.Preload("Privileges").First(&role, id).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepo) FindByCode(code model.RoleCode) (*model.Role, error) {
	var role model.Role
	err := r.db.Preload("Privileges").Where("code = ?", code).First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// SeedDefaults creates the default roles and links their privileges. Admins
// receive every privilege; staff receive model.StaffPrivilegeCodes.
func (r *roleRepo) SeedDefaults() error {
	for _, defaultRole := range model.DefaultRoles {
		var role model.Role
		err := r.db.Where("code = ?", defaultRole.Code).First(&role).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			role = defaultRole
			if err := r.db.Omit(clause.Associations).Create(&role).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		var privileges []model.Privilege
		q := r.db
		if !role.Code.IsAdmin() {
			q = q.Where("code IN ?", model.StaffPrivilegeCodes)
		}
		if err := q.Find(&privileges).Error; err != nil {
			return err
		}
		if err := r.db.Model(&role).Association("Privileges").Replace(privileges); err != nil {
			return err
		}
	}
	return nil
}
