// Package seed fills an empty installation with its default reference data.
package seed

import (
	"errors"
	"fmt"

	"it-inventory/internal/model"
	"it-inventory/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	DefaultPassword = "password"
	homeOfficeCode  = "JKT"
)

type defaultUser struct {
	email    string
	name     string
	role     model.RoleCode
	location string
}

var defaultUsers = []defaultUser{
	{email: "admin@example.com", name: "IT Admin", role: model.RoleAdmin, location: homeOfficeCode},
	{email: "staff@example.com", name: "IT Staff Jakarta", role: model.RoleITStaff, location: homeOfficeCode},
}

// Run seeds privileges, roles, locations, categories and the default users.
// Existing rows are left untouched, so Run is safe on every start.
func Run(l logrus.FieldLogger, db *gorm.DB) error {
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	locationRepo := repository.NewLocationRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	userRepo := repository.NewUserRepo(db)

	steps := []struct {
		name string
		fn   func() error
	}{
		{"privileges", privilegeRepo.SeedDefaults},
		{"roles", roleRepo.SeedDefaults},
		{"locations", locationRepo.SeedDefaults},
		{"categories", categoryRepo.SeedDefaults},
	}
	for _, step := range steps {
		if err := step.fn(); err != nil {
			return fmt.Errorf("seed %s: %w", step.name, err)
		}
	}

	for _, du := range defaultUsers {
		_, err := userRepo.FindByEmail(du.email)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		role, err := roleRepo.FindByCode(du.role)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", du.email, err)
		}
		loc, err := locationRepo.FindByCode(du.location)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", du.email, err)
		}

		u := &model.User{
			Email:      du.email,
			FullName:   du.name,
			RoleID:     &role.ID,
			LocationID: &loc.ID,
			IsActive:   true,
			Privileges: role.Privileges,
		}
		u.CreatedBy = "system"
		u.UpdatedBy = "system"
		if err := u.SetPassword(DefaultPassword); err != nil {
			return err
		}
		if err := userRepo.Create(u); err != nil {
			return fmt.Errorf("seed user %s: %w", du.email, err)
		}
		l.WithFields(logrus.Fields{"email": u.Email, "role": role.Code}).Info("Default user created")
	}
	return nil
}
