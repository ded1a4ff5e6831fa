// Package testutil provides an isolated in-memory store and fixtures for tests.
package testutil

import (
	"testing"
	"time"

	"it-inventory/internal/model"
	"it-inventory/pkg/database"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory SQLite database with foreign keys enforced
// and every table migrated.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(database.SQLite("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a second connection would open a different in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, database.Migrate(db))
	return db
}

// NullLogger discards output; the returned hook records entries for assertions.
func NullLogger() (*logrus.Logger, *test.Hook) {
	return test.NewNullLogger()
}

func Location(t *testing.T, db *gorm.DB, code string) *model.Location {
	t.Helper()
	l := &model.Location{
		Name:     "Office " + code,
		Code:     code,
		City:     "City " + code,
		Country:  model.DefaultCountry,
		IsActive: true,
	}
	require.NoError(t, db.Create(l).Error)
	return l
}

func Category(t *testing.T, db *gorm.DB, name string) *model.AssetCategory {
	t.Helper()
	c := &model.AssetCategory{Name: name, Slug: model.Slugify(name), IsActive: true}
	require.NoError(t, db.Create(c).Error)
	return c
}

func Asset(t *testing.T, db *gorm.DB, categoryID uuid.UUID, tag string, status model.AssetStatus) *model.Asset {
	t.Helper()
	a := &model.Asset{
		AssetTag:        tag,
		Name:            "Asset " + tag,
		AssetCategoryID: categoryID,
		Condition:       model.ConditionGood,
		Status:          status,
	}
	require.NoError(t, db.Omit("Category").Create(a).Error)
	return a
}

// Role returns the stored role for code, creating it when missing.
func Role(t *testing.T, db *gorm.DB, code model.RoleCode) *model.Role {
	t.Helper()
	role := &model.Role{}
	require.NoError(t, db.Where(model.Role{Code: code}).
		Attrs(model.Role{Name: string(code)}).
		FirstOrCreate(role).Error)
	return role
}

// User creates an active user with the given role at location (which may be nil).
func User(t *testing.T, db *gorm.DB, email string, code model.RoleCode, location *uuid.UUID) *model.User {
	t.Helper()
	role := Role(t, db, code)
	u := &model.User{
		Email:      email,
		FullName:   email,
		RoleID:     &role.ID,
		LocationID: location,
		IsActive:   true,
	}
	require.NoError(t, u.SetPassword("password"))
	require.NoError(t, db.Omit("Role", "Location", "Privileges").Create(u).Error)
	u.Role = role
	return u
}

func Movement(t *testing.T, db *gorm.DB, asset *model.Asset, user *model.User, locationID uuid.UUID,
	typ model.MovementType, quantity int, at time.Time) *model.AssetMovement {
	t.Helper()
	m := &model.AssetMovement{
		AssetID:      asset.ID,
		LocationID:   locationID,
		UserID:       user.ID,
		Type:         typ,
		Quantity:     quantity,
		MovementDate: at.UTC(),
	}
	require.NoError(t, db.Omit("Asset", "Location", "User").Create(m).Error)
	return m
}
