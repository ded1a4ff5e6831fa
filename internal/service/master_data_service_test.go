package service_test

import (
	"testing"

	"it-inventory/internal/apperror"
	"it-inventory/internal/model"
	"it-inventory/internal/repository"
	"it-inventory/internal/scope"
	"it-inventory/internal/service"
	"it-inventory/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryLifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	l, _ := testutil.NullLogger()
	svc := service.NewCategoryService(l, repository.NewCategoryRepo(db))
	v := scope.Viewer{UserID: uuid.New(), Role: model.RoleAdmin}

	c, err := svc.Create(v, &service.CategoryRequest{Name: "Printers & Scanners"})
	require.NoError(t, err)
	assert.Equal(t, "printers-scanners", c.Slug)
	assert.True(t, c.IsActive)

	_, err = svc.Create(v, &service.CategoryRequest{Name: "Printers Scanners"})
	fields, ok := apperror.FieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, "The slug has already been taken.", fields["slug"])

	inactive := false
	c, err = svc.Update(v, c.ID, &service.CategoryRequest{Name: "Printers & Scanners", IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, c.IsActive)

	active, err := svc.List(true)
	require.NoError(t, err)
	assert.Empty(t, active)

	testutil.Asset(t, db, c.ID, "PRN-001", model.StatusAvailable)
	err = svc.Delete(c.ID)
	fields, ok = apperror.FieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, "The category still has 1 asset(s) assigned.", fields["category"])

	require.NoError(t, db.Where("asset_category_id = ?", c.ID).Delete(&model.Asset{}).Error)
	require.NoError(t, svc.Delete(c.ID))
	assert.True(t, apperror.IsNotFound(svc.Delete(c.ID)))
}

func TestLocationLifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	l, _ := testutil.NullLogger()
	svc := service.NewLocationService(l, repository.NewLocationRepo(db))
	v := scope.Viewer{UserID: uuid.New(), Role: model.RoleAdmin}

	loc, err := svc.Create(v, &service.LocationRequest{Name: "Denpasar Office", Code: " dps ", City: "Denpasar"})
	require.NoError(t, err)
	assert.Equal(t, "DPS", loc.Code)
	assert.Equal(t, model.DefaultCountry, loc.Country)

	_, err = svc.Create(v, &service.LocationRequest{Name: "Other", Code: "DPS", City: "Denpasar"})
	fields, ok := apperror.FieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, "The code has already been taken.", fields["code"])

	_, err = svc.Create(v, &service.LocationRequest{Name: "Too long", Code: "ABCDEFGHIJK", City: "X"})
	fields, ok = apperror.FieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fields, "code")

	testutil.User(t, db, "dps@example.com", model.RoleITStaff, &loc.ID)
	err = svc.Delete(loc.ID)
	fields, ok = apperror.FieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fields["location"], "1 user(s)")

	_, err = svc.Get(uuid.New())
	assert.True(t, apperror.IsNotFound(err))
}
