package service_test

import (
	"testing"

	"it-inventory/internal/apperror"
	"it-inventory/internal/model"
	"it-inventory/internal/repository"
	"it-inventory/internal/seed"
	"it-inventory/internal/service"
	"it-inventory/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type userFixture struct {
	db    *gorm.DB
	svc   service.UserService
	admin *model.Role
	staff *model.Role
	jkt   *model.Location
}

func newUserFixture(t *testing.T) *userFixture {
	db := testutil.NewDB(t)
	l, _ := testutil.NullLogger()
	require.NoError(t, seed.Run(l, db))

	roleRepo := repository.NewRoleRepo(db)
	locationRepo := repository.NewLocationRepo(db)
	f := &userFixture{db: db}
	f.svc = service.NewUserService(l, repository.NewUserRepo(db), repository.NewPrivilegeRepo(db), roleRepo, locationRepo)

	var err error
	f.admin, err = roleRepo.FindByCode(model.RoleAdmin)
	require.NoError(t, err)
	f.staff, err = roleRepo.FindByCode(model.RoleITStaff)
	require.NoError(t, err)
	f.jkt, err = locationRepo.FindByCode("JKT")
	require.NoError(t, err)
	return f
}

func TestCreateUserInheritsRolePrivileges(t *testing.T) {
	f := newUserFixture(t)
	loc := f.jkt.ID.String()

	u, err := f.svc.CreateUser(&service.CreateUserRequest{
		Email:      "new.staff@example.com",
		Password:   "secret123",
		FullName:   "New Staff",
		RoleID:     f.staff.ID,
		LocationID: &loc,
	}, "tester")
	require.NoError(t, err)

	assert.Equal(t, model.RoleITStaff, u.RoleCode())
	require.NotNil(t, u.LocationID)
	assert.Equal(t, f.jkt.ID, *u.LocationID)
	assert.ElementsMatch(t, model.StaffPrivilegeCodes, u.GetPrivilegeCodes())
	assert.True(t, u.CheckPassword("secret123"))

	_, err = f.svc.CreateUser(&service.CreateUserRequest{
		Email: "new.staff@example.com", Password: "secret123", FullName: "Dup", RoleID: f.staff.ID,
	}, "tester")
	fields, ok := apperror.FieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, "The email has already been taken.", fields["email"])
}

func TestCreateUserReferences(t *testing.T) {
	f := newUserFixture(t)
	missing := uuid.NewString()

	_, err := f.svc.CreateUser(&service.CreateUserRequest{
		Email: "a@example.com", Password: "secret123", FullName: "A", RoleID: 999,
	}, "tester")
	fields, ok := apperror.FieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fields, "role_id")

	_, err = f.svc.CreateUser(&service.CreateUserRequest{
		Email: "a@example.com", Password: "secret123", FullName: "A", RoleID: f.staff.ID, LocationID: &missing,
	}, "tester")
	fields, ok = apperror.FieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fields, "location_id")
}

func TestUpdateUserRoleChangeResetsPrivileges(t *testing.T) {
	f := newUserFixture(t)
	u, err := f.svc.CreateUser(&service.CreateUserRequest{
		Email: "promote@example.com", Password: "secret123", FullName: "Promote Me", RoleID: f.staff.ID,
	}, "tester")
	require.NoError(t, err)

	updated, err := f.svc.UpdateUser(u.ID, &service.UpdateUserRequest{
		Email: "promote@example.com", FullName: "Promoted", RoleID: f.admin.ID,
	}, "tester")
	require.NoError(t, err)

	assert.Equal(t, model.RoleAdmin, updated.RoleCode())
	assert.Len(t, updated.GetPrivilegeCodes(), len(model.DefaultPrivileges))
	assert.Nil(t, updated.LocationID)
}

func TestUpdateUserPrivileges(t *testing.T) {
	f := newUserFixture(t)
	u, err := f.svc.CreateUser(&service.CreateUserRequest{
		Email: "narrow@example.com", Password: "secret123", FullName: "Narrow", RoleID: f.staff.ID,
	}, "tester")
	require.NoError(t, err)

	updated, err := f.svc.UpdateUserPrivileges(u.ID, []string{model.PrivDashboardView, model.PrivAssetView}, "tester")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{model.PrivDashboardView, model.PrivAssetView}, updated.GetPrivilegeCodes())

	_, err = f.svc.UpdateUserPrivileges(u.ID, []string{"asset:fly"}, "tester")
	fields, ok := apperror.FieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fields, "privileges")

	_, err = f.svc.UpdateUserPrivileges(uuid.New(), nil, "tester")
	assert.True(t, apperror.IsNotFound(err))
}

func TestDeleteUser(t *testing.T) {
	f := newUserFixture(t)
	u, err := f.svc.CreateUser(&service.CreateUserRequest{
		Email: "gone@example.com", Password: "secret123", FullName: "Gone", RoleID: f.staff.ID,
	}, "tester")
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteUser(u.ID))
	assert.True(t, apperror.IsNotFound(f.svc.DeleteUser(u.ID)))

	// users with recorded movements stay
	recorder := testutil.User(t, f.db, "recorder@example.com", model.RoleITStaff, &f.jkt.ID)
	cat := testutil.Category(t, f.db, "Docking Stations")
	asset := testutil.Asset(t, f.db, cat.ID, "DCK-001", model.StatusAvailable)
	testutil.Movement(t, f.db, asset, recorder, f.jkt.ID, model.MovementIncoming, 1, fixedNow)

	err = f.svc.DeleteUser(recorder.ID)
	fields, ok := apperror.FieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, "The user has recorded movements and cannot be deleted.", fields["user"])
}
