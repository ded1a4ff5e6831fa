package service_test

import (
	"errors"
	"testing"
	"time"

	"it-inventory/internal/event"
	"it-inventory/internal/model"
	"it-inventory/internal/repository"
	"it-inventory/internal/scope"
	"it-inventory/internal/service"
	"it-inventory/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC)

func TestDashboardEndToEnd(t *testing.T) {
	db := testutil.NewDB(t)
	l, _ := testutil.NullLogger()

	jkt := testutil.Location(t, db, "JKT")
	sby := testutil.Location(t, db, "SBY")
	admin := testutil.User(t, db, "admin@example.com", model.RoleAdmin, &jkt.ID)
	staff := testutil.User(t, db, "staff@example.com", model.RoleITStaff, &jkt.ID)
	sbyStaff := testutil.User(t, db, "sby@example.com", model.RoleITStaff, &sby.ID)

	assetRepo := repository.NewAssetRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	categories := service.NewCategoryService(l, categoryRepo)
	assets := service.NewAssetService(l, assetRepo, categoryRepo, event.Nop())
	movements := service.NewMovementService(l, repository.NewMovementRepo(db), assetRepo, event.Nop(), time.UTC)
	dashboard := service.NewDashboardService(repository.NewDashboardRepo(db), repository.NewLocationRepo(db),
		func() time.Time { return fixedNow }, time.UTC)

	adminViewer := scope.NewViewer(admin)
	cat, err := categories.Create(adminViewer, &service.CategoryRequest{Name: "Laptops"})
	require.NoError(t, err)
	assert.Equal(t, "laptops", cat.Slug)

	asset, err := assets.Create(adminViewer, &service.AssetRequest{
		AssetTag:        "AST-000001",
		Name:            "Dell Latitude",
		AssetCategoryID: cat.ID.String(),
		Condition:       "good",
		Status:          "available",
	})
	require.NoError(t, err)

	recorded, err := movements.Record(scope.NewViewer(staff), &service.MovementRequest{
		AssetID:      asset.ID.String(),
		Type:         "incoming",
		Quantity:     intPtr(3),
		MovementDate: fixedNow.Format("2006-01-02"),
	})
	require.NoError(t, err)

	staffDash, err := dashboard.Get(scope.NewViewer(staff))
	require.NoError(t, err)
	assert.EqualValues(t, 1, staffDash.Stats.TotalAssets)
	assert.EqualValues(t, 1, staffDash.Stats.AvailableAssets)
	require.Len(t, staffDash.RecentMovements, 1)
	assert.Equal(t, recorded.ID, staffDash.RecentMovements[0].ID)
	require.Len(t, staffDash.MonthlyStats, 1)
	assert.Equal(t, "2024-06", staffDash.MonthlyStats[0].Month)
	assert.EqualValues(t, 3, staffDash.MonthlyStats[0].Incoming)
	assert.Zero(t, staffDash.MonthlyStats[0].Outgoing)
	require.NotNil(t, staffDash.UserLocation)
	assert.Equal(t, "JKT", staffDash.UserLocation.Code)
	assert.False(t, staffDash.IsAdmin)

	adminDash, err := dashboard.Get(adminViewer)
	require.NoError(t, err)
	assert.Equal(t, staffDash.Stats, adminDash.Stats)
	assert.True(t, adminDash.IsAdmin)

	sbyDash, err := dashboard.Get(scope.NewViewer(sbyStaff))
	require.NoError(t, err)
	assert.Zero(t, sbyDash.Stats.TotalAssets)
	assert.Empty(t, sbyDash.RecentMovements)
	assert.Empty(t, sbyDash.MonthlyStats)
	require.Len(t, sbyDash.CategoryStats, 1)
	assert.Zero(t, sbyDash.CategoryStats[0].AssetsCount)
}

func TestDashboardStatusPartition(t *testing.T) {
	db := testutil.NewDB(t)
	cat := testutil.Category(t, db, "Monitors")
	for i, st := range []model.AssetStatus{
		model.StatusAvailable, model.StatusAvailable, model.StatusInUse, model.StatusMaintenance, model.StatusDisposed,
	} {
		testutil.Asset(t, db, cat.ID, "MON-00"+string(rune('1'+i)), st)
	}

	svc := service.NewDashboardService(repository.NewDashboardRepo(db), repository.NewLocationRepo(db), nil, nil)
	d, err := svc.Get(scope.Viewer{Role: model.RoleAdmin})
	require.NoError(t, err)

	s := d.Stats
	assert.EqualValues(t, 5, s.TotalAssets)
	assert.EqualValues(t, 2, s.AvailableAssets)
	assert.Equal(t, s.TotalAssets, s.AvailableAssets+s.InUseAssets+s.MaintenanceAssets+s.DisposedAssets)
	assert.Nil(t, d.UserLocation)
}

func TestDashboardMonthsFollowOfficeCalendar(t *testing.T) {
	f := newMovementFixture(t)
	l, _ := testutil.NullLogger()
	wib := time.FixedZone("WIB", 7*60*60)
	now := time.Date(2026, 10, 18, 10, 0, 0, 0, wib)

	movements := service.NewMovementService(l, repository.NewMovementRepo(f.db), repository.NewAssetRepo(f.db), event.Nop(), wib)
	dashboard := service.NewDashboardService(repository.NewDashboardRepo(f.db), repository.NewLocationRepo(f.db),
		func() time.Time { return now }, wib)

	record := func(typ string, qty int, date string) {
		t.Helper()
		req := f.request(typ, qty)
		req.MovementDate = date
		_, err := movements.Record(scope.NewViewer(f.staff), req)
		require.NoError(t, err)
	}
	record("incoming", 3, "2026-10-01")
	// 00:30 on the 1st in the office
	record("outgoing", 1, "2026-09-30T17:30:00Z")
	// the window starts 2026-04-18 10:00 office time
	record("incoming", 5, "2026-04-19")
	record("incoming", 7, "2026-04-17")

	d, err := dashboard.Get(scope.NewViewer(f.staff))
	require.NoError(t, err)
	assert.Equal(t, []repository.MonthlyMovement{
		{Month: "2026-04", Incoming: 5},
		{Month: "2026-10", Incoming: 3, Outgoing: 1},
	}, d.MonthlyStats)
}

type failingLocations struct {
	repository.LocationRepository
	err error
}

func (r failingLocations) FindByID(uuid.UUID) (*model.Location, error) {
	return nil, r.err
}

func TestDashboardUserLocationLookup(t *testing.T) {
	db := testutil.NewDB(t)
	jkt := testutil.Location(t, db, "JKT")
	staff := testutil.User(t, db, "staff@example.com", model.RoleITStaff, &jkt.ID)
	v := scope.NewViewer(staff)
	dashRepo := repository.NewDashboardRepo(db)

	broken := errors.New("connection reset")
	svc := service.NewDashboardService(dashRepo, failingLocations{repository.NewLocationRepo(db), broken}, nil, nil)
	_, err := svc.Get(v)
	assert.ErrorIs(t, err, broken)

	svc = service.NewDashboardService(dashRepo, failingLocations{repository.NewLocationRepo(db), gorm.ErrRecordNotFound}, nil, nil)
	d, err := svc.Get(v)
	require.NoError(t, err)
	assert.Nil(t, d.UserLocation)
}
