package service

import (
	"errors"
	"time"

	"it-inventory/internal/model"
	"it-inventory/internal/repository"
	"it-inventory/internal/scope"

	"gorm.io/gorm"
)

const (
	recentMovementLimit = 5
	categoryStatsLimit  = 10
	monthlyWindow       = 6 // months
)

type DashboardStats struct {
	TotalAssets       int64 `json:"total_assets"`
	AvailableAssets   int64 `json:"available_assets"`
	InUseAssets       int64 `json:"in_use_assets"`
	MaintenanceAssets int64 `json:"maintenance_assets"`
	DisposedAssets    int64 `json:"disposed_assets"`
}

type Dashboard struct {
	Stats           DashboardStats               `json:"stats"`
	RecentMovements []model.AssetMovement        `json:"recent_movements"`
	MonthlyStats    []repository.MonthlyMovement `json:"monthly_stats"`
	CategoryStats   []repository.CategoryCount   `json:"category_stats"`
	UserLocation    *model.Location              `json:"user_location"`
	IsAdmin         bool                         `json:"is_admin"`
}

type DashboardService interface {
	Get(v scope.Viewer) (*Dashboard, error)
}

type dashboardService struct {
	dashRepo     repository.DashboardRepository
	locationRepo repository.LocationRepository
	now          func() time.Time
	loc          *time.Location
}

// NewDashboardService computes the trailing window from now and groups months
// as the calendar reads in loc. Nil arguments mean time.Now and UTC.
func NewDashboardService(dashRepo repository.DashboardRepository, locationRepo repository.LocationRepository, now func() time.Time, loc *time.Location) DashboardService {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &dashboardService{dashRepo: dashRepo, locationRepo: locationRepo, now: now, loc: loc}
}

func (s *dashboardService) Get(v scope.Viewer) (*Dashboard, error) {
	d := &Dashboard{IsAdmin: v.IsAdmin()}

	counts := []struct {
		status *model.AssetStatus
		dst    *int64
	}{
		{nil, &d.Stats.TotalAssets},
		{statusPtr(model.StatusAvailable), &d.Stats.AvailableAssets},
		{statusPtr(model.StatusInUse), &d.Stats.InUseAssets},
		{statusPtr(model.StatusMaintenance), &d.Stats.MaintenanceAssets},
		{statusPtr(model.StatusDisposed), &d.Stats.DisposedAssets},
	}
	for _, c := range counts {
		n, err := s.dashRepo.CountAssets(v, c.status)
		if err != nil {
			return nil, err
		}
		*c.dst = n
	}

	var err error
	if d.RecentMovements, err = s.dashRepo.RecentMovements(v, recentMovementLimit); err != nil {
		return nil, err
	}
	since := s.now().In(s.loc).AddDate(0, -monthlyWindow, 0)
	if d.MonthlyStats, err = s.dashRepo.MonthlyMovements(v, since, s.loc); err != nil {
		return nil, err
	}
	if d.CategoryStats, err = s.dashRepo.CategoryCounts(v, categoryStatsLimit); err != nil {
		return nil, err
	}

	if v.LocationID != nil {
		// a dangling location leaves user_location empty
		loc, err := s.locationRepo.FindByID(*v.LocationID)
		switch {
		case err == nil:
			d.UserLocation = loc
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, err
		}
	}
	return d, nil
}

func statusPtr(s model.AssetStatus) *model.AssetStatus { return &s }
