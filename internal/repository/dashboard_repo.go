package repository

import (
	"maps"
	"slices"
	"time"

	"it-inventory/internal/model"
	"it-inventory/internal/scope"

	"gorm.io/gorm"
)

// MonthlyMovement is the chart row for one calendar month.
type MonthlyMovement struct {
	Month    string `json:"month"`
	Incoming int64  `json:"incoming"`
	Outgoing int64  `json:"outgoing"`
}

// CategoryCount is a category with the number of assets the viewer can see in it.
type CategoryCount struct {
	model.AssetCategory
	AssetsCount int64 `json:"assets_count"`
}

// DashboardRepository runs the dashboard aggregates. Every method applies the
// viewer's scope on its own; results are not read from a shared snapshot.
type DashboardRepository interface {
	CountAssets(v scope.Viewer, status *model.AssetStatus) (int64, error)
	RecentMovements(v scope.Viewer, limit int) ([]model.AssetMovement, error)
	MonthlyMovements(v scope.Viewer, since time.Time, loc *time.Location) ([]MonthlyMovement, error)
	CategoryCounts(v scope.Viewer, limit int) ([]CategoryCount, error)
}

type dashboardRepo struct {
	db *gorm.DB
}

func NewDashboardRepo(db *gorm.DB) DashboardRepository {
	return &dashboardRepo{db}
}

func (r *dashboardRepo) CountAssets(v scope.Viewer, status *model.AssetStatus) (int64, error) {
	var count int64
	q := r.db.Model(&model.Asset{}).Scopes(scope.Assets(v))
	if status != nil {
		q = q.Where("assets.status = ?", *status)
	}
	err := q.Count(&count).Error
	return count, err
}

func (r *dashboardRepo) RecentMovements(v scope.Viewer, limit int) ([]model.AssetMovement, error) {
	movements := make([]model.AssetMovement, 0, limit)
	err := withDisplayRelations(r.db).
		Scopes(scope.Movements(v)).
		Order("asset_movements.movement_date DESC").
		Order("asset_movements.created_at DESC").
		Limit(limit).
		Find(&movements).Error
	return movements, err
}

// MonthlyMovements sums quantities per calendar month of movement_date as
// seen in loc, for movements at or after since.
func (r *dashboardRepo) MonthlyMovements(v scope.Viewer, since time.Time, loc *time.Location) ([]MonthlyMovement, error) {
	if loc == nil {
		loc = time.UTC
	}
	q := r.db.Model(&model.AssetMovement{}).
		Scopes(scope.Movements(v)).
		Where("asset_movements.movement_date >= ?", since.UTC())
	if r.db.Dialector.Name() == "postgres" {
		return monthlyInDatabase(q, loc)
	}
	return monthlyInMemory(q, loc)
}

func monthlyInDatabase(q *gorm.DB, loc *time.Location) ([]MonthlyMovement, error) {
	results := make([]MonthlyMovement, 0)

	// Months without movements produce no group and are absent
	rows, err := q.Select(`to_char(asset_movements.movement_date AT TIME ZONE ?, 'YYYY-MM') AS month,
			COALESCE(SUM(CASE WHEN asset_movements.type = ? THEN asset_movements.quantity ELSE 0 END), 0) AS incoming,
			COALESCE(SUM(CASE WHEN asset_movements.type = ? THEN asset_movements.quantity ELSE 0 END), 0) AS outgoing`,
		loc.String(), model.MovementIncoming, model.MovementOutgoing).
		Group("month").
		Order("month ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data MonthlyMovement
		if err := rows.Scan(&data.Month, &data.Incoming, &data.Outgoing); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, rows.Err()
}

// monthlyInMemory buckets in Go because SQLite has no time zone database.
func monthlyInMemory(q *gorm.DB, loc *time.Location) ([]MonthlyMovement, error) {
	var rows []struct {
		Type         model.MovementType
		Quantity     int64
		MovementDate time.Time
	}
	err := q.Select("asset_movements.type, asset_movements.quantity, asset_movements.movement_date").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]*MonthlyMovement)
	for _, row := range rows {
		month := row.MovementDate.In(loc).Format("2006-01")
		m, ok := byMonth[month]
		if !ok {
			m = &MonthlyMovement{Month: month}
			byMonth[month] = m
		}
		switch row.Type {
		case model.MovementIncoming:
			m.Incoming += row.Quantity
		case model.MovementOutgoing:
			m.Outgoing += row.Quantity
		}
	}

	results := make([]MonthlyMovement, 0, len(byMonth))
	for _, month := range slices.Sorted(maps.Keys(byMonth)) {
		results = append(results, *byMonth[month])
	}
	return results, nil
}

func (r *dashboardRepo) CategoryCounts(v scope.Viewer, limit int) ([]CategoryCount, error) {
	join := "LEFT JOIN assets ON assets.asset_category_id = asset_categories.id"
	cond, args := scope.AssetCondition(v)
	if cond != "" {
		join += " AND " + cond
	}

	results := make([]CategoryCount, 0, limit)
	err := r.db.Model(&model.AssetCategory{}).
		Select("asset_categories.*, COUNT(assets.id) AS assets_count").
		Joins(join, args...).
		Group("asset_categories.id").
		Order("assets_count DESC").
		Order("asset_categories.name ASC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}
