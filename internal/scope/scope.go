// Package scope narrows entity queries to the rows a viewer is allowed to see.
//
// Every query-building function takes the Viewer explicitly. Scopes are pure:
// they only add predicates and must be applied to each query separately.
package scope

import (
	"it-inventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Visibility is the row set a viewer may see.
type Visibility int

const (
	// VisibleNone applies to non-admin viewers without an assigned location.
	VisibleNone Visibility = iota
	// VisibleLocation restricts rows to the viewer's own location.
	VisibleLocation
	// VisibleAll applies to admins.
	VisibleAll
)

// Viewer is the identity a request is evaluated for.
type Viewer struct {
	UserID     uuid.UUID
	Role       model.RoleCode
	LocationID *uuid.UUID
}

// NewViewer builds a Viewer from a stored user.
func NewViewer(u *model.User) Viewer {
	return Viewer{UserID: u.ID, Role: u.RoleCode(), LocationID: u.LocationID}
}

func (v Viewer) IsAdmin() bool { return v.Role.IsAdmin() }

// Visibility resolves the viewer's row set. A non-admin without a location sees nothing.
func (v Viewer) Visibility() Visibility {
	switch {
	case v.IsAdmin():
		return VisibleAll
	case v.LocationID != nil && *v.LocationID != uuid.Nil:
		return VisibleLocation
	default:
		return VisibleNone
	}
}

// CanSeeLocation reports whether rows recorded at id are visible to v. Rows
// not tied to a location are visible to admins only.
func (v Viewer) CanSeeLocation(id *uuid.UUID) bool {
	switch v.Visibility() {
	case VisibleAll:
		return true
	case VisibleLocation:
		return id != nil && *id == *v.LocationID
	default:
		return false
	}
}

const (
	matchNothing     = "1 = 0"
	movementLocation = "asset_movements.location_id = ?"
	assetAtLocation  = "EXISTS (SELECT 1 FROM asset_movements WHERE asset_movements.asset_id = assets.id AND asset_movements.location_id = ?)"
)

// Movements scopes a query over asset_movements.
func Movements(v Viewer) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch v.Visibility() {
		case VisibleAll:
			return db
		case VisibleLocation:
			return db.Where(movementLocation, *v.LocationID)
		default:
			return db.Where(matchNothing)
		}
	}
}

// Assets scopes a query over assets: an asset is visible at a location when at
// least one of its movements was recorded there.
func Assets(v Viewer) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		cond, args := AssetCondition(v)
		if cond == "" {
			return db
		}
		return db.Where(cond, args...)
	}
}

// AssetCondition returns the asset predicate as raw SQL for join conditions.
// An empty condition means no restriction.
func AssetCondition(v Viewer) (string, []interface{}) {
	switch v.Visibility() {
	case VisibleAll:
		return "", nil
	case VisibleLocation:
		return assetAtLocation, []interface{}{*v.LocationID}
	default:
		return matchNothing, nil
	}
}
