package model

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type MovementType string

const (
	MovementIncoming MovementType = "incoming"
	MovementOutgoing MovementType = "outgoing"
)

func ParseMovementType(s string) (MovementType, error) {
	switch MovementType(s) {
	case MovementIncoming, MovementOutgoing:
		return MovementType(s), nil
	}
	return "", fmt.Errorf("invalid movement type %q", s)
}

func (t MovementType) Value() (driver.Value, error) { return valueEnum(t, ParseMovementType) }

func (t *MovementType) Scan(value interface{}) error {
	return scanEnum(value, ParseMovementType, t)
}

// AssetMovement is one entry of the movement ledger. LocationID and UserID always
// carry the recording user's own values.
type AssetMovement struct {
	BaseModel
	AssetID      uuid.UUID    `gorm:"type:uuid;not null;index:idx_movements_asset_type,priority:1" json:"asset_id"`
	Asset        *Asset       `gorm:"foreignKey:AssetID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"asset,omitempty"`
	LocationID   uuid.UUID    `gorm:"type:uuid;not null;index:idx_movements_location_type,priority:1" json:"location_id"`
	Location     *Location    `gorm:"foreignKey:LocationID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"location,omitempty"`
	UserID       uuid.UUID    `gorm:"type:uuid;not null;index" json:"user_id"`
	User         *User        `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"user,omitempty"`
	Type         MovementType `gorm:"type:varchar(10);not null;index;index:idx_movements_asset_type,priority:2;index:idx_movements_location_type,priority:2;index:idx_movements_date_type,priority:2" json:"type"`
	Quantity     int          `gorm:"not null;default:1" json:"quantity"`
	Purpose      *string      `gorm:"type:text" json:"purpose"`
	Recipient    *string      `gorm:"type:varchar(255)" json:"recipient"`
	Notes        *string      `gorm:"type:text" json:"notes"`
	MovementDate time.Time    `gorm:"not null;index;index:idx_movements_date_type,priority:1" json:"movement_date"`
}
