package model

import (
	"database/sql/driver"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// AssetCondition is the physical condition of an asset.
type AssetCondition string

const (
	ConditionExcellent AssetCondition = "excellent"
	ConditionGood      AssetCondition = "good"
	ConditionFair      AssetCondition = "fair"
	ConditionPoor      AssetCondition = "poor"
	ConditionDamaged   AssetCondition = "damaged"
)

// AssetConditions lists every condition in display order.
var AssetConditions = []AssetCondition{ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor, ConditionDamaged}

func ParseAssetCondition(s string) (AssetCondition, error) {
	for _, c := range AssetConditions {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid asset condition %q", s)
}

func (c AssetCondition) Value() (driver.Value, error) { return valueEnum(c, ParseAssetCondition) }

func (c *AssetCondition) Scan(value interface{}) error {
	return scanEnum(value, ParseAssetCondition, c)
}

// AssetStatus is a flat enumeration; any status may change to any other.
type AssetStatus string

const (
	StatusAvailable   AssetStatus = "available"
	StatusInUse       AssetStatus = "in_use"
	StatusMaintenance AssetStatus = "maintenance"
	StatusDisposed    AssetStatus = "disposed"
)

// AssetStatuses partitions every asset: each asset has exactly one of these.
var AssetStatuses = []AssetStatus{StatusAvailable, StatusInUse, StatusMaintenance, StatusDisposed}

func ParseAssetStatus(s string) (AssetStatus, error) {
	for _, st := range AssetStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid asset status %q", s)
}

func (s AssetStatus) Value() (driver.Value, error) { return valueEnum(s, ParseAssetStatus) }

func (s *AssetStatus) Scan(value interface{}) error {
	return scanEnum(value, ParseAssetStatus, s)
}

type Asset struct {
	BaseModel
	AssetTag        string           `gorm:"type:varchar(255);uniqueIndex;not null" json:"asset_tag"`
	Name            string           `gorm:"type:varchar(255);not null;index" json:"name"`
	AssetCategoryID uuid.UUID        `gorm:"type:uuid;not null;index:idx_assets_category_status,priority:1" json:"asset_category_id"`
	Category        *AssetCategory   `gorm:"foreignKey:AssetCategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category,omitempty"`
	Brand           *string          `gorm:"type:varchar(255)" json:"brand"`
	ModelNumber     *string          `gorm:"column:model;type:varchar(255)" json:"model"`
	SerialNumber    *string          `gorm:"type:varchar(255)" json:"serial_number"`
	PurchaseDate    *datatypes.Date  `json:"purchase_date"`
	PurchasePrice   *decimal.Decimal `gorm:"type:decimal(12,2)" json:"purchase_price"`
	Condition       AssetCondition   `gorm:"type:varchar(20);not null;default:good;index" json:"condition"`
	Description     *string          `gorm:"type:text" json:"description"`
	WarrantyUntil   *string          `gorm:"type:varchar(255)" json:"warranty_until"`
	Status          AssetStatus      `gorm:"type:varchar(20);not null;default:available;index;index:idx_assets_category_status,priority:2" json:"status"`
}
