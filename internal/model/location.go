package model

// DefaultCountry is applied when a location is created without a country.
const DefaultCountry = "Indonesia"

// Location is an office site. Users and movements reference it; it is never cascaded on delete.
type Location struct {
	BaseModel
	Name     string  `gorm:"type:varchar(255);not null;index" json:"name"`
	Code     string  `gorm:"type:varchar(10);uniqueIndex;not null" json:"code"`
	Address  *string `gorm:"type:varchar(255)" json:"address"`
	City     string  `gorm:"type:varchar(100);not null;index:idx_locations_active_city,priority:2" json:"city"`
	Country  string  `gorm:"type:varchar(100);not null;default:Indonesia" json:"country"`
	IsActive bool    `gorm:"not null;index:idx_locations_active_city,priority:1" json:"is_active"`
}

// Default office locations
var DefaultLocations = []Location{
	{Name: "Head Office Jakarta", Code: "JKT", Address: strPtr("Jl. Sudirman No. 123"), City: "Jakarta", Country: DefaultCountry, IsActive: true},
	{Name: "Branch Office Surabaya", Code: "SBY", Address: strPtr("Jl. Basuki Rachmat No. 456"), City: "Surabaya", Country: DefaultCountry, IsActive: true},
	{Name: "Branch Office Bandung", Code: "BDG", Address: strPtr("Jl. Asia Afrika No. 789"), City: "Bandung", Country: DefaultCountry, IsActive: true},
	{Name: "Branch Office Medan", Code: "MDN", Address: strPtr("Jl. Gatot Subroto No. 321"), City: "Medan", Country: DefaultCountry, IsActive: true},
}

func strPtr(s string) *string { return &s }
