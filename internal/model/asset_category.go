package model

import (
	"regexp"
	"strings"
)

// AssetCategory groups assets (Laptops, Servers, ...).
type AssetCategory struct {
	BaseModel
	Name        string  `gorm:"type:varchar(255);not null;index" json:"name"`
	Slug        string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Description *string `gorm:"type:text" json:"description"`
	Icon        *string `gorm:"type:varchar(255)" json:"icon"`
	IsActive    bool    `gorm:"not null;index" json:"is_active"`
}

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases name and joins its alphanumeric runs with dashes.
func Slugify(name string) string {
	return strings.Trim(slugInvalid.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

// DefaultCategories mirrors the categories an empty installation starts with.
var DefaultCategories = []AssetCategory{
	{Name: "Laptops", Slug: "laptops", Description: strPtr("Portable computers including business laptops and workstations"), Icon: strPtr("💻"), IsActive: true},
	{Name: "Desktop Computers", Slug: "desktop-computers", Description: strPtr("Desktop PCs and all-in-one computers"), Icon: strPtr("🖥️"), IsActive: true},
	{Name: "Servers", Slug: "servers", Description: strPtr("Server hardware including rack and tower servers"), Icon: strPtr("🖲️"), IsActive: true},
	{Name: "Networking Equipment", Slug: "networking-equipment", Description: strPtr("Routers, switches, access points, and network infrastructure"), Icon: strPtr("🌐"), IsActive: true},
	{Name: "Mobile Devices", Slug: "mobile-devices", Description: strPtr("Smartphones, tablets, and mobile accessories"), Icon: strPtr("📱"), IsActive: true},
	{Name: "Peripherals", Slug: "peripherals", Description: strPtr("Monitors, keyboards, mice, and other input/output devices"), Icon: strPtr("⌨️"), IsActive: true},
	{Name: "Software Licenses", Slug: "software-licenses", Description: strPtr("Operating systems, applications, and software subscriptions"), Icon: strPtr("💿"), IsActive: true},
	{Name: "Audio/Video Equipment", Slug: "audio-video-equipment", Description: strPtr("Cameras, microphones, speakers, and AV equipment"), Icon: strPtr("📹"), IsActive: true},
	{Name: "Storage Devices", Slug: "storage-devices", Description: strPtr("Hard drives, SSDs, USB drives, and storage arrays"), Icon: strPtr("💾"), IsActive: true},
	{Name: "Accessories", Slug: "accessories", Description: strPtr("Cables, adapters, chargers, and other accessories"), Icon: strPtr("🔌"), IsActive: true},
}
