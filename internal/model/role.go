package model

// RoleCode identifies a role. Only RoleAdmin sees every location.
type RoleCode string

const (
	RoleAdmin   RoleCode = "admin"
	RoleITStaff RoleCode = "it_staff"
)

// IsAdmin reports whether the role bypasses location scoping.
func (r RoleCode) IsAdmin() bool { return r == RoleAdmin }

// Role represents user roles in the system
type Role struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Code        RoleCode    `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name        string      `gorm:"type:varchar(100)" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	Privileges  []Privilege `gorm:"many2many:role_privileges;" json:"privileges,omitempty"`
}

// DefaultRoles defines the default roles in the system
var DefaultRoles = []Role{
	{
		Code:        RoleAdmin,
		Name:        "IT Administrator",
		Description: "Manages every location, category and user",
	},
	{
		Code:        RoleITStaff,
		Name:        "IT Staff",
		Description: "Records movements and manages assets for their own location",
	},
}
