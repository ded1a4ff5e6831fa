package model

import (
	"slices"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const passwordCost = bcrypt.DefaultCost

// User is an operator account. LocationID is the office a non-admin is
// scoped to; without one a non-admin sees no inventory.
type User struct {
	BaseModel
	Email        string      `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password     string      `gorm:"type:varchar(255);not null" json:"-"`
	FullName     string      `gorm:"type:varchar(255)" json:"full_name"`
	PhoneNumber  string      `gorm:"type:varchar(20)" json:"phone_number"`
	RoleID       *uint       `gorm:"index" json:"role_id"`
	Role         *Role       `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	LocationID   *uuid.UUID  `gorm:"type:uuid;index" json:"location_id"`
	Location     *Location   `gorm:"foreignKey:LocationID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"location,omitempty"`
	IsActive     bool        `gorm:"not null" json:"is_active"`
	Privileges   []Privilege `gorm:"many2many:user_privileges;" json:"privileges,omitempty"`
	TokenVersion string      `gorm:"type:varchar(255);default:''" json:"-"` // rotated on login; older tokens stop validating
}

func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), passwordCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}

// RoleCode returns the user's role code, or "" when no role is assigned.
func (u *User) RoleCode() RoleCode {
	if u.Role == nil {
		return ""
	}
	return u.Role.Code
}

// HasPrivilege looks only at the privileges granted to the user directly.
func (u *User) HasPrivilege(code string) bool {
	return slices.ContainsFunc(u.Privileges, func(p Privilege) bool { return p.Code == code })
}

func (u *User) GetPrivilegeCodes() []string {
	codes := make([]string, len(u.Privileges))
	for i, p := range u.Privileges {
		codes[i] = p.Code
	}
	return codes
}

// UserResponse omits the password hash and token version.
type UserResponse struct {
	ID          uuid.UUID   `json:"id"`
	Email       string      `json:"email"`
	FullName    string      `json:"full_name"`
	PhoneNumber string      `json:"phone_number"`
	RoleID      *uint       `json:"role_id,omitempty"`
	Role        *Role       `json:"role,omitempty"`
	LocationID  *uuid.UUID  `json:"location_id,omitempty"`
	Location    *Location   `json:"location,omitempty"`
	IsActive    bool        `json:"is_active"`
	Privileges  []Privilege `json:"privileges"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		PhoneNumber: u.PhoneNumber,
		RoleID:      u.RoleID,
		Role:        u.Role,
		LocationID:  u.LocationID,
		Location:    u.Location,
		IsActive:    u.IsActive,
		Privileges:  u.privilegeList(),
	}
}

// privilegeList never returns nil so responses always carry an array.
func (u *User) privilegeList() []Privilege {
	if u.Privileges == nil {
		return []Privilege{}
	}
	return u.Privileges
}
