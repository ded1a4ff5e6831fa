package model

// Privilege represents a permission that can be assigned to users
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "asset:create"
	Name string `gorm:"type:varchar(100)" json:"name"`                     // e.g., "Create Asset"
}

// Privilege codes checked by the router.
const (
	PrivDashboardView  = "dashboard:view"
	PrivAssetView      = "asset:view"
	PrivAssetCreate    = "asset:create"
	PrivAssetUpdate    = "asset:update"
	PrivAssetDelete    = "asset:delete"
	PrivMovementView   = "movement:view"
	PrivMovementCreate = "movement:create"
	PrivMovementUpdate = "movement:update"
	PrivMovementDelete = "movement:delete"
	PrivCategoryView   = "category:view"
	PrivCategoryManage = "category:manage"
	PrivLocationView   = "location:view"
	PrivLocationManage = "location:manage"
	PrivUserView       = "user:view"
	PrivUserCreate     = "user:create"
	PrivUserUpdate     = "user:update"
	PrivUserDelete     = "user:delete"
	PrivUserPrivilege  = "user:update_privilege"
)

// Default privileges for the system
var DefaultPrivileges = []Privilege{
	{Code: PrivDashboardView, Name: "View Dashboard"},
	// Assets
	{Code: PrivAssetView, Name: "View Asset"},
	{Code: PrivAssetCreate, Name: "Create Asset"},
	{Code: PrivAssetUpdate, Name: "Update Asset"},
	{Code: PrivAssetDelete, Name: "Delete Asset"},
	// Movements
	{Code: PrivMovementView, Name: "View Movement"},
	{Code: PrivMovementCreate, Name: "Record Movement"},
	{Code: PrivMovementUpdate, Name: "Update Movement"},
	{Code: PrivMovementDelete, Name: "Delete Movement"},
	// Master data
	{Code: PrivCategoryView, Name: "View Category"},
	{Code: PrivCategoryManage, Name: "Manage Category"},
	{Code: PrivLocationView, Name: "View Location"},
	{Code: PrivLocationManage, Name: "Manage Location"},
	// User management
	{Code: PrivUserView, Name: "View User"},
	{Code: PrivUserCreate, Name: "Create User"},
	{Code: PrivUserUpdate, Name: "Update User"},
	{Code: PrivUserDelete, Name: "Delete User"},
	{Code: PrivUserPrivilege, Name: "Update User Privileges"},
}

// StaffPrivilegeCodes is the subset granted to RoleITStaff; admins get everything.
var StaffPrivilegeCodes = []string{
	PrivDashboardView,
	PrivAssetView, PrivAssetCreate, PrivAssetUpdate, PrivAssetDelete,
	PrivMovementView, PrivMovementCreate, PrivMovementUpdate, PrivMovementDelete,
	PrivCategoryView, PrivLocationView,
}
