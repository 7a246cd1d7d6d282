package entity

import "time"

// DbRole represents a persisted role.
type DbRole struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"column:name;type:varchar(64);not null" json:"name"`
	Remark    string    `gorm:"column:remark;type:varchar(255)" json:"remark"`
}

func (DbRole) TableName() string {
	return "sys_role"
}

// DbUserRole 用户-角色绑定，整体替换、不做局部修改。
type DbUserRole struct {
	ID     uint `gorm:"primarykey" json:"id"`
	UserID uint `gorm:"column:user_id;index;not null" json:"user_id"`
	RoleID uint `gorm:"column:role_id;index;not null" json:"role_id"`
}

func (DbUserRole) TableName() string {
	return "sys_user_role"
}

// DbRoleMenu 角色-菜单绑定，整体替换、不做局部修改。
type DbRoleMenu struct {
	ID     uint `gorm:"primarykey" json:"id"`
	RoleID uint `gorm:"column:role_id;index;not null" json:"role_id"`
	MenuID uint `gorm:"column:menu_id;index;not null" json:"menu_id"`
}

func (DbRoleMenu) TableName() string {
	return "sys_role_menu"
}

// RoleQuery supports listing roles with pagination.
type RoleQuery struct {
	BaseParams
	Name string `json:"name" form:"name" query:"name"`
}

type CreateRoleRequest struct {
	Name   string `json:"name" binding:"required"`
	Remark string `json:"remark"`
}

type UpdateRoleRequest struct {
	Name   *string `json:"name,omitempty"`
	Remark *string `json:"remark,omitempty"`
}

type BindRoleMenusRequest struct {
	MenuIDs []uint `json:"menuIds" binding:"required"`
}

// RoleDetail 角色详情及其绑定的菜单 id 集合
type RoleDetail struct {
	Role    DbRole `json:"role"`
	MenuIDs []uint `json:"menuIds"`
}

type RoleListResponse struct {
	Roles []DbRole `json:"roles"`
	Meta  *Meta    `json:"meta"`
}
