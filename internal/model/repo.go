package model

import (
	"adminbase/internal/entity"
	"context"
)

// Repository 定义数据库操作接口
type Repository interface {
	// 用户管理
	CreateUser(ctx context.Context, user *entity.DbUser) error
	UpdateUser(ctx context.Context, id uint, updates map[string]interface{}) error
	GetUserByAccount(ctx context.Context, account string) (*entity.DbUser, error)
	GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error)
	ListUsers(ctx context.Context, params *entity.UserQuery) ([]entity.DbUser, *entity.Meta, error)
	DeleteUser(ctx context.Context, id uint) error

	// 角色与绑定
	CreateRole(ctx context.Context, role *entity.DbRole) error
	UpdateRole(ctx context.Context, id uint, updates map[string]interface{}) error
	DeleteRole(ctx context.Context, id uint) error
	GetRoleByID(ctx context.Context, id uint) (*entity.DbRole, error)
	ListRoles(ctx context.Context, params *entity.RoleQuery) ([]entity.DbRole, *entity.Meta, error)
	ReplaceUserRoles(ctx context.Context, userID uint, roleIDs []uint) error
	GetUserRoleIDs(ctx context.Context, userID uint) ([]uint, error)
	ReplaceRoleMenus(ctx context.Context, roleID uint, menuIDs []uint) error
	GetRoleMenuIDs(ctx context.Context, roleID uint) ([]uint, error)

	// 菜单与权限
	CreateMenu(ctx context.Context, menu *entity.DbMenu, perms []entity.DbMenuPerm) error
	UpdateMenu(ctx context.Context, id uint, updates map[string]interface{}) error
	DeleteMenu(ctx context.Context, id uint) error
	GetMenuByID(ctx context.Context, id uint) (*entity.DbMenu, error)
	ListMenus(ctx context.Context) ([]entity.DbMenu, error)
	ReplaceMenuPerms(ctx context.Context, menuID uint, perms []entity.DbMenuPerm) error
	GetMenuPerms(ctx context.Context, menuID uint) ([]entity.DbMenuPerm, error)
	GetPermsByRoleIDs(ctx context.Context, roleIDs []uint) ([]entity.DbMenuPerm, error)
}
