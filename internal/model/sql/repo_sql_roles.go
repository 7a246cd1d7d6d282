package sql

import (
	"adminbase/internal/entity"
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// CreateRole persists a new role record.
func (r *GormRepository) CreateRole(ctx context.Context, role *entity.DbRole) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if role == nil {
		return fmt.Errorf("role is nil")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(role).Error
	})
}

// UpdateRole updates an existing role entry.
func (r *GormRepository) UpdateRole(ctx context.Context, id uint, updates map[string]interface{}) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid role id")
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(&entity.DbRole{}).Where("id = ?", id).Updates(updates).Error
	})
}

// DeleteRole removes a role together with its menu and user bindings.
func (r *GormRepository) DeleteRole(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid role id")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", id).Delete(&entity.DbRoleMenu{}).Error; err != nil {
			return err
		}
		if err := tx.Where("role_id = ?", id).Delete(&entity.DbUserRole{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&entity.DbRole{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// GetRoleByID loads a role by ID.
func (r *GormRepository) GetRoleByID(ctx context.Context, id uint) (*entity.DbRole, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid role id")
	}
	var role entity.DbRole
	if err := r.db.WithContext(ctx).First(&role, id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// ListRoles returns paginated roles.
func (r *GormRepository) ListRoles(ctx context.Context, params *entity.RoleQuery) ([]entity.DbRole, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}

	query := r.db.WithContext(ctx).Model(&entity.DbRole{})
	if params != nil {
		if name := strings.TrimSpace(params.Name); name != "" {
			query = query.Where("name LIKE ?", "%"+name+"%")
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	page := 1
	pageSize := 20
	if params != nil {
		if params.Page > 0 {
			page = int(params.Page)
		}
		if params.PageSize > 0 {
			pageSize = int(params.PageSize)
		}
	}

	offset := (page - 1) * pageSize
	if offset < 0 {
		offset = 0
	}

	var roles []entity.DbRole
	if err := query.Order("id DESC").Offset(offset).Limit(pageSize).Find(&roles).Error; err != nil {
		return nil, nil, err
	}

	meta := r.calculatePagination(total, page, pageSize)
	return roles, meta, nil
}

// ReplaceUserRoles 整体替换用户的角色绑定：先删后插，同一事务内完成。
func (r *GormRepository) ReplaceUserRoles(ctx context.Context, userID uint, roleIDs []uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if userID == 0 {
		return fmt.Errorf("invalid user id")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&entity.DbUserRole{}).Error; err != nil {
			return err
		}
		if len(roleIDs) == 0 {
			return nil
		}
		bindings := make([]entity.DbUserRole, 0, len(roleIDs))
		for _, roleID := range roleIDs {
			bindings = append(bindings, entity.DbUserRole{UserID: userID, RoleID: roleID})
		}
		return tx.Create(&bindings).Error
	})
}

// GetUserRoleIDs 查询用户当前绑定的角色 id 有序列表
func (r *GormRepository) GetUserRoleIDs(ctx context.Context, userID uint) ([]uint, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if userID == 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	var roleIDs []uint
	err := r.db.WithContext(ctx).
		Model(&entity.DbUserRole{}).
		Where("user_id = ?", userID).
		Order("id ASC").
		Pluck("role_id", &roleIDs).Error
	if err != nil {
		return nil, err
	}
	return roleIDs, nil
}

// ReplaceRoleMenus 整体替换角色的菜单绑定
func (r *GormRepository) ReplaceRoleMenus(ctx context.Context, roleID uint, menuIDs []uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if roleID == 0 {
		return fmt.Errorf("invalid role id")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", roleID).Delete(&entity.DbRoleMenu{}).Error; err != nil {
			return err
		}
		if len(menuIDs) == 0 {
			return nil
		}
		bindings := make([]entity.DbRoleMenu, 0, len(menuIDs))
		for _, menuID := range menuIDs {
			bindings = append(bindings, entity.DbRoleMenu{RoleID: roleID, MenuID: menuID})
		}
		return tx.Create(&bindings).Error
	})
}

// GetRoleMenuIDs 查询角色绑定的菜单 id 列表
func (r *GormRepository) GetRoleMenuIDs(ctx context.Context, roleID uint) ([]uint, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if roleID == 0 {
		return nil, fmt.Errorf("invalid role id")
	}
	var menuIDs []uint
	err := r.db.WithContext(ctx).
		Model(&entity.DbRoleMenu{}).
		Where("role_id = ?", roleID).
		Order("id ASC").
		Pluck("menu_id", &menuIDs).Error
	if err != nil {
		return nil, err
	}
	return menuIDs, nil
}
