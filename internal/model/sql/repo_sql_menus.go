package sql

import (
	"adminbase/internal/entity"
	"context"
	"fmt"

	"gorm.io/gorm"
)

// CreateMenu inserts the menu row and all permission rows in one
// transaction; a failing permission insert rolls back the menu row.
func (r *GormRepository) CreateMenu(ctx context.Context, menu *entity.DbMenu, perms []entity.DbMenuPerm) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if menu == nil {
		return fmt.Errorf("menu is nil")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(menu).Error; err != nil {
			return err
		}
		if len(perms) == 0 {
			return nil
		}
		for i := range perms {
			perms[i].MenuID = menu.ID
		}
		return tx.Create(&perms).Error
	})
}

// UpdateMenu updates the menu row only.
func (r *GormRepository) UpdateMenu(ctx context.Context, id uint, updates map[string]interface{}) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid menu id")
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(&entity.DbMenu{}).Where("id = ?", id).Updates(updates).Error
	})
}

// DeleteMenu 级联删除菜单及其权限条目、角色-菜单绑定，同一事务内完成。
func (r *GormRepository) DeleteMenu(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid menu id")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_id = ?", id).Delete(&entity.DbMenuPerm{}).Error; err != nil {
			return err
		}
		if err := tx.Where("menu_id = ?", id).Delete(&entity.DbRoleMenu{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&entity.DbMenu{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// GetMenuByID loads a menu by ID.
func (r *GormRepository) GetMenuByID(ctx context.Context, id uint) (*entity.DbMenu, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid menu id")
	}
	var menu entity.DbMenu
	if err := r.db.WithContext(ctx).First(&menu, id).Error; err != nil {
		return nil, err
	}
	return &menu, nil
}

// ListMenus 返回全部菜单，同一父节点下按 order_num 升序。
func (r *GormRepository) ListMenus(ctx context.Context) ([]entity.DbMenu, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var menus []entity.DbMenu
	err := r.db.WithContext(ctx).
		Order("parent_id ASC").
		Order("order_num ASC").
		Find(&menus).Error
	if err != nil {
		return nil, err
	}
	return menus, nil
}

// ReplaceMenuPerms 先删后插整组权限，归约后不残留旧条目。
func (r *GormRepository) ReplaceMenuPerms(ctx context.Context, menuID uint, perms []entity.DbMenuPerm) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if menuID == 0 {
		return fmt.Errorf("invalid menu id")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_id = ?", menuID).Delete(&entity.DbMenuPerm{}).Error; err != nil {
			return err
		}
		if len(perms) == 0 {
			return nil
		}
		for i := range perms {
			perms[i].MenuID = menuID
		}
		return tx.Create(&perms).Error
	})
}

// GetMenuPerms 查询单个菜单的权限条目
func (r *GormRepository) GetMenuPerms(ctx context.Context, menuID uint) ([]entity.DbMenuPerm, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if menuID == 0 {
		return nil, fmt.Errorf("invalid menu id")
	}
	var perms []entity.DbMenuPerm
	err := r.db.WithContext(ctx).
		Where("menu_id = ?", menuID).
		Order("id ASC").
		Find(&perms).Error
	if err != nil {
		return nil, err
	}
	return perms, nil
}

// GetPermsByRoleIDs 查询一组角色经角色-菜单绑定继承到的全部权限条目
func (r *GormRepository) GetPermsByRoleIDs(ctx context.Context, roleIDs []uint) ([]entity.DbMenuPerm, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if len(roleIDs) == 0 {
		return nil, nil
	}
	var perms []entity.DbMenuPerm
	err := r.db.WithContext(ctx).
		Model(&entity.DbMenuPerm{}).
		Joins("JOIN sys_role_menu ON sys_role_menu.menu_id = sys_menu_perm.menu_id").
		Where("sys_role_menu.role_id IN ?", roleIDs).
		Distinct("sys_menu_perm.id", "sys_menu_perm.menu_id", "sys_menu_perm.api_url", "sys_menu_perm.api_method").
		Find(&perms).Error
	if err != nil {
		return nil, err
	}
	return perms, nil
}
