package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"adminbase/internal/cache"
	"adminbase/internal/entity"
	"adminbase/internal/errs"
	"adminbase/internal/model"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AccessService 角色、菜单、权限实体及绑定关系的管理，以及热路径上的
// 权限解析（用户 → 角色 → 菜单 → 权限）。
type AccessService struct {
	repo  model.Repository
	cache *cache.Coordinator
}

// NewAccessService 创建访问图服务实例
func NewAccessService(repo model.Repository, coordinator *cache.Coordinator) *AccessService {
	return &AccessService{
		repo:  repo,
		cache: coordinator,
	}
}

// CreateMenu 创建菜单及其全部权限条目，全部成功或全部回滚。
func (s *AccessService) CreateMenu(ctx context.Context, req *entity.CreateMenuRequest) (*entity.DbMenu, error) {
	if err := entity.ValidateCreateMenu(req); err != nil {
		return nil, err
	}
	if err := s.checkParent(ctx, req.ParentID, 0); err != nil {
		return nil, err
	}

	menu := &entity.DbMenu{
		ParentID: req.ParentID,
		Name:     strings.TrimSpace(req.Name),
		Code:     strings.TrimSpace(req.Code),
		Type:     req.Type,
		OrderNum: req.OrderNum,
	}
	perms := makePermRows(req.MenuPermList)

	if err := s.repo.CreateMenu(ctx, menu, perms); err != nil {
		logrus.WithError(err).Error("failed to create menu")
		return nil, fmt.Errorf("%w: failed to create menu", errs.ErrInternal)
	}
	return menu, nil
}

// UpdateMenu 局部更新菜单行本身，不触碰权限条目。
func (s *AccessService) UpdateMenu(ctx context.Context, id uint, req *entity.UpdateMenuRequest) error {
	if err := entity.ValidateUpdateMenu(req); err != nil {
		return err
	}
	if _, err := s.getMenu(ctx, id); err != nil {
		return err
	}

	updates := make(map[string]interface{})
	if req.ParentID != nil {
		if err := s.checkParent(ctx, *req.ParentID, id); err != nil {
			return err
		}
		updates["parent_id"] = *req.ParentID
	}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Code != nil {
		updates["code"] = strings.TrimSpace(*req.Code)
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.OrderNum != nil {
		updates["order_num"] = *req.OrderNum
	}
	if len(updates) == 0 {
		return nil
	}

	if err := s.repo.UpdateMenu(ctx, id, updates); err != nil {
		logrus.WithError(err).WithField("menu_id", id).Error("failed to update menu")
		return fmt.Errorf("%w: failed to update menu", errs.ErrInternal)
	}
	return nil
}

// UpdateMenuPerms 原子替换某菜单的整组权限条目
func (s *AccessService) UpdateMenuPerms(ctx context.Context, menuID uint, permInputs []entity.MenuPermInput) error {
	if err := entity.ValidateMenuPerms(permInputs); err != nil {
		return err
	}
	if _, err := s.getMenu(ctx, menuID); err != nil {
		return err
	}

	if err := s.repo.ReplaceMenuPerms(ctx, menuID, makePermRows(permInputs)); err != nil {
		logrus.WithError(err).WithField("menu_id", menuID).Error("failed to replace menu perms")
		return fmt.Errorf("%w: failed to update menu permissions", errs.ErrInternal)
	}
	return nil
}

// DeleteMenu 级联删除菜单、权限条目与角色绑定
func (s *AccessService) DeleteMenu(ctx context.Context, id uint) error {
	if err := s.repo.DeleteMenu(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: menu does not exist", errs.ErrNotFound)
		}
		logrus.WithError(err).WithField("menu_id", id).Error("failed to delete menu")
		return fmt.Errorf("%w: failed to delete menu", errs.ErrInternal)
	}
	return nil
}

// AllMenus 返回全部菜单，同一父节点下按 order_num 升序。type 仅作
// 描述，类型语义的约束由调用方自行负责。
func (s *AccessService) AllMenus(ctx context.Context) ([]entity.DbMenu, error) {
	menus, err := s.repo.ListMenus(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to list menus")
		return nil, fmt.Errorf("%w: failed to load menus", errs.ErrInternal)
	}
	return menus, nil
}

// MenuPerms 查询单个菜单的权限条目
func (s *AccessService) MenuPerms(ctx context.Context, menuID uint) ([]entity.DbMenuPerm, error) {
	if _, err := s.getMenu(ctx, menuID); err != nil {
		return nil, err
	}
	perms, err := s.repo.GetMenuPerms(ctx, menuID)
	if err != nil {
		logrus.WithError(err).WithField("menu_id", menuID).Error("failed to load menu perms")
		return nil, fmt.Errorf("%w: failed to load menu permissions", errs.ErrInternal)
	}
	if perms == nil {
		perms = []entity.DbMenuPerm{}
	}
	return perms, nil
}

// CreateRole 创建角色
func (s *AccessService) CreateRole(ctx context.Context, req *entity.CreateRoleRequest) (*entity.DbRole, error) {
	if err := entity.ValidateCreateRole(req); err != nil {
		return nil, err
	}
	role := &entity.DbRole{
		Name:   strings.TrimSpace(req.Name),
		Remark: strings.TrimSpace(req.Remark),
	}
	if err := s.repo.CreateRole(ctx, role); err != nil {
		logrus.WithError(err).Error("failed to create role")
		return nil, fmt.Errorf("%w: failed to create role", errs.ErrInternal)
	}
	return role, nil
}

// UpdateRole 局部更新角色
func (s *AccessService) UpdateRole(ctx context.Context, id uint, req *entity.UpdateRoleRequest) error {
	if req == nil {
		return fmt.Errorf("%w: empty payload", errs.ErrInvalidInput)
	}
	if _, err := s.getRole(ctx, id); err != nil {
		return err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return fmt.Errorf("%w: name is required", errs.ErrInvalidInput)
		}
		updates["name"] = name
	}
	if req.Remark != nil {
		updates["remark"] = strings.TrimSpace(*req.Remark)
	}
	if len(updates) == 0 {
		return nil
	}

	if err := s.repo.UpdateRole(ctx, id, updates); err != nil {
		logrus.WithError(err).WithField("role_id", id).Error("failed to update role")
		return fmt.Errorf("%w: failed to update role", errs.ErrInternal)
	}
	return nil
}

// DeleteRole 删除角色及其菜单、用户绑定
func (s *AccessService) DeleteRole(ctx context.Context, id uint) error {
	if err := s.repo.DeleteRole(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: role does not exist", errs.ErrNotFound)
		}
		logrus.WithError(err).WithField("role_id", id).Error("failed to delete role")
		return fmt.Errorf("%w: failed to delete role", errs.ErrInternal)
	}
	return nil
}

// Roles 分页查询角色
func (s *AccessService) Roles(ctx context.Context, query *entity.RoleQuery) ([]entity.DbRole, *entity.Meta, error) {
	roles, meta, err := s.repo.ListRoles(ctx, query)
	if err != nil {
		logrus.WithError(err).Error("failed to list roles")
		return nil, nil, fmt.Errorf("%w: failed to load roles", errs.ErrInternal)
	}
	return roles, meta, nil
}

// RoleDetail 查询角色详情及其绑定的菜单 id 集合
func (s *AccessService) RoleDetail(ctx context.Context, id uint) (*entity.RoleDetail, error) {
	role, err := s.getRole(ctx, id)
	if err != nil {
		return nil, err
	}
	menuIDs, err := s.repo.GetRoleMenuIDs(ctx, id)
	if err != nil {
		logrus.WithError(err).WithField("role_id", id).Error("failed to load role menus")
		return nil, fmt.Errorf("%w: failed to load role detail", errs.ErrInternal)
	}
	if menuIDs == nil {
		menuIDs = []uint{}
	}
	return &entity.RoleDetail{Role: *role, MenuIDs: menuIDs}, nil
}

// BindRoleMenus 整体替换角色的菜单绑定
func (s *AccessService) BindRoleMenus(ctx context.Context, roleID uint, menuIDs []uint) error {
	if _, err := s.getRole(ctx, roleID); err != nil {
		return err
	}
	if err := s.repo.ReplaceRoleMenus(ctx, roleID, menuIDs); err != nil {
		logrus.WithError(err).WithField("role_id", roleID).Error("failed to replace role menus")
		return fmt.Errorf("%w: failed to bind role menus", errs.ErrInternal)
	}
	return nil
}

// BindUserRoles 整体替换用户的角色绑定，提交后覆写缓存中的角色列表。
// 缓存写入失败不回滚关系库结果，下一次读穿会自愈。
func (s *AccessService) BindUserRoles(ctx context.Context, userID uint, roleIDs []uint) error {
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user does not exist", errs.ErrNotFound)
		}
		logrus.WithError(err).WithField("user_id", userID).Error("failed to load user for role binding")
		return fmt.Errorf("%w: failed to bind user roles", errs.ErrInternal)
	}
	for _, roleID := range roleIDs {
		if _, err := s.getRole(ctx, roleID); err != nil {
			return err
		}
	}

	if err := s.repo.ReplaceUserRoles(ctx, userID, roleIDs); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("failed to replace user roles")
		return fmt.Errorf("%w: failed to bind user roles", errs.ErrInternal)
	}
	s.cache.PutUserRoleIDs(ctx, userID, roleIDs)
	return nil
}

// ResolveUserRoleIDs 几乎每个鉴权请求都会走到的热路径：缓存命中直接
// 返回，未命中回源数据库并回填。
func (s *AccessService) ResolveUserRoleIDs(ctx context.Context, userID uint) ([]uint, error) {
	if roleIDs, ok := s.cache.UserRoleIDs(ctx, userID); ok {
		return roleIDs, nil
	}

	roleIDs, err := s.repo.GetUserRoleIDs(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("failed to load user roles")
		return nil, fmt.Errorf("%w: failed to resolve user roles", errs.ErrInternal)
	}
	if roleIDs == nil {
		roleIDs = []uint{}
	}
	s.cache.PutUserRoleIDs(ctx, userID, roleIDs)
	return roleIDs, nil
}

// ResolveUserPerms 解析用户经角色-菜单绑定继承到的全部权限条目
func (s *AccessService) ResolveUserPerms(ctx context.Context, userID uint) ([]entity.DbMenuPerm, error) {
	roleIDs, err := s.ResolveUserRoleIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(roleIDs) == 0 {
		return nil, nil
	}
	perms, err := s.repo.GetPermsByRoleIDs(ctx, roleIDs)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("failed to load user perms")
		return nil, fmt.Errorf("%w: failed to resolve user permissions", errs.ErrInternal)
	}
	return perms, nil
}

// HasPerm 判断用户能否调用指定接口
func (s *AccessService) HasPerm(ctx context.Context, userID uint, apiURL, apiMethod string) (bool, error) {
	perms, err := s.ResolveUserPerms(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, perm := range perms {
		if perm.APIURL == apiURL && strings.EqualFold(perm.APIMethod, apiMethod) {
			return true, nil
		}
	}
	return false, nil
}

func (s *AccessService) getMenu(ctx context.Context, id uint) (*entity.DbMenu, error) {
	menu, err := s.repo.GetMenuByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: menu does not exist", errs.ErrNotFound)
		}
		logrus.WithError(err).WithField("menu_id", id).Error("failed to load menu")
		return nil, fmt.Errorf("%w: failed to load menu", errs.ErrInternal)
	}
	return menu, nil
}

func (s *AccessService) getRole(ctx context.Context, id uint) (*entity.DbRole, error) {
	role, err := s.repo.GetRoleByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: role does not exist", errs.ErrNotFound)
		}
		logrus.WithError(err).WithField("role_id", id).Error("failed to load role")
		return nil, fmt.Errorf("%w: failed to load role", errs.ErrInternal)
	}
	return role, nil
}

// checkParent 校验父节点存在且不会把菜单挂到自己或后代下形成环
func (s *AccessService) checkParent(ctx context.Context, parentID, selfID uint) error {
	if parentID == entity.MenuRootParentID {
		return nil
	}
	if parentID == selfID {
		return fmt.Errorf("%w: menu cannot be its own parent", errs.ErrInvalidInput)
	}
	// 向上走父链，链上出现自身即成环
	current := parentID
	for current != entity.MenuRootParentID {
		if selfID != 0 && current == selfID {
			return fmt.Errorf("%w: menu tree must not form a cycle", errs.ErrInvalidInput)
		}
		menu, err := s.repo.GetMenuByID(ctx, current)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: parent menu does not exist", errs.ErrInvalidInput)
			}
			logrus.WithError(err).WithField("menu_id", current).Error("failed to walk menu ancestry")
			return fmt.Errorf("%w: failed to validate menu parent", errs.ErrInternal)
		}
		current = menu.ParentID
	}
	return nil
}

func makePermRows(inputs []entity.MenuPermInput) []entity.DbMenuPerm {
	if len(inputs) == 0 {
		return nil
	}
	perms := make([]entity.DbMenuPerm, 0, len(inputs))
	for _, input := range inputs {
		perms = append(perms, entity.DbMenuPerm{
			APIURL:    strings.TrimSpace(input.APIURL),
			APIMethod: strings.ToUpper(strings.TrimSpace(input.APIMethod)),
		})
	}
	return perms
}
