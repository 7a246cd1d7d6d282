package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"adminbase/internal/entity"

	"gorm.io/gorm"
)

// memoryRepo 进程内的 Repository 测试替身，错误语义与 GORM 实现对齐。
type memoryRepo struct {
	mu sync.Mutex

	nextID    uint
	users     map[uint]entity.DbUser
	roles     map[uint]entity.DbRole
	menus     map[uint]entity.DbMenu
	menuPerms map[uint]entity.DbMenuPerm
	userRoles map[uint]entity.DbUserRole
	roleMenus map[uint]entity.DbRoleMenu
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		nextID:    1,
		users:     make(map[uint]entity.DbUser),
		roles:     make(map[uint]entity.DbRole),
		menus:     make(map[uint]entity.DbMenu),
		menuPerms: make(map[uint]entity.DbMenuPerm),
		userRoles: make(map[uint]entity.DbUserRole),
		roleMenus: make(map[uint]entity.DbRoleMenu),
	}
}

func (m *memoryRepo) allocate() uint {
	id := m.nextID
	m.nextID++
	return id
}

func (m *memoryRepo) CreateUser(_ context.Context, user *entity.DbUser) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Account == user.Account {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = m.allocate()
	m.users[user.ID] = *user
	return nil
}

func (m *memoryRepo) UpdateUser(_ context.Context, id uint, updates map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for column, value := range updates {
		switch column {
		case "phone":
			user.Phone = value.(string)
		case "email":
			user.Email = value.(string)
		case "avatar":
			user.Avatar = value.(string)
		case "status":
			user.Status = value.(int)
		case "password_hash":
			user.PasswordHash = value.(string)
		}
	}
	m.users[id] = user
	return nil
}

func (m *memoryRepo) GetUserByAccount(_ context.Context, account string) (*entity.DbUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Account == strings.TrimSpace(account) {
			copied := user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryRepo) GetUserByID(_ context.Context, id uint) (*entity.DbUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := user
	return &copied, nil
}

func (m *memoryRepo) ListUsers(_ context.Context, params *entity.UserQuery) ([]entity.DbUser, *entity.Meta, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var users []entity.DbUser
	for _, user := range m.users {
		if params != nil {
			if params.Status != nil && user.Status != *params.Status {
				continue
			}
			if account := strings.TrimSpace(params.Account); account != "" && !strings.Contains(user.Account, account) {
				continue
			}
		}
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID > users[j].ID })
	meta := &entity.Meta{Total: int64(len(users)), Page: 1, PageSize: 20}
	return users, meta, nil
}

func (m *memoryRepo) DeleteUser(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.users, id)
	for bindingID, binding := range m.userRoles {
		if binding.UserID == id {
			delete(m.userRoles, bindingID)
		}
	}
	return nil
}

func (m *memoryRepo) CreateRole(_ context.Context, role *entity.DbRole) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	role.ID = m.allocate()
	m.roles[role.ID] = *role
	return nil
}

func (m *memoryRepo) UpdateRole(_ context.Context, id uint, updates map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	role, ok := m.roles[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for column, value := range updates {
		switch column {
		case "name":
			role.Name = value.(string)
		case "remark":
			role.Remark = value.(string)
		}
	}
	m.roles[id] = role
	return nil
}

func (m *memoryRepo) DeleteRole(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.roles[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.roles, id)
	for bindingID, binding := range m.roleMenus {
		if binding.RoleID == id {
			delete(m.roleMenus, bindingID)
		}
	}
	for bindingID, binding := range m.userRoles {
		if binding.RoleID == id {
			delete(m.userRoles, bindingID)
		}
	}
	return nil
}

func (m *memoryRepo) GetRoleByID(_ context.Context, id uint) (*entity.DbRole, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	role, ok := m.roles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := role
	return &copied, nil
}

func (m *memoryRepo) ListRoles(_ context.Context, params *entity.RoleQuery) ([]entity.DbRole, *entity.Meta, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var roles []entity.DbRole
	for _, role := range m.roles {
		if params != nil {
			if name := strings.TrimSpace(params.Name); name != "" && !strings.Contains(role.Name, name) {
				continue
			}
		}
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].ID > roles[j].ID })
	meta := &entity.Meta{Total: int64(len(roles)), Page: 1, PageSize: 20}
	return roles, meta, nil
}

func (m *memoryRepo) ReplaceUserRoles(_ context.Context, userID uint, roleIDs []uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for bindingID, binding := range m.userRoles {
		if binding.UserID == userID {
			delete(m.userRoles, bindingID)
		}
	}
	for _, roleID := range roleIDs {
		id := m.allocate()
		m.userRoles[id] = entity.DbUserRole{ID: id, UserID: userID, RoleID: roleID}
	}
	return nil
}

func (m *memoryRepo) GetUserRoleIDs(_ context.Context, userID uint) ([]uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var bindings []entity.DbUserRole
	for _, binding := range m.userRoles {
		if binding.UserID == userID {
			bindings = append(bindings, binding)
		}
	}
	sort.Slice(bindings, func(i, j int) bool { return bindings[i].ID < bindings[j].ID })
	roleIDs := make([]uint, 0, len(bindings))
	for _, binding := range bindings {
		roleIDs = append(roleIDs, binding.RoleID)
	}
	return roleIDs, nil
}

func (m *memoryRepo) ReplaceRoleMenus(_ context.Context, roleID uint, menuIDs []uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for bindingID, binding := range m.roleMenus {
		if binding.RoleID == roleID {
			delete(m.roleMenus, bindingID)
		}
	}
	for _, menuID := range menuIDs {
		id := m.allocate()
		m.roleMenus[id] = entity.DbRoleMenu{ID: id, RoleID: roleID, MenuID: menuID}
	}
	return nil
}

func (m *memoryRepo) GetRoleMenuIDs(_ context.Context, roleID uint) ([]uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var bindings []entity.DbRoleMenu
	for _, binding := range m.roleMenus {
		if binding.RoleID == roleID {
			bindings = append(bindings, binding)
		}
	}
	sort.Slice(bindings, func(i, j int) bool { return bindings[i].ID < bindings[j].ID })
	menuIDs := make([]uint, 0, len(bindings))
	for _, binding := range bindings {
		menuIDs = append(menuIDs, binding.MenuID)
	}
	return menuIDs, nil
}

func (m *memoryRepo) CreateMenu(_ context.Context, menu *entity.DbMenu, perms []entity.DbMenuPerm) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	// 与事务语义对齐：任一权限行非法则整体失败，菜单行不落库
	for _, perm := range perms {
		if strings.TrimSpace(perm.APIURL) == "" || strings.TrimSpace(perm.APIMethod) == "" {
			return gorm.ErrInvalidData
		}
	}
	menu.ID = m.allocate()
	m.menus[menu.ID] = *menu
	for _, perm := range perms {
		perm.ID = m.allocate()
		perm.MenuID = menu.ID
		m.menuPerms[perm.ID] = perm
	}
	return nil
}

func (m *memoryRepo) UpdateMenu(_ context.Context, id uint, updates map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	menu, ok := m.menus[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for column, value := range updates {
		switch column {
		case "parent_id":
			menu.ParentID = value.(uint)
		case "name":
			menu.Name = value.(string)
		case "code":
			menu.Code = value.(string)
		case "type":
			menu.Type = value.(int)
		case "order_num":
			menu.OrderNum = value.(int)
		}
	}
	m.menus[id] = menu
	return nil
}

func (m *memoryRepo) DeleteMenu(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.menus[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.menus, id)
	for permID, perm := range m.menuPerms {
		if perm.MenuID == id {
			delete(m.menuPerms, permID)
		}
	}
	for bindingID, binding := range m.roleMenus {
		if binding.MenuID == id {
			delete(m.roleMenus, bindingID)
		}
	}
	return nil
}

func (m *memoryRepo) GetMenuByID(_ context.Context, id uint) (*entity.DbMenu, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	menu, ok := m.menus[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := menu
	return &copied, nil
}

func (m *memoryRepo) ListMenus(_ context.Context) ([]entity.DbMenu, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	menus := make([]entity.DbMenu, 0, len(m.menus))
	for _, menu := range m.menus {
		menus = append(menus, menu)
	}
	sort.Slice(menus, func(i, j int) bool {
		if menus[i].ParentID != menus[j].ParentID {
			return menus[i].ParentID < menus[j].ParentID
		}
		return menus[i].OrderNum < menus[j].OrderNum
	})
	return menus, nil
}

func (m *memoryRepo) ReplaceMenuPerms(_ context.Context, menuID uint, perms []entity.DbMenuPerm) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for permID, perm := range m.menuPerms {
		if perm.MenuID == menuID {
			delete(m.menuPerms, permID)
		}
	}
	for _, perm := range perms {
		perm.ID = m.allocate()
		perm.MenuID = menuID
		m.menuPerms[perm.ID] = perm
	}
	return nil
}

func (m *memoryRepo) GetMenuPerms(_ context.Context, menuID uint) ([]entity.DbMenuPerm, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var perms []entity.DbMenuPerm
	for _, perm := range m.menuPerms {
		if perm.MenuID == menuID {
			perms = append(perms, perm)
		}
	}
	sort.Slice(perms, func(i, j int) bool { return perms[i].ID < perms[j].ID })
	return perms, nil
}

func (m *memoryRepo) GetPermsByRoleIDs(_ context.Context, roleIDs []uint) ([]entity.DbMenuPerm, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	menuIDs := make(map[uint]bool)
	for _, binding := range m.roleMenus {
		for _, roleID := range roleIDs {
			if binding.RoleID == roleID {
				menuIDs[binding.MenuID] = true
			}
		}
	}
	var perms []entity.DbMenuPerm
	for _, perm := range m.menuPerms {
		if menuIDs[perm.MenuID] {
			perms = append(perms, perm)
		}
	}
	sort.Slice(perms, func(i, j int) bool { return perms[i].ID < perms[j].ID })
	return perms, nil
}
