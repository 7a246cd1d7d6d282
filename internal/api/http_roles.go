package api

import (
	"context"
	"time"

	"adminbase/internal/entity"

	"github.com/gin-gonic/gin"
)

// ListRoles 分页查询角色列表
func (h *HTTPHandler) ListRoles(c *gin.Context) {
	var query entity.RoleQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		FailWith(c, 400, "invalid query parameters")
		return
	}
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.PageSize <= 0 {
		query.PageSize = 20
	}
	if query.PageSize > 100 {
		query.PageSize = 100
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	roles, meta, err := h.accessService.Roles(ctx, &query)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, entity.RoleListResponse{Roles: roles, Meta: meta})
}

// GetRole 查询单个角色详情及权限菜单
func (h *HTTPHandler) GetRole(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		FailWith(c, 400, "invalid role id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	detail, err := h.accessService.RoleDetail(ctx, id)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, detail)
}

// CreateRole 创建角色
func (h *HTTPHandler) CreateRole(c *gin.Context) {
	var req entity.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailWith(c, 400, "invalid role payload")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	role, err := h.accessService.CreateRole(ctx, &req)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, role)
}

// UpdateRole 更新角色
func (h *HTTPHandler) UpdateRole(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		FailWith(c, 400, "invalid role id")
		return
	}

	var req entity.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailWith(c, 400, "invalid role payload")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.accessService.UpdateRole(ctx, id, &req); err != nil {
		Fail(c, err)
		return
	}
	OK(c, nil)
}

// DeleteRole 删除角色
func (h *HTTPHandler) DeleteRole(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		FailWith(c, 400, "invalid role id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.accessService.DeleteRole(ctx, id); err != nil {
		Fail(c, err)
		return
	}
	OK(c, nil)
}

// BindRoleMenus 整体替换角色的菜单绑定
func (h *HTTPHandler) BindRoleMenus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		FailWith(c, 400, "invalid role id")
		return
	}

	var req entity.BindRoleMenusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailWith(c, 400, "invalid menu binding payload")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.accessService.BindRoleMenus(ctx, id, req.MenuIDs); err != nil {
		Fail(c, err)
		return
	}
	OK(c, nil)
}
