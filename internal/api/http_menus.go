package api

import (
	"context"
	"time"

	"adminbase/internal/entity"

	"github.com/gin-gonic/gin"
)

// AllMenus 得到所有菜单
func (h *HTTPHandler) AllMenus(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	menus, err := h.accessService.AllMenus(ctx)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, menus)
}

// GetMenuPerms 查询单个菜单权限
func (h *HTTPHandler) GetMenuPerms(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		FailWith(c, 400, "invalid menu id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	perms, err := h.accessService.MenuPerms(ctx, id)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, perms)
}

// CreateMenu 创建菜单及其权限条目
func (h *HTTPHandler) CreateMenu(c *gin.Context) {
	var req entity.CreateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailWith(c, 400, "invalid menu payload")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	menu, err := h.accessService.CreateMenu(ctx, &req)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, menu)
}

// UpdateMenu 更新菜单
func (h *HTTPHandler) UpdateMenu(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		FailWith(c, 400, "invalid menu id")
		return
	}

	var req entity.UpdateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailWith(c, 400, "invalid menu payload")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.accessService.UpdateMenu(ctx, id, &req); err != nil {
		Fail(c, err)
		return
	}
	OK(c, nil)
}

// UpdateMenuPerms 更新菜单权限（整组替换）
func (h *HTTPHandler) UpdateMenuPerms(c *gin.Context) {
	var req entity.UpdateMenuPermsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailWith(c, 400, "invalid menu perm payload")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.accessService.UpdateMenuPerms(ctx, req.MenuID, req.MenuPermList); err != nil {
		Fail(c, err)
		return
	}
	OK(c, nil)
}

// DeleteMenu 删除菜单
func (h *HTTPHandler) DeleteMenu(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		FailWith(c, 400, "invalid menu id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.accessService.DeleteMenu(ctx, id); err != nil {
		Fail(c, err)
		return
	}
	OK(c, nil)
}
