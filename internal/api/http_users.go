package api

import (
	"context"
	"strconv"
	"strings"
	"time"

	"adminbase/internal/entity"

	"github.com/gin-gonic/gin"
)

// ListUsers 分页查询用户列表
func (h *HTTPHandler) ListUsers(c *gin.Context) {
	var query entity.UserQuery
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

	users, meta, err := h.userService.List(ctx, &query)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, entity.UserListResponse{Users: users, Meta: meta})
}

// GetUser 根据 id 查询用户信息
func (h *HTTPHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		FailWith(c, 400, "invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.userService.GetByID(ctx, id)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, user)
}

// UpdateUser 更新用户信息
func (h *HTTPHandler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		FailWith(c, 400, "invalid user id")
		return
	}

	var req entity.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailWith(c, 400, "invalid user payload")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.userService.Update(ctx, id, &req); err != nil {
		Fail(c, err)
		return
	}
	OK(c, nil)
}

// DeleteUser 删除用户
func (h *HTTPHandler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		FailWith(c, 400, "invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.userService.Delete(ctx, id); err != nil {
		Fail(c, err)
		return
	}
	OK(c, nil)
}

// GetUserRoles 查询用户角色 id 集合
func (h *HTTPHandler) GetUserRoles(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		FailWith(c, 400, "invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	roleIDs, err := h.accessService.ResolveUserRoleIDs(ctx, id)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, roleIDs)
}

// BindUserRoles 整体替换用户的角色绑定
func (h *HTTPHandler) BindUserRoles(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		FailWith(c, 400, "invalid user id")
		return
	}

	var req entity.BindUserRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailWith(c, 400, "invalid role binding payload")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.accessService.BindUserRoles(ctx, id, req.RoleIDs); err != nil {
		Fail(c, err)
		return
	}
	OK(c, nil)
}

func pathID(c *gin.Context) (uint, bool) {
	idValue := strings.TrimSpace(c.Param("id"))
	id, err := strconv.ParseUint(idValue, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
