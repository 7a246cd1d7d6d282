package api

import (
	"context"
	"time"

	"adminbase/internal/entity"

	"github.com/gin-gonic/gin"
)

// Register 注册新账号
func (h *HTTPHandler) Register(c *gin.Context) {
	var req entity.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailWith(c, 400, "invalid registration payload")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.userService.Register(ctx, &req)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, user)
}

// Login 账号密码登录，成功返回令牌对
func (h *HTTPHandler) Login(c *gin.Context) {
	var req entity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailWith(c, 400, "invalid login payload")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	pair, err := h.userService.Login(ctx, req.Account, req.Password)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, pair)
}

// Refresh 凭刷新令牌换取新的访问令牌
func (h *HTTPHandler) Refresh(c *gin.Context) {
	var req entity.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailWith(c, 400, "invalid refresh payload")
		return
	}

	userID, err := h.tokens.Verify(req.RefreshToken)
	if err != nil || userID == 0 {
		AbortUnauthorized(c, "invalid refresh token")
		return
	}

	access, err := h.tokens.Refresh(userID)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, gin.H{"accessToken": access})
}

// Me 返回当前登录用户信息
func (h *HTTPHandler) Me(c *gin.Context) {
	userID := CurrentUserID(c)
	if userID == 0 {
		AbortUnauthorized(c, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, user)
}
