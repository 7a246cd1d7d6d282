package api

import (
	"time"

	"adminbase/internal/auth"
	"adminbase/internal/cache"
	"adminbase/internal/config"
	"adminbase/internal/model"
	"adminbase/internal/service"
)

// HTTPHandler HTTP 请求处理器
type HTTPHandler struct {
	cfg    config.Config
	repo   model.Repository
	tokens *auth.TokenService

	// 服务层
	userService   *service.UserService
	accessService *service.AccessService
}

// NewHTTPHandler 创建 HTTP 处理器实例
func NewHTTPHandler(cfg config.Config, repo model.Repository, coordinator *cache.Coordinator) (*HTTPHandler, error) {
	accessExpiry := time.Duration(cfg.JWTAccessExpiryMinutes) * time.Minute
	refreshExpiry := time.Duration(cfg.JWTRefreshExpiryMinutes) * time.Minute
	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, accessExpiry, refreshExpiry)
	if err != nil {
		return nil, err
	}

	handler := &HTTPHandler{
		cfg:           cfg,
		repo:          repo,
		tokens:        tokens,
		userService:   service.NewUserService(repo, coordinator, tokens),
		accessService: service.NewAccessService(repo, coordinator),
	}
	return handler, nil
}
