package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"adminbase/internal/auth"
	"adminbase/internal/cache"
	"adminbase/internal/entity"
	"adminbase/internal/errs"
	"adminbase/internal/model"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// UserService 用户生命周期与凭证校验。缓存与数据库客户端都作为
// 显式依赖注入，便于测试时替换。
type UserService struct {
	repo   model.Repository
	cache  *cache.Coordinator
	tokens *auth.TokenService
}

// NewUserService 创建用户服务实例
func NewUserService(repo model.Repository, coordinator *cache.Coordinator, tokens *auth.TokenService) *UserService {
	return &UserService{
		repo:   repo,
		cache:  coordinator,
		tokens: tokens,
	}
}

// Register 注册新账号并返回脱敏后的用户投影
func (s *UserService) Register(ctx context.Context, req *entity.RegisterRequest) (*entity.UserPublic, error) {
	if err := entity.ValidateRegister(req); err != nil {
		return nil, err
	}

	account := strings.TrimSpace(req.Account)
	if existing, err := s.repo.GetUserByAccount(ctx, account); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: account already registered", errs.ErrConflict)
	}

	salt, err := auth.NewSalt()
	if err != nil {
		logrus.WithError(err).Error("failed to derive salt")
		return nil, fmt.Errorf("%w: failed to register user", errs.ErrInternal)
	}
	hash, err := auth.HashPassword(req.Password, salt)
	if err != nil {
		logrus.WithError(err).Error("failed to hash password")
		return nil, fmt.Errorf("%w: failed to register user", errs.ErrInternal)
	}

	user := &entity.DbUser{
		Account:      account,
		PasswordHash: hash,
		Salt:         salt,
		Phone:        strings.TrimSpace(req.Phone),
		Email:        strings.TrimSpace(req.Email),
		Avatar:       strings.TrimSpace(req.Avatar),
		Status:       entity.UserStatusActive,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: account already registered", errs.ErrConflict)
		}
		logrus.WithError(err).Error("failed to create user")
		return nil, fmt.Errorf("%w: failed to register user", errs.ErrInternal)
	}

	public := entity.PublicUser(user)
	return &public, nil
}

// Login 校验账号密码并签发令牌对。账号不存在与密码错误返回同一种
// 错误，不给调用方留下账号枚举的口子。
func (s *UserService) Login(ctx context.Context, account, password string) (*auth.TokenPair, error) {
	credentialErr := fmt.Errorf("%w: account or password incorrect", errs.ErrNotFound)

	user, err := s.repo.GetUserByAccount(ctx, strings.TrimSpace(account))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithError(err).Warn("login lookup failed")
		}
		return nil, credentialErr
	}
	if err := auth.VerifyPassword(user.PasswordHash, user.Salt, password); err != nil {
		return nil, credentialErr
	}

	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to issue token pair")
		return nil, fmt.Errorf("%w: failed to create session", errs.ErrInternal)
	}
	return pair, nil
}

// GetByID 读穿查询用户：先查缓存 hash，未命中回源数据库并回填；
// 两条路径都只返回公开投影。
func (s *UserService) GetByID(ctx context.Context, id uint) (*entity.UserPublic, error) {
	if cached, ok := s.cache.UserInfo(ctx, id); ok {
		public := entity.PublicUser(cached)
		return &public, nil
	}

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user does not exist", errs.ErrNotFound)
		}
		logrus.WithError(err).WithField("user_id", id).Error("failed to load user")
		return nil, fmt.Errorf("%w: failed to load user", errs.ErrInternal)
	}
	s.cache.PutUserInfo(ctx, user)

	public := entity.PublicUser(user)
	return &public, nil
}

// Update 更新用户资料。改密码时复用已有的盐重新哈希；提交后把
// 本次变更字段直接写进缓存条目（原始补丁写穿）。
func (s *UserService) Update(ctx context.Context, id uint, req *entity.UserUpdateRequest) error {
	if err := entity.ValidateUserUpdate(req); err != nil {
		return err
	}

	existing, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user does not exist", errs.ErrNotFound)
		}
		logrus.WithError(err).WithField("user_id", id).Error("failed to load user for update")
		return fmt.Errorf("%w: failed to update user", errs.ErrInternal)
	}

	updates := make(map[string]interface{})
	if req.Phone != nil {
		updates["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		updates["email"] = strings.TrimSpace(*req.Email)
	}
	if req.Avatar != nil {
		updates["avatar"] = strings.TrimSpace(*req.Avatar)
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password, existing.Salt)
		if err != nil {
			logrus.WithError(err).Error("failed to hash password for update")
			return fmt.Errorf("%w: failed to update user", errs.ErrInternal)
		}
		updates["password_hash"] = hash
	}
	if len(updates) == 0 {
		return nil
	}

	if err := s.repo.UpdateUser(ctx, id, updates); err != nil {
		logrus.WithError(err).WithField("user_id", id).Error("failed to update user")
		return fmt.Errorf("%w: failed to update user", errs.ErrInternal)
	}
	s.cache.PatchUserInfo(ctx, id, updates)
	return nil
}

// List 分页查询用户并投影
func (s *UserService) List(ctx context.Context, query *entity.UserQuery) ([]entity.UserPublic, *entity.Meta, error) {
	users, meta, err := s.repo.ListUsers(ctx, query)
	if err != nil {
		logrus.WithError(err).Error("failed to list users")
		return nil, nil, fmt.Errorf("%w: failed to load users", errs.ErrInternal)
	}
	publics := make([]entity.UserPublic, 0, len(users))
	for idx := range users {
		publics = append(publics, entity.PublicUser(&users[idx]))
	}
	return publics, meta, nil
}

// Delete 删除用户及其角色绑定，并使两类缓存条目失效。
func (s *UserService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user does not exist", errs.ErrNotFound)
		}
		logrus.WithError(err).WithField("user_id", id).Error("failed to delete user")
		return fmt.Errorf("%w: failed to delete user", errs.ErrInternal)
	}
	s.cache.InvalidateUser(ctx, id)
	s.cache.InvalidateUserRoles(ctx, id)
	return nil
}
