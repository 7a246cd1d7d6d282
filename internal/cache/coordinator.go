package cache

import (
	"context"
	"encoding/json"
	"errors"

	"adminbase/internal/entity"

	"github.com/sirupsen/logrus"
)

// Coordinator 将读穿/写穿收敛为少数几个具名操作，身份与访问图两个
// 管理器都经由它访问缓存镜像。写路径在关系库提交之后执行、尽力而为：
// 失败只记日志，正确性由下一次读穿自愈。
type Coordinator struct {
	store Store
}

// NewCoordinator creates a coordinator over the given cache store.
func NewCoordinator(store Store) *Coordinator {
	return &Coordinator{store: store}
}

// UserInfo 读取缓存中的用户记录；未命中或条目不完整时返回 false。
func (c *Coordinator) UserInfo(ctx context.Context, id uint) (*entity.DbUser, bool) {
	if c == nil || c.store == nil {
		return nil, false
	}
	fields, err := c.store.HashGetAll(ctx, UserInfoKey(id))
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			logrus.WithError(err).WithField("user_id", id).Warn("cache read failed, falling back to store")
		}
		return nil, false
	}
	return fieldsToUser(fields)
}

// PutUserInfo 以完整记录覆写用户缓存（读穿回填与写穿共用）。
func (c *Coordinator) PutUserInfo(ctx context.Context, user *entity.DbUser) {
	if c == nil || c.store == nil || user == nil || user.ID == 0 {
		return
	}
	if err := c.store.HashSetAll(ctx, UserInfoKey(user.ID), userToFields(user)); err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Warn("cache write-through failed")
	}
}

// PatchUserInfo 仅把变更字段写入用户缓存条目，不与现有内容合并。
func (c *Coordinator) PatchUserInfo(ctx context.Context, id uint, fields map[string]interface{}) {
	if c == nil || c.store == nil || id == 0 || len(fields) == 0 {
		return
	}
	if err := c.store.HashSetAll(ctx, UserInfoKey(id), fields); err != nil {
		logrus.WithError(err).WithField("user_id", id).Warn("cache write-through failed")
	}
}

// UserRoleIDs 读取缓存中的角色 id 列表；未命中返回 false。
func (c *Coordinator) UserRoleIDs(ctx context.Context, id uint) ([]uint, bool) {
	if c == nil || c.store == nil {
		return nil, false
	}
	raw, err := c.store.Get(ctx, UserRoleKey(id))
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			logrus.WithError(err).WithField("user_id", id).Warn("cache read failed, falling back to store")
		}
		return nil, false
	}
	var roleIDs []uint
	if err := json.Unmarshal([]byte(raw), &roleIDs); err != nil {
		logrus.WithError(err).WithField("user_id", id).Warn("corrupt cached role list, treating as miss")
		return nil, false
	}
	return roleIDs, true
}

// PutUserRoleIDs 覆写用户的角色 id 列表（保持顺序）。
func (c *Coordinator) PutUserRoleIDs(ctx context.Context, id uint, roleIDs []uint) {
	if c == nil || c.store == nil || id == 0 {
		return
	}
	if roleIDs == nil {
		roleIDs = []uint{}
	}
	encoded, err := json.Marshal(roleIDs)
	if err != nil {
		logrus.WithError(err).WithField("user_id", id).Warn("failed to encode role list for cache")
		return
	}
	if err := c.store.Set(ctx, UserRoleKey(id), string(encoded)); err != nil {
		logrus.WithError(err).WithField("user_id", id).Warn("cache write-through failed")
	}
}

// InvalidateUser 删除用户记录缓存条目
func (c *Coordinator) InvalidateUser(ctx context.Context, id uint) {
	if c == nil || c.store == nil || id == 0 {
		return
	}
	if err := c.store.Delete(ctx, UserInfoKey(id)); err != nil {
		logrus.WithError(err).WithField("user_id", id).Warn("cache invalidation failed")
	}
}

// InvalidateUserRoles 删除用户角色列表缓存条目
func (c *Coordinator) InvalidateUserRoles(ctx context.Context, id uint) {
	if c == nil || c.store == nil || id == 0 {
		return
	}
	if err := c.store.Delete(ctx, UserRoleKey(id)); err != nil {
		logrus.WithError(err).WithField("user_id", id).Warn("cache invalidation failed")
	}
}
