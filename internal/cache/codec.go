package cache

import (
	"strconv"
	"time"

	"adminbase/internal/entity"
)

// 用户记录与缓存 hash 字段之间的显式映射。缓存中保存完整记录
// （含密码哈希与盐），对外投影在服务层完成。

func userToFields(user *entity.DbUser) map[string]interface{} {
	return map[string]interface{}{
		"id":            strconv.FormatUint(uint64(user.ID), 10),
		"account":       user.Account,
		"password_hash": user.PasswordHash,
		"salt":          user.Salt,
		"phone":         user.Phone,
		"email":         user.Email,
		"avatar":        user.Avatar,
		"status":        strconv.Itoa(user.Status),
		"created_at":    user.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updated_at":    user.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// fieldsToUser 将缓存 hash 还原为用户记录；缺少 id 字段视为无效条目。
func fieldsToUser(fields map[string]string) (*entity.DbUser, bool) {
	rawID, ok := fields["id"]
	if !ok || rawID == "" {
		return nil, false
	}
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || id == 0 {
		return nil, false
	}

	user := &entity.DbUser{
		ID:           uint(id),
		Account:      fields["account"],
		PasswordHash: fields["password_hash"],
		Salt:         fields["salt"],
		Phone:        fields["phone"],
		Email:        fields["email"],
		Avatar:       fields["avatar"],
	}
	if status, err := strconv.Atoi(fields["status"]); err == nil {
		user.Status = status
	}
	if ts, err := time.Parse(time.RFC3339Nano, fields["created_at"]); err == nil {
		user.CreatedAt = ts
	}
	if ts, err := time.Parse(time.RFC3339Nano, fields["updated_at"]); err == nil {
		user.UpdatedAt = ts
	}
	return user, true
}
