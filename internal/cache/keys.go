package cache

import "fmt"

// 键格式：namespace:entity:id，身份与访问图两侧共用同一套推导。
const namespace = "admin"

const (
	entityUserInfo = "user-info"
	entityUserRole = "user-role"
)

func key(entity string, id uint) string {
	return fmt.Sprintf("%s:%s:%d", namespace, entity, id)
}

// UserInfoKey returns the hash key holding a user's cached record.
func UserInfoKey(id uint) string {
	return key(entityUserInfo, id)
}

// UserRoleKey returns the key holding a user's cached role-id list.
func UserRoleKey(id uint) string {
	return key(entityUserRole, id)
}
