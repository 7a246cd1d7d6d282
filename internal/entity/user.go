package entity

import "time"

const (
	UserStatusDisabled = 0
	UserStatusActive   = 1
)

// DbUser represents a persisted user account. PasswordHash and Salt never
// leave the storage layer; responses carry UserPublic instead.
type DbUser struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Account      string    `gorm:"column:account;type:varchar(64);uniqueIndex;not null" json:"account"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	Salt         string    `gorm:"column:salt;type:varchar(64);not null" json:"-"`
	Phone        string    `gorm:"column:phone;type:varchar(20)" json:"phone"`
	Email        string    `gorm:"column:email;type:varchar(255)" json:"email"`
	Avatar       string    `gorm:"column:avatar;type:varchar(255)" json:"avatar"`
	Status       int       `gorm:"column:status;not null;default:1" json:"status"`
}

// TableName overrides default pluralised name.
func (DbUser) TableName() string {
	return "sys_user"
}

// UserPublic 对外返回的用户投影，任何响应路径都不携带密码与盐。
type UserPublic struct {
	ID        uint      `json:"id"`
	Account   string    `json:"account"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	Status    int       `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicUser builds the outward-facing projection of a user record. It is
// applied on every response path, whether the record came from cache or
// from the relational store.
func PublicUser(user *DbUser) UserPublic {
	if user == nil {
		return UserPublic{}
	}
	return UserPublic{
		ID:        user.ID,
		Account:   user.Account,
		Phone:     user.Phone,
		Email:     user.Email,
		Avatar:    user.Avatar,
		Status:    user.Status,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// UserQuery supports listing users with pagination.
type UserQuery struct {
	BaseParams
	Account string `json:"account" form:"account" query:"account"`
	Status  *int   `json:"status" form:"status" query:"status"`
}

type RegisterRequest struct {
	Account         string `json:"account" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	Avatar          string `json:"avatar"`
}

type LoginRequest struct {
	Account  string `json:"account" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type UserUpdateRequest struct {
	Phone           *string `json:"phone,omitempty"`
	Email           *string `json:"email,omitempty"`
	Avatar          *string `json:"avatar,omitempty"`
	Status          *int    `json:"status,omitempty"`
	Password        *string `json:"password,omitempty"`
	ConfirmPassword *string `json:"confirmPassword,omitempty"`
}

type BindUserRolesRequest struct {
	RoleIDs []uint `json:"roleIds" binding:"required"`
}

type UserListResponse struct {
	Users []UserPublic `json:"users"`
	Meta  *Meta        `json:"meta"`
}
