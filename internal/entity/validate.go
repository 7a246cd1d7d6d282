package entity

import (
	"fmt"
	"regexp"
	"strings"

	"adminbase/internal/errs"
)

var (
	phonePattern = regexp.MustCompile(`^1[3-9]\d{9}$`)
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ValidateRegister 注册入参校验
func ValidateRegister(req *RegisterRequest) error {
	if req == nil {
		return fmt.Errorf("%w: empty payload", errs.ErrInvalidInput)
	}
	account := strings.TrimSpace(req.Account)
	if len(account) < 6 || len(account) > 20 {
		return fmt.Errorf("%w: account must be 6-20 characters", errs.ErrInvalidInput)
	}
	if strings.TrimSpace(req.Password) == "" {
		return fmt.Errorf("%w: password is required", errs.ErrInvalidInput)
	}
	if req.Password != req.ConfirmPassword {
		return fmt.Errorf("%w: password confirmation does not match", errs.ErrInvalidInput)
	}
	if phone := strings.TrimSpace(req.Phone); phone != "" && !phonePattern.MatchString(phone) {
		return fmt.Errorf("%w: invalid phone number", errs.ErrInvalidInput)
	}
	if email := strings.TrimSpace(req.Email); email != "" && !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: invalid email", errs.ErrInvalidInput)
	}
	return nil
}

// ValidateUserUpdate 用户更新入参校验
func ValidateUserUpdate(req *UserUpdateRequest) error {
	if req == nil {
		return fmt.Errorf("%w: empty payload", errs.ErrInvalidInput)
	}
	if req.Password != nil {
		if strings.TrimSpace(*req.Password) == "" {
			return fmt.Errorf("%w: password must not be empty", errs.ErrInvalidInput)
		}
		if req.ConfirmPassword == nil || *req.Password != *req.ConfirmPassword {
			return fmt.Errorf("%w: password confirmation does not match", errs.ErrInvalidInput)
		}
	}
	if req.Phone != nil && *req.Phone != "" && !phonePattern.MatchString(*req.Phone) {
		return fmt.Errorf("%w: invalid phone number", errs.ErrInvalidInput)
	}
	if req.Email != nil && *req.Email != "" && !emailPattern.MatchString(*req.Email) {
		return fmt.Errorf("%w: invalid email", errs.ErrInvalidInput)
	}
	if req.Status != nil && *req.Status != UserStatusActive && *req.Status != UserStatusDisabled {
		return fmt.Errorf("%w: invalid status", errs.ErrInvalidInput)
	}
	return nil
}

// ValidateCreateMenu 创建菜单入参校验
func ValidateCreateMenu(req *CreateMenuRequest) error {
	if req == nil {
		return fmt.Errorf("%w: empty payload", errs.ErrInvalidInput)
	}
	name := strings.TrimSpace(req.Name)
	if len(name) < 2 || len(name) > 20 {
		return fmt.Errorf("%w: name must be 2-20 characters", errs.ErrInvalidInput)
	}
	if req.Type != MenuTypeDirectory && req.Type != MenuTypeTab && req.Type != MenuTypeButton {
		return fmt.Errorf("%w: type must be 1/2/3", errs.ErrInvalidInput)
	}
	if req.OrderNum < 0 {
		return fmt.Errorf("%w: orderNum must not be negative", errs.ErrInvalidInput)
	}
	return ValidateMenuPerms(req.MenuPermList)
}

// ValidateUpdateMenu 更新菜单入参校验
func ValidateUpdateMenu(req *UpdateMenuRequest) error {
	if req == nil {
		return fmt.Errorf("%w: empty payload", errs.ErrInvalidInput)
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if len(name) < 2 || len(name) > 20 {
			return fmt.Errorf("%w: name must be 2-20 characters", errs.ErrInvalidInput)
		}
	}
	if req.Type != nil && *req.Type != MenuTypeDirectory && *req.Type != MenuTypeTab && *req.Type != MenuTypeButton {
		return fmt.Errorf("%w: type must be 1/2/3", errs.ErrInvalidInput)
	}
	if req.OrderNum != nil && *req.OrderNum < 0 {
		return fmt.Errorf("%w: orderNum must not be negative", errs.ErrInvalidInput)
	}
	return nil
}

// ValidateMenuPerms 菜单权限条目校验
func ValidateMenuPerms(perms []MenuPermInput) error {
	for _, perm := range perms {
		if strings.TrimSpace(perm.APIURL) == "" {
			return fmt.Errorf("%w: apiUrl is required", errs.ErrInvalidInput)
		}
		if strings.TrimSpace(perm.APIMethod) == "" {
			return fmt.Errorf("%w: apiMethod is required", errs.ErrInvalidInput)
		}
	}
	return nil
}

// ValidateCreateRole 创建角色入参校验
func ValidateCreateRole(req *CreateRoleRequest) error {
	if req == nil {
		return fmt.Errorf("%w: empty payload", errs.ErrInvalidInput)
	}
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", errs.ErrInvalidInput)
	}
	return nil
}
