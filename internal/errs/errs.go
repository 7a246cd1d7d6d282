package errs

import "errors"

// 领域错误分类，服务层以错误值返回，由 API 层统一映射为响应码。
var (
	ErrConflict     = errors.New("resource already exists")
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal failure")
)
