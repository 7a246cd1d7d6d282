package api

import (
	"errors"
	"net/http"

	"adminbase/internal/errs"

	"github.com/gin-gonic/gin"
)

// ResultData 统一的响应包装，成功与失败都走同一结构。
type ResultData struct {
	Success bool        `json:"success"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// OK 返回成功响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, ResultData{
		Success: true,
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

// Fail 把领域错误映射为响应码并返回失败响应
func Fail(c *gin.Context, err error) {
	status := statusForError(err)
	message := "internal error"
	if err != nil {
		message = err.Error()
	}
	c.JSON(status, ResultData{
		Success: false,
		Code:    status,
		Message: message,
	})
}

// FailWith 以指定状态码返回失败响应
func FailWith(c *gin.Context, status int, message string) {
	c.JSON(status, ResultData{
		Success: false,
		Code:    status,
		Message: message,
	})
}

// AbortUnauthorized 终止请求并返回未认证响应
func AbortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ResultData{
		Success: false,
		Code:    http.StatusUnauthorized,
		Message: message,
	})
}

// AbortForbidden 终止请求并返回无权限响应
func AbortForbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, ResultData{
		Success: false,
		Code:    http.StatusForbidden,
		Message: message,
	})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
