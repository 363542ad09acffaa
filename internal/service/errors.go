package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound 查找失败（未知分组/用户/帖子），上层映射为 404
	ErrNotFound = errors.New("not found")
	// ErrNotAuthor 非作者改帖，上层重定向回帖子页
	ErrNotAuthor = errors.New("not the author")
	// ErrInvalidCredentials 登录失败
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError 表单级错误，按字段携带提示文案
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields)
}

func newValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}
