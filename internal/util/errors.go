package util

import "errors"

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrNoResponses        = errors.New("no responses to assess")
	ErrPlanNotFound       = errors.New("study plan not found")
	ErrProfileNotFound    = errors.New("engagement profile not found")
)
