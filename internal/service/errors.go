package service

import "errors"

// 通用错误
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("current password is incorrect")
	ErrWeakPassword       = errors.New("password does not meet policy")
	ErrJWTSecretMissing   = errors.New("jwt secret is not configured")
	ErrTokenInvalid       = errors.New("invalid token")
)

// 用户相关错误
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameExists = errors.New("username already exists")
	ErrRoleInvalid    = errors.New("role is invalid")
	ErrUserInvalid    = errors.New("user data is invalid")
	ErrActorRequired  = errors.New("authenticated actor is required")
)

// 警员相关错误
var (
	ErrOfficerNotFound    = errors.New("officer not found")
	ErrOfficerInvalid     = errors.New("officer data is invalid")
	ErrOfficerRankInvalid = errors.New("rank is not part of the hierarchy")
	ErrOfficerTopRank     = errors.New("officer already holds the highest rank")
	ErrOfficerRankLocked  = errors.New("rank changes only through promotion")
	ErrOfficerConflict    = errors.New("officer was changed concurrently")
)

// 考核相关错误
var (
	ErrEvaluationNotFound = errors.New("evaluation not found")
	ErrEvaluationInvalid  = errors.New("evaluation data is invalid")
)
