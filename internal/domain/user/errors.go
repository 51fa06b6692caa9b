package user

import "errors"

var (
	ErrInvalidToken            = errors.New("invalid or missing access token")
	ErrUnknownRole             = errors.New("unknown role")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
