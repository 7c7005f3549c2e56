package client

import "errors"

var (
	ErrUnavailable        = errors.New("character api unavailable")
	ErrRateLimited        = errors.New("character api rate limit exceeded")
	ErrNotFound           = errors.New("character not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
