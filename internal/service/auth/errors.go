package auth

import "errors"

var (
	ErrInvalidToken    = errors.New("invalid token")
	ErrExpToken        = errors.New("expired token")
	ErrEmptySecret     = errors.New("jwt secret is empty")
	ErrInvalidSubject  = errors.New("token subject is empty")
	ErrActionForbidden = errors.New("action forbidden")
)
