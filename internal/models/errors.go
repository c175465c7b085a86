package models

import "errors"

// Domain errors surfaced by the services. Handlers map these onto HTTP
// status codes with errors.Is.
var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrForbidden        = errors.New("forbidden")
	ErrDuplicateAccount = errors.New("username or email already taken")
	ErrAccountNotActive = errors.New("account is not active")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrInvalidUsername  = errors.New("username must be 3-14 characters long and contain only letters and digits")
	ErrInvalidPassword  = errors.New("password must be 9-24 characters long, contain at least one capital letter and one digit, and contain only letters and digits")
)
