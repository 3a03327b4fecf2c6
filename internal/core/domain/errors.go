package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrDuplicateEntry     = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrItemNotFound       = errors.New("item not found")
	ErrForbidden          = errors.New("access forbidden")
	ErrMailUnavailable    = errors.New("mail transport not configured")
)

// ErrPasswordTooLong is a validation failure: bcrypt ignores input past 72 bytes.
var ErrPasswordTooLong = fmt.Errorf("%w: password longer than 72 bytes", ErrValidation)
