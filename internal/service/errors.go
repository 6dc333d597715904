package service

import (
	"errors"
	"strings"
)

var (
	ErrForbidden      = errors.New("not authorized to access this session")
	ErrNotFound       = errors.New("session not found")
	ErrGuestSession   = errors.New("guests cannot save sessions")
	ErrEmptyUpload    = errors.New("uploaded file is empty")
	ErrUploadTooLarge = errors.New("uploaded file is too large")
)

// IsGuest reports whether userId belongs to an anonymous guest token.
func IsGuest(userId, guestPrefix string) bool {
	return guestPrefix != "" && strings.HasPrefix(userId, guestPrefix)
}
