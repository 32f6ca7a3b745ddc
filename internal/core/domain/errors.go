package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInputMissing              = errors.New("input missing")
	ErrFileNotFound              = errors.New("file not found")
	ErrEntryNotFound             = errors.New("entry not found")
	ErrUserNotFound              = errors.New("user not found")
	ErrInvalidInput              = errors.New("invalid input")
	ErrUnauthorized              = errors.New("unauthorized")
	ErrClassificationUnavailable = errors.New("classification unavailable")
	ErrTemporary                 = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
