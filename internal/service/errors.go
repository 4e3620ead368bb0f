package service

import (
	"errors"
	"fmt"

	"github.com/waynemwendwa/TMS-sub000/internal/workflow"

	"gorm.io/gorm"
)

// Sentinel errors forming the service-level failure taxonomy. Handlers
// translate them to HTTP statuses at the boundary; services only wrap them
// with context via fmt.Errorf("%w: ...").
var (
	ErrValidation        = errors.New("validation error")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid transition")
)

// fromGuard converts workflow guard failures into the taxonomy
func fromGuard(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, workflow.ErrRoleNotAllowed) {
		return fmt.Errorf("%w: %s", ErrForbidden, err)
	}
	if errors.Is(err, workflow.ErrUnknownStatus) {
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}
	return fmt.Errorf("%w: %s", ErrInvalidTransition, err)
}

// orNotFound maps a missing-record lookup failure onto ErrNotFound
func orNotFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return err
}
