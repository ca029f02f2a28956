package registry

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is() checking.
var (
	ErrDuplicate    = errors.New("capability already registered")
	ErrNotFound     = errors.New("capability not registered")
	ErrTypeMismatch = errors.New("capability registered with a different type")
	ErrSealed       = errors.New("registry is sealed")
)

// RegistrationError reports a failed register or resolve call for a single
// capability. Use errors.Is(err, ErrDuplicate) or errors.Is(err, ErrNotFound)
// to distinguish the cause.
type RegistrationError struct {
	Capability string
	Err        error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("capability %q: %v", e.Capability, e.Err)
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}
