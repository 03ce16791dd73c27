package types

import (
	"errors"
	"fmt"
)

// ErrValidation is returned when an override value is not a non-negative
// decimal number. Callers wrap it with the rejected input.
var ErrValidation = errors.New("reading time must be a non-negative number")

// ErrOverrideDisabled is returned when an override is submitted for an
// installation with allow_override switched off.
var ErrOverrideDisabled = errors.New("manual override is disabled")

// ConfigurationError reports that the designated source field does not
// exist on the content. No computation is possible until the field id in the
// field appearance configuration is corrected.
type ConfigurationError struct {
	FieldID string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: there is no field with id %q in this content", e.FieldID)
}

// IsConfigurationError reports whether err is, or wraps, a ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
