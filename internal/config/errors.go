package config

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOption indicates a configuration value that could not be parsed or was out of range.
	ErrInvalidOption = errors.New("config: invalid option value")

	// ErrUnsupportedFormat indicates a case file extension with no decoder.
	ErrUnsupportedFormat = errors.New("config: unsupported case file format")
)

func optionError(owner, name, raw string, cause error) error {
	if owner == "" {
		return fmt.Errorf("%w: %s=%q: %v", ErrInvalidOption, name, raw, cause)
	}
	return fmt.Errorf("%w: %s.%s=%q: %v", ErrInvalidOption, owner, name, raw, cause)
}
