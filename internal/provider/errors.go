package provider

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicateProvider indicates a second registration of a name within one scope.
	ErrDuplicateProvider = errors.New("provider: duplicate provider name")

	// ErrUnknownProvider indicates a lookup of a name that was never registered.
	ErrUnknownProvider = errors.New("provider: unknown provider")

	// ErrRegistryFrozen indicates a registration after the registry was frozen.
	ErrRegistryFrozen = errors.New("provider: registry is frozen")

	// ErrInvalidProvider indicates an empty name or a nil factory.
	ErrInvalidProvider = errors.New("provider: invalid provider")
)

// Error wraps a registry failure with the scope it happened in.
type Error struct {
	Op       string
	Contract string
	Library  string
	Name     string
	// Known lists the names registered in the scope, for unknown-provider reports.
	Known []string
	Err   error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %s/%s %q: %v", e.Op, e.Contract, e.Library, e.Name, e.Err)
	if len(e.Known) > 0 {
		msg += " (available: " + strings.Join(e.Known, ", ") + ")"
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}
