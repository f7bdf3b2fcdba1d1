package physmodel

import (
	"sync"

	"github.com/san-kum/physmodel/internal/config"
	"github.com/san-kum/physmodel/internal/provider"
)

// Library is the provider library tag of the built-in physical models.
const Library = config.DefaultLibrary

// RegisterBuiltins registers every built-in variant into r. It panics if any
// name is already taken.
func RegisterBuiltins(r *provider.Registry) {
	provider.MustRegister[Impl](r, Library, NullName, NewNullImpl)
	provider.MustRegister[Impl](r, Library, LinearAdvName, func(name string) Impl { return NewLinearAdv(name) })
	provider.MustRegister[Impl](r, Library, HeatName, func(name string) Impl { return NewHeat(name) })
}

var (
	defaultRegistry *provider.Registry
	defaultOnce     sync.Once
)

// DefaultRegistry returns the process-wide registry, built and frozen on
// first use.
func DefaultRegistry() *provider.Registry {
	defaultOnce.Do(func() {
		r := provider.NewRegistry()
		RegisterBuiltins(r)
		r.Freeze()
		defaultRegistry = r
	})
	return defaultRegistry
}

// New creates the model registered under name in the built-in library.
func New(r *provider.Registry, name, instance string) (Impl, error) {
	return provider.Create[Impl](r, Library, name, instance)
}

// Names lists the models registered in the built-in library.
func Names(r *provider.Registry) []string {
	return provider.Names[Impl](r, Library)
}
