package physmodel

import (
	"github.com/rs/zerolog"

	"github.com/san-kum/physmodel/internal/config"
)

// Impl is the capability set of a physics plugin.
type Impl interface {
	// Name is the instance name given at construction.
	Name() string
	// Configure consumes configuration. Only the first successful call has
	// an effect; it must happen before the model is used.
	Configure(args config.Args) error
	// Dimension is the number of space dimensions, fixed after Configure.
	Dimension() int
	// NbEquations is the number of scalar unknowns per point, fixed after Configure.
	NbEquations() int
	// Validate reports whether s is physically admissible. It never panics;
	// false asks the caller to reject or clip the state.
	Validate(s State) bool
	ConvectiveName() string
	DiffusiveName() string
	SourceName() string
	// ComputePhysicalData refreshes the derived-data cache.
	ComputePhysicalData()
	// SetReferenceValues establishes the non-dimensionalization scales.
	SetReferenceValues()
}

// Loggable is implemented by models that accept an injected logger.
type Loggable interface {
	SetLogger(l zerolog.Logger)
}

// Describer is implemented by models exposing their configuration options.
type Describer interface {
	Options() []config.Option
}
