package physmodel

import (
	"github.com/san-kum/physmodel/internal/config"
	"github.com/san-kum/physmodel/internal/logging"
)

const NullName = "Null"

// Null is the model used when no physics is configured. It accepts every
// configuration and every state, and does no numerical work.
type Null struct {
	Base
}

func NewNull(name string) *Null {
	m := &Null{}
	m.Init(name)
	return m
}

// NewNullImpl is the registry factory for Null.
func NewNullImpl(name string) Impl {
	return NewNull(name)
}

// Configure delegates to the base step. Null declares no options, so it
// cannot fail.
func (m *Null) Configure(args config.Args) error {
	return m.Base.Configure(args)
}

func (m *Null) Dimension() int   { return 1 }
func (m *Null) NbEquations() int { return 1 }

func (m *Null) Validate(State) bool { return true }

func (m *Null) ConvectiveName() string { return NullName }
func (m *Null) DiffusiveName() string  { return NullName }
func (m *Null) SourceName() string     { return NullName }

func (m *Null) ComputePhysicalData() {
	logging.Notice(m.Logger()).Str("op", "ComputePhysicalData").Msg("null physical model: ComputePhysicalData called")
}

func (m *Null) SetReferenceValues() {
	logging.Notice(m.Logger()).Str("op", "SetReferenceValues").Msg("null physical model: SetReferenceValues called")
}
