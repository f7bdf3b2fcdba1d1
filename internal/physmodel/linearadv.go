package physmodel

import (
	"errors"
	"fmt"

	"github.com/san-kum/physmodel/internal/config"
)

const (
	LinearAdvName     = "LinearAdv"
	LinearAdvDiffName = "LinearAdvDiff"

	// MaxDimension bounds the Dimension option of the built-in variants.
	MaxDimension = 3
)

// LinearAdv is scalar linear advection u_t + c·∇u = ν∇²u. The diffusive term
// is active only when Diffusivity > 0.
type LinearAdv struct {
	Base
	dim         int
	velocity    []float64
	diffusivity float64
}

func NewLinearAdv(name string) *LinearAdv {
	m := &LinearAdv{
		dim:      1,
		velocity: []float64{1},
	}
	m.Init(name)
	m.AddSharedOptions()

	cfg := m.Config()
	cfg.AddInt("Dimension", "number of space dimensions", &m.dim, config.IntRange(1, MaxDimension))
	cfg.AddFloats("Velocity", "advection velocity components", &m.velocity)
	cfg.AddFloat("Diffusivity", "diffusion coefficient, 0 disables diffusion", &m.diffusivity, config.NonNegative)
	cfg.AddCheck(m.checkVelocity)
	cfg.AddCheck(m.requireRefValues(1))
	return m
}

func (m *LinearAdv) checkVelocity() error {
	if len(m.velocity) == 0 {
		return errors.New("Velocity must have at least one component")
	}
	if len(m.velocity) > m.dim {
		return fmt.Errorf("Velocity has %d components for dimension %d", len(m.velocity), m.dim)
	}
	if !State(m.velocity).IsFinite() {
		return errors.New("Velocity must be finite")
	}
	return nil
}

func (m *LinearAdv) Dimension() int   { return m.dim }
func (m *LinearAdv) NbEquations() int { return 1 }

// Velocity returns the advection velocity padded with zeros to Dimension.
func (m *LinearAdv) Velocity() []float64 {
	out := make([]float64, m.dim)
	copy(out, m.velocity)
	return out
}

func (m *LinearAdv) Diffusivity() float64 { return m.diffusivity }

func (m *LinearAdv) Validate(s State) bool {
	return len(s) == m.NbEquations() && s.IsFinite()
}

func (m *LinearAdv) ConvectiveName() string { return LinearAdvName }

func (m *LinearAdv) DiffusiveName() string {
	if m.diffusivity > 0 {
		return LinearAdvDiffName
	}
	return NullName
}

func (m *LinearAdv) SourceName() string { return NullName }

func (m *LinearAdv) ComputePhysicalData() {
	speed := State(m.Velocity()).Norm()
	m.setData("speed", speed)
	m.setData("diffusivity", m.diffusivity)
	if m.diffusivity > 0 {
		m.setData("peclet", speed*m.RefLength()/m.diffusivity)
	}
	m.Logger().Debug().Float64("speed", speed).Msg("physical data computed")
}

func (m *LinearAdv) SetReferenceValues() {
	m.setReference(m.referenceOrDefault([]float64{1}))
	m.setData("refLength", m.RefLength())

	// no advective time scale without motion
	speed := State(m.Velocity()).Norm()
	if speed > 0 {
		m.setData("refTime", m.RefLength()/speed)
	} else {
		delete(m.data, "refTime")
	}
}
