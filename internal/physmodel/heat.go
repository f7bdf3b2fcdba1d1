package physmodel

import (
	"fmt"

	"github.com/san-kum/physmodel/internal/config"
)

const (
	HeatName       = "Heat"
	HeatSourceName = "HeatSource"
)

// Heat is transient heat conduction ρ cp T_t = k∇²T + q for an absolute
// temperature T.
type Heat struct {
	Base
	dim          int
	conductivity float64
	density      float64
	specificHeat float64
	source       float64
}

func NewHeat(name string) *Heat {
	m := &Heat{
		dim:          2,
		conductivity: 1,
		density:      1,
		specificHeat: 1,
	}
	m.Init(name)
	m.AddSharedOptions()

	cfg := m.Config()
	cfg.AddInt("Dimension", "number of space dimensions", &m.dim, config.IntRange(1, MaxDimension))
	cfg.AddFloat("Conductivity", "thermal conductivity k", &m.conductivity, config.Positive)
	cfg.AddFloat("Density", "mass density", &m.density, config.Positive)
	cfg.AddFloat("SpecificHeat", "specific heat capacity cp", &m.specificHeat, config.Positive)
	cfg.AddFloat("HeatSource", "volumetric heat source q", &m.source)
	cfg.AddCheck(m.requireRefValues(1))
	cfg.AddCheck(m.requirePositiveReference)
	return m
}

// requirePositiveReference holds the reference temperature to the same bound
// as Validate.
func (m *Heat) requirePositiveReference() error {
	if len(m.refValues) == 1 && m.refValues[0] <= 0 {
		return fmt.Errorf("reference temperature must be positive, got %g", m.refValues[0])
	}
	return nil
}

func (m *Heat) Dimension() int   { return m.dim }
func (m *Heat) NbEquations() int { return 1 }

// Diffusivity is k/(ρ cp).
func (m *Heat) Diffusivity() float64 {
	return m.conductivity / (m.density * m.specificHeat)
}

// Validate requires a single finite, strictly positive temperature.
func (m *Heat) Validate(s State) bool {
	return len(s) == m.NbEquations() && s.IsFinite() && s[0] > 0
}

func (m *Heat) ConvectiveName() string { return NullName }
func (m *Heat) DiffusiveName() string  { return HeatName }

func (m *Heat) SourceName() string {
	if m.source != 0 {
		return HeatSourceName
	}
	return NullName
}

func (m *Heat) ComputePhysicalData() {
	m.setData("diffusivity", m.Diffusivity())
	m.setData("heatSource", m.source)
}

func (m *Heat) SetReferenceValues() {
	ref := m.referenceOrDefault([]float64{1})
	m.setReference(ref)
	m.setData("refTemperature", ref[0])
	m.setData("refLength", m.RefLength())
	m.setData("refTime", m.RefLength()*m.RefLength()/m.Diffusivity())
}
