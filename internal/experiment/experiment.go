package experiment

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/san-kum/physmodel/internal/config"
	"github.com/san-kum/physmodel/internal/physmodel"
	"github.com/san-kum/physmodel/internal/provider"
)

// ErrNotSetup indicates Run was called before a successful Setup.
var ErrNotSetup = errors.New("experiment: not set up")

type Config struct {
	Model    string
	Library  string
	Instance string
	Args     config.Args
	States   []physmodel.State
	// Fallback installs the Null model when the selected model cannot be
	// created or configured.
	Fallback bool
}

// FromCase converts a case file into an experiment configuration.
func FromCase(c *config.Case) Config {
	states := make([]physmodel.State, len(c.States))
	for i, s := range c.States {
		states[i] = physmodel.State(s).Clone()
	}
	return Config{
		Model:    c.Model,
		Library:  c.LibraryTag(),
		Instance: c.InstanceName(),
		Args:     c.ModelArgs(),
		States:   states,
		Fallback: c.Fallback,
	}
}

type Result struct {
	Model        string
	Instance     string
	FellBack     bool
	Dimension    int
	NbEquations  int
	Convective   string
	Diffusive    string
	Source       string
	States       []physmodel.State
	Valid        []bool
	Rejected     int
	PhysicalData map[string]float64
	Reference    []float64
}

type Experiment struct {
	cfg      Config
	registry *provider.Registry
	log      zerolog.Logger
	slot     physmodel.Slot
	fellBack bool
	ready    bool
}

func New(cfg Config, registry *provider.Registry, log zerolog.Logger) *Experiment {
	if cfg.Library == "" {
		cfg.Library = physmodel.Library
	}
	return &Experiment{
		cfg:      cfg,
		registry: registry,
		log:      log,
	}
}

// Setup creates and configures the selected model. With Fallback set, any
// selection failure installs Null instead of returning the error.
func (e *Experiment) Setup() error {
	m, err := e.selectModel()
	if err != nil {
		if !e.cfg.Fallback {
			return err
		}
		e.log.Warn().Err(err).Str("model", e.cfg.Model).Msg("falling back to Null physical model")
		m = physmodel.NewNull(e.instanceName())
		e.fellBack = true
	}

	if l, ok := m.(physmodel.Loggable); ok {
		l.SetLogger(e.log)
	}
	e.slot.Set(m)
	e.ready = true
	return nil
}

func (e *Experiment) selectModel() (physmodel.Impl, error) {
	m, err := provider.Create[physmodel.Impl](e.registry, e.cfg.Library, e.cfg.Model, e.cfg.Instance)
	if err != nil {
		return nil, err
	}
	if err := m.Configure(e.cfg.Args); err != nil {
		return nil, fmt.Errorf("configure %s: %w", e.cfg.Model, err)
	}
	if d, ok := m.(physmodel.Describer); ok {
		if unused := e.cfg.Args.Unused(d.Options()); len(unused) > 0 {
			e.log.Warn().Str("model", e.cfg.Model).Strs("keys", unused).Msg("ignoring unknown configuration keys")
		}
	}
	return m, nil
}

func (e *Experiment) instanceName() string {
	if e.cfg.Instance != "" {
		return e.cfg.Instance
	}
	return physmodel.NullName
}

// Run prepares the model's reference values and derived data, then checks
// every configured state for admissibility.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if !e.ready {
		return nil, ErrNotSetup
	}

	m := e.slot.Get()
	m.SetReferenceValues()
	m.ComputePhysicalData()

	result := &Result{
		Model:       e.cfg.Model,
		Instance:    m.Name(),
		FellBack:    e.fellBack,
		Dimension:   m.Dimension(),
		NbEquations: m.NbEquations(),
		Convective:  m.ConvectiveName(),
		Diffusive:   m.DiffusiveName(),
		Source:      m.SourceName(),
		States:      make([]physmodel.State, 0, len(e.cfg.States)),
		Valid:       make([]bool, 0, len(e.cfg.States)),
	}
	if e.fellBack {
		result.Model = physmodel.NullName
	}

	for i, s := range e.cfg.States {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		ok := m.Validate(s)
		if !ok {
			result.Rejected++
			e.log.Debug().Int("index", i).Floats64("state", s).Msg("state rejected")
		}
		result.States = append(result.States, s.Clone())
		result.Valid = append(result.Valid, ok)
	}

	if b, ok := m.(interface {
		PhysicalData() map[string]float64
		ReferenceValues() []float64
	}); ok {
		result.PhysicalData = b.PhysicalData()
		result.Reference = b.ReferenceValues()
	}

	return result, nil
}

// Model returns the active model; it is the Null model before Setup.
func (e *Experiment) Model() physmodel.Impl {
	return e.slot.Get()
}

func (e *Experiment) FellBack() bool {
	return e.fellBack
}
