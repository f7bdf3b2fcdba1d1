package physmodel

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/san-kum/physmodel/internal/config"
)

// Base carries the bookkeeping shared by all variants: identity,
// configuration, logger, derived-data cache and reference values. Variants
// embed it and call Init from their constructor once the variant has its
// final address.
type Base struct {
	name string
	opts config.Object
	log  zerolog.Logger

	refLength float64
	refValues []float64

	data      map[string]float64
	reference []float64
}

func (b *Base) Init(name string) {
	b.name = name
	b.opts.Init(name)
	b.log = log.Logger.With().Str("model", name).Logger()
	b.refLength = 1
	b.data = make(map[string]float64)
}

// AddSharedOptions declares the keys every physics variant understands:
// RefLength and RefValues.
func (b *Base) AddSharedOptions() {
	b.opts.AddFloat("RefLength", "reference length", &b.refLength, config.Positive)
	b.opts.AddFloats("RefValues", "reference value of each unknown", &b.refValues)
}

func (b *Base) Name() string { return b.name }

func (b *Base) Configure(args config.Args) error {
	return b.opts.Configure(args)
}

func (b *Base) Configured() bool { return b.opts.Configured() }

// Config exposes the option set so variants can declare their own keys.
func (b *Base) Config() *config.Object { return &b.opts }

func (b *Base) Options() []config.Option { return b.opts.Options() }

func (b *Base) SetLogger(l zerolog.Logger) {
	b.log = l.With().Str("model", b.name).Logger()
}

func (b *Base) Logger() *zerolog.Logger { return &b.log }

func (b *Base) RefLength() float64 { return b.refLength }

// PhysicalData returns a copy of the derived-data cache.
func (b *Base) PhysicalData() map[string]float64 {
	out := make(map[string]float64, len(b.data))
	for k, v := range b.data {
		out[k] = v
	}
	return out
}

// ReferenceValues returns a copy of the reference state.
func (b *Base) ReferenceValues() []float64 {
	return append([]float64(nil), b.reference...)
}

func (b *Base) setData(key string, v float64) {
	b.data[key] = v
}

// referenceOrDefault returns the configured RefValues, or def when unset.
func (b *Base) referenceOrDefault(def []float64) []float64 {
	if len(b.refValues) > 0 {
		return append([]float64(nil), b.refValues...)
	}
	return append([]float64(nil), def...)
}

func (b *Base) setReference(ref []float64) {
	b.reference = ref
}

// requireRefValues returns a check that RefValues is empty or has n entries.
func (b *Base) requireRefValues(n int) func() error {
	return func() error {
		if len(b.refValues) != 0 && len(b.refValues) != n {
			return fmt.Errorf("RefValues has %d entries, want %d", len(b.refValues), n)
		}
		return nil
	}
}
