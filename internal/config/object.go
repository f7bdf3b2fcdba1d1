package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Option describes one declared configuration key.
type Option struct {
	Name        string
	Description string
	Default     string
}

type option struct {
	Option
	// stage parses raw and returns a commit func that assigns the value and
	// returns a restore func for rollback.
	stage func(raw string) (commit func() (restore func()), err error)
}

// Object is the configuration base shared by pluggable components. Options
// are declared against destination pointers; Configure parses every supplied
// value before assigning any of them, and only the first successful call has
// an effect.
//
// The zero value is ready to use.
type Object struct {
	owner      string
	options    map[string]*option
	order      []string
	checks     []func() error
	configured bool
}

// Init names the owner used in error messages.
func (o *Object) Init(owner string) {
	o.owner = owner
}

func (o *Object) Owner() string    { return o.owner }
func (o *Object) Configured() bool { return o.configured }

// Options lists declared options in declaration order.
func (o *Object) Options() []Option {
	out := make([]Option, 0, len(o.order))
	for _, name := range o.order {
		out = append(out, o.options[name].Option)
	}
	return out
}

func (o *Object) AddInt(name, desc string, dst *int, checks ...func(int) error) {
	addOption(o, name, desc, dst, strconv.Atoi, strconv.Itoa, checks)
}

func (o *Object) AddFloat(name, desc string, dst *float64, checks ...func(float64) error) {
	addOption(o, name, desc, dst, parseFloat, formatFloat, checks)
}

func (o *Object) AddFloats(name, desc string, dst *[]float64, checks ...func([]float64) error) {
	addOption(o, name, desc, dst, parseFloats, formatFloats, checks)
}

func (o *Object) AddString(name, desc string, dst *string, checks ...func(string) error) {
	addOption(o, name, desc, dst, func(s string) (string, error) { return strings.TrimSpace(s), nil },
		func(s string) string { return s }, checks)
}

func (o *Object) AddBool(name, desc string, dst *bool, checks ...func(bool) error) {
	addOption(o, name, desc, dst, strconv.ParseBool, strconv.FormatBool, checks)
}

// AddCheck registers a cross-option constraint evaluated after all values are
// assigned. A failing check rolls every assignment back.
func (o *Object) AddCheck(fn func() error) {
	o.checks = append(o.checks, fn)
}

// Configure applies args to the declared options. Keys without a declared
// option are ignored.
func (o *Object) Configure(args Args) error {
	if o.configured {
		return nil
	}

	commits := make([]func() func(), 0, len(args))
	for _, name := range o.order {
		raw, ok := args[name]
		if !ok {
			continue
		}
		commit, err := o.options[name].stage(raw)
		if err != nil {
			return optionError(o.owner, name, raw, err)
		}
		commits = append(commits, commit)
	}

	restores := make([]func(), 0, len(commits))
	for _, commit := range commits {
		restores = append(restores, commit())
	}

	for _, check := range o.checks {
		if err := check(); err != nil {
			for i := len(restores) - 1; i >= 0; i-- {
				restores[i]()
			}
			if o.owner == "" {
				return fmt.Errorf("%w: %v", ErrInvalidOption, err)
			}
			return fmt.Errorf("%w: %s: %v", ErrInvalidOption, o.owner, err)
		}
	}

	o.configured = true
	return nil
}

func addOption[V any](o *Object, name, desc string, dst *V, parse func(string) (V, error), format func(V) string, checks []func(V) error) {
	if o.options == nil {
		o.options = make(map[string]*option)
	}
	if _, dup := o.options[name]; dup {
		panic(fmt.Sprintf("config: option %q declared twice on %q", name, o.owner))
	}

	opt := &option{
		Option: Option{Name: name, Description: desc, Default: format(*dst)},
		stage: func(raw string) (func() func(), error) {
			v, err := parse(raw)
			if err != nil {
				return nil, err
			}
			for _, check := range checks {
				if err := check(v); err != nil {
					return nil, err
				}
			}
			return func() func() {
				prev := *dst
				*dst = v
				return func() { *dst = prev }
			}, nil
		},
	}
	o.options[name] = opt
	o.order = append(o.order, name)
}

var errNotFinite = errors.New("value is not finite")

// parseFloat rejects NaN and ±Inf, which strconv accepts.
func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotFinite
	}
	return v, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// parseFloats accepts space, comma or semicolon separated values, optionally
// wrapped in brackets.
func parseFloats(s string) ([]float64, error) {
	s = strings.Trim(strings.TrimSpace(s), "[]")
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == ';' || r == '\t'
	})
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := parseFloat(f)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func formatFloats(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = formatFloat(v)
	}
	return strings.Join(parts, " ")
}

// Positive rejects values <= 0.
func Positive(v float64) error {
	if v <= 0 {
		return fmt.Errorf("must be positive, got %g", v)
	}
	return nil
}

// NonNegative rejects values < 0.
func NonNegative(v float64) error {
	if v < 0 {
		return fmt.Errorf("must not be negative, got %g", v)
	}
	return nil
}

// IntRange returns a check accepting lo <= v <= hi.
func IntRange(lo, hi int) func(int) error {
	return func(v int) error {
		if v < lo || v > hi {
			return fmt.Errorf("must be in [%d, %d], got %d", lo, hi, v)
		}
		return nil
	}
}
