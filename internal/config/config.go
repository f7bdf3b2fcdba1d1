package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	DefaultModel   = "Null"
	DefaultLibrary = "Framework"
)

// Case is a simulation case file: the physical model selector, its
// configuration and the states to check against it.
type Case struct {
	Model    string         `yaml:"model" toml:"model"`
	Library  string         `yaml:"library,omitempty" toml:"library,omitempty"`
	Instance string         `yaml:"instance,omitempty" toml:"instance,omitempty"`
	Fallback bool           `yaml:"fallback" toml:"fallback"`
	Args     map[string]any `yaml:"args,omitempty" toml:"args,omitempty"`
	States   [][]float64    `yaml:"states,omitempty" toml:"states,omitempty"`
}

func DefaultCase() *Case {
	return &Case{
		Model:   DefaultModel,
		Library: DefaultLibrary,
	}
}

// Load reads a case file, choosing the decoder from the extension.
func Load(path string) (*Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := DefaultCase()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), c); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return c, nil
}

func Save(path string, c *Case) error {
	var data []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		out, err := yaml.Marshal(c)
		if err != nil {
			return err
		}
		data = out
	case ".toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return err
		}
		data = buf.Bytes()
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return os.WriteFile(path, data, 0644)
}

// ModelArgs flattens the case arguments and overlays the section named after
// the selected model, so "LinearAdv.Dimension" wins over "Dimension".
func (c *Case) ModelArgs() Args {
	all := Flatten(c.Args)
	return all.Merge(all.Sub(c.Model))
}

// InstanceName returns the configured instance name, defaulting to the model.
func (c *Case) InstanceName() string {
	if c.Instance != "" {
		return c.Instance
	}
	return c.Model
}

func (c *Case) LibraryTag() string {
	if c.Library != "" {
		return c.Library
	}
	return DefaultLibrary
}

func (c *Case) Clone() *Case {
	out := *c
	if c.Args != nil {
		out.Args = make(map[string]any, len(c.Args))
		for k, v := range c.Args {
			out.Args[k] = v
		}
	}
	if c.States != nil {
		out.States = make([][]float64, len(c.States))
		for i, s := range c.States {
			out.States[i] = append([]float64(nil), s...)
		}
	}
	return &out
}
