package config

import "sort"

var Presets = map[string]map[string]*Case{
	"Null": {
		"empty": {
			Model: "Null",
		},
		"degenerate": {
			Model:  "Null",
			States: [][]float64{{}, {0}, {1, 2, 3}},
		},
	},
	"LinearAdv": {
		"1d": {
			Model:  "LinearAdv",
			Args:   map[string]any{"Dimension": 1, "Velocity": []any{1.0}},
			States: [][]float64{{0.0}, {0.5}, {1.0}},
		},
		"2d-diffusive": {
			Model: "LinearAdv",
			Args: map[string]any{
				"Dimension":   2,
				"Velocity":    []any{1.0, 0.5},
				"Diffusivity": 0.01,
				"RefLength":   2.0,
			},
			States: [][]float64{{0.0}, {0.25}, {1.0}},
		},
		"3d": {
			Model:  "LinearAdv",
			Args:   map[string]any{"Dimension": 3, "Velocity": []any{1.0, 1.0, 1.0}},
			States: [][]float64{{1.0}, {2.0}},
		},
	},
	"Heat": {
		"plate": {
			Model: "Heat",
			Args: map[string]any{
				"Dimension":    2,
				"Conductivity": 205.0,
				"Density":      2700.0,
				"SpecificHeat": 900.0,
				"RefValues":    []any{300.0},
			},
			States: [][]float64{{300.0}, {350.0}, {-1.0}},
		},
		"heated-block": {
			Model: "Heat",
			Args: map[string]any{
				"Dimension":  3,
				"HeatSource": 1000.0,
			},
			States: [][]float64{{1.0}, {2.0}},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(model, name string) *Case {
	presets, ok := Presets[model]
	if !ok {
		return nil
	}
	c, ok := presets[name]
	if !ok {
		return nil
	}
	out := c.Clone()
	out.Library = DefaultLibrary
	return out
}

func ListPresets(model string) []string {
	presets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
