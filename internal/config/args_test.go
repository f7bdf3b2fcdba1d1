package config

import (
	"reflect"
	"testing"
)

func TestArgs_Sub(t *testing.T) {
	args := Args{
		"LinearAdv.Dimension": "2",
		"LinearAdv.Velocity":  "1 0.5",
		"LinearAdvX.Other":    "x",
		"RefLength":           "3",
		"LinearAdv.":          "ignored",
	}

	got := args.Sub("LinearAdv")
	want := Args{"Dimension": "2", "Velocity": "1 0.5"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sub() = %v, want %v", got, want)
	}
}

func TestArgs_Merge(t *testing.T) {
	base := Args{"a": "1", "b": "2"}
	over := Args{"b": "3", "c": "4"}

	got := base.Merge(over)
	want := Args{"a": "1", "b": "3", "c": "4"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Merge() = %v, want %v", got, want)
	}
	if base["b"] != "2" {
		t.Error("Merge modified the receiver")
	}
}

func TestArgs_Keys(t *testing.T) {
	keys := Args{"b": "", "a": "", "c": ""}.Keys()
	if !reflect.DeepEqual(keys, []string{"a", "b", "c"}) {
		t.Errorf("Keys() = %v", keys)
	}
}

func TestFlatten(t *testing.T) {
	tests := []struct {
		name string
		tree map[string]any
		want Args
	}{
		{"empty", nil, Args{}},
		{"scalars", map[string]any{"Dimension": 2, "Diffusivity": 0.5, "On": true, "Name": "x"},
			Args{"Dimension": "2", "Diffusivity": "0.5", "On": "true", "Name": "x"}},
		{"list", map[string]any{"Velocity": []any{1.0, 0.5, 2}},
			Args{"Velocity": "1 0.5 2"}},
		{"nested", map[string]any{"Heat": map[string]any{"Dimension": 3, "Inner": map[any]any{"k": 1}}},
			Args{"Heat.Dimension": "3", "Heat.Inner.k": "1"}},
		{"null", map[string]any{"Unset": nil}, Args{"Unset": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Flatten(tt.tree); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Flatten() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestArgs_Unused(t *testing.T) {
	opts := []Option{{Name: "Dimension"}, {Name: "Velocity"}}
	args := Args{
		"Dimension":    "2",
		"Dimesion":     "3",
		"Heat.Density": "7",
		"Verbose":      "true",
	}

	got := args.Unused(opts)
	want := []string{"Dimesion", "Verbose"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Unused() = %v, want %v", got, want)
	}
	if got := (Args{"Dimension": "1"}).Unused(opts); got != nil {
		t.Errorf("Unused() = %v, want nil", got)
	}
}
