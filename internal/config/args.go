package config

import (
	"fmt"
	"sort"
	"strings"
)

// Args is a flat key/value configuration record. Nested sections use dotted
// keys ("LinearAdv.Dimension").
type Args map[string]string

func (a Args) Get(key string) (string, bool) {
	v, ok := a[key]
	return v, ok
}

// Sub returns the entries under prefix with the prefix stripped.
func (a Args) Sub(prefix string) Args {
	out := make(Args)
	p := prefix + "."
	for k, v := range a {
		if strings.HasPrefix(k, p) && len(k) > len(p) {
			out[k[len(p):]] = v
		}
	}
	return out
}

// Merge returns a new record holding a overlaid by over.
func (a Args) Merge(over Args) Args {
	out := make(Args, len(a)+len(over))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

func (a Args) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Unused lists the top-level keys no option in opts consumes, sorted.
// Dotted keys belong to other sections and are skipped.
func (a Args) Unused(opts []Option) []string {
	declared := make(map[string]bool, len(opts))
	for _, o := range opts {
		declared[o.Name] = true
	}
	var out []string
	for _, k := range a.Keys() {
		if !strings.Contains(k, ".") && !declared[k] {
			out = append(out, k)
		}
	}
	return out
}

// Flatten turns a decoded YAML/TOML tree into dotted keys. Lists are joined
// with single spaces.
func Flatten(tree map[string]any) Args {
	out := make(Args)
	flattenInto(out, "", tree)
	return out
}

func flattenInto(out Args, prefix string, v any) {
	switch node := v.(type) {
	case map[string]any:
		for k, child := range node {
			flattenInto(out, joinKey(prefix, k), child)
		}
	case map[any]any:
		for k, child := range node {
			flattenInto(out, joinKey(prefix, fmt.Sprint(k)), child)
		}
	case []any:
		parts := make([]string, 0, len(node))
		for _, item := range node {
			parts = append(parts, fmt.Sprint(item))
		}
		out[prefix] = strings.Join(parts, " ")
	case nil:
		out[prefix] = ""
	default:
		out[prefix] = fmt.Sprint(node)
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
