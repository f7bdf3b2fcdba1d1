package provider

import (
	"reflect"
	"sort"
	"sync"
)

// Factory constructs a new instance named name. Ownership passes to the caller.
type Factory[T any] func(name string) T

type scope struct {
	contract reflect.Type
	library  string
}

type entry struct {
	name    string
	factory any
}

// Scope summarises one (contract, library) pair for introspection.
type Scope struct {
	Contract string
	Library  string
	Names    []string
}

type Registry struct {
	mu     sync.RWMutex
	frozen bool
	scopes map[scope]map[string]entry
}

func NewRegistry() *Registry {
	return &Registry{
		scopes: make(map[scope]map[string]entry),
	}
}

// Freeze makes the registry read-only. It is safe to call more than once.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Scopes lists every populated scope, ordered by contract then library.
func (r *Registry) Scopes() []Scope {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Scope, 0, len(r.scopes))
	for sc, entries := range r.scopes {
		out = append(out, Scope{
			Contract: contractName(sc.contract),
			Library:  sc.library,
			Names:    sortedNames(entries),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Contract != out[j].Contract {
			return out[i].Contract < out[j].Contract
		}
		return out[i].Library < out[j].Library
	})
	return out
}

// Register adds a provider for contract T under (library, name).
func Register[T any](r *Registry, library, name string, f Factory[T]) error {
	sc := scopeOf[T](library)

	if name == "" || f == nil {
		return &Error{Op: "register", Contract: contractName(sc.contract), Library: library, Name: name, Err: ErrInvalidProvider}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return &Error{Op: "register", Contract: contractName(sc.contract), Library: library, Name: name, Err: ErrRegistryFrozen}
	}

	entries, ok := r.scopes[sc]
	if !ok {
		entries = make(map[string]entry)
		r.scopes[sc] = entries
	}
	if _, dup := entries[name]; dup {
		return &Error{Op: "register", Contract: contractName(sc.contract), Library: library, Name: name, Err: ErrDuplicateProvider}
	}

	entries[name] = entry{name: name, factory: f}
	return nil
}

// MustRegister is Register for startup passes: any failure is a programming
// error and panics.
func MustRegister[T any](r *Registry, library, name string, f Factory[T]) {
	if err := Register(r, library, name, f); err != nil {
		panic(err)
	}
}

// Create builds a new instance of the provider registered under name. An
// empty instance name defaults to the provider name.
func Create[T any](r *Registry, library, name, instance string) (T, error) {
	var zero T
	sc := scopeOf[T](library)

	r.mu.RLock()
	entries := r.scopes[sc]
	e, ok := entries[name]
	var known []string
	if !ok {
		known = sortedNames(entries)
	}
	r.mu.RUnlock()

	if !ok {
		return zero, &Error{
			Op:       "create",
			Contract: contractName(sc.contract),
			Library:  library,
			Name:     name,
			Known:    known,
			Err:      ErrUnknownProvider,
		}
	}

	if instance == "" {
		instance = name
	}
	return e.factory.(Factory[T])(instance), nil
}

// Names enumerates the providers of contract T in library, sorted.
func Names[T any](r *Registry, library string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedNames(r.scopes[scopeOf[T](library)])
}

func Has[T any](r *Registry, library, name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.scopes[scopeOf[T](library)][name]
	return ok
}

func scopeOf[T any](library string) scope {
	return scope{
		contract: reflect.TypeOf((*T)(nil)).Elem(),
		library:  library,
	}
}

func contractName(t reflect.Type) string {
	return t.String()
}

func sortedNames(entries map[string]entry) []string {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
