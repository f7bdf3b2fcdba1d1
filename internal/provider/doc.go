// Package provider maps configuration strings to constructors of pluggable
// implementations.
//
// A [Registry] is scoped by contract type and library tag, so identically
// named providers of unrelated contracts never collide:
//
//	r := provider.NewRegistry()
//	provider.MustRegister[physmodel.Impl](r, "Framework", "Null", physmodel.NewNullImpl)
//	r.Freeze()
//	m, err := provider.Create[physmodel.Impl](r, "Framework", "Null", "")
//
// # Lifecycle
//
// Registries are populated by an explicit startup pass and then frozen.
// After [Registry.Freeze] every registration fails with [ErrRegistryFrozen];
// lookups are safe for concurrent use at any time.
package provider
