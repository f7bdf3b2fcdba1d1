// Package physmodel defines the physical model contract every physics plugin
// implements, the shared bookkeeping in [Base], and the built-in variants.
//
// The rest of a solver holds an [Impl] and never needs to know which physics
// is active. When none is configured, [Null] stands in: one dimension, one
// equation, every state admissible.
//
// # Selection
//
// Variants are registered by [RegisterBuiltins] and built by name:
//
//	r := physmodel.DefaultRegistry()
//	m, err := physmodel.New(r, "LinearAdv", "advection")
//	if err != nil {
//		return err
//	}
//	if err := m.Configure(args); err != nil {
//		return err
//	}
//
// # Thread Safety
//
// Model instances are owned by a single simulation and are NOT safe for
// concurrent use. The registry returned by [DefaultRegistry] is frozen and
// may be shared.
package physmodel
