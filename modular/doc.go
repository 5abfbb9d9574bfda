// Package modular implements the feature-module registry: module lifecycle,
// import-graph wiring, cycle detection, and the cascading dependent reload
// that keeps per-module binding containers consistent when a module is
// disposed.
//
// An application declares modules (name, imports, bind-registration logic),
// registers them on a Registry, and calls InitializeAll. Disposing one module
// later resets it and, recursively, every module that transitively imports
// it, notifying observers of each reloaded dependent exactly once.
//
//	reg := modular.NewRegistry()
//	reg.RegisterMany(coreModule, userModule, profileModule)
//	if err := reg.InitializeAll(ctx); err != nil {
//	    return err
//	}
//	// later, e.g. after a credentials change:
//	if err := reg.Dispose(ctx, "core"); err != nil {
//	    return err
//	}
//
// The Registry is designed for a single logical owner (startup sequence plus
// ad hoc disposal calls). Concurrent lifecycle calls require external
// synchronization.
package modular
