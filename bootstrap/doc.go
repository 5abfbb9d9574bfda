// Package bootstrap orchestrates application lifecycle around the module
// registry.
//
// It provides typed configuration, module registration, dependency-ordered
// initialization, and startup/shutdown hooks for rapid service setup.
//
// # Quick Start
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.RegisterModules(coreModule, userModule, profileModule)
//	if err := app.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// The bootstrap package handles configuration validation, logger and tracer
// initialization, module initialization in dependency order, graceful
// shutdown on OS signals, and a startup summary.
package bootstrap
