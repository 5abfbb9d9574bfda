package modular

import (
	"context"
	"sync"
	"time"

	"github.com/kbukum/modkit/binding"
	"github.com/kbukum/modkit/errors"
	"github.com/kbukum/modkit/graph"
	"github.com/kbukum/modkit/logger"
	"github.com/kbukum/modkit/observability"
)

// Registry holds all registered modules keyed by identity and orchestrates
// bulk initialization, single-module disposal, and the cascading
// dependent reload.
//
// The registry is not internally synchronized for lifecycle operations:
// Register, InitializeAll, Dispose, and Clear expect a single logical owner.
// Wrap calls in a mutex if multiple goroutines must drive the lifecycle.
type Registry struct {
	modules map[string]*Module
	order   []string

	log     *logger.Logger
	metrics *observability.Metrics
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets a custom logger for registry-level events.
func WithLogger(l *logger.Logger) Option {
	return func(r *Registry) { r.log = l }
}

// WithMetrics enables lifecycle metric recording.
func WithMetrics(m *observability.Metrics) Option {
	return func(r *Registry) { r.metrics = m }
}

// NewRegistry creates an empty module registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		modules: make(map[string]*Module),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logger.GetGlobalLogger()
	}
	return r
}

// Register adds a module definition. Re-registering an identifier replaces
// the prior entry; the orphaned instance is not disposed (caller
// responsibility).
func (r *Registry) Register(def Definition) *Module {
	name := def.Name()
	if _, exists := r.modules[name]; !exists {
		r.order = append(r.order, name)
	}
	m := newModule(def)
	r.modules[name] = m

	r.log.Debug("module registered", logger.Fields(
		logger.FieldModule, name,
		logger.FieldImports, def.Imports(),
	))
	return m
}

// RegisterMany adds several module definitions in order.
func (r *Registry) RegisterMany(defs ...Definition) {
	for _, def := range defs {
		r.Register(def)
	}
}

// Get returns the registered module for name, or nil if not registered.
// As a side effect it finalizes the module's container if it has not been
// committed yet (lazy commit on first access).
func (r *Registry) Get(name string) *Module {
	m, ok := r.modules[name]
	if !ok {
		return nil
	}
	if m.container != nil && !m.container.Committed() {
		m.container.Commit()
	}
	return m
}

// Names returns all registered module names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Len returns the number of registered modules.
func (r *Registry) Len() int { return len(r.modules) }

// buildGraph derives the dependency graph from declared imports, restricted
// to registered modules. Edges to unregistered imports are kept so cycle
// traversal sees the full declaration; wiring reports them as not found.
func (r *Registry) buildGraph() *graph.Graph {
	g := graph.New()
	for _, name := range r.order {
		g.AddNode(name)
	}
	for _, name := range r.order {
		for _, imp := range r.modules[name].def.Imports() {
			g.AddDependency(name, imp)
		}
	}
	return g
}

// cascadeGraph restricts the graph to edges between registered modules.
// Dispose orders its cascade with it, so a registry left partially wired by
// a failed InitializeAll reports a missing import through the wiring path
// instead of as a graph error.
func (r *Registry) cascadeGraph() *graph.Graph {
	g := graph.New()
	for _, name := range r.order {
		g.AddNode(name)
	}
	for _, name := range r.order {
		for _, imp := range r.modules[name].def.Imports() {
			if _, ok := r.modules[imp]; ok {
				g.AddDependency(name, imp)
			}
		}
	}
	return g
}

// Levels groups registered modules by dependency depth, for display and
// introspection. Fails if the import graph has a cycle or references an
// unregistered module.
func (r *Registry) Levels() ([][]string, error) {
	return r.buildGraph().BuildLevels()
}

// InitializeAll validates every module, runs cycle detection over the
// declared imports before any container is created, initializes every
// module's own bindings concurrently (fire-and-join), and finally wires each
// module's container to its imports' containers.
//
// On failure the first error encountered is returned. Containers already
// created by this batch are left initialized; there is no automatic
// rollback.
func (r *Registry) InitializeAll(ctx context.Context) error {
	ctx, span := observability.StartSpan(ctx, observability.SpanInitializeAll)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrModuleCount, len(r.order))

	start := time.Now()
	r.log.Info("initializing modules", logger.Fields("count", len(r.order)))

	for _, name := range r.order {
		if err := r.modules[name].Validate(); err != nil {
			observability.SetSpanError(ctx, err)
			return err
		}
	}

	if cycle := r.buildGraph().FindCycle(); cycle != nil {
		err := errors.CircularDependency(cycle)
		observability.SetSpanError(ctx, err)
		return err
	}

	if err := r.initializeConcurrently(ctx); err != nil {
		observability.SetSpanError(ctx, err)
		return err
	}

	for _, name := range r.order {
		if err := r.wireImports(r.modules[name]); err != nil {
			observability.SetSpanError(ctx, err)
			return err
		}
	}

	r.log.Info("all modules initialized", logger.DurationFields("initialize_all", time.Since(start)))
	return nil
}

// initializeConcurrently starts every module's Initialize and waits for all
// of them, so one module's async setup does not block another's from
// starting. Import wiring only begins after every initialization completed.
func (r *Registry) initializeConcurrently(ctx context.Context) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs = make(map[string]error)
	)

	for _, name := range r.order {
		m := r.modules[name]
		wg.Add(1)
		go func(name string, m *Module) {
			defer wg.Done()
			if err := m.Initialize(ctx); err != nil {
				mu.Lock()
				errs[name] = err
				mu.Unlock()
				r.metrics.RecordInit(ctx, name, "error")
				return
			}
			r.metrics.RecordInit(ctx, name, "ok")
		}(name, m)
	}
	wg.Wait()

	// first error in registration order, for determinism
	for _, name := range r.order {
		if err, ok := errs[name]; ok {
			return err
		}
	}
	return nil
}

// wireImports merges the containers of m's declared imports into m's
// container, in import-list order. Ambiguity between imports providing the
// same type is resolved by the container's fallback order, which preserves
// that list order.
func (r *Registry) wireImports(m *Module) error {
	if m.container == nil {
		return errors.ModuleNotInitialized(m.Name(), "")
	}
	for _, imp := range m.def.Imports() {
		dep, ok := r.modules[imp]
		if !ok {
			return errors.ModuleNotFound(imp, m.Name())
		}
		if dep.container == nil {
			return errors.ModuleNotInitialized(imp, m.Name())
		}
		m.container.MergeFrom(dep.container)
	}
	return nil
}

// dependentsOf returns the registered modules that directly declare name as
// an import, in registration order. The relation is recomputed on demand.
func (r *Registry) dependentsOf(name string) []string {
	var result []string
	for _, candidate := range r.order {
		for _, imp := range r.modules[candidate].def.Imports() {
			if imp == name {
				result = append(result, candidate)
				break
			}
		}
	}
	return result
}

// transitiveDependents returns the set of modules that directly or
// indirectly import name. name itself is not included.
func (r *Registry) transitiveDependents(name string) map[string]bool {
	affected := make(map[string]bool)
	var walk func(string)
	walk = func(n string) {
		for _, d := range r.dependentsOf(n) {
			if !affected[d] {
				affected[d] = true
				walk(d)
			}
		}
	}
	walk(name)
	return affected
}

// Dispose resets the named module and cascades: every module that
// transitively imports it is reset, rewired, committed, and notified exactly
// once, in dependency order, so no dependent is rewired before every module
// it imports already holds a fresh container. Each notification fires as
// soon as its own module is settled. The initiating module itself is reset
// and rewired but not notified.
func (r *Registry) Dispose(ctx context.Context, name string) error {
	ctx, span := observability.StartSpan(ctx, observability.SpanDisposeModule)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrModule, name)

	m, ok := r.modules[name]
	if !ok {
		err := errors.ModuleNotFound(name, "")
		observability.SetSpanError(ctx, err)
		return err
	}

	start := time.Now()
	r.log.Info("disposing module", logger.Fields(logger.FieldModule, name))

	if err := m.Reset(ctx, nil); err != nil {
		observability.SetSpanError(ctx, err)
		return err
	}
	r.metrics.RecordReset(ctx, name)
	if err := r.wireImports(m); err != nil {
		observability.SetSpanError(ctx, err)
		return err
	}

	affected := r.transitiveDependents(name)
	reloaded := 0
	if len(affected) > 0 {
		// levels order guarantees every affected import was reloaded first;
		// the affected set guarantees each dependent reloads exactly once
		// even on diamond-shaped graphs
		levels, err := r.cascadeGraph().BuildLevels()
		if err != nil {
			observability.SetSpanError(ctx, err)
			return err
		}
		for _, level := range levels {
			for _, dependent := range level {
				if !affected[dependent] {
					continue
				}
				if err := r.reloadDependent(ctx, dependent); err != nil {
					observability.SetSpanError(ctx, err)
					return err
				}
				reloaded++
			}
		}
	}

	r.metrics.RecordCascade(ctx, name, reloaded, time.Since(start))
	observability.SetSpanAttribute(ctx, observability.AttrDependents, reloaded)
	r.log.Info("module disposed", logger.Fields(
		logger.FieldModule, name,
		logger.FieldDependents, reloaded,
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	return nil
}

// reloadDependent resets and rewires one dependent, commits its fresh
// container, and fires its change notification.
func (r *Registry) reloadDependent(ctx context.Context, name string) error {
	d := r.modules[name]
	if err := d.Reset(ctx, nil); err != nil {
		return err
	}
	r.metrics.RecordReset(ctx, name)
	if err := r.wireImports(d); err != nil {
		return err
	}
	d.container.Commit()
	d.notifier.notify()
	r.metrics.RecordNotify(ctx, name)

	r.log.Debug("dependent reloaded", logger.Fields(
		logger.FieldModule, name,
		logger.FieldCascade, true,
		logger.FieldContainerTag, d.container.Tag(),
	))
	return nil
}

// Replace locates, across all registered modules in registration order, the
// one locally binding typeKey and swaps the binding for value. Fails with a
// binding-not-found error if no module binds the type.
func (r *Registry) Replace(typeKey string, value any, opts ...binding.Option) error {
	for _, name := range r.order {
		m := r.modules[name]
		if m.container != nil && m.container.IsBoundLocally(typeKey, opts...) {
			return m.container.Replace(typeKey, value, opts...)
		}
	}
	return errors.BindingNotFound(typeKey, "")
}

// ReplaceIn swaps the binding for typeKey inside the named module only.
func (r *Registry) ReplaceIn(module, typeKey string, value any, opts ...binding.Option) error {
	m, ok := r.modules[module]
	if !ok {
		return errors.ModuleNotFound(module, "")
	}
	if m.container == nil {
		return errors.ModuleNotInitialized(module, "")
	}
	return m.container.Replace(typeKey, value, opts...)
}

// Clear disposes every module in reverse registration order and empties the
// registry. Intended for full teardown between test runs or app restarts.
func (r *Registry) Clear() {
	for i := len(r.order) - 1; i >= 0; i-- {
		r.modules[r.order[i]].Dispose(nil)
	}
	r.modules = make(map[string]*Module)
	r.order = nil

	r.log.Debug("registry cleared")
}
