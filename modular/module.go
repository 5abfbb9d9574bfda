package modular

import (
	"context"
	"fmt"

	"github.com/kbukum/modkit/binding"
	"github.com/kbukum/modkit/errors"
	"github.com/kbukum/modkit/logger"
	"github.com/kbukum/modkit/validation"
)

// Definition describes a feature module: its stable identity, the modules it
// imports, and its bind-registration logic.
//
// Register is called once per initialization with a fresh container. It must
// be safe to call again after a reset (it runs against a new container each
// time). It may perform asynchronous setup; the context carries cancellation
// from the surrounding lifecycle operation.
type Definition interface {
	Name() string
	Imports() []string
	Register(ctx context.Context, c *binding.Container) error
}

// Define builds a Definition from plain values. Useful for small modules and
// tests; larger modules usually implement Definition on their own type.
func Define(name string, imports []string, register func(ctx context.Context, c *binding.Container) error) Definition {
	return &funcDefinition{name: name, imports: imports, register: register}
}

type funcDefinition struct {
	name     string
	imports  []string
	register func(ctx context.Context, c *binding.Container) error
}

func (d *funcDefinition) Name() string      { return d.name }
func (d *funcDefinition) Imports() []string { return d.imports }
func (d *funcDefinition) Register(ctx context.Context, c *binding.Container) error {
	if d.register == nil {
		return nil
	}
	return d.register(ctx, c)
}

// Module is the managed lifecycle state for a registered Definition. Its
// container is absent until Initialize succeeds and becomes a new instance
// (new identity tag) after every Reset.
type Module struct {
	def       Definition
	container *binding.Container
	notifier  *Notifier
	log       *logger.Logger
}

func newModule(def Definition) *Module {
	return &Module{
		def:      def,
		notifier: NewNotifier(),
		log:      logger.Get(def.Name()),
	}
}

// Name returns the module's stable identifier.
func (m *Module) Name() string { return m.def.Name() }

// Imports returns a copy of the declared import list.
func (m *Module) Imports() []string {
	declared := m.def.Imports()
	imports := make([]string, len(declared))
	copy(imports, declared)
	return imports
}

// Container returns the module's current container, or nil if the module is
// not initialized. Callers must not cache it across resets: every reset
// yields a container with a new identity tag.
func (m *Module) Container() *binding.Container { return m.container }

// Initialized reports whether the module currently has a container.
func (m *Module) Initialized() bool { return m.container != nil }

// Validate checks the module name for well-formedness and the declared
// imports for self-reference and duplicates.
func (m *Module) Validate() error {
	name := m.def.Name()
	if err := validation.New().Identifier("name", name).Validate(); err != nil {
		return err
	}
	seen := make(map[string]bool)
	for _, imp := range m.def.Imports() {
		if imp == name {
			return errors.SelfImport(name)
		}
		if seen[imp] {
			return errors.DuplicateImport(name, imp)
		}
		seen[imp] = true
	}
	return nil
}

// Initialize creates a fresh container and runs the module's
// bind-registration logic against it. On failure the partially populated
// container is torn down and the module stays uninitialized.
func (m *Module) Initialize(ctx context.Context) error {
	c := binding.New(m.def.Name())
	if err := m.def.Register(ctx, c); err != nil {
		c.Dispose(nil)
		return fmt.Errorf("initialize module %q: %w", m.def.Name(), err)
	}
	m.container = c

	m.log.Debug("module initialized", map[string]interface{}{
		logger.FieldContainerTag: c.Tag(),
	})
	return nil
}

// Dispose tears down the container, applying disposer hooks on held
// instances and reporting each to onEach, then detaches it. Disposing an
// uninitialized module is a no-op. Dispose fires no notification; cascading
// and notifying dependents is the registry's responsibility.
func (m *Module) Dispose(onEach func(any)) {
	if m.container == nil {
		return
	}
	tag := m.container.Tag()
	m.container.Dispose(onEach)
	m.container = nil

	m.log.Debug("module disposed", map[string]interface{}{
		logger.FieldContainerTag: tag,
	})
}

// Reset disposes and reinitializes the module. Identity and declared imports
// are preserved; the container is a new instance with a new tag.
func (m *Module) Reset(ctx context.Context, onEach func(any)) error {
	m.Dispose(onEach)
	return m.Initialize(ctx)
}

// ImportsModule reports whether other's container is among the containers
// actually wired into this module's container. It reflects wiring after
// import processing, not the declared list.
func (m *Module) ImportsModule(other *Module) bool {
	if m.container == nil || other == nil || other.container == nil {
		return false
	}
	for _, imp := range m.container.Imports() {
		if imp == other.container {
			return true
		}
	}
	return false
}

// Subscribe registers fn to run after this module has been reloaded by a
// dispose cascade. It returns an unsubscribe function.
func (m *Module) Subscribe(fn func()) func() {
	return m.notifier.Subscribe(fn)
}
