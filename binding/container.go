package binding

import (
	"context"
	"reflect"
	"sync"

	"github.com/google/uuid"

	"github.com/kbukum/modkit/errors"
)

// Kind determines how a binding produces instances.
type Kind int

const (
	// Transient calls the provider on every resolution.
	Transient Kind = iota
	// Singleton calls the provider once at registration time.
	Singleton
	// LazySingleton calls the provider on first resolution and caches the result.
	LazySingleton
	// Instance stores a pre-created value.
	Instance
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Transient:
		return "transient"
	case Singleton:
		return "singleton"
	case LazySingleton:
		return "lazy_singleton"
	case Instance:
		return "instance"
	default:
		return "unknown"
	}
}

// Option configures a registration or lookup.
type Option func(*bindOptions)

type bindOptions struct {
	name     string
	disposer func(any)
}

// WithName qualifies a binding so multiple bindings of the same type can
// coexist under different names.
func WithName(name string) Option {
	return func(o *bindOptions) { o.name = name }
}

// WithDisposer attaches a cleanup hook invoked when the bound singleton
// instance is disposed. Without it, instances implementing Close() error
// are closed automatically.
func WithDisposer(fn func(any)) Option {
	return func(o *bindOptions) { o.disposer = fn }
}

func resolveOptions(opts []Option) *bindOptions {
	o := &bindOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type entry struct {
	typeKey  string
	name     string
	kind     Kind
	provider any
	disposer func(any)

	mu       sync.Mutex
	instance any
	built    bool
}

// RegistrationInfo describes a registered binding for introspection.
type RegistrationInfo struct {
	TypeKey string
	Name    string
	Kind    Kind
	Built   bool
}

// Container is the per-module binding store. Lookups that cannot be
// satisfied locally fall through to merged import containers in merge order.
type Container struct {
	tag   string
	owner string

	mu        sync.RWMutex
	entries   map[string]*entry
	order     []string
	imports   []*Container
	committed bool
}

// New creates an empty container owned by the named module. Every container
// gets a fresh identity tag; a reset module therefore yields a container
// whose tag differs from the one before.
func New(owner string) *Container {
	return &Container{
		tag:     uuid.NewString(),
		owner:   owner,
		entries: make(map[string]*entry),
	}
}

// Tag returns the container's unique identity tag.
func (c *Container) Tag() string { return c.tag }

// Owner returns the name of the module owning this container.
func (c *Container) Owner() string { return c.owner }

func compositeKey(typeKey, name string) string {
	if name == "" {
		return typeKey
	}
	return typeKey + "::" + name
}

// Register adds a binding for typeKey. For Singleton the provider is called
// immediately; for Instance the provider is stored as the value itself.
// Registration after Commit is rejected.
func (c *Container) Register(kind Kind, typeKey string, provider any, opts ...Option) error {
	o := resolveOptions(opts)

	c.mu.Lock()
	if c.committed {
		c.mu.Unlock()
		return errors.ContainerCommitted(c.owner)
	}

	e := &entry{
		typeKey:  typeKey,
		name:     o.name,
		kind:     kind,
		provider: provider,
		disposer: o.disposer,
	}

	key := compositeKey(typeKey, o.name)
	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
	}
	c.entries[key] = e
	c.mu.Unlock()

	switch kind {
	case Instance:
		e.instance = provider
		e.built = true
	case Singleton:
		instance, err := c.callProvider(typeKey, provider)
		if err != nil {
			return err
		}
		e.instance = instance
		e.built = true
	}
	return nil
}

// Replace swaps a previously registered binding for a literal value. It is
// allowed after Commit; it exists for tests that substitute fakes. The
// binding must already exist locally.
func (c *Container) Replace(typeKey string, value any, opts ...Option) error {
	o := resolveOptions(opts)
	key := compositeKey(typeKey, o.name)

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return errors.BindingNotFound(typeKey, c.owner)
	}

	e.mu.Lock()
	e.kind = Instance
	e.provider = value
	e.instance = value
	e.built = true
	if o.disposer != nil {
		e.disposer = o.disposer
	}
	e.mu.Unlock()
	return nil
}

// Get resolves typeKey from this container or, failing that, from the wired
// import containers in merge order.
func (c *Container) Get(typeKey string, opts ...Option) (any, error) {
	o := resolveOptions(opts)
	key := compositeKey(typeKey, o.name)

	c.mu.RLock()
	e, ok := c.entries[key]
	imports := c.imports
	c.mu.RUnlock()

	if ok {
		return c.resolveEntry(e)
	}

	for _, imp := range imports {
		if imp.IsBound(typeKey, opts...) {
			return imp.Get(typeKey, opts...)
		}
	}
	return nil, errors.BindingNotFound(typeKey, c.owner)
}

// MustGet resolves typeKey or panics. Use only where a missing binding is a
// programming error.
func (c *Container) MustGet(typeKey string, opts ...Option) any {
	v, err := c.Get(typeKey, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

func (c *Container) resolveEntry(e *entry) (any, error) {
	switch e.kind {
	case Instance, Singleton:
		e.mu.Lock()
		defer e.mu.Unlock()
		return e.instance, nil
	case Transient:
		return c.callProvider(e.typeKey, e.provider)
	case LazySingleton:
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.built {
			return e.instance, nil
		}
		instance, err := c.callProvider(e.typeKey, e.provider)
		if err != nil {
			return nil, err
		}
		e.instance = instance
		e.built = true
		return instance, nil
	default:
		return nil, errors.InvalidProvider(e.typeKey, "unknown binding kind")
	}
}

// IsBound reports whether typeKey can be resolved by this container or any
// wired import.
func (c *Container) IsBound(typeKey string, opts ...Option) bool {
	if c.IsBoundLocally(typeKey, opts...) {
		return true
	}
	c.mu.RLock()
	imports := c.imports
	c.mu.RUnlock()
	for _, imp := range imports {
		if imp.IsBound(typeKey, opts...) {
			return true
		}
	}
	return false
}

// IsBoundLocally reports whether typeKey is bound by this container itself,
// ignoring imports.
func (c *Container) IsBoundLocally(typeKey string, opts ...Option) bool {
	o := resolveOptions(opts)
	c.mu.RLock()
	_, ok := c.entries[compositeKey(typeKey, o.name)]
	c.mu.RUnlock()
	return ok
}

// DisposeSingleton removes and returns the cached instance for typeKey,
// applying its disposer hook. It returns false if no built instance exists.
// The binding itself stays registered; a lazy singleton will rebuild on the
// next Get.
func (c *Container) DisposeSingleton(typeKey string, opts ...Option) (any, bool) {
	o := resolveOptions(opts)

	c.mu.RLock()
	e, ok := c.entries[compositeKey(typeKey, o.name)]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.built {
		return nil, false
	}
	instance := e.instance
	e.instance = nil
	e.built = false
	disposeInstance(instance, e.disposer)
	return instance, true
}

// Commit finalizes the container for lookups. Registrations after Commit are
// rejected. Commit is idempotent.
func (c *Container) Commit() {
	c.mu.Lock()
	c.committed = true
	c.mu.Unlock()
}

// Committed reports whether the container has been finalized.
func (c *Container) Committed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.committed
}

// MergeFrom adds other as a fallback resolution source. Wiring is a
// read-only link: the importer never writes into the imported container,
// and disposing the importer leaves the imported container untouched.
func (c *Container) MergeFrom(other *Container) {
	c.mu.Lock()
	c.imports = append(c.imports, other)
	c.mu.Unlock()
}

// Imports returns the wired fallback containers in merge order.
func (c *Container) Imports() []*Container {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]*Container, len(c.imports))
	copy(result, c.imports)
	return result
}

// Dispose tears down the container: every built instance has its disposer
// hook applied and is reported to onEach (which may be nil). Bindings and
// import links are cleared; the container must not be used afterwards.
func (c *Container) Dispose(onEach func(any)) {
	c.mu.Lock()
	order := c.order
	entries := c.entries
	c.entries = make(map[string]*entry)
	c.order = nil
	c.imports = nil
	c.mu.Unlock()

	for _, key := range order {
		e := entries[key]
		e.mu.Lock()
		if e.built && e.instance != nil {
			disposeInstance(e.instance, e.disposer)
			if onEach != nil {
				onEach(e.instance)
			}
		}
		e.instance = nil
		e.built = false
		e.mu.Unlock()
	}
}

// Registrations returns info about all local bindings in registration order.
func (c *Container) Registrations() []RegistrationInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]RegistrationInfo, 0, len(c.order))
	for _, key := range c.order {
		e := c.entries[key]
		e.mu.Lock()
		result = append(result, RegistrationInfo{
			TypeKey: e.typeKey,
			Name:    e.name,
			Kind:    e.kind,
			Built:   e.built,
		})
		e.mu.Unlock()
	}
	return result
}

func disposeInstance(instance any, disposer func(any)) {
	if disposer != nil {
		disposer(instance)
		return
	}
	if closer, ok := instance.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
}

// callProvider invokes a binding provider. Supported signatures:
//
//	func() T
//	func() (T, error)
//	func(context.Context) T / (T, error)
//	func(*Container) T / (T, error)
func (c *Container) callProvider(typeKey string, provider any) (any, error) {
	fn := reflect.ValueOf(provider)
	if fn.Kind() != reflect.Func {
		return nil, errors.InvalidProvider(typeKey, "provider must be a function")
	}

	fnType := fn.Type()
	var args []reflect.Value
	switch fnType.NumIn() {
	case 0:
	case 1:
		if fnType.In(0).String() == "context.Context" {
			args = []reflect.Value{reflect.ValueOf(context.Background())}
		} else {
			args = []reflect.Value{reflect.ValueOf(c)}
		}
	default:
		return nil, errors.InvalidProvider(typeKey, "provider takes at most one argument")
	}

	return handleProviderResults(typeKey, fn.Call(args))
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

func handleProviderResults(typeKey string, results []reflect.Value) (any, error) {
	switch len(results) {
	case 1:
		return results[0].Interface(), nil
	case 2:
		if !results[1].Type().Implements(errorType) {
			return nil, errors.InvalidProvider(typeKey, "second return value must be an error")
		}
		if err, _ := results[1].Interface().(error); err != nil {
			return nil, err
		}
		return results[0].Interface(), nil
	default:
		return nil, errors.InvalidProvider(typeKey, "provider must return (instance) or (instance, error)")
	}
}
