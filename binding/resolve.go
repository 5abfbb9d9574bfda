package binding

import "reflect"

// KeyOf derives the canonical type key for T. Interfaces and structs both
// work: KeyOf[UserRepo]() yields "pkg.UserRepo".
func KeyOf[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

// Bind registers a provider for T under its canonical type key.
func Bind[T any](c *Container, kind Kind, provider any, opts ...Option) error {
	return c.Register(kind, KeyOf[T](), provider, opts...)
}

// BindValue registers a pre-created value for T.
func BindValue[T any](c *Container, value T, opts ...Option) error {
	return c.Register(Instance, KeyOf[T](), value, opts...)
}

// Resolve provides type-safe resolution for T.
func Resolve[T any](c *Container, opts ...Option) (T, error) {
	instance, err := c.Get(KeyOf[T](), opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return instance.(T), nil
}

// MustResolve resolves T or panics.
func MustResolve[T any](c *Container, opts ...Option) T {
	v, err := Resolve[T](c, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

// ReplaceValue swaps the binding for T with a literal value.
func ReplaceValue[T any](c *Container, value T, opts ...Option) error {
	return c.Replace(KeyOf[T](), value, opts...)
}

// Bound reports whether T can be resolved by c or its wired imports.
func Bound[T any](c *Container, opts ...Option) bool {
	return c.IsBound(KeyOf[T](), opts...)
}
