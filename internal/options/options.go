// Package options provides a small generic functional-options helper shared
// by the configurable sigframe types.
package options

// Option configures a target of type T, typically a pointer to a config struct.
type Option[T any] interface {
	apply(T) error
}

// Func adapts a function to the Option interface.
type Func[T any] func(T) error

// apply implements Option.
func (f Func[T]) apply(target T) error {
	return f(target)
}

// New wraps a fallible setter as an Option.
func New[T any](fn func(T) error) Func[T] {
	return Func[T](fn)
}

// NoError wraps a setter that cannot fail as an Option.
func NoError[T any](fn func(T)) Func[T] {
	return func(target T) error {
		fn(target)
		return nil
	}
}

// Apply applies opts to target in order and stops at the first error.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
