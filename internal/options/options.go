// Package options provides generic functional-option plumbing shared by
// the public packages. An Option is a plain function so that packages can
// declare their own option aliases without wrapper types.
package options

// Option configures a target of type T and may reject invalid values.
type Option[T any] func(T) error

// NoError adapts a setter that cannot fail into an Option.
func NoError[T any](fn func(T)) Option[T] {
	return func(target T) error {
		fn(target)
		return nil
	}
}

// Apply runs each option against target in order, stopping at the first
// error.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if err := opt(target); err != nil {
			return err
		}
	}

	return nil
}
