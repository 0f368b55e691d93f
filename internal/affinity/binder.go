package affinity

import "errors"

// ErrUnsupported is returned by binders on platforms without thread pinning.
var ErrUnsupported = errors.New("affinity: thread pinning not supported on this platform")

// ErrEmptyMask is returned when binding to a mask with no CPUs.
var ErrEmptyMask = errors.New("affinity: empty mask")

// Binder pins the calling OS thread to a mask. Callers must hold the thread
// with runtime.LockOSThread for the binding to mean anything.
type Binder interface {
	Bind(Mask) error
}

// NoopBinder accepts every mask and pins nothing.
type NoopBinder struct{}

func (NoopBinder) Bind(Mask) error { return nil }

// BinderFunc adapts a function to Binder.
type BinderFunc func(Mask) error

func (f BinderFunc) Bind(m Mask) error { return f(m) }
