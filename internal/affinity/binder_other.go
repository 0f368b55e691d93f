//go:build !linux

package affinity

type unsupportedBinder struct{}

// DefaultBinder returns a binder that always reports ErrUnsupported.
func DefaultBinder() Binder { return unsupportedBinder{} }

func (unsupportedBinder) Bind(Mask) error { return ErrUnsupported }

// Current is unavailable off Linux.
func Current() (Mask, error) { return Mask{}, ErrUnsupported }
