package manager

import (
	"errors"
	"fmt"
)

// ErrSessionNotReady is returned when no usable session exists: none was
// created, or it is shutting down.
var ErrSessionNotReady = errors.New("session not ready")

// IsSessionNotReady reports whether err is ErrSessionNotReady.
func IsSessionNotReady(err error) bool { return errors.Is(err, ErrSessionNotReady) }

// ModelLoadError reports a failed session construction. No session is
// retained; the next GetOrCreate retries from scratch.
type ModelLoadError struct {
	Path string
	Err  error
}

func (e *ModelLoadError) Error() string {
	return fmt.Sprintf("load model %q: %v", e.Path, e.Err)
}

func (e *ModelLoadError) Unwrap() error { return e.Err }

// IsModelLoadError reports whether err is (or wraps) a *ModelLoadError.
func IsModelLoadError(err error) bool {
	var le *ModelLoadError
	return errors.As(err, &le)
}

// tooBusyError signals queue timeout/overflow for 429 mapping.
type tooBusyError struct{ stage string }

func (e tooBusyError) Error() string { return "too busy: " + e.stage }

// IsTooBusy reports whether err indicates backpressure (return 429).
func IsTooBusy(err error) bool {
	var tb tooBusyError
	return errors.As(err, &tb)
}

// dependencyUnavailableError signals a missing inference runtime (e.g. a
// build without llama support).
type dependencyUnavailableError struct{ msg string }

func (e dependencyUnavailableError) Error() string { return e.msg }

// ErrDependencyUnavailable constructs a dependencyUnavailableError.
func ErrDependencyUnavailable(msg string) error { return dependencyUnavailableError{msg: msg} }

// IsDependencyUnavailable reports whether err indicates a missing/failed runtime dependency.
func IsDependencyUnavailable(err error) bool {
	var de dependencyUnavailableError
	return errors.As(err, &de)
}
