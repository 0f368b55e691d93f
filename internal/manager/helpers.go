package manager

import (
	"fmt"

	"auracore/internal/registry"
)

// resolveModelPath expands '~' and picks the first model when path is a
// directory.
func resolveModelPath(path string) (string, error) {
	return registry.Resolve(path)
}

// startEngine calls the adapter, turning a panic inside the runtime into an
// error so a broken model file cannot take the process down.
func startEngine(a InferenceAdapter, path string, params InferParams) (sess InferSession, err error) {
	if a == nil {
		return nil, ErrDependencyUnavailable("no inference adapter configured")
	}
	defer func() {
		if r := recover(); r != nil {
			sess, err = nil, fmt.Errorf("adapter panic: %v", r)
		}
	}()
	sess, err = a.Start(path, params)
	if err == nil && sess == nil {
		err = fmt.Errorf("adapter returned no session")
	}
	return sess, err
}

// threadCount picks the engine thread count: the explicit override, else one
// thread per core in the mask.
func threadCount(override, maskLen int) int {
	if override > 0 {
		return override
	}
	if maskLen > 0 {
		return maskLen
	}
	return 1
}
