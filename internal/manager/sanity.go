package manager

import (
	"os"
	"runtime"

	"auracore/internal/affinity"
)

// SanityReport describes runtime checks for external dependencies.
type SanityReport struct {
	LlamaBuilt     bool   `json:"llama_built"`
	ModelFound     bool   `json:"model_found"`
	ModelPath      string `json:"model_path,omitempty"`
	PinSupported   bool   `json:"pin_supported"`
	PinningEnabled bool   `json:"pinning_enabled"`
	NumCPU         int    `json:"num_cpu"`
	CurrentMask    string `json:"current_mask,omitempty"`
	Error          string `json:"error,omitempty"`
}

// SanityCheck validates that the model and runtime dependencies are present.
// It does not mutate state and is safe to call at any time.
func (m *Manager) SanityCheck(modelPath string) SanityReport {
	m.mu.Lock()
	binder := m.binder
	m.mu.Unlock()

	r := SanityReport{
		LlamaBuilt:     llamaBuilt,
		PinningEnabled: binder != nil,
		NumCPU:         runtime.NumCPU(),
	}
	if cur, err := affinity.Current(); err == nil {
		r.PinSupported = true
		r.CurrentMask = cur.String()
	}
	resolved, err := resolveModelPath(modelPath)
	if err != nil {
		r.Error = err.Error()
		return r
	}
	r.ModelPath = resolved
	if fi, err := os.Stat(resolved); err == nil && !fi.IsDir() {
		r.ModelFound = true
	}
	return r
}
