package manager

import "context"

// InferenceAdapter abstracts the model runtime used by the Manager.
// Concrete implementations (e.g., llama.cpp) should satisfy this interface.
type InferenceAdapter interface {
	// Start opens the model at modelPath and returns a reusable session.
	Start(modelPath string, params InferParams) (InferSession, error)
}

// InferSession is one loaded model. The Manager calls Generate from a single
// worker goroutine only, so implementations need not be thread-safe.
type InferSession interface {
	// Generate streams tokens for the given prompt. The onToken callback will be invoked
	// for each token. Implementations must return when the context is canceled.
	Generate(ctx context.Context, prompt string, onToken func(string) error) (FinalResult, error)
	// Close releases any resources associated with the session.
	Close() error
}

// ThreadTuner is implemented by sessions whose compute thread count can be
// set after load. The Manager sizes it to the affinity mask.
type ThreadTuner interface {
	SetThreads(n int)
}

// InferParams captures generation parameters passed to the adapter.
type InferParams struct {
	ContextSize   int
	Temperature   float32
	TopP          float32
	TopK          int
	MaxTokens     int
	Stop          []string
	Seed          int
	RepeatPenalty float32
}

// FinalResult summarizes the generation after streaming.
type FinalResult struct {
	Content      string
	Usage        Usage
	FinishReason string
}

// Usage contains token accounting.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}
