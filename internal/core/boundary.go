package core

import (
	"context"
	"encoding/json"
)

// GenerateErrorPrefix marks a failed GenerateLocalResponse. Host code checks
// for it before showing text to the user.
const GenerateErrorPrefix = "Error: "

// Boundary is the host-facing call surface. Every method returns a flat
// JSON object (or a plain value) and never panics on bad input.
type Boundary struct {
	rt *Runtime
}

func NewBoundary(rt *Runtime) *Boundary { return &Boundary{rt: rt} }

func (b *Boundary) GetVersion() string { return b.rt.Version() }

func (b *Boundary) InitializeAICore() bool { return b.rt.Initialize() }

func (b *Boundary) ShutdownAI() { b.rt.Shutdown() }

func (b *Boundary) OptimizeMemory() bool { return b.rt.OptimizeMemory() }

func (b *Boundary) EnableNativeHooks() { b.rt.EnableNativeHooks() }

// ProcessRequest routes text. A nil text yields
// {"status":"failed","error":"null_request"}.
func (b *Boundary) ProcessRequest(text *string) string {
	return marshal(b.rt.ProcessRequest(text))
}

// AnalyzeBootImage inspects a boot image.
func (b *Boundary) AnalyzeBootImage(data []byte) string {
	res, _ := b.rt.AnalyzeBootImage(data)
	return marshal(res)
}

// GetSystemMetrics returns the metrics snapshot.
func (b *Boundary) GetSystemMetrics() string {
	return marshal(b.rt.MetricsSnapshot())
}

// GenerateLocalResponse returns generated text, "" for an empty prompt, or
// GenerateErrorPrefix followed by a failure code.
func (b *Boundary) GenerateLocalResponse(prompt *string) string {
	res, err := b.rt.Generate(context.Background(), prompt)
	if err != nil {
		return GenerateErrorPrefix + Code(err)
	}
	return res.Text
}

// marshal encodes v. The payload types hold only strings, numbers and bools,
// so the fallback is unreachable in practice.
func marshal(v any) string {
	out, err := json.Marshal(v)
	if err != nil {
		return `{"status":"failed","error":"internal"}`
	}
	return string(out)
}
