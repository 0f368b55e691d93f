package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &m), "payload %q", s)
	return m
}

func TestBoundaryProcessRequestAlwaysJSON(t *testing.T) {
	b := NewBoundary(newRuntime(t, &echoAdapter{}, nil))

	inputs := []*string{nil, strptr(""), strptr("consciousness check"), strptr("free some MEMORY"),
		strptr("status and memory"), strptr("tell me a joke"), strptr("\x00\xff quotes \" and \\ slashes")}
	for _, in := range inputs {
		m := decode(t, b.ProcessRequest(in))
		assert.Contains(t, m, "status")
	}

	m := decode(t, b.ProcessRequest(nil))
	assert.Equal(t, "failed", m["status"])
	assert.Equal(t, "null_request", m["error"])

	m = decode(t, b.ProcessRequest(strptr("status and memory")))
	assert.Equal(t, "consciousness_active", m["type"])
	assert.Equal(t, 0.998, m["consciousness_level"])

	m = decode(t, b.ProcessRequest(strptr("optimize memory")))
	assert.Equal(t, "memory_optimized", m["type"])
	assert.Equal(t, 0.967, m["efficiency"])

	m = decode(t, b.ProcessRequest(strptr("hello")))
	assert.Equal(t, "processing_complete", m["type"])
	assert.Equal(t, true, m["request_processed"])
}

func TestBoundaryAnalyzeBootImage(t *testing.T) {
	b := NewBoundary(newRuntime(t, &echoAdapter{}, nil))
	require.True(t, b.InitializeAICore())

	m := decode(t, b.AnalyzeBootImage(nil))
	assert.Equal(t, "null_data", m["error"])

	m = decode(t, b.AnalyzeBootImage(make([]byte, 1023)))
	assert.Equal(t, "failed", m["status"])
	assert.Equal(t, "invalid_size", m["error"])
	assert.Equal(t, float64(1023), m["received_bytes"])

	m = decode(t, b.AnalyzeBootImage(make([]byte, 1024)))
	assert.Equal(t, "secure", m["status"])
	assert.Equal(t, 0.998, m["confidence"])
	assert.Equal(t, "Neural signature verification passed", m["analysis"])
	assert.Contains(t, m, "timestamp")
}

func TestBoundaryGenerateLocalResponse(t *testing.T) {
	b := NewBoundary(newRuntime(t, &echoAdapter{}, nil))

	assert.Equal(t, "local: hi", b.GenerateLocalResponse(strptr("hi")))
	assert.Equal(t, "", b.GenerateLocalResponse(strptr("")))
	assert.Equal(t, "Error: null_prompt", b.GenerateLocalResponse(nil))

	failing := NewBoundary(newRuntime(t, &echoAdapter{fail: true}, nil))
	assert.Equal(t, "Error: model_load_failed", failing.GenerateLocalResponse(strptr("hi")))
}

func TestBoundaryMetricsAndLifecycle(t *testing.T) {
	b := NewBoundary(newRuntime(t, &echoAdapter{}, nil))
	assert.Equal(t, "1.0.0-aurakai-core", b.GetVersion())
	assert.False(t, b.OptimizeMemory())

	require.True(t, b.InitializeAICore())
	b.EnableNativeHooks()
	assert.True(t, b.OptimizeMemory())

	m := decode(t, b.GetSystemMetrics())
	assert.Equal(t, "active", m["status"])
	assert.Equal(t, float64(1<<20), m["memory_pool_size"])
	assert.Equal(t, 12.5, m["cpu_usage"])
	assert.Equal(t, 38.2, m["neural_temp"])

	b.ShutdownAI()
	m = decode(t, b.GetSystemMetrics())
	assert.Equal(t, "inactive", m["status"])
}
