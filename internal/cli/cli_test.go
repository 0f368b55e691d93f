package cli

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auracore/internal/affinity"
	"auracore/internal/config"
	"auracore/internal/manager"
)

type echoAdapter struct{ fail bool }

func (a echoAdapter) Start(string, manager.InferParams) (manager.InferSession, error) {
	if a.fail {
		return nil, errors.New("bad weights")
	}
	return echoEngine{}, nil
}

type echoEngine struct{}

func (echoEngine) Generate(_ context.Context, prompt string, _ func(string) error) (manager.FinalResult, error) {
	return manager.FinalResult{Content: "local: " + prompt}, nil
}

func (echoEngine) Close() error { return nil }

type harness struct {
	model string
	out   bytes.Buffer
	err   bytes.Buffer
	opts  Options
}

func newHarness(t *testing.T, a manager.InferenceAdapter) *harness {
	t.Helper()
	h := &harness{model: filepath.Join(t.TempDir(), "bitnet.gguf")}
	require.NoError(t, os.WriteFile(h.model, []byte("GGUF"), 0o644))
	h.opts = Options{Out: &h.out, Err: &h.err, Adapter: a, Binder: affinity.NoopBinder{}}
	return h
}

// run executes the root command with host-independent roots and a small pool.
func (h *harness) run(t *testing.T, stdin io.Reader, args ...string) error {
	t.Helper()
	h.out.Reset()
	h.err.Reset()
	cmd := NewRootCmd(h.opts)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	base := []string{
		"--sysfs-root", t.TempDir(),
		"--procfs-root", t.TempDir(),
		"--memory-pool-mb", "1",
		"--log-level", "off",
	}
	cmd.SetArgs(append(args[:1:1], append(base, args[1:]...)...))
	return cmd.Execute()
}

func decodeOut(t *testing.T, h *harness) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &m), "output %q", h.out.String())
	return m
}

func TestVersionCommand(t *testing.T) {
	h := newHarness(t, echoAdapter{})
	require.NoError(t, h.run(t, nil, "version"))
	assert.Equal(t, "1.0.0-aurakai-core\n", h.out.String())
}

func TestRequestCommand(t *testing.T) {
	h := newHarness(t, echoAdapter{})
	require.NoError(t, h.run(t, nil, "request", "report", "STATUS"))
	m := decodeOut(t, h)
	assert.Equal(t, "success", m["status"])
	assert.Equal(t, "consciousness_active", m["type"])

	require.Error(t, h.run(t, nil, "request"), "text is required")
}

func TestGenerateCommand(t *testing.T) {
	h := newHarness(t, echoAdapter{})
	require.NoError(t, h.run(t, nil, "generate", "--model-path", h.model, "hello", "there"))
	assert.Equal(t, "local: hello there\n", h.out.String())

	h = newHarness(t, echoAdapter{fail: true})
	err := h.run(t, nil, "generate", "--model-path", h.model, "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model_load_failed")
}

func TestGenerateCommandMissingModel(t *testing.T) {
	h := newHarness(t, echoAdapter{})
	err := h.run(t, nil, "generate", "--model-path", filepath.Join(t.TempDir(), "none"), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model_load_failed")
}

func TestAnalyzeBootCommand(t *testing.T) {
	h := newHarness(t, echoAdapter{})
	img := make([]byte, 4096)
	copy(img, "ANDROID!")
	binary.LittleEndian.PutUint32(img[40:], 2)

	require.NoError(t, h.run(t, bytes.NewReader(img), "analyze-boot", "-"))
	m := decodeOut(t, h)
	assert.Equal(t, "secure", m["status"])
	assert.Equal(t, "android_boot", m["format"])
	assert.Equal(t, float64(2), m["header_version"])

	small := filepath.Join(t.TempDir(), "small.img")
	require.NoError(t, os.WriteFile(small, make([]byte, 100), 0o644))
	require.NoError(t, h.run(t, nil, "analyze-boot", small))
	m = decodeOut(t, h)
	assert.Equal(t, "failed", m["status"])
	assert.Equal(t, "invalid_size", m["error"])
	assert.Equal(t, float64(100), m["received_bytes"])

	require.Error(t, h.run(t, nil, "analyze-boot", filepath.Join(t.TempDir(), "missing.img")))
}

func TestMetricsCommandHonoursEnvAndConfigFile(t *testing.T) {
	h := newHarness(t, echoAdapter{})
	require.NoError(t, h.run(t, nil, "metrics"))
	m := decodeOut(t, h)
	assert.Equal(t, "active", m["status"])
	assert.Equal(t, float64(1<<20), m["memory_pool_size"])
	assert.Equal(t, 12.5, m["cpu_usage"])

	cfgPath := filepath.Join(t.TempDir(), "auracore.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("memory_pool_mb: 4\npool_block_kb: 128\n"), 0o644))
	cmd := NewRootCmd(h.opts)
	h.out.Reset()
	cmd.SetArgs([]string{"metrics", "--config", cfgPath, "--log-level", "off", "--procfs-root", t.TempDir()})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, float64(4<<20), decodeOut(t, h)["memory_pool_size"], "file value applies when no flag is set")

	t.Setenv("AURACORE_MEMORY_POOL_MB", "2")
	cmd = NewRootCmd(h.opts)
	h.out.Reset()
	cmd.SetArgs([]string{"metrics", "--config", cfgPath, "--log-level", "off", "--procfs-root", t.TempDir()})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, float64(2<<20), decodeOut(t, h)["memory_pool_size"], "environment overrides the file")
}

func TestInvalidConfigRejected(t *testing.T) {
	h := newHarness(t, echoAdapter{})
	err := h.run(t, nil, "metrics", "--log-format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_format")
}

func TestTopologyCommandFallsBack(t *testing.T) {
	h := newHarness(t, echoAdapter{})
	require.NoError(t, h.run(t, nil, "topology"))
	out := h.out.String()
	assert.Contains(t, out, "source:")
	assert.Contains(t, out, "fallback")
	assert.Contains(t, out, "warning:")
}

func TestDoctorCommand(t *testing.T) {
	h := newHarness(t, echoAdapter{})
	require.NoError(t, h.run(t, nil, "doctor", "--model-path", h.model))
	m := decodeOut(t, h)
	assert.Equal(t, true, m["model_found"])
	assert.Equal(t, h.model, m["model_path"])

	require.NoError(t, h.run(t, nil, "doctor", "--load", "--model-path", h.model))
	m = decodeOut(t, h)
	assert.Contains(t, m["events"], manager.EventSessionReady)

	err := h.run(t, nil, "doctor", "--model-path", filepath.Join(t.TempDir(), "nope.gguf"))
	require.Error(t, err)
	assert.Contains(t, h.out.String(), `"model_found": false`)
}

func TestServeRoundTrip(t *testing.T) {
	h := newHarness(t, echoAdapter{})
	a := newApp(h.opts)
	cfg := config.Defaults()
	cfg.ModelPath = h.model
	cfg.MemoryPoolMB = 1
	cfg.SysfsRoot = t.TempDir()
	cfg.ProcfsRoot = t.TempDir()
	cfg.LogLevel = "off"

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.serve(ctx, cfg, ln) }()

	base := fmt.Sprintf("http://%s", ln.Addr())
	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/readyz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Post(base+"/v1/generate", "application/json", strings.NewReader(`{"prompt":"ping"}`))
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "local: ping", body["text"])

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}
