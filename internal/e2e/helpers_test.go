package e2e

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"auracore/internal/affinity"
	"auracore/internal/core"
	"auracore/internal/httpapi"
	"auracore/internal/manager"
)

// scriptedAdapter opens engines that echo the prompt. When gate is set,
// each generate call signals started and blocks until gate is closed.
type scriptedAdapter struct {
	starts  atomic.Int32
	gate    chan struct{}
	started chan struct{}
}

func (a *scriptedAdapter) Start(string, manager.InferParams) (manager.InferSession, error) {
	a.starts.Add(1)
	return &scriptedEngine{a: a}, nil
}

type scriptedEngine struct{ a *scriptedAdapter }

func (e *scriptedEngine) Generate(ctx context.Context, prompt string, onToken func(string) error) (manager.FinalResult, error) {
	if e.a.gate != nil {
		select {
		case e.a.started <- struct{}{}:
		default:
		}
		select {
		case <-e.a.gate:
		case <-ctx.Done():
			return manager.FinalResult{}, ctx.Err()
		}
	}
	return manager.FinalResult{Content: "local: " + prompt}, nil
}

func (e *scriptedEngine) Close() error { return nil }

// createTempModel writes an empty .gguf file into a fresh directory and
// returns the directory.
func createTempModel(t *testing.T, name string) string {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte("GGUF"), 0o644); err != nil {
		t.Fatalf("write temp model %s: %v", p, err)
	}
	return dir
}

func newServer(t *testing.T, modelPath string, a manager.InferenceAdapter, mutate func(*manager.ManagerConfig)) (*httptest.Server, *core.Runtime) {
	t.Helper()
	mc := manager.ManagerConfig{
		Adapter: a,
		Binder:  affinity.NoopBinder{},
		MaxWait: time.Second,
	}
	if mutate != nil {
		mutate(&mc)
	}
	empty := t.TempDir()
	rt := core.New(core.Config{
		ModelPath:     modelPath,
		PoolSize:      1 << 20,
		PoolBlockSize: 64 << 10,
		ProcfsRoot:    empty,
		SysfsRoot:     empty,
		Manager:       mc,
	})
	srv := httptest.NewServer(httpapi.NewMux(rt))
	t.Cleanup(func() {
		srv.Close()
		rt.Shutdown()
	})
	return srv, rt
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func httpPost(t *testing.T, url, contentType string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func httpPostJSON(t *testing.T, url string, payload string) (*http.Response, []byte) {
	t.Helper()
	return httpPost(t, url, "application/json", []byte(payload))
}
