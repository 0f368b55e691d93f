package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "addr: :9999\nmodel_path: /m/bitnet.gguf\nmemory_pool_mb: 32\npin_cores: false\ncors_origins: [\"http://a\", \"http://b\"]\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.ModelPath != "/m/bitnet.gguf" || cfg.MemoryPoolMB != 32 || cfg.Pinning() {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b" {
		t.Fatalf("unexpected origins: %v", cfg.CORSOrigins)
	}
	// Unset fields come from defaults.
	if cfg.PoolBlockKB != 64 || cfg.MaxQueueDepth != 32 || cfg.LogFormat != "console" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"addr":":7070","model_path":"/m","threads":4,"generate_timeout_ms":500,"log_format":"json"}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7070" || cfg.ModelPath != "/m" || cfg.Threads != 4 || cfg.GenerateTimeout() != 500*time.Millisecond || cfg.LogFormat != "json" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if !cfg.Pinning() {
		t.Fatalf("pinning should default to on")
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "addr=\":8081\"\nmodel_path=\"/x\"\nmax_queue_depth=9\nmax_wait_ms=100\nsysfs_root=\"/tmp/sys\"\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8081" || cfg.ModelPath != "/x" || cfg.MaxQueueDepth != 9 || cfg.MaxWait() != 100*time.Millisecond || cfg.SysfsRoot != "/tmp/sys" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
}

func TestDefaultsValidate(t *testing.T) {
	cfg := Defaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if cfg.PoolSizeBytes() != 16<<20 || cfg.PoolBlockBytes() != 64<<10 {
		t.Fatalf("unexpected pool sizes: %d %d", cfg.PoolSizeBytes(), cfg.PoolBlockBytes())
	}
}

func TestValidateRejects(t *testing.T) {
	cfg := Defaults()
	cfg.PoolBlockKB = 2
	cfg.Threads = -1
	cfg.LogFormat = "xml"
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"pool_block_kb", "threads", "log_format"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q missing %q", err, want)
		}
	}
}

func TestApplyOverrides(t *testing.T) {
	v := viper.New()
	v.Set("addr", ":1234")
	v.Set("pin_cores", false)
	v.Set("max_queue_depth", 3)
	v.Set("cors_origins", []string{"http://x"})

	cfg := ApplyOverrides(Defaults(), v)
	if cfg.Addr != ":1234" || cfg.Pinning() || cfg.MaxQueueDepth != 3 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://x" {
		t.Fatalf("unexpected origins: %v", cfg.CORSOrigins)
	}
	// Untouched keys keep their values.
	if cfg.MemoryPoolMB != 16 || cfg.LogLevel != "info" {
		t.Fatalf("unexpected change: %+v", cfg)
	}
}

func TestApplyOverridesEnv(t *testing.T) {
	t.Setenv("AURACORE_MODEL_PATH", "/env/model.gguf")
	v := viper.New()
	v.SetEnvPrefix("AURACORE")
	v.AutomaticEnv()

	cfg := ApplyOverrides(Defaults(), v)
	if cfg.ModelPath != "/env/model.gguf" {
		t.Fatalf("env override not applied: %q", cfg.ModelPath)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("unset env changed addr: %q", cfg.Addr)
	}
}
