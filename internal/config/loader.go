// Package config loads auracore configuration from YAML, JSON or TOML and
// overlays flag and environment values bound through viper.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and are replaced by Defaults.
type Config struct {
	Addr      string `json:"addr" yaml:"addr" toml:"addr"`
	ModelPath string `json:"model_path" yaml:"model_path" toml:"model_path"`

	MemoryPoolMB int `json:"memory_pool_mb" yaml:"memory_pool_mb" toml:"memory_pool_mb"`
	PoolBlockKB  int `json:"pool_block_kb" yaml:"pool_block_kb" toml:"pool_block_kb"`

	ContextSize int `json:"context_size" yaml:"context_size" toml:"context_size"`
	Threads     int `json:"threads" yaml:"threads" toml:"threads"`
	// PinCores enables CPU pinning of the inference worker. Nil means true.
	PinCores   *bool  `json:"pin_cores" yaml:"pin_cores" toml:"pin_cores"`
	SysfsRoot  string `json:"sysfs_root" yaml:"sysfs_root" toml:"sysfs_root"`
	ProcfsRoot string `json:"procfs_root" yaml:"procfs_root" toml:"procfs_root"`

	GenerateTimeoutMS int `json:"generate_timeout_ms" yaml:"generate_timeout_ms" toml:"generate_timeout_ms"`
	MaxQueueDepth     int `json:"max_queue_depth" yaml:"max_queue_depth" toml:"max_queue_depth"`
	MaxWaitMS         int `json:"max_wait_ms" yaml:"max_wait_ms" toml:"max_wait_ms"`
	DrainTimeoutMS    int `json:"drain_timeout_ms" yaml:"drain_timeout_ms" toml:"drain_timeout_ms"`

	LogLevel  string `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat string `json:"log_format" yaml:"log_format" toml:"log_format"`

	MaxBodyBytes int64    `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	CORSEnabled  bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSOrigins  []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
}

// Defaults returns the configuration used when nothing is specified.
func Defaults() Config {
	pin := true
	return Config{
		Addr:              ":8080",
		MemoryPoolMB:      16,
		PoolBlockKB:       64,
		ContextSize:       2048,
		PinCores:          &pin,
		SysfsRoot:         "/sys",
		ProcfsRoot:        "/proc",
		GenerateTimeoutMS: 120_000,
		MaxQueueDepth:     32,
		MaxWaitMS:         30_000,
		DrainTimeoutMS:    10_000,
		LogLevel:          "info",
		LogFormat:         "console",
		MaxBodyBytes:      32 << 20,
	}
}

// Load reads a configuration file based on its extension and fills unset
// fields from Defaults.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".json":
		err = json.Unmarshal(b, &cfg)
	case ".toml":
		err = toml.Unmarshal(b, &cfg)
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg.WithDefaults(), nil
}

// WithDefaults returns c with every zero field replaced by its default.
func (c Config) WithDefaults() Config {
	d := Defaults()
	if c.Addr == "" {
		c.Addr = d.Addr
	}
	if c.MemoryPoolMB <= 0 {
		c.MemoryPoolMB = d.MemoryPoolMB
	}
	if c.PoolBlockKB <= 0 {
		c.PoolBlockKB = d.PoolBlockKB
	}
	if c.ContextSize <= 0 {
		c.ContextSize = d.ContextSize
	}
	if c.PinCores == nil {
		c.PinCores = d.PinCores
	}
	if c.SysfsRoot == "" {
		c.SysfsRoot = d.SysfsRoot
	}
	if c.ProcfsRoot == "" {
		c.ProcfsRoot = d.ProcfsRoot
	}
	if c.GenerateTimeoutMS <= 0 {
		c.GenerateTimeoutMS = d.GenerateTimeoutMS
	}
	if c.MaxQueueDepth <= 0 {
		c.MaxQueueDepth = d.MaxQueueDepth
	}
	if c.MaxWaitMS <= 0 {
		c.MaxWaitMS = d.MaxWaitMS
	}
	if c.DrainTimeoutMS <= 0 {
		c.DrainTimeoutMS = d.DrainTimeoutMS
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = d.LogFormat
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = d.MaxBodyBytes
	}
	return c
}

// Validate checks value ranges. Call it after WithDefaults.
func (c Config) Validate() error {
	var errs []error
	if c.PoolBlockKB < 4 {
		errs = append(errs, fmt.Errorf("pool_block_kb must be >= 4, got %d", c.PoolBlockKB))
	}
	if c.MemoryPoolMB*1024 < c.PoolBlockKB {
		errs = append(errs, fmt.Errorf("memory_pool_mb (%d MiB) smaller than one block (%d KiB)", c.MemoryPoolMB, c.PoolBlockKB))
	}
	if c.Threads < 0 {
		errs = append(errs, fmt.Errorf("threads must be >= 0, got %d", c.Threads))
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format must be console or json, got %q", c.LogFormat))
	}
	return errors.Join(errs...)
}

// Pinning reports whether CPU pinning is enabled.
func (c Config) Pinning() bool { return c.PinCores == nil || *c.PinCores }

func (c Config) PoolSizeBytes() int { return c.MemoryPoolMB << 20 }

func (c Config) PoolBlockBytes() int { return c.PoolBlockKB << 10 }

func (c Config) GenerateTimeout() time.Duration { return ms(c.GenerateTimeoutMS) }

func (c Config) MaxWait() time.Duration { return ms(c.MaxWaitMS) }

func (c Config) DrainTimeout() time.Duration { return ms(c.DrainTimeoutMS) }

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

// ApplyOverrides copies every key explicitly set in v (a changed flag, an
// AURACORE_* environment variable, or an explicit Set) onto cfg.
func ApplyOverrides(cfg Config, v *viper.Viper) Config {
	if v == nil {
		return cfg
	}
	str := func(key string, dst *string) {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}
	num := func(key string, dst *int) {
		if v.IsSet(key) {
			*dst = v.GetInt(key)
		}
	}
	str("addr", &cfg.Addr)
	str("model_path", &cfg.ModelPath)
	num("memory_pool_mb", &cfg.MemoryPoolMB)
	num("pool_block_kb", &cfg.PoolBlockKB)
	num("context_size", &cfg.ContextSize)
	num("threads", &cfg.Threads)
	if v.IsSet("pin_cores") {
		pin := v.GetBool("pin_cores")
		cfg.PinCores = &pin
	}
	str("sysfs_root", &cfg.SysfsRoot)
	str("procfs_root", &cfg.ProcfsRoot)
	num("generate_timeout_ms", &cfg.GenerateTimeoutMS)
	num("max_queue_depth", &cfg.MaxQueueDepth)
	num("max_wait_ms", &cfg.MaxWaitMS)
	num("drain_timeout_ms", &cfg.DrainTimeoutMS)
	str("log_level", &cfg.LogLevel)
	str("log_format", &cfg.LogFormat)
	if v.IsSet("max_body_bytes") {
		cfg.MaxBodyBytes = v.GetInt64("max_body_bytes")
	}
	if v.IsSet("cors_enabled") {
		cfg.CORSEnabled = v.GetBool("cors_enabled")
	}
	if v.IsSet("cors_origins") {
		cfg.CORSOrigins = v.GetStringSlice("cors_origins")
	}
	return cfg
}
