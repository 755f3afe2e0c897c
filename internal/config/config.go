// Package config loads the HCL configuration file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Config holds runtime configuration.
type Config struct {
	Endpoint string
	Timeout  time.Duration
	LogLevel string
	Images   Images
	Tracing  Tracing
}

// Images configures card image retrieval.
type Images struct {
	Enabled       bool
	RatePerSecond float64
	Burst         int
	MaxBytes      int64
}

// Tracing configures render-pass spans.
type Tracing struct {
	Enabled bool
}

// Default returns the configuration used when no file is given.
// An empty endpoint means the embedded fallback payload is shown.
func Default() *Config {
	return &Config{
		Endpoint: "",
		Timeout:  15 * time.Second,
		LogLevel: "info",
		Images: Images{
			Enabled:       true,
			RatePerSecond: 8,
			Burst:         4,
			MaxBytes:      8 << 20,
		},
	}
}

// file mirrors the HCL layout. Absent attributes decode to zero values and
// keep the defaults.
type file struct {
	Endpoint string        `hcl:"endpoint,optional"`
	Timeout  string        `hcl:"timeout,optional"`
	LogLevel string        `hcl:"log_level,optional"`
	Images   *imagesBlock  `hcl:"images,block"`
	Tracing  *tracingBlock `hcl:"tracing,block"`
}

type imagesBlock struct {
	Disabled      bool     `hcl:"disabled,optional"`
	RatePerSecond *float64 `hcl:"rate_per_second,optional"`
	Burst         int      `hcl:"burst,optional"`
	MaxBytes      int64    `hcl:"max_bytes,optional"`
}

type tracingBlock struct {
	Enabled bool `hcl:"enabled,optional"`
}

// Load reads the file at path (if any) over the defaults, then applies the
// SDUI_ENDPOINT and LOG_LEVEL environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load config %q: %w", path, err)
		}
		if err := decode(cfg, path, src); err != nil {
			return nil, err
		}
	}
	if v := os.Getenv("SDUI_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return cfg, nil
}

// Parse decodes HCL source over the defaults without consulting the
// environment overrides. filename is used in diagnostics.
func Parse(filename string, src []byte) (*Config, error) {
	cfg := Default()
	if err := decode(cfg, filename, src); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(cfg *Config, filename string, src []byte) error {
	var f file
	if err := hclsimple.Decode(filename, src, evalContext(), &f); err != nil {
		return fmt.Errorf("parse config %q: %w", filename, err)
	}
	if f.Endpoint != "" {
		cfg.Endpoint = f.Endpoint
	}
	if f.Timeout != "" {
		d, err := time.ParseDuration(f.Timeout)
		if err != nil {
			return fmt.Errorf("parse config %q: timeout: %w", filename, err)
		}
		cfg.Timeout = d
	}
	if f.LogLevel != "" {
		cfg.LogLevel = f.LogLevel
	}
	if f.Images != nil {
		cfg.Images.Enabled = !f.Images.Disabled
		// Zero or less disables the limit, so only an absent attribute keeps the default.
		if f.Images.RatePerSecond != nil {
			cfg.Images.RatePerSecond = *f.Images.RatePerSecond
		}
		if f.Images.Burst != 0 {
			cfg.Images.Burst = f.Images.Burst
		}
		if f.Images.MaxBytes != 0 {
			cfg.Images.MaxBytes = f.Images.MaxBytes
		}
	}
	if f.Tracing != nil {
		cfg.Tracing.Enabled = f.Tracing.Enabled
	}
	return nil
}

// evalContext exposes the process environment as env["NAME"] and a few
// string functions to configuration expressions.
func evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	env := cty.MapValEmpty(cty.String)
	if len(vars) > 0 {
		env = cty.MapVal(vars)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": env},
		Functions: map[string]function.Function{
			"coalesce": stdlib.CoalesceFunc,
			"format":   stdlib.FormatFunc,
			"lower":    stdlib.LowerFunc,
			"upper":    stdlib.UpperFunc,
		},
	}
}
