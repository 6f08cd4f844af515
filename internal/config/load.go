package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/dshills/adreel/internal/config/loader"
)

type loadOptions struct {
	fs  loader.FileSystem
	env bool
}

// Option configures Load.
type Option func(*loadOptions)

// WithFS reads config files from fsys instead of the OS.
func WithFS(fsys loader.FileSystem) Option {
	return func(o *loadOptions) { o.fs = fsys }
}

// WithoutEnv skips environment overrides.
func WithoutEnv() Option {
	return func(o *loadOptions) { o.env = false }
}

// Load builds a validated Config. An empty path uses defaults and the
// environment only; a non-empty path must exist.
func Load(path string, opts ...Option) (*Config, error) {
	o := loadOptions{fs: loader.DefaultFS(), env: true}
	for _, opt := range opts {
		opt(&o)
	}

	base, err := toMap(Default())
	if err != nil {
		return nil, err
	}
	layers := []map[string]any{base}

	if path != "" {
		l, err := loader.ForPath(o.fs, path)
		if err != nil {
			return nil, err
		}
		file, err := l.Load()
		if err != nil {
			return nil, err
		}
		if file == nil {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		layers = append(layers, file)
	}

	if o.env {
		env, err := loader.NewEnvLoader(EnvPrefix).Load()
		if err != nil {
			return nil, err
		}
		layers = append(layers, env)
	}

	cfg, err := fromMap(loader.Merge(layers...))
	if err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// toMap renders cfg in its generic map form so it can be merged.
func toMap(cfg *Config) (map[string]any, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// fromMap decodes a merged map into a Config.
func fromMap(m map[string]any) (*Config, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
