package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/mchmarny/sitenav/pkg/menu"
	"github.com/mchmarny/sitenav/pkg/server"
	"github.com/mchmarny/sitenav/pkg/site"
)

const (
	// DefaultPath is the config file read when none is given.
	DefaultPath = "sitenav.yaml"

	// EnvPrefix prefixes environment overrides, e.g. SITENAV_PORT.
	EnvPrefix = "SITENAV_"
)

// Config is the sitenav configuration.
type Config struct {
	SiteDir string `koanf:"site_dir" yaml:"site_dir"`
	OutDir  string `koanf:"out_dir" yaml:"out_dir"`
	Host    string `koanf:"host" yaml:"host,omitempty"`
	Port    int    `koanf:"port" yaml:"port"`
	TLSCert string `koanf:"tls_cert" yaml:"tls_cert,omitempty"`
	TLSKey  string `koanf:"tls_key" yaml:"tls_key,omitempty"`

	// LogLevel overrides LOG_LEVEL when set.
	LogLevel string `koanf:"log_level" yaml:"log_level,omitempty"`

	Concurrency int          `koanf:"concurrency" yaml:"concurrency"`
	Include     []string     `koanf:"include" yaml:"include"`
	Exclude     []string     `koanf:"exclude" yaml:"exclude,omitempty"`
	LogoAlt     string       `koanf:"logo_alt" yaml:"logo_alt"`
	Entries     []menu.Entry `koanf:"menu" yaml:"menu,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		SiteDir:     ".",
		OutDir:      "public",
		Port:        server.DefaultPort,
		Concurrency: site.DefaultConcurrency,
		Include:     append([]string(nil), site.DefaultInclude...),
		LogoAlt:     menu.DefaultLogoAlt,
	}
}

// Sample returns the defaults with the default menu spelled out, as a
// starting point for a config file.
func Sample() *Config {
	cfg := DefaultConfig()
	cfg.Entries = menu.Default().Entries()
	return cfg
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (SITENAV_*). A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// SITENAV_SITE_DIR -> site_dir, etc.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.SiteDir == "" {
		return errors.New("site_dir is required")
	}
	if c.OutDir == "" {
		return errors.New("out_dir is required")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 0 and 65535", c.Port)
	}
	if c.Concurrency < 1 {
		return errors.New("concurrency must be at least 1")
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return errors.New("tls_cert and tls_key must be set together")
	}
	if err := c.Menu().Validate(); err != nil {
		return fmt.Errorf("invalid menu: %w", err)
	}
	return nil
}

// Menu returns the configured menu, or the default menu when none is set.
func (c *Config) Menu() menu.Menu {
	opts := []menu.Option{}
	if c.LogoAlt != "" {
		opts = append(opts, menu.WithLogoAlt(c.LogoAlt))
	}

	if len(c.Entries) == 0 {
		return menu.Default(opts...)
	}
	return menu.New(c.Entries, opts...)
}

// Renderer returns a site renderer for this configuration.
func (c *Config) Renderer() *site.Renderer {
	return &site.Renderer{
		Menu:        c.Menu(),
		Include:     c.Include,
		Exclude:     c.Exclude,
		Concurrency: c.Concurrency,
	}
}

// ServerOptions returns the listener options for this configuration.
func (c *Config) ServerOptions() []server.Option {
	opts := []server.Option{
		server.WithHost(c.Host),
		server.WithPort(c.Port),
	}

	if c.TLSCert != "" {
		opts = append(opts, server.WithTLS(server.TLSConfig{
			CertFile: c.TLSCert,
			KeyFile:  c.TLSKey,
		}))
	}

	return opts
}
