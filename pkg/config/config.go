// Package config loads pipeline settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-fragments/pkg/include"
	"github.com/goliatone/go-fragments/pkg/interp"
)

// Config describes how pages are processed.
type Config struct {
	// Base is prepended to "<name>.html" when loading fragments. It may be a
	// directory, an fs.FS prefix or an http(s) URL.
	Base string `yaml:"base"`
	// PageURL, when set and Base is empty, derives Base from the page's
	// directory.
	PageURL string `yaml:"page_url"`
	// Attribute is the include marker.
	Attribute string `yaml:"attribute"`
	// Delimiters is the default interpolation pair.
	Delimiters string `yaml:"delimiters"`
	// Timeout caps each remote fragment fetch.
	Timeout time.Duration `yaml:"timeout"`
	// Sanitize filters fragment markup through the bluemonday policy.
	Sanitize bool `yaml:"sanitize"`
	// MaxIncludes bounds one include pass; zero keeps the default.
	MaxIncludes int `yaml:"max_includes"`
	// Data seeds the host scope used by interpolation.
	Data map[string]any `yaml:"data"`
}

// Default returns the settings used when no file is provided.
func Default() Config {
	return Config{
		Attribute:   include.DefaultAttribute,
		Delimiters:  string(interp.DefaultDelimiters),
		Timeout:     10 * time.Second,
		MaxIncludes: include.DefaultMaxIncludes,
	}
}

// Load reads and validates a YAML file, layering it over Default.
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return Config{}, errors.New("config: path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings. Delimiters are compiled here so a bad pair
// is reported before any page is processed.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Attribute) == "" {
		return errors.New("config: attribute must not be empty")
	}
	if _, err := interp.Compile(interp.Delimiters(c.Delimiters)); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Timeout < 0 {
		return errors.New("config: timeout must not be negative")
	}
	if c.MaxIncludes < 0 {
		return errors.New("config: max_includes must not be negative")
	}
	return nil
}

// ResolvedBase returns Base, or the directory of PageURL when Base is empty.
func (c Config) ResolvedBase() string {
	if c.Base != "" {
		return c.Base
	}
	return include.PageDirectory(c.PageURL)
}
