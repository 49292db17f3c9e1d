// Package config loads the fieldpath CLI configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"fieldpath/lookup"
	"fieldpath/marker"
	"fieldpath/resolve"
)

// Config is the YAML configuration of the CLI.
//
//	tag: editor
//	reflection: true
//	case_sensitive_properties: false
//	suggestions: 3
type Config struct {
	// Tag is the struct tag key holding editor labels.
	Tag string `yaml:"tag"`
	// Reflection enables the reflection fallback of the resolver.
	Reflection *bool `yaml:"reflection"`
	// CaseSensitiveProperties makes getter names match exactly.
	CaseSensitiveProperties bool `yaml:"case_sensitive_properties"`
	// Suggestions is the number of close names reported with a failure.
	Suggestions *int `yaml:"suggestions"`
}

// Default returns the configuration used without a file.
func Default() *Config {
	reflection := true
	suggestions := lookup.DefaultSuggestions

	return &Config{
		Tag:         marker.DefaultTagKey,
		Reflection:  &reflection,
		Suggestions: &suggestions,
	}
}

// Load reads and validates the configuration at path. Keys missing from the
// file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return Parse(data)
}

// Parse decodes and validates a YAML configuration.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for values no component accepts.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Tag) == "" {
		return errors.New("tag must not be empty")
	}

	if strings.ContainsAny(cfg.Tag, " :\"`") {
		return fmt.Errorf("tag %q is not a valid struct tag key", cfg.Tag)
	}

	if cfg.Suggestions != nil && *cfg.Suggestions < 0 {
		return fmt.Errorf("suggestions must not be negative, got %d", *cfg.Suggestions)
	}

	return nil
}

// ReflectionEnabled reports the effective reflection setting.
func (c *Config) ReflectionEnabled() bool {
	return c.Reflection == nil || *c.Reflection
}

// SuggestionLimit reports the effective number of suggestions.
func (c *Config) SuggestionLimit() int {
	if c.Suggestions == nil {
		return lookup.DefaultSuggestions
	}

	return *c.Suggestions
}

// ResolverOptions translates the configuration into resolver options.
func (c *Config) ResolverOptions() []resolve.Option {
	return []resolve.Option{
		resolve.WithReflection(c.ReflectionEnabled()),
		resolve.WithCaseSensitiveProperties(c.CaseSensitiveProperties),
	}
}

// Index returns the label index for the configured tag.
func (c *Config) Index() *marker.Index {
	return marker.NewIndex(c.Tag)
}

// Finder builds a lookup.Finder honouring every setting.
func (c *Config) Finder() *lookup.Finder {
	return lookup.New(
		lookup.WithIndex(c.Index()),
		lookup.WithResolver(resolve.New(c.ResolverOptions()...)),
		lookup.WithSuggestions(c.SuggestionLimit()),
	)
}
