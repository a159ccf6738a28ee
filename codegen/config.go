package codegen

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Output layout modes.
const (
	ModeSingle = "single"
	ModeMulti  = "multi"
)

// Generation targets.
const (
	TargetTypeScript = "typescript"
	TargetGo         = "go"
	TargetGraphQL    = "graphql"
)

// Config controls a generation run. Zero fields fall back to defaults
// when Normalize is called.
type Config struct {
	// Schema is the database schema to introspect. Default "public".
	Schema string `yaml:"schema"`
	// Mode is the output layout: single concatenated document or one
	// document per table plus an index. Default single.
	Mode string `yaml:"mode"`
	// Target is the generated language. Default typescript.
	Target string `yaml:"target"`
	// Package is the package name of the Go target. Default "models".
	Package string `yaml:"package"`
	// Out is the output directory consumed by the external writer.
	// The generator itself never touches it.
	Out string `yaml:"out"`
}

// ParseConfig decodes a yaml document into a normalized Config.
func ParseConfig(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("codegen: parse config: %w", err)
	}
	if err := c.Normalize(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Normalize fills defaults and validates enumerated fields.
func (c *Config) Normalize() error {
	if c.Schema == "" {
		c.Schema = "public"
	}
	if c.Mode == "" {
		c.Mode = ModeSingle
	}
	if c.Target == "" {
		c.Target = TargetTypeScript
	}
	if c.Package == "" {
		c.Package = "models"
	}
	switch c.Mode {
	case ModeSingle, ModeMulti:
	default:
		return fmt.Errorf("codegen: unknown mode %q", c.Mode)
	}
	switch c.Target {
	case TargetTypeScript, TargetGo, TargetGraphQL:
	default:
		return fmt.Errorf("codegen: unknown target %q", c.Target)
	}
	return nil
}
