// Where: internal/config/pipeline.go
// What: Project pipeline config load helpers.
// Why: pipeline.yml describes the project, its engines, and the templates file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// PipelineFileName is the per-project config file name.
const PipelineFileName = "pipeline.yml"

// PipelineConfig is the parsed pipeline.yml for a project directory.
type PipelineConfig struct {
	Version   int          `yaml:"version"`
	Templates string       `yaml:"templates,omitempty"`
	Project   ProjectSpec  `yaml:"project"`
	Engines   []EngineSpec `yaml:"engines,omitempty"`
}

// ProjectSpec identifies the tracking project this config belongs to.
type ProjectSpec struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
}

// EngineSpec declares a launchable host application.
type EngineSpec struct {
	Name       string `yaml:"name"`
	Executable string `yaml:"executable"`
	Version    string `yaml:"version,omitempty"`
}

// Engine returns the spec for a named engine.
func (c PipelineConfig) Engine(name string) (EngineSpec, bool) {
	for _, engine := range c.Engines {
		if engine.Name == name {
			return engine, true
		}
	}
	return EngineSpec{}, false
}

// TemplatesPath resolves the templates file location relative to the
// project directory. Defaults to templates.yml next to pipeline.yml.
func (c PipelineConfig) TemplatesPath(projectDir string) string {
	name := c.Templates
	if name == "" {
		name = "templates.yml"
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(projectDir, name)
}

// LoadPipelineConfig reads, validates, and parses a project's
// pipeline.yml. Schema violations are returned as errors so a broken
// config is caught before any tracking query runs.
func LoadPipelineConfig(projectDir string) (PipelineConfig, error) {
	path := filepath.Join(projectDir, PipelineFileName)
	payload, err := os.ReadFile(path)
	if err != nil {
		return PipelineConfig{}, err
	}

	if err := validatePipelineConfig(payload); err != nil {
		return PipelineConfig{}, fmt.Errorf("validate %s: %w", path, err)
	}

	var cfg PipelineConfig
	if err := yaml.Unmarshal(payload, &cfg); err != nil {
		return PipelineConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}
