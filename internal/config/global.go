// Where: internal/config/global.go
// What: Global config load/save helpers.
// Why: Manage ~/.launchenv/config.yaml consistently.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/kramester/tk-config-cbfx2/internal/envutil"
	"github.com/kramester/tk-config-cbfx2/internal/meta"
	"gopkg.in/yaml.v3"
)

// Host env suffixes recognized for config path overrides.
const (
	HostSuffixConfigPath = "CONFIG_PATH"
	HostSuffixConfigHome = "CONFIG_HOME"
)

// GlobalConfig represents the ~/.launchenv/config.yaml configuration.
// It points at the tracking mirror and the shared config bundle.
type GlobalConfig struct {
	Version  int            `yaml:"version"`
	Tracking TrackingConfig `yaml:"tracking"`
	Sync     SyncConfig     `yaml:"sync,omitempty"`
}

// TrackingConfig locates the tracking-database mirror tables.
type TrackingConfig struct {
	Endpoint      string `yaml:"endpoint,omitempty"`
	RulesTable    string `yaml:"rules_table"`
	ProjectsTable string `yaml:"projects_table"`
	TasksTable    string `yaml:"tasks_table"`
}

// SyncConfig locates the shared pipeline config bundle in S3.
type SyncConfig struct {
	Endpoint string `yaml:"endpoint,omitempty"`
	Bucket   string `yaml:"bucket,omitempty"`
	Prefix   string `yaml:"prefix,omitempty"`
}

// DefaultGlobalConfig returns an initialized GlobalConfig with version and
// table names set.
func DefaultGlobalConfig() GlobalConfig {
	return GlobalConfig{
		Version: 1,
		Tracking: TrackingConfig{
			RulesTable:    "env-var-rules",
			ProjectsTable: "projects",
			TasksTable:    "tasks",
		},
	}
}

// GlobalConfigPath returns the path to the global config file.
// Respects LAUNCHENV_CONFIG_PATH and LAUNCHENV_CONFIG_HOME overrides.
func GlobalConfigPath() (string, error) {
	if override := strings.TrimSpace(envutil.GetHostEnv(HostSuffixConfigPath)); override != "" {
		path := override
		if !filepath.IsAbs(path) {
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
		}
		return path, nil
	}
	if override := strings.TrimSpace(envutil.GetHostEnv(HostSuffixConfigHome)); override != "" {
		return filepath.Join(override, "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, meta.HomeDir, "config.yaml"), nil
}

// EnsureGlobalConfig creates the global config file if it doesn't exist.
func EnsureGlobalConfig() error {
	path, err := GlobalConfigPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return SaveGlobalConfig(path, DefaultGlobalConfig())
		}
		return err
	}
	return nil
}

// LoadGlobalConfig reads and parses the global configuration file.
func LoadGlobalConfig(path string) (GlobalConfig, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return GlobalConfig{}, err
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(payload, &cfg); err != nil {
		return GlobalConfig{}, err
	}
	return cfg, nil
}

// SaveGlobalConfig writes a GlobalConfig to the specified path.
func SaveGlobalConfig(path string, cfg GlobalConfig) error {
	payload, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, payload, 0o644)
}
