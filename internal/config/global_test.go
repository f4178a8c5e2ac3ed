// Where: internal/config/global_test.go
// What: Global config path resolution and round-trip tests.
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGlobalConfigPathOverrides(t *testing.T) {
	t.Run("config path wins", func(t *testing.T) {
		t.Setenv("LAUNCHENV_CONFIG_PATH", "/tmp/custom.yaml")
		t.Setenv("LAUNCHENV_CONFIG_HOME", "/tmp/home")

		path, err := GlobalConfigPath()
		if err != nil {
			t.Fatal(err)
		}
		if path != "/tmp/custom.yaml" {
			t.Fatalf("path = %q", path)
		}
	})

	t.Run("config home appends file name", func(t *testing.T) {
		t.Setenv("LAUNCHENV_CONFIG_PATH", "")
		t.Setenv("LAUNCHENV_CONFIG_HOME", "/tmp/home")

		path, err := GlobalConfigPath()
		if err != nil {
			t.Fatal(err)
		}
		if path != filepath.Join("/tmp/home", "config.yaml") {
			t.Fatalf("path = %q", path)
		}
	})
}

func TestEnsureGlobalConfigCreatesDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")
	t.Setenv("LAUNCHENV_CONFIG_PATH", path)

	if err := EnsureGlobalConfig(); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadGlobalConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Version != 1 || cfg.Tracking.RulesTable != "env-var-rules" {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestEnsureGlobalConfigLeavesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	t.Setenv("LAUNCHENV_CONFIG_PATH", path)

	custom := DefaultGlobalConfig()
	custom.Tracking.Endpoint = "http://localhost:8000"
	if err := SaveGlobalConfig(path, custom); err != nil {
		t.Fatal(err)
	}

	if err := EnsureGlobalConfig(); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadGlobalConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Tracking.Endpoint != "http://localhost:8000" {
		t.Fatalf("existing config was overwritten: %+v", cfg)
	}
}

func TestLoadGlobalConfigMissingFile(t *testing.T) {
	_, err := LoadGlobalConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if !os.IsNotExist(err) {
		t.Fatalf("err = %v, want not-exist", err)
	}
}
