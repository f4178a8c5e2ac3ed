package envutil

import (
	"os"
	"testing"
)

func TestHostEnvKey(t *testing.T) {
	t.Setenv("ENV_PREFIX", "")
	if got := HostEnvKey("CONFIG_PATH"); got != "LAUNCHENV_CONFIG_PATH" {
		t.Fatalf("HostEnvKey = %q", got)
	}

	t.Setenv("ENV_PREFIX", "CUSTOM")
	if got := HostEnvKey("CONFIG_PATH"); got != "CUSTOM_CONFIG_PATH" {
		t.Fatalf("HostEnvKey with override = %q", got)
	}
}

func TestGetHostEnv(t *testing.T) {
	t.Setenv("ENV_PREFIX", "")
	t.Setenv("LAUNCHENV_TESTVAL", "abc")

	if got := GetHostEnv("TESTVAL"); got != "abc" {
		t.Fatalf("GetHostEnv = %q", got)
	}
}

func TestPathListHelpers(t *testing.T) {
	sep := string(os.PathListSeparator)

	if got := AppendPath("", "a"); got != "a" {
		t.Fatalf("AppendPath empty = %q", got)
	}
	if got := AppendPath("a", "b"); got != "a"+sep+"b" {
		t.Fatalf("AppendPath = %q", got)
	}
	if got := PrependPath("", "a"); got != "a" {
		t.Fatalf("PrependPath empty = %q", got)
	}
	if got := PrependPath("a", "b"); got != "b"+sep+"a" {
		t.Fatalf("PrependPath = %q", got)
	}
}
