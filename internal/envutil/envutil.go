// Package envutil provides helper functions for environment variable handling.
package envutil

import (
	"os"
	"strings"

	"github.com/kramester/tk-config-cbfx2/internal/meta"
)

// HostEnvKey constructs a host-level environment variable name
// by combining the env prefix with the given suffix.
// Example: HostEnvKey("CONFIG_PATH") returns "LAUNCHENV_CONFIG_PATH".
func HostEnvKey(suffix string) string {
	prefix := strings.TrimSpace(os.Getenv("ENV_PREFIX"))
	if prefix == "" {
		prefix = meta.EnvPrefix
	}
	return prefix + "_" + suffix
}

// GetHostEnv retrieves a host-level environment variable.
// Example: GetHostEnv("CONFIG_PATH") returns the value of LAUNCHENV_CONFIG_PATH.
func GetHostEnv(suffix string) string {
	return os.Getenv(HostEnvKey(suffix))
}

// AppendPath joins value onto the end of an os.PathListSeparator separated
// list, skipping the separator when the list is empty.
func AppendPath(list, value string) string {
	if list == "" {
		return value
	}
	return list + string(os.PathListSeparator) + value
}

// PrependPath joins value onto the front of an os.PathListSeparator
// separated list, skipping the separator when the list is empty.
func PrependPath(list, value string) string {
	if list == "" {
		return value
	}
	return value + string(os.PathListSeparator) + list
}
