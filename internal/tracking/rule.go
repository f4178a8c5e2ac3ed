// Where: internal/tracking/rule.go
// What: Variable-definition record types.
// Why: Model tracking-system env var entities as explicit typed structs.
package tracking

import (
	"fmt"
	"runtime"
)

// MergeMethod declares how a rule's values combine with an existing value
// for the same key.
type MergeMethod string

const (
	MergeReplace MergeMethod = "replace"
	MergePrepend MergeMethod = "prepend"
	MergeAppend  MergeMethod = "append"
)

// ParseMergeMethod validates a raw merge method field.
func ParseMergeMethod(raw string) (MergeMethod, error) {
	switch MergeMethod(raw) {
	case MergeReplace, MergePrepend, MergeAppend:
		return MergeMethod(raw), nil
	}
	return "", fmt.Errorf("unknown merge method %q", raw)
}

// Platform is the OS tag used to pick which raw value block applies.
type Platform string

const (
	PlatformWindows Platform = "windows"
	PlatformLinux   Platform = "linux"
	PlatformMac     Platform = "mac"
)

// CurrentPlatform maps the running OS to a platform tag. An unrecognized
// OS is a configuration error.
func CurrentPlatform() (Platform, error) {
	return platformForGOOS(runtime.GOOS)
}

func platformForGOOS(goos string) (Platform, error) {
	switch goos {
	case "windows":
		return PlatformWindows, nil
	case "linux":
		return PlatformLinux, nil
	case "darwin":
		return PlatformMac, nil
	}
	return "", fmt.Errorf("unsupported platform %q", goos)
}

// VariableRule is one variable-definition record from the tracking system.
// Scope slices use nil to mean "all"; an empty non-nil slice matches
// nothing.
type VariableRule struct {
	ID              int
	Code            string
	Status          string
	MergeMethod     string
	HostMinVersion  string
	HostMaxVersion  string
	EnvWindows      string
	EnvLinux        string
	EnvMac          string
	Projects        []int
	Users           []int
	HostEngines     []string
	ExcludeProjects []int
	ExcludeUsers    []int
}

// EnvBlock returns the raw multi-line value block for a platform.
func (r VariableRule) EnvBlock(platform Platform) string {
	switch platform {
	case PlatformWindows:
		return r.EnvWindows
	case PlatformLinux:
		return r.EnvLinux
	case PlatformMac:
		return r.EnvMac
	}
	return ""
}
