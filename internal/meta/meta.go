// Where: internal/meta/meta.go
// What: CLI-local metadata constants.
// Why: Keep project identity and fixed env var names in one place.
package meta

const (
	// Project Identity
	AppName   = "launchenv"
	Slug      = "launchenv"
	EnvPrefix = "LAUNCHENV"

	// Directory Layout
	HomeDir = ".launchenv"

	// TouchedVarsEnv collects every variable name the resolver applied so
	// host applications (and farm submitters) can forward them downstream.
	TouchedVarsEnv = "SGTK_ENV_VARS"
	// DebugEnv enables verbose resolver diagnostics when present.
	DebugEnv = "TK_DEBUG"

	// Task status sentinels used by the tracking system.
	StatusReady      = "rdy"
	StatusInProgress = "ip"
	StatusActive     = "act"
)
