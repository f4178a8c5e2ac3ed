// Where: internal/app/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package app

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/kramester/tk-config-cbfx2/internal/config"
	"github.com/kramester/tk-config-cbfx2/internal/ports"
	"github.com/kramester/tk-config-cbfx2/internal/resolver"
	"github.com/kramester/tk-config-cbfx2/internal/tracking"
	"github.com/kramester/tk-config-cbfx2/internal/version"
)

// Dependencies holds all injected dependencies required for CLI command
// execution. This structure enables dependency injection for testing and
// allows swapping implementations of various subsystems.
type Dependencies struct {
	ProjectDir string
	Out        io.Writer
	Store      tracking.Store
	Fetcher    ports.BundleFetcher
	Launcher   ports.Launcher
	Platform   tracking.Platform
	Env        resolver.Environ
}

// CLI defines the command-line interface structure parsed by Kong.
// It contains global flags and all subcommand definitions.
type CLI struct {
	ProjectDir string     `short:"p" name:"project-dir" help:"Project config directory (default: current directory)"`
	EnvFile    string     `name:"env-file" help:"Path to .env file"`
	Launch     LaunchCmd  `cmd:"" help:"Resolve the environment and start an application"`
	Resolve    ResolveCmd `cmd:"" help:"Resolve the environment without applying it (dry run)"`
	Env        EnvCmd     `cmd:"" name:"env" help:"Show the final resolved values"`
	Sync       SyncCmd    `cmd:"" help:"Pull the pipeline config bundle from the studio bucket"`
	Version    VersionCmd `cmd:"" help:"Show version information"`
}

type VersionCmd struct{}

// ContextFlags are the launch-context inputs shared by launch, resolve,
// and env.
type ContextFlags struct {
	Engine     string `help:"Host engine name (e.g. maya)"`
	AppVersion string `name:"app-version" help:"Host application version"`
	User       int    `help:"Current user id"`
	UserName   string `name:"user-name" help:"Current user login"`
	Task       int    `help:"Current task id"`
	Entity     string `help:"Context entity as Type:Code or Type:Code:ID"`
}

type LaunchCmd struct {
	ContextFlags
	AppPath string   `arg:"" optional:"" help:"Application executable (default: engine executable from pipeline.yml)"`
	AppArgs []string `arg:"" optional:"" help:"Arguments passed to the application"`
}

type ResolveCmd struct {
	ContextFlags
	AppPath string `arg:"" optional:"" help:"Application executable"`
}

type EnvCmd struct {
	ContextFlags
}

type SyncCmd struct{}

// Run is the main entry point for CLI command execution. It parses the
// command-line arguments, identifies the requested command, and
// dispatches to the appropriate handler. Returns 0 on success, 1 on error.
func Run(args []string, deps Dependencies) int {
	out := deps.Out
	if out == nil {
		out = os.Stdout
	}

	if err := config.EnsureGlobalConfig(); err != nil {
		return exitWithError(out, err)
	}

	if len(args) == 0 {
		fmt.Fprintln(out, "usage: launchenv <launch|resolve|env|sync|version> [flags]")
		return 1
	}

	cli := CLI{}
	parser, err := kong.New(&cli, kong.Name("launchenv"))
	if err != nil {
		return exitWithError(out, err)
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintln(out, err)
		return 1
	}

	// Load environment file if provided or if .env exists in current directory
	if cli.EnvFile != "" {
		if err := godotenv.Load(cli.EnvFile); err != nil {
			fmt.Fprintf(out, "Warning: failed to load env file %s: %v\n", cli.EnvFile, err)
		}
	} else if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			fmt.Fprintf(out, "Warning: failed to load .env: %v\n", err)
		}
	}

	command := ctx.Command()
	if exitCode, handled := dispatchCommand(command, cli, deps, out); handled {
		return exitCode
	}

	fmt.Fprintln(out, "unknown command")
	return 1
}

type commandHandler func(CLI, Dependencies, io.Writer) int

type prefixHandler struct {
	prefix  string
	handler commandHandler
}

func dispatchCommand(command string, cli CLI, deps Dependencies, out io.Writer) (int, bool) {
	exactHandlers := map[string]commandHandler{
		"env":     runEnv,
		"sync":    runSync,
		"version": func(_ CLI, _ Dependencies, out io.Writer) int { return runVersion(out) },
	}

	if handler, ok := exactHandlers[command]; ok {
		return handler(cli, deps, out), true
	}

	prefixHandlers := []prefixHandler{
		{prefix: "launch", handler: runLaunch},
		{prefix: "resolve", handler: runResolve},
	}

	for _, entry := range prefixHandlers {
		if strings.HasPrefix(command, entry.prefix) {
			return entry.handler(cli, deps, out), true
		}
	}

	return 1, false
}

// runVersion prints the version information of the CLI.
func runVersion(out io.Writer) int {
	fmt.Fprintln(out, version.GetVersion())
	return 0
}
