// Where: internal/app/command_context.go
// What: Shared command helpers.
// Why: Build the launch context and resolver wiring once for every command.
package app

import (
	"fmt"
	"io"
	"os"

	"github.com/kramester/tk-config-cbfx2/internal/config"
	"github.com/kramester/tk-config-cbfx2/internal/launch"
	"github.com/kramester/tk-config-cbfx2/internal/pipeline"
	"github.com/kramester/tk-config-cbfx2/internal/resolver"
	"github.com/kramester/tk-config-cbfx2/internal/tracking"
	"github.com/kramester/tk-config-cbfx2/internal/ui"
	"github.com/kramester/tk-config-cbfx2/internal/workflows"
)

func exitWithError(out io.Writer, err error) int {
	fmt.Fprintln(out, err)
	return 1
}

// commandContext bundles everything a resolution command needs.
type commandContext struct {
	Launch    launch.Context
	Pipeline  config.PipelineConfig
	Templates pipeline.TemplatesFile
	Platform  tracking.Platform
	Console   *ui.Console
}

// resolveCommandContext loads the project config and normalizes CLI flags
// into a launch context. appPath may be empty for dry-run commands.
func resolveCommandContext(
	cli CLI,
	deps Dependencies,
	flags ContextFlags,
	appPath string,
	appArgs []string,
	out io.Writer,
) (commandContext, error) {
	projectDir := cli.ProjectDir
	if projectDir == "" {
		projectDir = deps.ProjectDir
	}
	if projectDir == "" {
		dir, err := os.Getwd()
		if err != nil {
			return commandContext{}, err
		}
		projectDir = dir
	}

	pipelineCfg, err := config.LoadPipelineConfig(projectDir)
	if err != nil {
		return commandContext{}, err
	}

	entity, err := launch.ParseEntity(flags.Entity)
	if err != nil {
		return commandContext{}, err
	}

	appVersion := flags.AppVersion
	if appPath == "" && flags.Engine != "" {
		if spec, ok := pipelineCfg.Engine(flags.Engine); ok {
			appPath = spec.Executable
			if appVersion == "" {
				appVersion = spec.Version
			}
		}
	}

	platform := deps.Platform
	if platform == "" {
		platform, err = tracking.CurrentPlatform()
		if err != nil {
			return commandContext{}, err
		}
	}

	console := ui.New(out)

	templates, err := pipeline.LoadTemplates(pipelineCfg.TemplatesPath(projectDir))
	if err != nil {
		if !os.IsNotExist(err) {
			return commandContext{}, err
		}
		console.Debugf("no templates file for project %q", pipelineCfg.Project.Name)
	}

	return commandContext{
		Launch: launch.Context{
			ProjectID:   pipelineCfg.Project.ID,
			ProjectName: pipelineCfg.Project.Name,
			UserID:      flags.User,
			UserName:    flags.UserName,
			TaskID:      flags.Task,
			Entity:      entity,
			AppPath:     appPath,
			AppArgs:     appArgs,
			Version:     appVersion,
			Engine:      flags.Engine,
		},
		Pipeline:  pipelineCfg,
		Templates: templates,
		Platform:  platform,
		Console:   console,
	}, nil
}

// launchWorkflow wires the resolver engine and workflow from the command
// context and injected dependencies.
func launchWorkflow(ctxInfo commandContext, deps Dependencies) (workflows.LaunchWorkflow, error) {
	if deps.Store == nil {
		return workflows.LaunchWorkflow{}, fmt.Errorf("tracking store is not configured")
	}

	engine := resolver.Engine{
		Rules:    deps.Store,
		Platform: ctxInfo.Platform,
		Warnf:    ctxInfo.Console.Warnf,
		Debugf:   ctxInfo.Console.Debugf,
	}
	return workflows.NewLaunchWorkflow(
		engine,
		deps.Store,
		deps.Store,
		deps.Launcher,
		ctxInfo.Console.Warnf,
		ctxInfo.Console.Debugf,
	), nil
}
