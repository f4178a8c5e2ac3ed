// Where: internal/app/launch.go
// What: The launch command.
// Why: Resolve the environment and start the host application.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/kramester/tk-config-cbfx2/internal/workflows"
)

// runLaunch executes the 'launch' command: resolve the environment from
// tracking rules, apply it, flip the task status, and start the app.
func runLaunch(cli CLI, deps Dependencies, out io.Writer) int {
	ctxInfo, err := resolveCommandContext(cli, deps, cli.Launch.ContextFlags, cli.Launch.AppPath, cli.Launch.AppArgs, out)
	if err != nil {
		return exitWithError(out, err)
	}
	if ctxInfo.Launch.AppPath == "" {
		return exitWithError(out, fmt.Errorf("no application path: pass one or configure the engine in pipeline.yml"))
	}

	workflow, err := launchWorkflow(ctxInfo, deps)
	if err != nil {
		return exitWithError(out, err)
	}

	result, err := workflow.Run(context.Background(), workflows.LaunchRequest{
		Context:   ctxInfo.Launch,
		Templates: ctxInfo.Templates,
		Env:       deps.Env,
	})
	if err != nil {
		return exitWithError(out, err)
	}

	ctxInfo.Console.Debugf("touched %d variables", len(result.Touched))
	if result.Launched {
		fmt.Fprintf(out, "Launched %s\n", ctxInfo.Launch.AppPath)
	}
	return 0
}
