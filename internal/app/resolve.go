// Where: internal/app/resolve.go
// What: The resolve and env commands.
// Why: Show resolution results without mutating the OS environment.
package app

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/kramester/tk-config-cbfx2/internal/workflows"
)

// runResolve executes the 'resolve' command: a dry run that prints the
// classified operations and the values they produce.
func runResolve(cli CLI, deps Dependencies, out io.Writer) int {
	result, ctxInfo, code := dryRun(cli, deps, cli.Resolve.ContextFlags, cli.Resolve.AppPath, out)
	if code != 0 {
		return code
	}

	printBucket(out, "Replace", result.Operations.Replace)
	printBucket(out, "Prepend", result.Operations.Prepend)
	printBucket(out, "Append", result.Operations.Append)

	ctxInfo.Console.Header("Resolved:")
	for _, key := range result.Touched {
		ctxInfo.Console.Item(key, result.Env[key])
	}
	return 0
}

// runEnv executes the 'env' command: only the final values, template vars
// included, for piping into other tools.
func runEnv(cli CLI, deps Dependencies, out io.Writer) int {
	result, _, code := dryRun(cli, deps, cli.Env.ContextFlags, "", out)
	if code != 0 {
		return code
	}

	keys := append(append([]string{}, result.TemplateVars...), result.Touched...)
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(out, "%s=%s\n", key, result.Env[key])
	}
	return 0
}

func dryRun(
	cli CLI,
	deps Dependencies,
	flags ContextFlags,
	appPath string,
	out io.Writer,
) (workflows.LaunchResult, commandContext, int) {
	ctxInfo, err := resolveCommandContext(cli, deps, flags, appPath, nil, out)
	if err != nil {
		return workflows.LaunchResult{}, commandContext{}, exitWithError(out, err)
	}

	workflow, err := launchWorkflow(ctxInfo, deps)
	if err != nil {
		return workflows.LaunchResult{}, commandContext{}, exitWithError(out, err)
	}

	result, err := workflow.Run(context.Background(), workflows.LaunchRequest{
		Context:   ctxInfo.Launch,
		Templates: ctxInfo.Templates,
		Env:       deps.Env,
		DryRun:    true,
	})
	if err != nil {
		return workflows.LaunchResult{}, commandContext{}, exitWithError(out, err)
	}
	return result, ctxInfo, 0
}

func printBucket(out io.Writer, title string, bucket map[string][]string) {
	if len(bucket) == 0 {
		return
	}
	fmt.Fprintf(out, "%s:\n", title)

	keys := make([]string, 0, len(bucket))
	for key := range bucket {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(out, "   %-24s %v\n", key+":", bucket[key])
	}
}
