// Where: internal/app/sync.go
// What: The sync command.
// Why: Pull the shared pipeline config bundle into the project directory.
package app

import (
	"context"
	"io"
	"os"

	"github.com/kramester/tk-config-cbfx2/internal/ui"
	"github.com/kramester/tk-config-cbfx2/internal/workflows"
)

// runSync executes the 'sync' command which downloads templates.yml and
// pipeline.yml from the studio config bucket.
func runSync(cli CLI, deps Dependencies, out io.Writer) int {
	projectDir := cli.ProjectDir
	if projectDir == "" {
		projectDir = deps.ProjectDir
	}
	if projectDir == "" {
		dir, err := os.Getwd()
		if err != nil {
			return exitWithError(out, err)
		}
		projectDir = dir
	}

	workflow := workflows.NewSyncWorkflow(deps.Fetcher)
	result, err := workflow.Run(context.Background(), workflows.SyncRequest{ProjectDir: projectDir})
	if err != nil {
		return exitWithError(out, err)
	}

	console := ui.New(out)
	console.Header("Synced pipeline config:")
	for _, file := range result.Files {
		console.ItemPlain(file)
	}
	return 0
}
