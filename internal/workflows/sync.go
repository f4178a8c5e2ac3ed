// Where: internal/workflows/sync.go
// What: Config bundle sync workflow.
// Why: Pull the shared pipeline config from the studio bucket into a project dir.
package workflows

import (
	"context"
	"fmt"

	"github.com/kramester/tk-config-cbfx2/internal/ports"
)

// SyncRequest captures the inputs required for the Sync workflow.
type SyncRequest struct {
	ProjectDir string
}

// SyncResult lists the files written by the sync.
type SyncResult struct {
	Files []string
}

// SyncWorkflow downloads the pipeline config bundle.
type SyncWorkflow struct {
	Fetcher ports.BundleFetcher
}

// NewSyncWorkflow constructs a SyncWorkflow.
func NewSyncWorkflow(fetcher ports.BundleFetcher) SyncWorkflow {
	return SyncWorkflow{Fetcher: fetcher}
}

// Run executes the sync workflow.
func (w SyncWorkflow) Run(ctx context.Context, req SyncRequest) (SyncResult, error) {
	if w.Fetcher == nil {
		return SyncResult{}, fmt.Errorf("bundle fetcher is not configured")
	}
	files, err := w.Fetcher.Fetch(ctx, req.ProjectDir)
	if err != nil {
		return SyncResult{}, err
	}
	return SyncResult{Files: files}, nil
}
