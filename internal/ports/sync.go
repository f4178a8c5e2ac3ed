// Where: internal/ports/sync.go
// What: Ports needed by the sync workflow.
// Why: Keep the S3 transport behind a stable contract.
package ports

import "context"

// BundleFetcher downloads the shared pipeline config bundle into a
// project directory and returns the relative paths written.
type BundleFetcher interface {
	Fetch(ctx context.Context, destDir string) ([]string, error)
}
