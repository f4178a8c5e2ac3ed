// Where: internal/tracking/store.go
// What: Tracking store contracts.
// Why: Keep the resolver independent of the database transport.
package tracking

import (
	"context"
	"errors"
)

// ErrNotFound marks a lookup for a record that does not exist.
var ErrNotFound = errors.New("record not found")

// RuleFinder returns the variable rules matching a filter, in stable
// store order. A failed fetch is fatal to the whole resolution.
type RuleFinder interface {
	FindRules(ctx context.Context, filter Filter) ([]VariableRule, error)
}

// ProjectLookup resolves a project's display code from its identifier.
type ProjectLookup interface {
	ProjectCode(ctx context.Context, projectID int) (string, error)
}

// TaskStore reads and updates task statuses.
type TaskStore interface {
	TaskStatus(ctx context.Context, taskID int) (string, error)
	SetTaskStatus(ctx context.Context, taskID int, status string) error
}

// Store bundles every tracking-system capability the launcher uses.
type Store interface {
	RuleFinder
	ProjectLookup
	TaskStore
}
