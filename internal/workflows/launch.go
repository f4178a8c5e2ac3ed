// Where: internal/workflows/launch.go
// What: Launch workflow orchestration.
// Why: Keep CLI commands thin while hosting the launch business logic here.
package workflows

import (
	"context"
	"fmt"
	"sort"

	"github.com/kramester/tk-config-cbfx2/internal/launch"
	"github.com/kramester/tk-config-cbfx2/internal/meta"
	"github.com/kramester/tk-config-cbfx2/internal/pipeline"
	"github.com/kramester/tk-config-cbfx2/internal/ports"
	"github.com/kramester/tk-config-cbfx2/internal/resolver"
	"github.com/kramester/tk-config-cbfx2/internal/tracking"
)

// LaunchRequest captures the inputs required for the Launch workflow.
type LaunchRequest struct {
	Context   launch.Context
	Templates pipeline.TemplatesFile
	Env       resolver.Environ
	DryRun    bool
}

// LaunchResult contains feedback returned by the workflow.
type LaunchResult struct {
	Env          resolver.Environ
	Operations   resolver.Operations
	Touched      []string
	TemplateVars []string
	Launched     bool
}

// LaunchWorkflow resolves the environment for a launch and starts the
// host application. With DryRun set it stops after resolution, leaving
// the OS environment untouched.
type LaunchWorkflow struct {
	Engine   resolver.Engine
	Projects tracking.ProjectLookup
	Tasks    tracking.TaskStore
	Launcher ports.Launcher
	Warnf    func(format string, args ...any)
	Debugf   func(format string, args ...any)
}

// NewLaunchWorkflow constructs a LaunchWorkflow.
func NewLaunchWorkflow(
	engine resolver.Engine,
	projects tracking.ProjectLookup,
	tasks tracking.TaskStore,
	launcher ports.Launcher,
	warnf func(format string, args ...any),
	debugf func(format string, args ...any),
) LaunchWorkflow {
	return LaunchWorkflow{
		Engine:   engine,
		Projects: projects,
		Tasks:    tasks,
		Launcher: launcher,
		Warnf:    warnf,
		Debugf:   debugf,
	}
}

func (w LaunchWorkflow) warnf(format string, args ...any) {
	if w.Warnf != nil {
		w.Warnf(format, args...)
	}
}

func (w LaunchWorkflow) debugf(format string, args ...any) {
	if w.Debugf != nil {
		w.Debugf(format, args...)
	}
}

// Run executes the launch workflow: derive context placeholders once,
// template env vars, then rule resolution and the three-pass apply, then
// the task status side effect, and finally the process start. A rule
// fetch failure aborts before any environment mutation; per-rule problems
// are warnings.
func (w LaunchWorkflow) Run(ctx context.Context, req LaunchRequest) (LaunchResult, error) {
	env := req.Env
	if env == nil {
		env = resolver.OSEnviron()
	}

	values := resolver.DerivePlaceholders(ctx, req.Context, w.Projects, w.Warnf)
	templateVars := w.applyTemplates(req, values.Project, env)

	ops, err := w.Engine.Resolve(ctx, req.Context, values)
	if err != nil {
		return LaunchResult{}, err
	}
	touched := w.Engine.Apply(ops, env)

	result := LaunchResult{
		Env:          env,
		Operations:   ops,
		Touched:      touched,
		TemplateVars: templateVars,
	}
	if req.DryRun {
		return result, nil
	}

	w.updateTaskStatus(ctx, req.Context)

	syncKeys := append(append([]string{meta.TouchedVarsEnv}, templateVars...), touched...)
	if err := env.Sync(syncKeys); err != nil {
		return result, fmt.Errorf("sync environment: %w", err)
	}

	if w.Launcher != nil {
		envList := make([]string, 0, len(env))
		for _, key := range env.Keys() {
			envList = append(envList, key+"="+env[key])
		}
		if err := w.Launcher.Launch(ports.LaunchRequest{
			Path: req.Context.AppPath,
			Args: req.Context.AppArgs,
			Env:  envList,
		}); err != nil {
			return result, fmt.Errorf("launch %s: %w", req.Context.AppPath, err)
		}
		result.Launched = true
	}
	return result, nil
}

// applyTemplates resolves pipe_* path templates and sets them as plain
// replacements before any rule runs, so rule values may reference them.
func (w LaunchWorkflow) applyTemplates(req LaunchRequest, projectCode string, env resolver.Environ) []string {
	tc := pipeline.ContextFor(req.Context, projectCode)
	resolved := pipeline.Resolve(req.Templates, tc, w.Warnf)

	keys := make([]string, 0, len(resolved))
	for key := range resolved {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := env.Expand(resolved[key])
		w.debugf("setting env var from templates: %s = %s", key, value)
		env[key] = value
	}
	return keys
}

// updateTaskStatus flips a ready task to in-progress. The side effect is
// independent of resolution; failures are warnings, never fatal.
func (w LaunchWorkflow) updateTaskStatus(ctx context.Context, lc launch.Context) {
	if w.Tasks == nil || lc.TaskID == 0 {
		return
	}

	status, err := w.Tasks.TaskStatus(ctx, lc.TaskID)
	if err != nil {
		w.warnf("task %d status read failed: %v", lc.TaskID, err)
		return
	}
	w.debugf("task %d status is %s", lc.TaskID, status)
	if status != meta.StatusReady {
		return
	}
	if err := w.Tasks.SetTaskStatus(ctx, lc.TaskID, meta.StatusInProgress); err != nil {
		w.warnf("task %d status update failed: %v", lc.TaskID, err)
		return
	}
	w.debugf("changed task %d status to %q", lc.TaskID, meta.StatusInProgress)
}
