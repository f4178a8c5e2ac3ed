// Where: cmd/launchenv/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kramester/tk-config-cbfx2/internal/app"
	"github.com/kramester/tk-config-cbfx2/internal/bundle"
	"github.com/kramester/tk-config-cbfx2/internal/config"
	"github.com/kramester/tk-config-cbfx2/internal/tracking"
)

var getwd = os.Getwd

func warnf(message string) {
	fmt.Fprintln(os.Stderr, "Warning: "+message)
}

// buildDependencies constructs all runtime dependencies required by the
// CLI: the tracking store, the config bundle fetcher, and the launcher.
func buildDependencies() (app.Dependencies, error) {
	projectDir, err := getwd()
	if err != nil {
		return app.Dependencies{}, err
	}

	if err := config.EnsureGlobalConfig(); err != nil {
		return app.Dependencies{}, err
	}
	path, err := config.GlobalConfigPath()
	if err != nil {
		return app.Dependencies{}, err
	}
	cfg, err := config.LoadGlobalConfig(path)
	if err != nil {
		return app.Dependencies{}, err
	}

	ctx := context.Background()
	dynamo, err := tracking.NewDynamoClient(ctx, cfg.Tracking.Endpoint)
	if err != nil {
		return app.Dependencies{}, err
	}

	deps := app.Dependencies{
		ProjectDir: projectDir,
		Out:        os.Stdout,
		Store: tracking.DynamoStore{
			Client:        dynamo,
			RulesTable:    cfg.Tracking.RulesTable,
			ProjectsTable: cfg.Tracking.ProjectsTable,
			TasksTable:    cfg.Tracking.TasksTable,
			Warn:          warnf,
		},
		Launcher: app.NewLauncher(),
	}

	if cfg.Sync.Bucket != "" {
		s3Client, err := bundle.NewS3Client(ctx, cfg.Sync.Endpoint)
		if err != nil {
			return app.Dependencies{}, err
		}
		deps.Fetcher = bundle.S3Fetcher{
			Client: s3Client,
			Bucket: cfg.Sync.Bucket,
			Prefix: cfg.Sync.Prefix,
		}
	}

	return deps, nil
}
