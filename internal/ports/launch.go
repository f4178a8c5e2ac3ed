// Where: internal/ports/launch.go
// What: Ports needed by the launch workflow.
// Why: Provide stable contracts between CLI and orchestration logic.
package ports

// LaunchRequest contains the parameters needed to start the application.
type LaunchRequest struct {
	Path string
	Args []string
	Env  []string
}

// Launcher starts the host application with the resolved environment.
type Launcher interface {
	Launch(request LaunchRequest) error
}
