// Where: internal/app/deps.go
// What: Dependency adapters for process launching.
// Why: Centralize launcher construction behind the ports contract.
package app

import (
	"os"
	"os/exec"

	"github.com/kramester/tk-config-cbfx2/internal/ports"
)

// NewLauncher creates a Launcher that starts the application as a child
// process with the resolved environment and detaches from it.
func NewLauncher() ports.Launcher {
	return launcherFunc(func(request ports.LaunchRequest) error {
		cmd := exec.Command(request.Path, request.Args...)
		cmd.Env = request.Env
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Start(); err != nil {
			return err
		}
		// The app outlives the launcher; don't hold the process handle.
		return cmd.Process.Release()
	})
}

// launcherFunc is a function adapter that implements the Launcher interface.
type launcherFunc func(request ports.LaunchRequest) error

// Launch implements the Launcher interface by invoking the wrapped function.
func (fn launcherFunc) Launch(request ports.LaunchRequest) error {
	return fn(request)
}
