// Where: internal/ui/console.go
// What: Console output helpers for consistent CLI UX.
// Why: Standardize warnings, debug tracing, and structure across commands.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/kramester/tk-config-cbfx2/internal/meta"
)

// Console provides helper methods for formatted output. Debug tracing is
// emitted only when the debug env var is present, matching the behavior
// host applications already rely on.
type Console struct {
	Out   io.Writer
	Debug bool
}

// New creates a new Console writing to the provided writer. Debug mode
// follows the ambient debug flag.
func New(out io.Writer) *Console {
	return &Console{Out: out, Debug: os.Getenv(meta.DebugEnv) != ""}
}

// Header prints a section header.
// Example: Resolved environment for maya 2024.2:
func (c *Console) Header(title string) {
	fmt.Fprintf(c.Out, "%s\n", title)
}

// Item prints a key-value item with indentation.
// Example:    MYVAR: /jobs/proj42
func (c *Console) Item(key string, value any) {
	fmt.Fprintf(c.Out, "   %-24s %v\n", key+":", value)
}

// ItemPlain prints a generic indented line.
func (c *Console) ItemPlain(msg string) {
	fmt.Fprintf(c.Out, "   %s\n", msg)
}

// Warnf prints a non-fatal problem. Malformed rules land here and the run
// continues.
func (c *Console) Warnf(format string, args ...any) {
	fmt.Fprintf(c.Out, "Warning: "+format+"\n", args...)
}

// Debugf prints a verbose trace line when debug mode is on.
func (c *Console) Debugf(format string, args ...any) {
	if !c.Debug {
		return
	}
	fmt.Fprintf(c.Out, "DEBUG: "+format+"\n", args...)
}
