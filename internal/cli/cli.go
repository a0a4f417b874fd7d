// Package cli implements the python-inspector command-line interface.
//
// Commands:
//   - resolve: resolve distribution metadata for versioned pypi purls
//   - download: download distribution files with digest verification
//   - build-deps: extract declared dependencies from a PyBuilder build.py
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
)

// SetVersion sets the version information displayed by --version,
// typically injected via ldflags at build time.
func SetVersion(v, c string) {
	version = v
	commit = c
}

func versionString() string {
	if commit == "" {
		return version
	}
	return version + " (" + commit + ")"
}

// Execute runs the python-inspector CLI and returns an error if any
// command fails.
func Execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:          "python-inspector",
		Short:        "Resolve Python package metadata and build dependencies",
		Long:         `python-inspector resolves distribution metadata for Python packages identified by package-url strings and statically extracts declared dependencies from PyBuilder build scripts.`,
		Version:      versionString(),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newResolveCmd())
	root.AddCommand(newDownloadCmd())
	root.AddCommand(newBuildDepsCmd())

	return root.ExecuteContext(context.Background())
}

// newLogger creates a logger writing to w at the given level with
// "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level charmlog.Level) *charmlog.Logger {
	return charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *charmlog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, falling back to the
// default logger so commands always log somewhere.
func loggerFromContext(ctx context.Context) *charmlog.Logger {
	if l, ok := ctx.Value(loggerKey).(*charmlog.Logger); ok {
		return l
	}
	return charmlog.Default()
}
