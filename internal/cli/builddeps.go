package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/voidpetal/python-inspector/internal/pybuilder"
)

func newBuildDepsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build-deps <build.py>",
		Short: "Extract declared dependencies from a PyBuilder build script",
		Long: `Build-deps statically parses a PyBuilder build.py and prints the
declared install, build and test dependencies as JSON. The script is never
executed; only literal string arguments to project.depends_on and its
variants are recognized.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			deps := pybuilder.DependenciesFromFile(args[0])
			if len(deps) == 0 {
				logger.Warn("no PyBuilder dependencies found", "path", args[0])
			} else {
				logger.Debug("extracted dependencies", "path", args[0], "count", len(deps))
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(deps)
		},
	}
	return cmd
}
