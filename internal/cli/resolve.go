package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/voidpetal/python-inspector/client"
	"github.com/voidpetal/python-inspector/internal/core"
	"github.com/voidpetal/python-inspector/internal/pypi"
)

func newResolveCmd() *cobra.Command {
	var rf resolutionFlags

	cmd := &cobra.Command{
		Use:   "resolve <purl>...",
		Short: "Resolve distribution metadata for versioned pypi purls",
		Long: `Resolve consults the configured package indexes, selects the best
matching distribution file for each purl, and prints one JSON record per
resolved package. Purls without a matching distribution are skipped with a
warning.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := rf.config(cmd)
			if err != nil {
				return err
			}

			httpClient := client.DefaultClient()
			repos := cfg.repositories(httpClient)
			resolver := pypi.NewResolver(httpClient)
			env := cfg.environment()
			logger.Debug("resolving", "purls", len(args), "indexes", len(repos),
				"python", env.DottedPythonVersion(), "os", env.OperatingSystem)

			var records []*core.PackageData
			for _, purl := range args {
				pkg, err := resolver.Resolve(ctx, purl, env, repos, cfg.PreferSource)
				if err != nil {
					return err
				}
				if pkg == nil {
					logger.Warn("no matching distribution", "purl", purl)
					continue
				}
				logger.Debug("resolved", "purl", purl, "download_url", pkg.DownloadURL)
				records = append(records, pkg)
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(records)
		},
	}

	rf.register(cmd)
	return cmd
}
