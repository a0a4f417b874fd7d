package cli

import (
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/voidpetal/python-inspector/client"
	"github.com/voidpetal/python-inspector/fetch"
	"github.com/voidpetal/python-inspector/internal/core"
	"github.com/voidpetal/python-inspector/internal/pypi"
)

func newDownloadCmd() *cobra.Command {
	var (
		rf        resolutionFlags
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "download <purl>...",
		Short: "Download distribution files for versioned pypi purls",
		Long: `Download resolves each purl, streams its distribution file into the
output directory, and verifies the index's digests and size while writing.
Unlike resolve, a purl without a matching distribution is an error.`,
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
			fetcher := fetch.NewCircuitBreakerFetcher(fetch.NewFetcher())

			for _, purl := range args {
				parsed, err := core.ParsePURL(purl)
				if err != nil {
					return err
				}
				pkg, err := resolver.Resolve(ctx, purl, env, repos, cfg.PreferSource)
				if err != nil {
					return err
				}
				if pkg == nil {
					return &client.NotFoundError{Name: parsed.Name, Version: parsed.Version}
				}

				dest := filepath.Join(outputDir, distFilename(pkg.DownloadURL))
				out, err := os.Create(dest)
				if err != nil {
					return err
				}
				n, err := fetch.DownloadPackage(ctx, fetcher, pkg, out)
				if cerr := out.Close(); err == nil {
					err = cerr
				}
				if err != nil {
					// A partial or corrupt file must not be left behind.
					_ = os.Remove(dest)
					return err
				}
				logger.Info("downloaded", "purl", purl, "file", dest, "bytes", n)
			}
			return nil
		},
	}

	rf.register(cmd)
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", ".", "directory to write distribution files into")
	return cmd
}

// distFilename returns the distribution filename encoded in a download URL.
func distFilename(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		return path.Base(u.Path)
	}
	return path.Base(rawURL)
}
