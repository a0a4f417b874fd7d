package pypi

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/voidpetal/python-inspector/client"
	"github.com/voidpetal/python-inspector/internal/core"
)

const defaultAPIBase = "https://pypi.org/pypi"

// Resolver produces canonical PackageData records for versioned pypi purls
// by consulting one or more simple-index repositories and the JSON API.
// Every call is independent and stateless aside from its inputs.
type Resolver struct {
	client *client.Client
}

// NewResolver creates a resolver. A nil client selects client.DefaultClient.
func NewResolver(c *client.Client) *Resolver {
	if c == nil {
		c = client.DefaultClient()
	}
	return &Resolver{client: c}
}

// Resolve generates a PackageData record for a versioned purl of pypi type.
//
// preferSource selects the source distribution over a wheel; when no source
// distribution is available a wheel is used regardless. A nil record with a
// nil error means no matching distribution was found, which is a normal
// outcome distinct from the hard ErrNoVersion input error.
func (r *Resolver) Resolve(ctx context.Context, purl string, env core.Environment, repos []Repository, preferSource bool) (*core.PackageData, error) {
	parsed, err := core.ParsePURL(purl)
	if err != nil {
		return nil, fmt.Errorf("parsing purl: %w", err)
	}
	if err := parsed.RequireVersion(); err != nil {
		return nil, err
	}
	name, version := parsed.Name, parsed.Version

	apiURL := fmt.Sprintf("%s/%s/%s/json", apiBase(repos), name, version)

	// Transport failures and missing versions are soft empty outcomes.
	var release releaseResponse
	if err := r.client.GetJSON(ctx, apiURL, &release); err != nil {
		return nil, nil
	}

	candidates := r.candidateURLs(ctx, name, version, env, repos, preferSource)

	// Index the JSON API's own file listing by filename. URLs may be served
	// relative to the API URL (Artifactory does this) and paths differ from
	// the simple endpoint's, so filenames are the only stable join key.
	// Last-wins on duplicates; indexes are assumed not to list duplicate
	// filenames per version.
	byFilename := make(map[string]releaseFile, len(release.URLs))
	for _, entry := range release.URLs {
		if entry.URL == "" {
			continue
		}
		absolute := resolveURL(apiURL, entry.URL)
		byFilename[filenameFromURL(absolute)] = entry
	}

	for _, distURL := range candidates {
		entry, ok := byFilename[filenameFromURL(distURL)]
		if !ok {
			continue
		}

		info := release.Info
		data := parsed.NewPackageData()
		data.PrimaryLanguage = "Python"
		data.DownloadURL = distURL
		data.Size = entry.Size
		data.MD5 = entry.Digests["md5"]
		if data.MD5 == "" {
			data.MD5 = entry.MD5Digest
		}
		data.SHA256 = entry.Digests["sha256"]
		data.ReleaseDate = entry.UploadTime
		data.Description = description(info)
		data.LicenseExpression = licenseExpression(info)
		data.DeclaredLicense = declaredLicense(info)
		data.Keywords = keywords(info)
		data.Parties = parties(info)
		data.HomepageURL = info.HomePage
		data.APIDataURL = apiURL
		data.CodeViewURL = codeViewURL(info.ProjectURLs)
		data.BugTrackingURL = bugTrackerURL(info.ProjectURLs)
		return data, nil
	}

	return nil, nil
}

// apiBase derives the JSON API base path from the first configured
// repository's index URL, replacing the conventional /simple suffix with
// /pypi. With no repositories the public default is used.
func apiBase(repos []Repository) string {
	if len(repos) == 0 {
		return defaultAPIBase
	}
	return strings.Replace(repos[0].IndexURL(), "/simple", "/pypi", 1)
}

// candidateURLs builds the preference-ordered distribution URL list: the
// sdist when one exists, with a single chosen wheel inserted ahead of it
// unless the sdist is both present and preferred.
func (r *Resolver) candidateURLs(ctx context.Context, name, version string, env core.Environment, repos []Repository, preferSource bool) []string {
	var candidates []string
	if sdistURL := sdistDownloadURL(ctx, name, version, repos); sdistURL != "" {
		candidates = append(candidates, sdistURL)
	}

	if len(candidates) == 0 || !preferSource {
		wheelURLs := wheelDownloadURLs(ctx, name, version, env, repos)
		if wheelURL := ChooseSingleWheel(wheelURLs); wheelURL != "" {
			candidates = append([]string{wheelURL}, candidates...)
		}
	}
	return candidates
}

// sdistDownloadURL returns the download URL of the first repository's valid
// source distribution. Per-repository failures are skipped; the next
// repository is consulted instead.
func sdistDownloadURL(ctx context.Context, name, version string, repos []Repository) string {
	for _, repo := range repos {
		sdist, err := repo.ValidSdist(ctx, name, version)
		if err != nil || sdist == nil {
			continue
		}
		return repo.DownloadURL(name, *sdist)
	}
	return ""
}

// wheelDownloadURLs gathers compatible wheel URLs across all repositories.
// Repositories are queried concurrently; none share mutable state. Failed
// repositories contribute nothing.
func wheelDownloadURLs(ctx context.Context, name, version string, env core.Environment, repos []Repository) []string {
	var (
		mu   sync.Mutex
		urls []string
		wg   sync.WaitGroup
	)
	for _, repo := range repos {
		wg.Add(1)
		go func(repo Repository) {
			defer wg.Done()
			wheels, err := repo.CompatibleWheels(ctx, name, version, env)
			if err != nil {
				return
			}
			for _, wheel := range wheels {
				u := repo.DownloadURL(name, wheel)
				mu.Lock()
				urls = append(urls, u)
				mu.Unlock()
			}
		}(repo)
	}
	wg.Wait()
	return urls
}

// resolveURL makes ref absolute against base, returning ref unchanged when
// either side does not parse.
func resolveURL(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(u).String()
}
