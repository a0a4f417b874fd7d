package pypi

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/voidpetal/python-inspector/client"
	"github.com/voidpetal/python-inspector/internal/core"
)

const (
	// DefaultIndexURL is the public PyPI simple index.
	DefaultIndexURL = "https://pypi.org/simple"

	simpleJSONContentType = "application/vnd.pypi.simple.v1+json"
)

// Distribution is one downloadable file listed by a repository for a
// package version.
type Distribution struct {
	Filename string
	// URL may be relative to the index project page; use DownloadURL for
	// the absolute form.
	URL    string
	SHA256 string
}

// Repository lists candidate distribution files for package versions.
// Implementations are read-only per call; methods may be invoked
// concurrently.
type Repository interface {
	// IndexURL returns the simple index URL, conventionally ending in
	// "/simple".
	IndexURL() string

	// CompatibleWheels returns every wheel of the given version that is
	// compatible with the target environment. A missing project or version
	// yields an empty slice, not an error.
	CompatibleWheels(ctx context.Context, name, version string, env core.Environment) ([]Distribution, error)

	// ValidSdist returns the source distribution for the given version, or
	// nil when none exists.
	ValidSdist(ctx context.Context, name, version string) (*Distribution, error)

	// DownloadURL resolves a distribution's URL to absolute form.
	DownloadURL(name string, dist Distribution) string
}

// SimpleRepository talks to a PEP 691 JSON simple index
// (pypi.org/simple and compatible implementations such as Artifactory).
type SimpleRepository struct {
	indexURL string
	client   *client.Client
}

// NewSimpleRepository creates a repository for the given simple index URL.
// An empty URL selects the public PyPI index; a nil client selects
// client.DefaultClient.
func NewSimpleRepository(indexURL string, c *client.Client) *SimpleRepository {
	if indexURL == "" {
		indexURL = DefaultIndexURL
	}
	if c == nil {
		c = client.DefaultClient()
	}
	return &SimpleRepository{
		indexURL: strings.TrimSuffix(indexURL, "/"),
		client:   c,
	}
}

func (r *SimpleRepository) IndexURL() string {
	return r.indexURL
}

// projectResponse is the PEP 691 project detail page.
type projectResponse struct {
	Name  string        `json:"name"`
	Files []projectFile `json:"files"`
}

type projectFile struct {
	Filename string            `json:"filename"`
	URL      string            `json:"url"`
	Hashes   map[string]string `json:"hashes"`
	Yanked   any               `json:"yanked"` // false, or a reason string
}

func (f projectFile) isYanked() bool {
	switch v := f.Yanked.(type) {
	case bool:
		return v
	case string:
		return true
	default:
		return false
	}
}

func (r *SimpleRepository) projectPage(name string) string {
	return fmt.Sprintf("%s/%s/", r.indexURL, NormalizeName(name))
}

// fetchFiles returns the project's file list. A missing project is a soft
// empty outcome.
func (r *SimpleRepository) fetchFiles(ctx context.Context, name string) ([]projectFile, error) {
	var resp projectResponse
	err := r.client.GetJSONAccept(ctx, r.projectPage(name), simpleJSONContentType, &resp)
	if err != nil {
		var httpErr *client.HTTPError
		if errors.As(err, &httpErr) && httpErr.IsNotFound() {
			return nil, nil
		}
		return nil, fmt.Errorf("listing %s: %w", name, err)
	}
	return resp.Files, nil
}

func (r *SimpleRepository) CompatibleWheels(ctx context.Context, name, version string, env core.Environment) ([]Distribution, error) {
	files, err := r.fetchFiles(ctx, name)
	if err != nil {
		return nil, err
	}

	var wheels []Distribution
	for _, f := range files {
		if f.isYanked() {
			continue
		}
		info, err := ParseWheelName(f.Filename)
		if err != nil {
			continue
		}
		if NormalizeName(info.Name) != NormalizeName(name) || info.Version != version {
			continue
		}
		if !info.SupportsEnvironment(env) {
			continue
		}
		wheels = append(wheels, Distribution{
			Filename: f.Filename,
			URL:      f.URL,
			SHA256:   f.Hashes["sha256"],
		})
	}
	return wheels, nil
}

func (r *SimpleRepository) ValidSdist(ctx context.Context, name, version string) (*Distribution, error) {
	files, err := r.fetchFiles(ctx, name)
	if err != nil {
		return nil, err
	}

	for _, f := range files {
		if f.isYanked() || !IsSdist(f.Filename) {
			continue
		}
		if !sdistMatchesVersion(name, version, f.Filename) {
			continue
		}
		return &Distribution{
			Filename: f.Filename,
			URL:      f.URL,
			SHA256:   f.Hashes["sha256"],
		}, nil
	}
	return nil, nil
}

// DownloadURL resolves the distribution URL against the project page, since
// simple indexes may list file URLs relative to it.
func (r *SimpleRepository) DownloadURL(name string, dist Distribution) string {
	base, err := url.Parse(r.projectPage(name))
	if err != nil {
		return dist.URL
	}
	ref, err := url.Parse(dist.URL)
	if err != nil {
		return dist.URL
	}
	return base.ResolveReference(ref).String()
}

// sdistMatchesVersion checks an sdist filename of the <name>-<version>.<ext>
// convention against the requested version. The name part is not necessarily
// canonicalized, so every "-" split point is tried.
func sdistMatchesVersion(name, version, filename string) bool {
	stem := filename
	for _, ext := range []string{".tar.gz", ".tar.bz2", ".tar.xz", ".zip"} {
		if strings.HasSuffix(stem, ext) {
			stem = strings.TrimSuffix(stem, ext)
			break
		}
	}
	canon := NormalizeName(name)
	for i, r := range stem {
		if r != '-' {
			continue
		}
		if NormalizeName(stem[:i]) == canon && stem[i+1:] == version {
			return true
		}
	}
	return false
}
