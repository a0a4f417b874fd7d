// Package inspector resolves distribution metadata for Python packages
// identified by package-url (purl) strings, and statically extracts declared
// dependencies from PyBuilder build.py scripts.
//
// The resolver consults one or more PyPI-compatible repositories, picks the
// best matching distribution file (wheel vs. source distribution, with
// environment compatibility and preference rules), and merges the index's
// JSON API metadata into a canonical PackageData record:
//
//	repos := []inspector.Repository{inspector.NewSimpleRepository("", nil)}
//	pkg, err := inspector.ResolvePackageData(
//		context.Background(),
//		"pkg:pypi/requests@2.32.0",
//		inspector.DefaultEnvironment(),
//		repos,
//		true, // prefer source distributions
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if pkg == nil {
//		// no matching distribution; a normal empty outcome
//	}
//
// Resolved records can be downloaded with digest and size verification:
//
//	n, err := inspector.DownloadPackage(ctx, inspector.NewFetcher(), pkg, out)
//
// Build scripts are never executed; dependency declarations are recovered
// from the Python syntax tree only:
//
//	deps := inspector.PyBuilderDependenciesFromFile("build.py")
package inspector

import (
	"context"
	"io"

	"github.com/voidpetal/python-inspector/client"
	"github.com/voidpetal/python-inspector/fetch"
	"github.com/voidpetal/python-inspector/internal/core"
	"github.com/voidpetal/python-inspector/internal/pybuilder"
	"github.com/voidpetal/python-inspector/internal/pypi"
)

// Re-export types from internal/core
type (
	// PackageData is the canonical record describing one resolved
	// distribution.
	PackageData = core.PackageData

	// Party is an author or maintainer attached to a package.
	Party = core.Party

	// DependentPackage is one dependency extracted from a build descriptor.
	DependentPackage = core.DependentPackage

	// Scope indicates when a dependency is required.
	Scope = core.Scope

	// Environment is the target interpreter and operating system used to
	// restrict wheel compatibility.
	Environment = core.Environment

	// PURL is a parsed package-url.
	PURL = core.PURL
)

// Re-export types from internal/pypi
type (
	// Repository lists candidate distribution files for package versions.
	Repository = pypi.Repository

	// SimpleRepository is a PEP 691 JSON simple-index repository.
	SimpleRepository = pypi.SimpleRepository

	// Resolver produces PackageData records for versioned pypi purls.
	Resolver = pypi.Resolver

	// MatchKey correlates a chosen download URL with an index file listing.
	MatchKey = pypi.MatchKey
)

// Re-export types from client
type (
	// Client is an HTTP client with retry logic for index APIs.
	Client = client.Client

	// Option configures a Client.
	Option = client.Option
)

// Re-export types from fetch
type (
	// Fetcher streams distribution files with retry and DNS caching.
	Fetcher = fetch.Fetcher

	// FetcherOption configures a Fetcher.
	FetcherOption = fetch.Option
)

// Re-export constants
const (
	Install = core.Install
	Build   = core.Build
	Test    = core.Test

	// DefaultIndexURL is the public PyPI simple index.
	DefaultIndexURL = pypi.DefaultIndexURL
)

// Re-export errors
var (
	ErrNoVersion = core.ErrNoVersion
	ErrNotFound  = client.ErrNotFound
)

// Error types
type HTTPError = client.HTTPError

// DefaultClient returns a client with sensible defaults:
// - 30s timeout
// - 5 retries with exponential backoff
// - Retry on 429 and 5xx responses
func DefaultClient() *Client {
	return client.DefaultClient()
}

// NewClient creates a new client with the given options.
func NewClient(opts ...Option) *Client {
	return client.NewClient(opts...)
}

// WithTimeout sets the HTTP client timeout.
var WithTimeout = client.WithTimeout

// WithMaxRetries sets the maximum number of retries.
var WithMaxRetries = client.WithMaxRetries

// DefaultEnvironment targets Python 3.8 on linux.
func DefaultEnvironment() Environment {
	return core.DefaultEnvironment()
}

// ParsePURL parses a package-url string into its components.
// Supports both package PURLs (pkg:pypi/requests) and version PURLs
// (pkg:pypi/requests@2.32.0).
func ParsePURL(purl string) (*PURL, error) {
	return core.ParsePURL(purl)
}

// NewSimpleRepository creates a repository for the given simple index URL.
// An empty URL selects the public PyPI index; a nil client selects
// DefaultClient().
func NewSimpleRepository(indexURL string, c *Client) *SimpleRepository {
	return pypi.NewSimpleRepository(indexURL, c)
}

// NewResolver creates a resolver using the given client, or
// DefaultClient() when nil.
func NewResolver(c *Client) *Resolver {
	return pypi.NewResolver(c)
}

// ResolvePackageData generates a PackageData record for a versioned purl of
// pypi type using a default client. A nil record with a nil error means no
// matching distribution was found; a purl without a version is an error.
func ResolvePackageData(ctx context.Context, purl string, env Environment, repos []Repository, preferSource bool) (*PackageData, error) {
	return pypi.NewResolver(nil).Resolve(ctx, purl, env, repos, preferSource)
}

// NewFetcher creates a streaming distribution fetcher with retry and DNS
// caching.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	return fetch.NewFetcher(opts...)
}

// DownloadPackage streams a resolved record's distribution file to w,
// verifying the record's digests and size along the way. Returns the number
// of bytes written.
func DownloadPackage(ctx context.Context, f fetch.FetcherInterface, pkg *PackageData, w io.Writer) (int64, error) {
	return fetch.DownloadPackage(ctx, f, pkg, w)
}

// FileMatchKey extracts the (filename, sha256) match key for a distribution
// URL. An explicitly supplied sha256 overrides any URL fragment.
func FileMatchKey(url, sha256 string) MatchKey {
	return pypi.FileMatchKey(url, sha256)
}

// ChooseSingleWheel deterministically picks one wheel URL among compatible
// candidates; empty input yields "".
func ChooseSingleWheel(wheelURLs []string) string {
	return pypi.ChooseSingleWheel(wheelURLs)
}

// IsPyBuilderProject reports whether source text looks like a PyBuilder
// build script.
func IsPyBuilderProject(text string) bool {
	return pybuilder.IsPyBuilderProject(text)
}

// ParsePyBuilderDependencies extracts declared dependencies from build.py
// source text without executing it. Malformed scripts yield an empty slice.
func ParsePyBuilderDependencies(text string) []DependentPackage {
	return pybuilder.ParseDependencies(text)
}

// PyBuilderDependenciesFromFile reads a build.py path and extracts its
// declared dependencies. Missing paths yield an empty slice.
func PyBuilderDependenciesFromFile(path string) []DependentPackage {
	return pybuilder.DependenciesFromFile(path)
}
