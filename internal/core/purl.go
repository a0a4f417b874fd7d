package core

import (
	"fmt"

	packageurl "github.com/package-url/packageurl-go"
)

// PURL wraps packageurl.PackageURL with resolution-specific helpers.
type PURL struct {
	packageurl.PackageURL
}

// ParsePURL parses a package-url string into its components.
// Supports both package PURLs (pkg:pypi/requests) and version PURLs
// (pkg:pypi/requests@2.32.0).
func ParsePURL(purl string) (*PURL, error) {
	p, err := packageurl.FromString(purl)
	if err != nil {
		return nil, err
	}
	return &PURL{p}, nil
}

// RequireVersion returns ErrNoVersion when the purl does not encode a
// version. An unversioned purl is a caller-contract violation, not a soft
// empty outcome.
func (p *PURL) RequireVersion() error {
	if p.Version == "" {
		return fmt.Errorf("%w: %s", ErrNoVersion, p.ToString())
	}
	return nil
}

// RepositoryURL returns the repository_url qualifier, used to point a
// resolution at a private index.
func (p *PURL) RepositoryURL() string {
	return p.Qualifiers.Map()["repository_url"]
}

// NewPackageData seeds a PackageData record with the purl identity fields.
func (p *PURL) NewPackageData() *PackageData {
	return &PackageData{
		Type:      p.Type,
		Namespace: p.Namespace,
		Name:      p.Name,
		Version:   p.Version,
	}
}

func buildPURL(typ, namespace, name, version string) string {
	return packageurl.NewPackageURL(typ, namespace, name, version, nil, "").ToString()
}

// PyPIPURL returns the canonical pkg:pypi purl for a package name, with no
// version embedded.
func PyPIPURL(name string) string {
	return buildPURL("pypi", "", name, "")
}
