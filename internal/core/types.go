// Package core provides the shared data model for package resolution.
package core

// PackageData is the canonical record describing one resolved distribution.
// At most one record is produced per resolution; "nothing found" is a nil
// record, not an error.
type PackageData struct {
	Type      string `json:"type"`
	Namespace string `json:"namespace,omitempty"`
	Name      string `json:"name"`
	Version   string `json:"version"`

	PrimaryLanguage string `json:"primary_language,omitempty"`

	DownloadURL string `json:"download_url,omitempty"`
	Size        int64  `json:"size,omitempty"`
	MD5         string `json:"md5,omitempty"`
	SHA256      string `json:"sha256,omitempty"`
	ReleaseDate string `json:"release_date,omitempty"`

	Description       string   `json:"description,omitempty"`
	LicenseExpression string   `json:"license_expression,omitempty"`
	DeclaredLicense   string   `json:"declared_license,omitempty"`
	Keywords          []string `json:"keywords,omitempty"`
	Parties           []Party  `json:"parties,omitempty"`

	HomepageURL    string `json:"homepage_url,omitempty"`
	APIDataURL     string `json:"api_data_url,omitempty"`
	CodeViewURL    string `json:"code_view_url,omitempty"`
	BugTrackingURL string `json:"bug_tracking_url,omitempty"`
}

// PURL returns the package-url string for the record identity.
func (p *PackageData) PURL() string {
	return buildPURL(p.Type, p.Namespace, p.Name, p.Version)
}

// Party is an author or maintainer attached to a package.
type Party struct {
	Role  string `json:"role"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// DependentPackage is one dependency extracted from a build descriptor.
// Records are created purely from static analysis and never mutated.
type DependentPackage struct {
	PURL                 string `json:"purl"`
	ExtractedRequirement string `json:"extracted_requirement"`
	Scope                Scope  `json:"scope"`
}

// Scope indicates when a dependency is required.
type Scope string

const (
	Install Scope = "install"
	Build   Scope = "build"
	Test    Scope = "test"
)

// Environment is the target interpreter and operating system used to
// restrict wheel compatibility. It is supplied by the caller, never derived.
type Environment struct {
	// PythonVersion is an environment tag version such as "38" or "311".
	PythonVersion string
	// OperatingSystem is one of "linux", "macos", "windows".
	OperatingSystem string
}

// DefaultEnvironment targets Python 3.8 on linux, matching the most common
// resolution target for source-only analysis.
func DefaultEnvironment() Environment {
	return Environment{PythonVersion: "38", OperatingSystem: "linux"}
}

// DottedPythonVersion converts an environment tag version like "38" to the
// "3.8" form used by the index APIs. Versions already containing a dot are
// returned unchanged.
func (e Environment) DottedPythonVersion() string {
	v := e.PythonVersion
	if v == "" {
		return ""
	}
	for _, r := range v {
		if r == '.' {
			return v
		}
	}
	return v[:1] + "." + v[1:]
}
