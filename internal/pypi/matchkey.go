package pypi

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

var sha256Fragment = regexp.MustCompile(`sha256=([a-f0-9]{64})`)

// MatchKey identifies a distribution file independently of where it is
// hosted. Two URLs denote the same artifact when their filenames are equal;
// filenames are standardized by PEP 427/491 and unique per package version,
// while URL paths vary by index implementation (pypi.org, Artifactory, ...).
// The hash is informational and is not part of the equality test.
type MatchKey struct {
	Filename string
	SHA256   string
}

// FileMatchKey extracts the match key for a distribution URL. An explicitly
// supplied sha256 always wins; otherwise a sha256=<64 lowercase hex> URL
// fragment is used when present. Uppercase hex fragments are deliberately
// not matched.
func FileMatchKey(rawURL, sha256 string) MatchKey {
	key := MatchKey{SHA256: sha256}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		key.Filename = rawURL
		return key
	}

	key.Filename = path.Base(parsed.Path)
	if key.Filename == "." || key.Filename == "/" {
		key.Filename = ""
	}

	if key.SHA256 == "" && parsed.Fragment != "" {
		if m := sha256Fragment.FindStringSubmatch(parsed.Fragment); m != nil {
			key.SHA256 = m[1]
		}
	}
	return key
}

// filenameFromURL returns the last path segment of a distribution URL,
// ignoring query string and fragment.
func filenameFromURL(rawURL string) string {
	return FileMatchKey(rawURL, "").Filename
}

var nameSeparators = regexp.MustCompile(`[-_.]+`)

// NormalizeName canonicalizes a package name per PEP 503: lowercase with
// runs of ".", "-" and "_" collapsed to a single "-".
func NormalizeName(name string) string {
	return strings.ToLower(nameSeparators.ReplaceAllString(name, "-"))
}
