package pypi

import (
	"strings"

	"github.com/github/go-spdx/v2/spdxexp"

	"github.com/voidpetal/python-inspector/internal/core"
)

// releaseResponse is the JSON API "project version" document at
// {base}/pypi/{name}/{version}/json.
type releaseResponse struct {
	Info infoBlock     `json:"info"`
	URLs []releaseFile `json:"urls"`
}

type infoBlock struct {
	Name              string            `json:"name"`
	Summary           string            `json:"summary"`
	Description       string            `json:"description"`
	HomePage          string            `json:"home_page"`
	License           string            `json:"license"`
	LicenseExpression string            `json:"license_expression"`
	Keywords          string            `json:"keywords"`
	Classifiers       []string          `json:"classifiers"`
	ProjectURLs       map[string]string `json:"project_urls"`
	Author            string            `json:"author"`
	AuthorEmail       string            `json:"author_email"`
	Maintainer        string            `json:"maintainer"`
	MaintainerEmail   string            `json:"maintainer_email"`
}

type releaseFile struct {
	URL        string            `json:"url"`
	Digests    map[string]string `json:"digests"`
	MD5Digest  string            `json:"md5_digest"`
	Size       int64             `json:"size"`
	UploadTime string            `json:"upload_time"`
}

// licenseExpression returns the declared SPDX expression when it validates,
// empty otherwise. Invalid expressions are still surfaced through the
// declared license.
func licenseExpression(info infoBlock) string {
	expr := strings.TrimSpace(info.LicenseExpression)
	if expr == "" {
		return ""
	}
	if valid, _ := spdxexp.ValidateLicenses([]string{expr}); !valid {
		return ""
	}
	return expr
}

// declaredLicense returns the raw license declaration: the license field
// when present, else the most specific "License ::" trove classifier.
func declaredLicense(info infoBlock) string {
	if info.License != "" {
		return info.License
	}
	for _, classifier := range info.Classifiers {
		if strings.HasPrefix(classifier, "License :: ") {
			parts := strings.Split(classifier, " :: ")
			return parts[len(parts)-1]
		}
	}
	return ""
}

// description joins the short summary and the long description.
func description(info infoBlock) string {
	summary := strings.TrimSpace(info.Summary)
	long := strings.TrimSpace(info.Description)
	switch {
	case summary == "":
		return long
	case long == "":
		return summary
	default:
		return summary + "\n" + long
	}
}

// keywords splits the keywords field, which PyPI serves either
// comma-separated or whitespace-separated.
func keywords(info infoBlock) []string {
	raw := info.Keywords
	if raw == "" {
		return nil
	}
	if strings.Contains(raw, ",") {
		parts := strings.Split(raw, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				result = append(result, p)
			}
		}
		return result
	}
	return strings.Fields(raw)
}

// parties extracts author and maintainer records from the info block.
func parties(info infoBlock) []core.Party {
	var result []core.Party
	if info.Author != "" || info.AuthorEmail != "" {
		result = append(result, core.Party{Role: "author", Name: info.Author, Email: info.AuthorEmail})
	}
	if info.Maintainer != "" || info.MaintainerEmail != "" {
		result = append(result, core.Party{Role: "maintainer", Name: info.Maintainer, Email: info.MaintainerEmail})
	}
	return result
}

// bugTrackerURL picks the issue tracker link out of project_urls.
func bugTrackerURL(projectURLs map[string]string) string {
	for _, key := range []string{"Tracker", "Issue Tracker", "Bug Tracker"} {
		if u := projectURLs[key]; u != "" {
			return u
		}
	}
	return ""
}

// codeViewURL picks the source browsing link out of project_urls.
func codeViewURL(projectURLs map[string]string) string {
	for _, key := range []string{"Source", "Code", "Source Code"} {
		if u := projectURLs[key]; u != "" {
			return u
		}
	}
	return ""
}
