package pypi

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/voidpetal/python-inspector/internal/core"
)

// WheelInfo holds the information kept in the name of a wheel file per the
// PEP 427 file name convention:
// {name}-{version}(-{build})-{python}-{abi}-{platform}.whl
type WheelInfo struct {
	Name     string
	Version  string
	BuildTag string
	Tags     []PEP425Tag
}

// PEP425Tag is one compatibility tag triple. A wheel name may carry several,
// joined by "." within each component.
type PEP425Tag struct {
	Python   string
	ABI      string
	Platform string
}

// ParseWheelName extracts the information encoded in a wheel filename.
func ParseWheelName(filename string) (*WheelInfo, error) {
	if !strings.HasSuffix(filename, ".whl") {
		return nil, fmt.Errorf("not a wheel filename: %q", filename)
	}
	stem := strings.TrimSuffix(filename, ".whl")
	parts := strings.Split(stem, "-")
	if len(parts) != 5 && len(parts) != 6 {
		return nil, fmt.Errorf("wheel name %q has %d elements, not 5 or 6", filename, len(parts))
	}

	info := &WheelInfo{
		Name:    parts[0],
		Version: parts[1],
	}
	if len(parts) == 6 {
		build := parts[2]
		if build == "" || !unicode.IsDigit(rune(build[0])) {
			return nil, fmt.Errorf("wheel name %q: build tag %q does not start with a digit", filename, build)
		}
		info.BuildTag = build
	}

	pythons := strings.Split(parts[len(parts)-3], ".")
	abis := strings.Split(parts[len(parts)-2], ".")
	platforms := strings.Split(parts[len(parts)-1], ".")
	for _, py := range pythons {
		for _, abi := range abis {
			for _, plat := range platforms {
				info.Tags = append(info.Tags, PEP425Tag{Python: py, ABI: abi, Platform: plat})
			}
		}
	}
	return info, nil
}

// IsSdist reports whether a filename looks like a source distribution
// archive.
func IsSdist(filename string) bool {
	return strings.HasSuffix(filename, ".tar.gz") ||
		strings.HasSuffix(filename, ".tar.bz2") ||
		strings.HasSuffix(filename, ".tar.xz") ||
		(strings.HasSuffix(filename, ".zip") && !strings.HasSuffix(filename, ".whl"))
}

// SupportsEnvironment reports whether any of the wheel's tags is compatible
// with the target environment. Pure-Python "any" wheels match every
// operating system; interpreter tags match when the wheel targets the same
// or a generic Python of the environment's major version.
func (w *WheelInfo) SupportsEnvironment(env core.Environment) bool {
	for _, tag := range w.Tags {
		if pythonTagSupported(tag.Python, env.PythonVersion) && platformTagSupported(tag.Platform, env.OperatingSystem) {
			return true
		}
	}
	return false
}

// pythonTagSupported matches interpreter tags such as "py3", "py38",
// "cp38" or "cp38.py3" components against an environment version tag like
// "38". Generic "pyX" tags match any interpreter of the same major version.
func pythonTagSupported(tag, envVersion string) bool {
	if envVersion == "" {
		return true
	}
	version := strings.TrimLeft(tag, "abcdefghijklmnopqrstuvwxyz")
	switch {
	case version == "":
		return false
	case version == envVersion:
		return true
	case len(version) == 1 && strings.HasPrefix(envVersion, version):
		// "py3" style major-only tags.
		return true
	default:
		return false
	}
}

func platformTagSupported(tag, operatingSystem string) bool {
	if tag == "any" {
		return true
	}
	switch operatingSystem {
	case "linux":
		return strings.HasPrefix(tag, "manylinux") || strings.HasPrefix(tag, "linux") || strings.HasPrefix(tag, "musllinux")
	case "macos":
		return strings.HasPrefix(tag, "macosx")
	case "windows":
		return strings.HasPrefix(tag, "win")
	default:
		return false
	}
}

// ChooseSingleWheel deterministically picks one wheel URL among compatible
// candidates: the lexicographically greatest URL string. This is a simple,
// reproducible tie-break, not a semantically version-aware ranking.
func ChooseSingleWheel(wheelURLs []string) string {
	if len(wheelURLs) == 0 {
		return ""
	}
	sorted := make([]string, len(wheelURLs))
	copy(sorted, wheelURLs)
	sort.Sort(sort.Reverse(sort.StringSlice(sorted)))
	return sorted[0]
}
