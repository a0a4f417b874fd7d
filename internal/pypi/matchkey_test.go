package pypi

import (
	"strings"
	"testing"
)

func TestFileMatchKey(t *testing.T) {
	hexA := strings.Repeat("a", 64)

	tests := []struct {
		name         string
		url          string
		sha256       string
		wantFilename string
		wantSHA256   string
	}{
		{
			name:         "simple url without hash",
			url:          "https://files.pythonhosted.org/packages/numpy-1.26.4-py3-none-any.whl",
			wantFilename: "numpy-1.26.4-py3-none-any.whl",
		},
		{
			name:         "sha256 fragment",
			url:          "https://files.pythonhosted.org/packages/numpy-1.26.4-py3-none-any.whl#sha256=" + hexA,
			wantFilename: "numpy-1.26.4-py3-none-any.whl",
			wantSHA256:   hexA,
		},
		{
			name:         "explicit sha256 overrides fragment",
			url:          "https://files.pythonhosted.org/packages/file.whl#sha256=abc123" + strings.Repeat("0", 58),
			sha256:       "def456" + strings.Repeat("0", 58),
			wantFilename: "file.whl",
			wantSHA256:   "def456" + strings.Repeat("0", 58),
		},
		{
			name:         "pypi.org hash path",
			url:          "https://files.pythonhosted.org/packages/c1/fa/abc123/package-1.0-py3-none-any.whl",
			wantFilename: "package-1.0-py3-none-any.whl",
		},
		{
			name:         "artifactory simple style with traversal",
			url:          "https://artifactory.example.com/simple/../packages/packages/c1/fa/package-1.0.whl",
			wantFilename: "package-1.0.whl",
		},
		{
			name:         "relative traversal components",
			url:          "https://artifactory.example.com/../../packages/file.tar.gz",
			wantFilename: "file.tar.gz",
		},
		{
			name:         "sdist filename",
			url:          "https://pypi.org/packages/source/n/numpy/numpy-1.26.4.tar.gz",
			wantFilename: "numpy-1.26.4.tar.gz",
		},
		{
			name:         "empty fragment",
			url:          "https://example.com/package.whl#",
			wantFilename: "package.whl",
		},
		{
			name:         "non-sha256 fragment ignored",
			url:          "https://example.com/package.whl#md5=abc123",
			wantFilename: "package.whl",
		},
		{
			name:         "uppercase hex never matches",
			url:          "https://example.com/file.whl#sha256=ABCDEF" + strings.Repeat("0", 58),
			wantFilename: "file.whl",
		},
		{
			name:         "short hash rejected",
			url:          "https://example.com/file.whl#sha256=abc123",
			wantFilename: "file.whl",
		},
		{
			name:         "platform tagged wheel",
			url:          "https://example.com/packages/numpy-1.26.4-cp311-cp311-macosx_10_9_x86_64.whl",
			wantFilename: "numpy-1.26.4-cp311-cp311-macosx_10_9_x86_64.whl",
		},
		{
			name:         "query string ignored",
			url:          "https://example.com/package.whl?token=xyz#sha256=" + hexA,
			wantFilename: "package.whl",
			wantSHA256:   hexA,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := FileMatchKey(tt.url, tt.sha256)
			if key.Filename != tt.wantFilename {
				t.Errorf("Filename = %q, want %q", key.Filename, tt.wantFilename)
			}
			if key.SHA256 != tt.wantSHA256 {
				t.Errorf("SHA256 = %q, want %q", key.SHA256, tt.wantSHA256)
			}
		})
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"requests", "requests"},
		{"Django", "django"},
		{"zope.interface", "zope-interface"},
		{"ruamel__yaml", "ruamel-yaml"},
		{"Friendly-Bard_.baz", "friendly-bard-baz"},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
