package cli

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/voidpetal/python-inspector/client"
)

// indexServer serves a one-package simple index, JSON API, and file store
// from a single host, the way a PyPI-compatible index does.
func indexServer(t *testing.T, sdist []byte) *httptest.Server {
	t.Helper()
	sum := sha256.Sum256(sdist)
	digest := hex.EncodeToString(sum[:])

	mux := http.NewServeMux()
	mux.HandleFunc("/simple/demo/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/vnd.pypi.simple.v1+json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"name": "demo",
			"files": []map[string]any{
				{
					"filename": "demo-1.0.0.tar.gz",
					"url":      "../../packages/demo-1.0.0.tar.gz",
					"hashes":   map[string]string{"sha256": digest},
				},
			},
		})
	})
	mux.HandleFunc("/pypi/demo/1.0.0/json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"info": map[string]any{"name": "demo", "summary": "Demo package."},
			"urls": []map[string]any{
				{
					"url":         "../../../packages/demo-1.0.0.tar.gz",
					"digests":     map[string]string{"sha256": digest},
					"size":        len(sdist),
					"upload_time": "2026-01-15T10:00:00",
				},
			},
		})
	})
	mux.HandleFunc("/packages/demo-1.0.0.tar.gz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(sdist)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	return httptest.NewServer(mux)
}

func TestDownloadCommand(t *testing.T) {
	sdist := []byte("demo source distribution contents")
	server := indexServer(t, sdist)
	defer server.Close()

	dir := t.TempDir()
	cmd := newDownloadCmd()
	cmd.SetContext(context.Background())
	cmd.SetArgs([]string{
		"--index-url", server.URL + "/simple",
		"--output-dir", dir,
		"pkg:pypi/demo@1.0.0",
	})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("download failed: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "demo-1.0.0.tar.gz"))
	if err != nil {
		t.Fatalf("reading downloaded file: %v", err)
	}
	if string(got) != string(sdist) {
		t.Errorf("downloaded %q, want %q", got, sdist)
	}
}

func TestDownloadCommandNotFound(t *testing.T) {
	server := indexServer(t, []byte("x"))
	defer server.Close()

	dir := t.TempDir()
	cmd := newDownloadCmd()
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetContext(context.Background())
	cmd.SetArgs([]string{
		"--index-url", server.URL + "/simple",
		"--output-dir", dir,
		"pkg:pypi/nosuchpackage@9.9.9",
	})
	err := cmd.Execute()
	if !errors.Is(err, client.ErrNotFound) {
		t.Fatalf("download = %v, want ErrNotFound", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("output dir has %d entries, want 0", len(entries))
	}
}

func TestDistFilename(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://files.pythonhosted.org/packages/ab/cd/requests-2.32.0.tar.gz", "requests-2.32.0.tar.gz"},
		{"https://example.com/demo-1.0-py3-none-any.whl?token=abc", "demo-1.0-py3-none-any.whl"},
	}
	for _, tt := range tests {
		if got := distFilename(tt.url); got != tt.want {
			t.Errorf("distFilename(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
