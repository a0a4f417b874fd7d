package fetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchSuccess(t *testing.T) {
	content := "wheel file content"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Length", "18")
		w.Header().Set("ETag", `"abc123"`)
		_, _ = w.Write([]byte(content))
	}))
	defer server.Close()

	f := NewFetcher()
	dist, err := f.Fetch(context.Background(), server.URL+"/requests-2.32.0-py3-none-any.whl")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	defer func() { _ = dist.Body.Close() }()

	if dist.Size != 18 {
		t.Errorf("Size = %d, want 18", dist.Size)
	}
	if dist.ContentType != "application/octet-stream" {
		t.Errorf("ContentType = %q", dist.ContentType)
	}
	if dist.ETag != `"abc123"` {
		t.Errorf("ETag = %q", dist.ETag)
	}

	body, err := io.ReadAll(dist.Body)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(body) != content {
		t.Errorf("body = %q, want %q", string(body), content)
	}
}

func TestFetchNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := NewFetcher()
	_, err := f.Fetch(context.Background(), server.URL+"/missing.whl")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Fetch = %v, want ErrNotFound", err)
	}
}

func TestFetchRateLimitRetry(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte("success"))
	}))
	defer server.Close()

	f := NewFetcher(WithBaseDelay(10 * time.Millisecond))
	dist, err := f.Fetch(context.Background(), server.URL+"/pkg.tar.gz")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	defer func() { _ = dist.Body.Close() }()

	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestFetchAuthFunc(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	f := NewFetcher(WithAuthFunc(func(url string) (string, string) {
		return "Authorization", "Bearer token123"
	}))
	dist, err := f.Fetch(context.Background(), server.URL+"/pkg.whl")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	_ = dist.Body.Close()

	if gotAuth != "Bearer token123" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer token123")
	}
}

func TestHead(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("method = %s, want HEAD", r.Method)
		}
		w.Header().Set("Content-Length", "4096")
		w.Header().Set("Content-Type", "application/octet-stream")
	}))
	defer server.Close()

	f := NewFetcher()
	size, contentType, err := f.Head(context.Background(), server.URL+"/pkg.whl")
	if err != nil {
		t.Fatalf("Head failed: %v", err)
	}
	if size != 4096 {
		t.Errorf("size = %d, want 4096", size)
	}
	if contentType != "application/octet-stream" {
		t.Errorf("contentType = %q", contentType)
	}
}
