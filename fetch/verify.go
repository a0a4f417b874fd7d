package fetch

import (
	"context"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"

	"github.com/voidpetal/python-inspector/internal/core"
)

var (
	ErrNoDownloadURL  = errors.New("no download URL available")
	ErrDigestMismatch = errors.New("digest mismatch")
	ErrSizeMismatch   = errors.New("size mismatch")
)

// DownloadPackage retrieves the distribution file of a resolved record and
// writes it to w, verifying the record's digests and size while streaming.
// SHA256 is checked when present, else MD5; a record with neither digest is
// copied unverified. Returns the number of bytes written.
func DownloadPackage(ctx context.Context, f FetcherInterface, pkg *core.PackageData, w io.Writer) (int64, error) {
	if pkg.DownloadURL == "" {
		return 0, ErrNoDownloadURL
	}

	dist, err := f.Fetch(ctx, pkg.DownloadURL)
	if err != nil {
		return 0, fmt.Errorf("downloading %s: %w", pkg.DownloadURL, err)
	}
	defer func() { _ = dist.Body.Close() }()

	var digester hash.Hash
	var want string
	switch {
	case pkg.SHA256 != "":
		digester, want = sha256.New(), pkg.SHA256
	case pkg.MD5 != "":
		digester, want = md5.New(), pkg.MD5
	}

	src := io.Reader(dist.Body)
	if digester != nil {
		src = io.TeeReader(src, digester)
	}

	n, err := io.Copy(w, src)
	if err != nil {
		return n, fmt.Errorf("copying %s: %w", pkg.DownloadURL, err)
	}

	if pkg.Size > 0 && n != pkg.Size {
		return n, fmt.Errorf("%w: got %d bytes, want %d", ErrSizeMismatch, n, pkg.Size)
	}
	if digester != nil {
		if got := hex.EncodeToString(digester.Sum(nil)); got != want {
			return n, fmt.Errorf("%w: got %s, want %s", ErrDigestMismatch, got, want)
		}
	}
	return n, nil
}
