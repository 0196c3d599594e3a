package apkindex

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/alpinetools/apkgraph/pkg/cache"
	"github.com/alpinetools/apkgraph/pkg/errors"
	"github.com/alpinetools/apkgraph/pkg/observability"
)

const (
	httpTimeout = 10 * time.Second

	// DefaultArch is the repository architecture segment used when the
	// configuration does not name one.
	DefaultArch = "x86_64"

	// DefaultCacheTTL is how long a downloaded APKINDEX stays fresh.
	DefaultCacheTTL = 24 * time.Hour
)

// Client fetches APKINDEX archives over HTTP with retry and caching.
// The cache stores the raw tar.gz bytes keyed by URL, so repeated runs
// against the same repository skip the download entirely.
type Client struct {
	http     *http.Client
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewClient creates a Client using the given byte cache. Pass a
// [cache.NullCache] to disable caching.
func NewClient(c cache.Cache, ttl time.Duration) *Client {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Client{
		http:     &http.Client{Timeout: httpTimeout},
		cache:    c,
		cacheTTL: ttl,
	}
}

// IndexURL returns the full APKINDEX URL for a repository and
// architecture, e.g. https://dl-cdn.alpinelinux.org/alpine/v3.20/main →
// .../main/x86_64/APKINDEX.tar.gz.
func IndexURL(repoURL, arch string) string {
	if arch == "" {
		arch = DefaultArch
	}
	return fmt.Sprintf("%s/%s/APKINDEX.tar.gz", strings.TrimRight(repoURL, "/"), arch)
}

// Load fetches, unpacks, and parses the APKINDEX for a repository.
// The returned Index is an independent value owned by the caller; the
// Client keeps no per-process state beyond the byte cache.
func (c *Client) Load(ctx context.Context, repoURL, arch string) (*Index, error) {
	url := IndexURL(repoURL, arch)

	archive, err := c.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	text, err := extractIndex(archive)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBadIndex, err, "unpack %s", url)
	}
	return Parse(text), nil
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	if data, ok, _ := c.cache.Get(ctx, url); ok {
		observability.Cache().OnHit(ctx, url)
		return data, nil
	}
	observability.Cache().OnMiss(ctx, url)

	observability.Index().OnFetchStart(ctx, url)
	start := time.Now()

	var data []byte
	err := cache.RetryWithBackoff(ctx, func() error {
		var ferr error
		data, ferr = c.get(ctx, url)
		return ferr
	})
	observability.Index().OnFetchComplete(ctx, url, len(data), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	_ = c.cache.Set(ctx, url, data, c.cacheTTL)
	observability.Cache().OnSet(ctx, url, len(data))
	return data, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, cache.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", url))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return io.ReadAll(resp.Body)
	case resp.StatusCode >= 500:
		return nil, cache.Retryable(errors.New(errors.ErrCodeNetwork, "fetch %s: HTTP %d", url, resp.StatusCode))
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodePackageNotFound, "no APKINDEX at %s", url)
	default:
		return nil, errors.New(errors.ErrCodeNetwork, "fetch %s: HTTP %d", url, resp.StatusCode)
	}
}

// extractIndex unpacks the tar.gz archive and returns the APKINDEX
// member as text.
func extractIndex(archive []byte) (string, error) {
	gz, err := gzip.NewReader(bytes.NewReader(archive))
	if err != nil {
		return "", fmt.Errorf("gzip: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return "", fmt.Errorf("archive has no APKINDEX member")
		}
		if err != nil {
			return "", fmt.Errorf("tar: %w", err)
		}
		if hdr.Name == "APKINDEX" {
			data, err := io.ReadAll(tr)
			if err != nil {
				return "", fmt.Errorf("read APKINDEX: %w", err)
			}
			return string(data), nil
		}
	}
}
