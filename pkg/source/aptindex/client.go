package aptindex

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	apperrors "github.com/matzehuels/aptgraph/pkg/errors"
	"github.com/matzehuels/aptgraph/pkg/httputil"
)

const httpTimeout = 30 * time.Second

// gzip magic bytes, used to detect compressed local index files.
var gzipMagic = []byte{0x1f, 0x8b}

// IndexOptions selects which Packages file of a repository to load.
type IndexOptions struct {
	Suite     string // Distribution suite (default: "jammy")
	Component string // Repository component (default: "main")
	Arch      string // Binary architecture (default: "amd64")
	Refresh   bool   // Bypass the HTTP response cache
}

// WithDefaults returns a copy of IndexOptions with empty fields filled in.
func (o IndexOptions) WithDefaults() IndexOptions {
	opts := o
	if opts.Suite == "" {
		opts.Suite = "jammy"
	}
	if opts.Component == "" {
		opts.Component = "main"
	}
	if opts.Arch == "" {
		opts.Arch = "amd64"
	}
	return opts
}

// IndexURL builds the Packages.gz URL for a repository base URL.
func IndexURL(repo string, opts IndexOptions) string {
	opts = opts.WithDefaults()
	return fmt.Sprintf("%s/dists/%s/%s/binary-%s/Packages.gz",
		strings.TrimRight(repo, "/"), opts.Suite, opts.Component, opts.Arch)
}

// Client downloads and parses package indexes.
// It caches decompressed index text on disk between runs.
type Client struct {
	http  *http.Client
	cache *httputil.Cache
}

// NewClient creates a Client using the given cache for index text.
// Pass a zero-TTL cache namespace to disable expiration.
func NewClient(cache *httputil.Cache) *Client {
	return &Client{
		http:  &http.Client{Timeout: httpTimeout},
		cache: cache,
	}
}

// LoadIndex loads and parses the package index for repo, which is either a
// repository base URL or a path to a local Packages file (plain or gzipped).
//
// The body is read fully and the transport released before parsing; callers
// never hold a network resource open during graph traversal.
func (c *Client) LoadIndex(ctx context.Context, repo string, opts IndexOptions) (*Index, error) {
	if isURL(repo) {
		text, err := c.fetchText(ctx, IndexURL(repo, opts), opts.Refresh)
		if err != nil {
			return nil, err
		}
		return ParseIndex(text), nil
	}

	text, err := loadFile(repo)
	if err != nil {
		return nil, err
	}
	return ParseIndex(text), nil
}

func (c *Client) fetchText(ctx context.Context, indexURL string, refresh bool) (string, error) {
	var text string
	if !refresh && c.cache != nil {
		if ok, _ := c.cache.Get(indexURL, &text); ok {
			return text, nil
		}
	}

	err := httputil.RetryWithBackoff(ctx, func() error {
		var err error
		text, err = c.download(ctx, indexURL)
		return err
	})
	if err != nil {
		return "", err
	}

	if c.cache != nil {
		_ = c.cache.Set(indexURL, text)
	}
	return text, nil
}

func (c *Client) download(ctx context.Context, indexURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, indexURL, nil)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeInternal, err, "build request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &httputil.RetryableError{
			Err: apperrors.Wrap(apperrors.ErrCodeNetwork, err, "fetch %s", indexURL),
		}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return "", apperrors.New(apperrors.ErrCodeFileNotFound, "index not found at %s", indexURL)
	case resp.StatusCode >= 500:
		return "", &httputil.RetryableError{
			Err: apperrors.New(apperrors.ErrCodeNetwork, "fetch %s: status %d", indexURL, resp.StatusCode),
		}
	default:
		return "", apperrors.New(apperrors.ErrCodeNetwork, "fetch %s: status %d", indexURL, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &httputil.RetryableError{
			Err: apperrors.Wrap(apperrors.ErrCodeNetwork, err, "read %s", indexURL),
		}
	}
	return decompress(data)
}

func loadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "read index %s", path)
	}
	return decompress(data)
}

// decompress gunzips data when it carries the gzip magic, and returns it
// unchanged otherwise.
func decompress(data []byte) (string, error) {
	if !bytes.HasPrefix(data, gzipMagic) {
		return string(data), nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeNetwork, err, "decompress index")
	}
	defer zr.Close()
	text, err := io.ReadAll(zr)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeNetwork, err, "decompress index")
	}
	return string(text), nil
}

func isURL(repo string) bool {
	u, err := url.Parse(repo)
	return err == nil && u.Scheme != "" && u.Host != ""
}
