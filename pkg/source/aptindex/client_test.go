package aptindex

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/matzehuels/aptgraph/pkg/errors"
	"github.com/matzehuels/aptgraph/pkg/httputil"
)

func gzipBytes(t *testing.T, text string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(text)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func testCache(t *testing.T) *httputil.Cache {
	t.Helper()
	cache, err := httputil.NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return cache
}

func TestIndexURL(t *testing.T) {
	tests := []struct {
		name string
		repo string
		opts IndexOptions
		want string
	}{
		{
			"defaults",
			"http://archive.ubuntu.com/ubuntu",
			IndexOptions{},
			"http://archive.ubuntu.com/ubuntu/dists/jammy/main/binary-amd64/Packages.gz",
		},
		{
			"trailingSlash",
			"http://mirror.example.com/ubuntu/",
			IndexOptions{},
			"http://mirror.example.com/ubuntu/dists/jammy/main/binary-amd64/Packages.gz",
		},
		{
			"custom",
			"https://deb.debian.org/debian",
			IndexOptions{Suite: "bookworm", Component: "contrib", Arch: "arm64"},
			"https://deb.debian.org/debian/dists/bookworm/contrib/binary-arm64/Packages.gz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IndexURL(tt.repo, tt.opts); got != tt.want {
				t.Errorf("IndexURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadIndex_HTTP(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/dists/jammy/main/binary-amd64/Packages.gz" {
			http.NotFound(w, r)
			return
		}
		hits++
		w.Write(gzipBytes(t, sampleIndex))
	}))
	defer srv.Close()

	client := NewClient(testCache(t))
	idx, err := client.LoadIndex(context.Background(), srv.URL, IndexOptions{})
	if err != nil {
		t.Fatalf("LoadIndex() error: %v", err)
	}
	if idx.Len() != 5 {
		t.Errorf("Len() = %d, want 5", idx.Len())
	}
	if hits != 1 {
		t.Errorf("server hits = %d, want 1", hits)
	}
}

func TestLoadIndex_CacheHit(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write(gzipBytes(t, sampleIndex))
	}))
	defer srv.Close()

	cache := testCache(t)
	client := NewClient(cache)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := client.LoadIndex(ctx, srv.URL, IndexOptions{}); err != nil {
			t.Fatalf("LoadIndex() #%d error: %v", i+1, err)
		}
	}
	if hits != 1 {
		t.Errorf("server hits = %d, want 1 (second load should use the cache)", hits)
	}
}

func TestLoadIndex_Refresh(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write(gzipBytes(t, sampleIndex))
	}))
	defer srv.Close()

	client := NewClient(testCache(t))
	ctx := context.Background()
	opts := IndexOptions{Refresh: true}

	for i := 0; i < 2; i++ {
		if _, err := client.LoadIndex(ctx, srv.URL, opts); err != nil {
			t.Fatalf("LoadIndex() #%d error: %v", i+1, err)
		}
	}
	if hits != 2 {
		t.Errorf("server hits = %d, want 2 (refresh bypasses the cache)", hits)
	}
}

func TestLoadIndex_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	client := NewClient(testCache(t))
	_, err := client.LoadIndex(context.Background(), srv.URL, IndexOptions{})
	if err == nil {
		t.Fatal("LoadIndex() succeeded for missing index")
	}
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("error code = %q, want FILE_NOT_FOUND", apperrors.GetCode(err))
	}
}

func TestLoadIndex_ServerErrorRetries(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write(gzipBytes(t, sampleIndex))
	}))
	defer srv.Close()

	client := NewClient(testCache(t))
	idx, err := client.LoadIndex(context.Background(), srv.URL, IndexOptions{})
	if err != nil {
		t.Fatalf("LoadIndex() error: %v", err)
	}
	if idx.Len() != 5 {
		t.Errorf("Len() = %d, want 5", idx.Len())
	}
	if hits != 2 {
		t.Errorf("server hits = %d, want 2 (one failure, one retry)", hits)
	}
}

func TestLoadIndex_LocalPlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Packages")
	if err := os.WriteFile(path, []byte(sampleIndex), 0o644); err != nil {
		t.Fatal(err)
	}

	client := NewClient(nil)
	idx, err := client.LoadIndex(context.Background(), path, IndexOptions{})
	if err != nil {
		t.Fatalf("LoadIndex() error: %v", err)
	}
	if idx.Len() != 5 {
		t.Errorf("Len() = %d, want 5", idx.Len())
	}
}

func TestLoadIndex_LocalGzippedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Packages.gz")
	if err := os.WriteFile(path, gzipBytes(t, sampleIndex), 0o644); err != nil {
		t.Fatal(err)
	}

	client := NewClient(nil)
	idx, err := client.LoadIndex(context.Background(), path, IndexOptions{})
	if err != nil {
		t.Fatalf("LoadIndex() error: %v", err)
	}
	if idx.Len() != 5 {
		t.Errorf("Len() = %d, want 5", idx.Len())
	}
}

func TestLoadIndex_LocalMissingFile(t *testing.T) {
	client := NewClient(nil)
	_, err := client.LoadIndex(context.Background(), filepath.Join(t.TempDir(), "nope"), IndexOptions{})
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("error code = %q, want FILE_NOT_FOUND", apperrors.GetCode(err))
	}
}

func TestDecompress_PlainPassthrough(t *testing.T) {
	got, err := decompress([]byte("plain text"))
	if err != nil {
		t.Fatalf("decompress() error: %v", err)
	}
	if got != "plain text" {
		t.Errorf("decompress() = %q, want %q", got, "plain text")
	}
}
