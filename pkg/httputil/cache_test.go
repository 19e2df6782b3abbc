package httputil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCache_GetSet(t *testing.T) {
	cache, err := NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	if err := cache.Set("http://example.com/Packages.gz", "index text"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	var got string
	ok, err := cache.Get("http://example.com/Packages.gz", &got)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !ok {
		t.Fatal("Get() = miss, want hit")
	}
	if got != "index text" {
		t.Errorf("Get() = %q, want %q", got, "index text")
	}
}

func TestCache_Miss(t *testing.T) {
	cache, err := NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	var v string
	ok, err := cache.Get("never-set", &v)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if ok {
		t.Error("Get() = hit, want miss")
	}
	if v != "" {
		t.Errorf("value modified on miss: %q", v)
	}
}

func TestCache_Expiration(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewCache(dir, time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}

	if err := cache.Set("key", "value"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)

	var v string
	ok, err := cache.Get("key", &v)
	if ok {
		t.Error("Get() = hit, want expired")
	}
	if !errors.Is(err, ErrExpired) {
		t.Errorf("Get() error = %v, want ErrExpired", err)
	}
}

func TestCache_ZeroTTLNeverExpires(t *testing.T) {
	cache, err := NewCache(t.TempDir(), 0)
	if err != nil {
		t.Fatal(err)
	}

	if err := cache.Set("key", "value"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)

	var v string
	ok, err := cache.Get("key", &v)
	if err != nil || !ok {
		t.Errorf("Get() = (%v, %v), want hit", ok, err)
	}
}

func TestCache_Overwrite(t *testing.T) {
	cache, err := NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	if err := cache.Set("key", "old"); err != nil {
		t.Fatal(err)
	}
	if err := cache.Set("key", "new"); err != nil {
		t.Fatal(err)
	}

	var got string
	if _, err := cache.Get("key", &got); err != nil {
		t.Fatal(err)
	}
	if got != "new" {
		t.Errorf("Get() = %q, want %q", got, "new")
	}
}

func TestCache_Namespace(t *testing.T) {
	cache, err := NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	ns := cache.Namespace("index:")

	if err := ns.Set("key", "scoped"); err != nil {
		t.Fatal(err)
	}

	var v string
	if ok, _ := cache.Get("key", &v); ok {
		t.Error("namespaced entry visible under the bare key")
	}
	ok, err := ns.Get("key", &v)
	if err != nil || !ok {
		t.Fatalf("namespaced Get() = (%v, %v), want hit", ok, err)
	}
	if v != "scoped" {
		t.Errorf("Get() = %q, want %q", v, "scoped")
	}
}

func TestCache_KeyStability(t *testing.T) {
	dir := t.TempDir()
	first, err := NewCache(dir, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if err := first.Set("key", "value"); err != nil {
		t.Fatal(err)
	}

	// A separate instance over the same directory sees the entry.
	second, err := NewCache(dir, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	var v string
	ok, err := second.Get("key", &v)
	if err != nil || !ok {
		t.Errorf("Get() = (%v, %v), want hit from shared directory", ok, err)
	}
}

func TestCache_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	cache, err := NewCache(dir, time.Hour)
	if err != nil {
		t.Fatalf("NewCache() error: %v", err)
	}
	if cache.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", cache.Dir(), dir)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("cache directory not created: %v", err)
	}
}
