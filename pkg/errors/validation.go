package errors

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"unicode"
)

// ValidatePackageName validates a package name for safety and correctness.
// It rejects names that could be used for path traversal or injection attacks.
//
// The validation rules are intentionally conservative:
//   - No empty names (whitespace-only counts as empty)
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - No null bytes
//   - Maximum length of 256 characters
//
// Index-specific validation (Debian name charset) is left to the index parser.
func ValidatePackageName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidPackage, "package name too long (max 256 characters)")
	}

	// Check for control characters and null bytes
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPackage, "package name contains invalid control characters")
		}
	}

	// Check for path traversal patterns
	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidPackage, "package name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateRepo validates a repository location, which may be either an
// http(s) URL or a path to an existing local file.
//
// URLs are accepted when they parse with a scheme and host. Anything else
// is treated as a local path and must exist on disk.
func ValidateRepo(repo string) error {
	if repo == "" {
		return New(ErrCodeInvalidInput, "repository cannot be empty")
	}

	if u, err := url.Parse(repo); err == nil && u.Scheme != "" && u.Host != "" {
		if u.Scheme != "http" && u.Scheme != "https" {
			return New(ErrCodeInvalidInput, "repository URL must use http or https scheme")
		}
		return nil
	}

	if _, err := os.Stat(repo); err != nil {
		return New(ErrCodeInvalidPath, "repository path does not exist: %s", repo)
	}
	return nil
}

// ValidateMaxDepth validates a traversal depth limit. Depth must be at
// least 1; the root package itself counts as depth 1.
func ValidateMaxDepth(depth int) error {
	if depth < 1 {
		return New(ErrCodeInvalidDepth, "max depth must be at least 1, got %d", depth)
	}
	return nil
}

// ParseBoolToken parses a boolean-like CLI token. Accepted values are
// "true", "false", "1" and "0", case-insensitive.
func ParseBoolToken(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return false, New(ErrCodeInvalidInput, "expected true/false/1/0, got %q", v)
}

// ParseDepthToken parses and validates a max-depth CLI token.
func ParseDepthToken(v string) (int, error) {
	d, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, New(ErrCodeInvalidDepth, "max depth must be an integer, got %q", v)
	}
	if err := ValidateMaxDepth(d); err != nil {
		return 0, err
	}
	return d, nil
}
