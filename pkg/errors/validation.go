package errors

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// maxPackageName bounds package arguments; PyPI itself has no shorter limit
// worth enforcing client side.
const maxPackageName = 256

// packageNameRe matches a PEP 508 distribution name with an optional
// extras list, e.g. "requests" or "uvicorn[standard]". Names built from it
// are safe to splice into PyPI URL paths.
var packageNameRe = regexp.MustCompile(`^([A-Za-z0-9]|[A-Za-z0-9][A-Za-z0-9._-]*[A-Za-z0-9])(\[[A-Za-z0-9._,-]+\])?$`)

// ValidatePythonPackageName rejects anything that is not a PEP 508 name,
// including empty input, whitespace and path-like values such as "../etc".
func ValidatePythonPackageName(name string) error {
	switch {
	case name == "":
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	case len(name) > maxPackageName:
		return New(ErrCodeInvalidPackage, "package name too long (max %d characters)", maxPackageName)
	case !packageNameRe.MatchString(name):
		return New(ErrCodeInvalidPackage, "invalid Python package name: %q", name)
	}
	return nil
}

// ValidateFilePattern checks a requirements file glob. Patterns are matched
// inside one directory, so they must be plain basenames.
func ValidateFilePattern(pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return New(ErrCodeInvalidInput, "file pattern cannot be empty")
	}
	if strings.ContainsAny(pattern, `/\`) || strings.Contains(pattern, "..") {
		return New(ErrCodeInvalidInput, "file pattern must be a file name, not a path: %q", pattern)
	}
	if strings.IndexFunc(pattern, unicode.IsControl) >= 0 {
		return New(ErrCodeInvalidInput, "file pattern contains control characters")
	}
	return nil
}

// ValidateURL accepts absolute http(s) URLs with a host. It guards both the
// configured PyPI endpoint and the URLs handed to the browser launcher.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid URL %q", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidInput, "URL must use http or https: %q", rawURL)
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "URL has no host: %q", rawURL)
	}
	return nil
}
