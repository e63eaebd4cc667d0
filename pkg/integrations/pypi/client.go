package pypi

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/matzehuels/wopp/pkg/buildinfo"
	"github.com/matzehuels/wopp/pkg/cache"
	"github.com/matzehuels/wopp/pkg/errors"
	"github.com/matzehuels/wopp/pkg/integrations"
)

// DefaultBaseURL is the PyPI JSON API root.
const DefaultBaseURL = "https://pypi.org/pypi"

// NotFoundMessage is shown when PyPI has no such package or version.
const NotFoundMessage = "Sorry, but that package/version couldn't be found on PyPI."

var (
	depRE    = regexp.MustCompile(`^([a-zA-Z0-9_.-]+)`)
	markerRE = regexp.MustCompile(`;\s*(.+)`)
	skipRE   = regexp.MustCompile(`extra|dev|test`)
	extrasRE = regexp.MustCompile(`\[.*\]$`)
)

// PackageInfo holds metadata for one version of a Python package.
//
// Without an explicit version the latest release is described. Releases is
// only populated by the unversioned endpoint.
type PackageInfo struct {
	Name           string            // Project name as published (e.g. "Django")
	Version        string            // Version described by this record
	Summary        string            // One-line description
	HomePage       string            // Home page (may be empty)
	PackageURL     string            // PyPI project page
	ProjectURLs    map[string]string // Labelled project links ("Documentation", "Source", ...)
	RequiresPython string            // Python version constraint (may be empty)
	License        string            // Short license name (may be empty)
	Author         string
	AuthorEmail    string
	ReleaseURL     string    // PyPI page of this version
	Dependencies   []string  // Runtime dependencies, normalized names
	Files          []File    // Distribution files of this version
	Releases       []Release // Every published release; see History for ordering
}

// File is a single distribution file.
type File struct {
	Filename      string    `json:"filename"`
	PackageType   string    `json:"packagetype"` // "sdist", "bdist_wheel", ...
	PythonVersion string    `json:"python_version"`
	URL           string    `json:"url"`
	Size          int64     `json:"size"`
	UploadTime    time.Time `json:"upload_time_iso_8601"`
	Yanked        bool      `json:"yanked"`
}

// Client provides access to the PyPI JSON API.
// It handles HTTP requests with caching and automatic retries.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a PyPI client with the given cache backend and TTL.
// A nil backend disables caching.
func NewClient(backend cache.Cache, cacheTTL time.Duration) *Client {
	headers := map[string]string{
		"Accept":     "application/json",
		"User-Agent": buildinfo.UserAgent(),
	}
	return &Client{
		Client:  integrations.NewClient(backend, "pypi:", cacheTTL, headers),
		baseURL: DefaultBaseURL,
	}
}

// SetBaseURL points the client at a mirror. An empty url restores PyPI.
func (c *Client) SetBaseURL(u string) {
	if u == "" {
		u = DefaultBaseURL
	}
	c.baseURL = strings.TrimSuffix(u, "/")
}

// BaseURL returns the API root in use.
func (c *Client) BaseURL() string { return c.baseURL }

// FetchPackage retrieves metadata for a package, or for one version of it
// when version is not empty. Extras ("requests[socks]") are ignored.
//
// If refresh is true, the cache is bypassed and a fresh API call is made.
//
// Errors carry a code from pkg/errors: PACKAGE_NOT_FOUND for a 404,
// RATE_LIMITED for a 429, TIMEOUT when ctx expires and NETWORK_ERROR for
// anything else.
func (c *Client) FetchPackage(ctx context.Context, pkg, version string, refresh bool) (*PackageInfo, error) {
	if err := errors.ValidatePythonPackageName(pkg); err != nil {
		return nil, err
	}
	name := integrations.NormalizePkgName(extrasRE.ReplaceAllString(pkg, ""))
	version = strings.TrimSpace(version)

	key := name
	endpoint := fmt.Sprintf("%s/%s/json", c.baseURL, url.PathEscape(name))
	if version != "" {
		key = name + "@" + version
		endpoint = fmt.Sprintf("%s/%s/%s/json", c.baseURL, url.PathEscape(name), url.PathEscape(version))
	}

	var data apiResponse
	err := c.Cached(ctx, key, refresh, &data, func() error {
		return c.Get(ctx, endpoint, &data)
	})
	if err != nil {
		return nil, classify(ctx, err, pkg, version)
	}
	return data.info(), nil
}

func classify(ctx context.Context, err error, pkg, version string) error {
	var rl *errors.RateLimitedError
	switch {
	case stderrors.Is(err, integrations.ErrNotFound):
		if version != "" {
			return errors.Wrap(errors.ErrCodePackageNotFound, err, "%s (%s %s)", NotFoundMessage, pkg, version)
		}
		return errors.Wrap(errors.ErrCodePackageNotFound, err, "%s (%s)", NotFoundMessage, pkg)
	case stderrors.As(err, &rl):
		return errors.Wrap(errors.ErrCodeRateLimited, err, "PyPI is rate limiting requests; try again later")
	case stderrors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded:
		return errors.Wrap(errors.ErrCodeTimeout, err, "request to PyPI timed out")
	case stderrors.Is(err, context.Canceled):
		return err
	default:
		return errors.Wrap(errors.ErrCodeNetwork, err, "could not query PyPI for %s", pkg)
	}
}

// DocsURL returns the documentation link, falling back to the home page.
func (p *PackageInfo) DocsURL() string {
	for label, u := range p.ProjectURLs {
		if strings.EqualFold(label, "Documentation") && u != "" {
			return u
		}
	}
	if p.HomePage != "" {
		return p.HomePage
	}
	for label, u := range p.ProjectURLs {
		if strings.EqualFold(label, "Homepage") && u != "" {
			return u
		}
	}
	return ""
}

// HasSdist reports whether the described version ships a source archive.
func (p *PackageInfo) HasSdist() bool { return hasType(p.Files, "sdist") }

// HasWheel reports whether the described version ships a built distribution.
func (p *PackageInfo) HasWheel() bool { return hasType(p.Files, "bdist") }

func hasType(files []File, prefix string) bool {
	for _, f := range files {
		if strings.HasPrefix(f.PackageType, prefix) {
			return true
		}
	}
	return false
}

func extractDeps(requires []string) []string {
	seen := make(map[string]bool)
	var deps []string
	for _, req := range requires {
		if m := markerRE.FindStringSubmatch(req); len(m) > 1 && skipRE.MatchString(m[1]) {
			continue
		}
		if m := depRE.FindStringSubmatch(req); len(m) > 1 {
			dep := integrations.NormalizePkgName(m[1])
			if !seen[dep] {
				seen[dep] = true
				deps = append(deps, dep)
			}
		}
	}
	return deps
}

// extractLicenseType extracts a short license identifier from PyPI data.
// It prefers the SPDX expression, then the classifier
// ("License :: OSI Approved :: MIT License" -> "MIT License"), then the
// license field if it's short enough.
func extractLicenseType(expression, license string, classifiers []string) string {
	if expression != "" {
		return expression
	}
	for _, c := range classifiers {
		if strings.HasPrefix(c, "License :: ") {
			parts := strings.Split(c, " :: ")
			if len(parts) >= 3 {
				return parts[len(parts)-1]
			}
		}
	}
	if license != "" && len(license) < 100 && !strings.Contains(license, "\n") {
		return strings.TrimSpace(license)
	}
	if license != "" {
		firstLine := strings.TrimSpace(strings.Split(license, "\n")[0])
		if len(firstLine) < 50 {
			return firstLine
		}
	}
	return ""
}
