package pypi

import (
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/go-version"
)

// Release is one published version and its files.
type Release struct {
	Version    string
	UploadTime time.Time // Earliest file upload; zero when the release has no files
	Files      []File
}

func newRelease(v string, files []File) Release {
	r := Release{Version: v, Files: files}
	for _, f := range files {
		if f.UploadTime.IsZero() {
			continue
		}
		if r.UploadTime.IsZero() || f.UploadTime.Before(r.UploadTime) {
			r.UploadTime = f.UploadTime
		}
	}
	return r
}

// HasSdist reports whether the release ships a source archive.
func (r Release) HasSdist() bool { return hasType(r.Files, "sdist") }

// HasWheel reports whether the release ships a built distribution.
func (r Release) HasWheel() bool { return hasType(r.Files, "bdist") }

// Yanked reports whether every file of the release was yanked.
func (r Release) Yanked() bool {
	if len(r.Files) == 0 {
		return false
	}
	for _, f := range r.Files {
		if !f.Yanked {
			return false
		}
	}
	return true
}

// History returns releases in chronological order. n > 0 selects the n
// most recent, newest first; n < 0 selects the |n| oldest, oldest first;
// n == 0 returns every release, newest first.
//
// Releases are ordered by first upload time. Releases without files sort
// as oldest. Ties fall back to version precedence, then to the version
// string.
func (p *PackageInfo) History(n int) []Release {
	rs := slices.Clone(p.Releases)
	slices.SortStableFunc(rs, compareReleases)

	if n < 0 {
		return rs[:min(-n, len(rs))]
	}
	slices.Reverse(rs)
	if n > 0 {
		return rs[:min(n, len(rs))]
	}
	return rs
}

func compareReleases(a, b Release) int {
	if c := a.UploadTime.Compare(b.UploadTime); c != 0 {
		return c
	}
	va, errA := version.NewVersion(a.Version)
	vb, errB := version.NewVersion(b.Version)
	if errA == nil && errB == nil {
		if c := va.Compare(vb); c != 0 {
			return c
		}
	}
	return strings.Compare(a.Version, b.Version)
}
