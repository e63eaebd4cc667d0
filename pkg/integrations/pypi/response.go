package pypi

import (
	"maps"
	"slices"
)

type apiResponse struct {
	Info     apiInfo           `json:"info"`
	URLs     []File            `json:"urls"`
	Releases map[string][]File `json:"releases,omitempty"`
}

type apiInfo struct {
	Name              string         `json:"name"`
	Version           string         `json:"version"`
	Summary           string         `json:"summary"`
	License           string         `json:"license"`
	LicenseExpression string         `json:"license_expression"`
	Classifiers       []string       `json:"classifiers"`
	RequiresDist      []string       `json:"requires_dist"`
	RequiresPython    string         `json:"requires_python"`
	ProjectURLs       map[string]any `json:"project_urls"`
	HomePage          string         `json:"home_page"`
	PackageURL        string         `json:"package_url"`
	ProjectURL        string         `json:"project_url"`
	ReleaseURL        string         `json:"release_url"`
	Author            string         `json:"author"`
	AuthorEmail       string         `json:"author_email"`
}

func (r *apiResponse) info() *PackageInfo {
	urls := make(map[string]string, len(r.Info.ProjectURLs))
	for k, v := range r.Info.ProjectURLs {
		if s, ok := v.(string); ok {
			urls[k] = s
		}
	}
	pkgURL := r.Info.PackageURL
	if pkgURL == "" {
		pkgURL = r.Info.ProjectURL
	}

	info := &PackageInfo{
		Name:           r.Info.Name,
		Version:        r.Info.Version,
		Summary:        r.Info.Summary,
		HomePage:       r.Info.HomePage,
		PackageURL:     pkgURL,
		ProjectURLs:    urls,
		RequiresPython: r.Info.RequiresPython,
		License:        extractLicenseType(r.Info.LicenseExpression, r.Info.License, r.Info.Classifiers),
		Author:         r.Info.Author,
		AuthorEmail:    r.Info.AuthorEmail,
		ReleaseURL:     r.Info.ReleaseURL,
		Dependencies:   extractDeps(r.Info.RequiresDist),
		Files:          r.URLs,
	}
	for _, v := range slices.Sorted(maps.Keys(r.Releases)) {
		info.Releases = append(info.Releases, newRelease(v, r.Releases[v]))
	}
	return info
}
