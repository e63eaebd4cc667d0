// Package pypi provides an HTTP client for the Python Package Index JSON API.
//
// # Usage
//
//	client := pypi.NewClient(backend, 24*time.Hour)
//
//	pkg, err := client.FetchPackage(ctx, "django", "", false)  // latest
//	if err != nil {
//	    return err
//	}
//	fmt.Println(pkg.Name, pkg.Version)
//
//	old, err := client.FetchPackage(ctx, "django", "3.2", false)  // one version
//
// # PackageInfo
//
// [Client.FetchPackage] flattens the API response into a [PackageInfo]:
//
//   - Name, Version, Summary: package identity
//   - HomePage, PackageURL, ReleaseURL, ProjectURLs: links; [PackageInfo.DocsURL]
//     picks the documentation link
//   - RequiresPython, License, Author, AuthorEmail: metadata
//   - Dependencies: direct runtime dependencies (extras/dev/test filtered out)
//   - Files: distribution files of the described version
//   - Releases: every release; [PackageInfo.History] orders them by upload time
//
// # Caching
//
// Responses are cached under "pypi:<name>" or "pypi:<name>@<version>".
// Pass refresh=true to [Client.FetchPackage] to bypass the cache.
//
// # Errors
//
// Failures carry pkg/errors codes: PACKAGE_NOT_FOUND, RATE_LIMITED,
// TIMEOUT or NETWORK_ERROR. Server errors are retried with backoff first.
package pypi
