// Package pkg provides the libraries behind wopp, a PyPI query tool that
// keeps Python requirements files pinned.
//
// # Overview
//
// wopp looks a package up on PyPI and, on request, writes a pin for it
// into every matching requirements file. The pkg directory is organized
// into three areas:
//
//  1. [requirements] - Domain logic (line parsing, file location, reconciliation, atomic writes)
//  2. [integrations] - The PyPI JSON API client and its shared HTTP layer
//  3. Infrastructure - [cache], [httputil], [errors], [observability], [browser], [buildinfo]
//
// # Architecture
//
// The data flow of "wopp django --add":
//
//	PyPI JSON API
//	     ↓
//	[integrations/pypi] (fetch latest version, cached)
//	     ↓
//	[requirements] Locate → Reconcile → Apply, once per file
//	     ↓
//	requirements*.txt rewritten in place
//
// # Quick Start
//
// Pin the latest Django in every requirements file of a project:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/wopp/pkg/integrations/pypi"
//	    "github.com/matzehuels/wopp/pkg/requirements"
//	)
//
//	// 1. Ask PyPI for the latest release
//	client := pypi.NewClient(nil, 0)
//	info, _ := client.FetchPackage(ctx, "django", "", false)
//
//	// 2. Pin it
//	u := requirements.NewUpdater(requirements.AllChooser{}, nil)
//	results, _ := u.Update(ctx, requirements.Options{
//	    Package: "django",
//	    Version: info.Version,
//	    Dir:     ".",
//	})
//
// # Main Packages
//
// ## Domain Logic
//
// [requirements] - Requirement line grammar, the file locator with its
// [requirements.Chooser] for picking among several files, the reconciler
// that decides between replace, placeholder, no-op and append, and the
// atomic file writer.
//
// ## External Integrations
//
// [integrations] - Shared HTTP client with response caching, retries and
// status classification. [integrations/pypi] flattens the PyPI JSON API
// into [pypi.PackageInfo] and orders release history.
//
// ## Infrastructure
//
// [cache] - Response caches: file (CLI default), Redis (shared), in-memory
// LRU (front tier) and null (--no-cache).
//
// [httputil] - Retry with exponential backoff for transient failures.
//
// [errors] - Machine-readable error codes and input validation.
//
// [observability] - Hooks for cache, HTTP and requirements events.
//
// [browser] - Platform URL launcher used by --docs and --open.
//
// # Testing
//
// Run tests:
//
//	go test ./...                        # All tests
//	go test ./pkg/requirements/...       # Specific package
//	go test -run Example ./pkg/...       # Examples only
//	go test -tags integration ./pkg/...  # Include live PyPI and Redis tests
//
// [requirements]: https://pkg.go.dev/github.com/matzehuels/wopp/pkg/requirements
// [integrations]: https://pkg.go.dev/github.com/matzehuels/wopp/pkg/integrations
// [integrations/pypi]: https://pkg.go.dev/github.com/matzehuels/wopp/pkg/integrations/pypi
// [pypi.PackageInfo]: https://pkg.go.dev/github.com/matzehuels/wopp/pkg/integrations/pypi#PackageInfo
// [requirements.Chooser]: https://pkg.go.dev/github.com/matzehuels/wopp/pkg/requirements#Chooser
// [cache]: https://pkg.go.dev/github.com/matzehuels/wopp/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/matzehuels/wopp/pkg/httputil
// [errors]: https://pkg.go.dev/github.com/matzehuels/wopp/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/wopp/pkg/observability
// [browser]: https://pkg.go.dev/github.com/matzehuels/wopp/pkg/browser
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/wopp/pkg/buildinfo
package pkg
