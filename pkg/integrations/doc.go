// Package integrations provides the HTTP plumbing shared by registry clients.
//
// # Client
//
// [Client] wraps net/http with:
//
//   - default headers applied to every request
//   - status classification: 404 is [ErrNotFound], 429 is an
//     [errors.RateLimitedError], 5xx and connection failures are retryable
//     [ErrNetwork]
//   - retry with exponential backoff via [httputil.Retry]
//   - response caching through any [cache.Cache], with keys namespaced by
//     a per-registry prefix
//
// Registry clients embed it:
//
//	type Client struct {
//	    *integrations.Client
//	    baseURL string
//	}
//
// The only registry wired today is [pypi].
//
// [pypi]: github.com/matzehuels/wopp/pkg/integrations/pypi
// [cache.Cache]: github.com/matzehuels/wopp/pkg/cache.Cache
// [errors.RateLimitedError]: github.com/matzehuels/wopp/pkg/errors.RateLimitedError
// [httputil.Retry]: github.com/matzehuels/wopp/pkg/httputil.Retry
package integrations
