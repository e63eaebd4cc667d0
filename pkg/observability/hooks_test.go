package observability

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	r := NoopRequirementsHooks{}
	r.OnFilesLocated(ctx, ".", "requirements*.txt", 2)
	r.OnFileUpdated(ctx, "requirements.txt", "replace", true, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "pypi")
	c.OnCacheMiss(ctx, "pypi")
	c.OnCacheSet(ctx, "pypi", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "pypi.org", "/pypi/requests/json")
	h.OnResponse(ctx, "GET", "pypi.org", "/pypi/requests/json", 200, time.Second)
	h.OnError(ctx, "GET", "pypi.org", "/pypi/requests/json", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Requirements().(NoopRequirementsHooks); !ok {
		t.Error("Requirements() should return NoopRequirementsHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customRequirements := &testRequirementsHooks{}
	SetRequirementsHooks(customRequirements)
	if Requirements() != customRequirements {
		t.Error("SetRequirementsHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Requirements().(NoopRequirementsHooks); !ok {
		t.Error("Reset() should restore NoopRequirementsHooks")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("Reset() should restore NoopHTTPHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	custom := &testCacheHooks{}
	SetCacheHooks(custom)
	SetCacheHooks(nil)

	if Cache() != custom {
		t.Error("SetCacheHooks(nil) should be ignored")
	}
}

// Test implementations
type testRequirementsHooks struct{ NoopRequirementsHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }

// Setting different hook kinds concurrently must not lose either write.
func TestConcurrentSetKeepsAllHooks(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	cacheHooks := &testCacheHooks{}
	httpHooks := &testHTTPHooks{}

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() { defer wg.Done(); SetCacheHooks(cacheHooks); _ = HTTP() }()
		go func() { defer wg.Done(); SetHTTPHooks(httpHooks); _ = Cache() }()
	}
	wg.Wait()

	if Cache() != cacheHooks {
		t.Error("cache hooks lost")
	}
	if HTTP() != httpHooks {
		t.Error("HTTP hooks lost")
	}
}
