package notify

import (
	"net/http"
	"sync"
	"time"
)

// The outbound publish client is process-wide shared state: lazily built on
// first use, safe for concurrent use by many in-flight responses, and torn
// down exactly once during coordinated shutdown after dispatch draining.
var (
	sharedMu     sync.Mutex
	sharedClient *http.Client
)

// SharedClient returns the process-wide outbound HTTP client, constructing
// it on first use.
func SharedClient() *http.Client {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if sharedClient == nil {
		sharedClient = &http.Client{
			Timeout: 30 * time.Second,
		}
	}
	return sharedClient
}

// CloseSharedClient releases the shared client. Safe to call multiple times;
// only the first call after construction does any work. Call after
// Coordinator.Shutdown so no tracked dispatch is still using the client.
func CloseSharedClient() {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if sharedClient != nil {
		sharedClient.CloseIdleConnections()
		sharedClient = nil
	}
}
