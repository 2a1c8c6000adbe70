package ports

import "net/http"

// HTTPClient abstracts HTTP operations for dependency injection.
// The standard *http.Client satisfies this interface; tests substitute
// a stub to avoid real network I/O.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
