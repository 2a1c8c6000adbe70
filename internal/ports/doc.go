// Package ports defines the interfaces (ports) that connect the watcher
// core to infrastructure adapters.
//
// Ports are the boundaries between the pipeline and the outside world:
// they state what the watcher needs (a page fetch, a markup query layer,
// snapshot persistence, webhook delivery) without saying how those needs
// are fulfilled.
//
// # Port Interfaces
//
//   - [Fetcher]: Retrieves one listing page as text
//   - [Parser] / [Node]: Read-only markup document and query abstraction
//   - [SnapshotRepository]: Persists and loads the last-known snapshot
//   - [Notifier]: Delivers a human-readable message
//   - [HTTPClient]: HTTP request abstraction for dependency injection
//
// The watcher core (internal/watcher) depends only on these interfaces;
// adapters (internal/adapters, internal/markup) provide the concrete
// implementations. This keeps the extraction and diff logic testable
// against stubs and independent of any particular HTML or HTTP library.
package ports
