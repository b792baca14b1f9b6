package interfaces

import "github.com/goliatone/go-articles/pkg/storage"

// StorageProvider preserves a stable import location for callers that wire
// build outputs. Implementations should prefer satisfying pkg/storage.Provider
// directly.
type StorageProvider = storage.Provider

// WriteRequest aliases the storage write descriptor.
type WriteRequest = storage.WriteRequest
