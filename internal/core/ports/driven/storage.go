package driven

import "context"

// ObjectStorage persists media bytes to a durable, publicly reachable host.
type ObjectStorage interface {
	// Put stores data under folder and returns the public URL.
	// contentID is a content-addressed identifier: when two calls supply the
	// same contentID the second must reuse the existing object instead of
	// writing a duplicate (create if absent, else reuse).
	Put(ctx context.Context, data []byte, folder, contentID, contentType string) (string, error)

	// Ping checks if the storage backend is reachable
	Ping(ctx context.Context) error
}
