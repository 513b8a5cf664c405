package domain

import "sync"

// RuntimeConfig tracks which optional external capabilities are available.
// Flags flip when AI services are configured or torn down at runtime.
type RuntimeConfig struct {
	mu sync.RWMutex

	// SessionBackend is "redis" or "postgres"
	SessionBackend string

	llmAvailable      bool
	imageGenAvailable bool
	storageAvailable  bool
}

// NewRuntimeConfig creates a runtime config
func NewRuntimeConfig(sessionBackend string) *RuntimeConfig {
	return &RuntimeConfig{SessionBackend: sessionBackend}
}

// LLMAvailable reports whether an LLM service is configured
func (c *RuntimeConfig) LLMAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.llmAvailable
}

// SetLLMAvailable updates the LLM availability flag
func (c *RuntimeConfig) SetLLMAvailable(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.llmAvailable = v
}

// ImageGenAvailable reports whether an image generation service is configured
func (c *RuntimeConfig) ImageGenAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.imageGenAvailable
}

// SetImageGenAvailable updates the image generation availability flag
func (c *RuntimeConfig) SetImageGenAvailable(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.imageGenAvailable = v
}

// StorageAvailable reports whether durable object storage is configured
func (c *RuntimeConfig) StorageAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.storageAvailable
}

// SetStorageAvailable updates the object storage availability flag
func (c *RuntimeConfig) SetStorageAvailable(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.storageAvailable = v
}
