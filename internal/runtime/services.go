package runtime

import (
	"context"
	"sync"

	"github.com/prince-yn/study-space-backend/internal/core/domain"
	"github.com/prince-yn/study-space-backend/internal/core/ports/driven"
)

// Services holds references to optionally configured external services.
// Any of them can be nil when the corresponding backend is not configured;
// consumers must check and degrade gracefully.
// Thread-safe for concurrent access.
type Services struct {
	mu sync.RWMutex

	// Config tracks capability flags
	config *domain.RuntimeConfig

	llmService driven.LLMService
	imageGen   driven.ImageGenerationService
	storage    driven.ObjectStorage
}

// NewServices creates a new Services registry
func NewServices(config *domain.RuntimeConfig) *Services {
	return &Services{
		config: config,
	}
}

// Config returns the runtime configuration
func (s *Services) Config() *domain.RuntimeConfig {
	return s.config
}

// LLMService returns the current LLM service (may be nil)
func (s *Services) LLMService() driven.LLMService {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.llmService
}

// ImageGeneration returns the current image generation service (may be nil)
func (s *Services) ImageGeneration() driven.ImageGenerationService {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.imageGen
}

// Storage returns the current object storage backend (may be nil)
func (s *Services) Storage() driven.ObjectStorage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.storage
}

// SetLLMService updates the LLM service.
// Closes the old service if present. Updates config flags.
func (s *Services) SetLLMService(svc driven.LLMService) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Close old service
	if s.llmService != nil {
		_ = s.llmService.Close()
	}

	s.llmService = svc
	s.config.SetLLMAvailable(svc != nil)
}

// SetImageGeneration updates the image generation service. Updates config flags.
func (s *Services) SetImageGeneration(svc driven.ImageGenerationService) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.imageGen = svc
	s.config.SetImageGenAvailable(svc != nil)
}

// SetStorage updates the object storage backend. Updates config flags.
func (s *Services) SetStorage(storage driven.ObjectStorage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.storage = storage
	s.config.SetStorageAvailable(storage != nil)
}

// Close shuts down all services
func (s *Services) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.llmService != nil {
		_ = s.llmService.Close()
		s.llmService = nil
	}
	s.imageGen = nil
	s.storage = nil

	s.config.SetLLMAvailable(false)
	s.config.SetImageGenAvailable(false)
	s.config.SetStorageAvailable(false)

	return nil
}

// ValidateAndSetLLM validates connectivity before setting LLM service
func (s *Services) ValidateAndSetLLM(ctx context.Context, svc driven.LLMService) error {
	if svc == nil {
		s.SetLLMService(nil)
		return nil
	}

	// Validate connectivity
	if err := svc.Ping(ctx); err != nil {
		_ = svc.Close()
		return err
	}

	s.SetLLMService(svc)
	return nil
}
