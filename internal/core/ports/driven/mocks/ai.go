package mocks

import (
	"context"
	"fmt"

	"github.com/prince-yn/study-space-backend/internal/core/domain"
	"github.com/prince-yn/study-space-backend/internal/core/ports/driven"
)

// MockLLMService is a mock implementation of LLMService for testing
type MockLLMService struct {
	NotesResult string
	ChatResult  string
	Err         error

	GenerateCalls []driven.NoteRequest
	ChatCalls     []string
}

// NewMockLLMService creates a new MockLLMService
func NewMockLLMService() *MockLLMService {
	return &MockLLMService{
		NotesResult: "# Notes\n\nGenerated content.",
		ChatResult:  "Mock answer.",
	}
}

func (m *MockLLMService) GenerateNotes(ctx context.Context, req driven.NoteRequest) (string, error) {
	m.GenerateCalls = append(m.GenerateCalls, req)
	if m.Err != nil {
		return "", m.Err
	}
	return m.NotesResult, nil
}

func (m *MockLLMService) Chat(ctx context.Context, contextText, question string) (string, error) {
	m.ChatCalls = append(m.ChatCalls, question)
	if m.Err != nil {
		return "", m.Err
	}
	return m.ChatResult, nil
}

func (m *MockLLMService) Model() string { return "mock-llm" }

func (m *MockLLMService) Ping(ctx context.Context) error { return m.Err }

func (m *MockLLMService) Close() error { return nil }

// MockDiagramRenderService is a mock implementation of DiagramRenderService
type MockDiagramRenderService struct {
	RenderResult []byte
	RenderErr    error
	URLErr       error
	CheckErr     error

	RenderCalls []RenderCall
}

// RenderCall records one Render invocation
type RenderCall struct {
	Engine string
	Source string
	Format driven.DiagramFormat
}

// NewMockDiagramRenderService creates a new MockDiagramRenderService
func NewMockDiagramRenderService() *MockDiagramRenderService {
	return &MockDiagramRenderService{
		RenderResult: []byte("<svg></svg>"),
	}
}

func (m *MockDiagramRenderService) Render(ctx context.Context, engine, source string, format driven.DiagramFormat) ([]byte, error) {
	m.RenderCalls = append(m.RenderCalls, RenderCall{Engine: engine, Source: source, Format: format})
	if m.RenderErr != nil {
		return nil, m.RenderErr
	}
	return m.RenderResult, nil
}

func (m *MockDiagramRenderService) RenderURL(engine, source string, format driven.DiagramFormat) (string, error) {
	if m.URLErr != nil {
		return "", m.URLErr
	}
	return fmt.Sprintf("https://render.example/%s/%s/encoded", engine, format), nil
}

func (m *MockDiagramRenderService) CheckURL(ctx context.Context, url string) error {
	return m.CheckErr
}

// MockImageSearchService is a mock implementation of ImageSearchService
type MockImageSearchService struct {
	Results []domain.ImageResult
	Err     error

	Queries []string
}

// NewMockImageSearchService creates a new MockImageSearchService
func NewMockImageSearchService() *MockImageSearchService {
	return &MockImageSearchService{}
}

func (m *MockImageSearchService) Search(ctx context.Context, query string, limit int) ([]domain.ImageResult, error) {
	m.Queries = append(m.Queries, query)
	if m.Err != nil {
		return nil, m.Err
	}
	if limit < len(m.Results) {
		return m.Results[:limit], nil
	}
	return m.Results, nil
}

// MockImageGenerationService is a mock implementation of ImageGenerationService.
// Errs is consumed one entry per call; past the end, calls succeed.
type MockImageGenerationService struct {
	Result []byte
	Errs   []error

	Prompts []string
}

// NewMockImageGenerationService creates a new MockImageGenerationService
func NewMockImageGenerationService() *MockImageGenerationService {
	return &MockImageGenerationService{Result: []byte("png-bytes")}
}

func (m *MockImageGenerationService) Generate(ctx context.Context, prompt string) ([]byte, error) {
	m.Prompts = append(m.Prompts, prompt)
	if len(m.Errs) > 0 {
		err := m.Errs[0]
		m.Errs = m.Errs[1:]
		if err != nil {
			return nil, err
		}
	}
	return m.Result, nil
}

// MockObjectStorage is an in-memory mock of ObjectStorage
type MockObjectStorage struct {
	Objects map[string][]byte
	Err     error
}

// NewMockObjectStorage creates a new MockObjectStorage
func NewMockObjectStorage() *MockObjectStorage {
	return &MockObjectStorage{Objects: make(map[string][]byte)}
}

func (m *MockObjectStorage) Put(ctx context.Context, data []byte, folder, contentID, contentType string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	key := folder + "/" + contentID
	if _, exists := m.Objects[key]; !exists {
		m.Objects[key] = data
	}
	return "https://media.example/" + key, nil
}

func (m *MockObjectStorage) Ping(ctx context.Context) error { return m.Err }
