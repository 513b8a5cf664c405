package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/prince-yn/study-space-backend/internal/core/domain"
)

// MockUserStore is an in-memory mock of UserStore
type MockUserStore struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

// NewMockUserStore creates a new MockUserStore
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{users: make(map[string]*domain.User)}
}

func (m *MockUserStore) Save(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *MockUserStore) Get(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockUserStore) List(ctx context.Context) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	users := make([]*domain.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, user)
	}
	return users, nil
}

func (m *MockUserStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *MockUserStore) UpdateLastLogin(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	now := time.Now()
	user.LastLoginAt = &now
	return nil
}

// MockSessionStore is an in-memory mock of SessionStore
type MockSessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

// NewMockSessionStore creates a new MockSessionStore
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{sessions: make(map[string]*domain.Session)}
}

func (m *MockSessionStore) Save(ctx context.Context, session *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = session
	return nil
}

func (m *MockSessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return session, nil
}

func (m *MockSessionStore) GetByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, session := range m.sessions {
		if session.RefreshToken == refreshToken {
			return session, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockSessionStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionStore) DeleteByUser(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, session := range m.sessions {
		if session.UserID == userID {
			delete(m.sessions, id)
		}
	}
	return nil
}

// MockSpaceStore is an in-memory mock of SpaceStore
type MockSpaceStore struct {
	mu     sync.RWMutex
	spaces map[string]*domain.Space
}

// NewMockSpaceStore creates a new MockSpaceStore
func NewMockSpaceStore() *MockSpaceStore {
	return &MockSpaceStore{spaces: make(map[string]*domain.Space)}
}

func (m *MockSpaceStore) Save(ctx context.Context, space *domain.Space) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.spaces[space.ID] = space
	return nil
}

func (m *MockSpaceStore) Get(ctx context.Context, id string) (*domain.Space, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	space, ok := m.spaces[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return space, nil
}

func (m *MockSpaceStore) ListByUser(ctx context.Context, userID string) ([]*domain.Space, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var spaces []*domain.Space
	for _, space := range m.spaces {
		if space.HasMember(userID) {
			spaces = append(spaces, space)
		}
	}
	return spaces, nil
}

func (m *MockSpaceStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.spaces[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.spaces, id)
	return nil
}

// MockSubjectStore is an in-memory mock of SubjectStore
type MockSubjectStore struct {
	mu       sync.RWMutex
	subjects map[string]*domain.Subject
}

// NewMockSubjectStore creates a new MockSubjectStore
func NewMockSubjectStore() *MockSubjectStore {
	return &MockSubjectStore{subjects: make(map[string]*domain.Subject)}
}

func (m *MockSubjectStore) Save(ctx context.Context, subject *domain.Subject) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subjects[subject.ID] = subject
	return nil
}

func (m *MockSubjectStore) Get(ctx context.Context, id string) (*domain.Subject, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	subject, ok := m.subjects[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return subject, nil
}

func (m *MockSubjectStore) ListBySpace(ctx context.Context, spaceID string) ([]*domain.Subject, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var subjects []*domain.Subject
	for _, subject := range m.subjects {
		if subject.SpaceID == spaceID {
			subjects = append(subjects, subject)
		}
	}
	return subjects, nil
}

func (m *MockSubjectStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.subjects[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.subjects, id)
	return nil
}

// MockMaterialStore is an in-memory mock of MaterialStore
type MockMaterialStore struct {
	mu        sync.RWMutex
	materials map[string]*domain.Material
}

// NewMockMaterialStore creates a new MockMaterialStore
func NewMockMaterialStore() *MockMaterialStore {
	return &MockMaterialStore{materials: make(map[string]*domain.Material)}
}

func (m *MockMaterialStore) Save(ctx context.Context, material *domain.Material) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.materials[material.ID] = material
	return nil
}

func (m *MockMaterialStore) Get(ctx context.Context, id string) (*domain.Material, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	material, ok := m.materials[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return material, nil
}

func (m *MockMaterialStore) ListBySubject(ctx context.Context, subjectID string) ([]*domain.Material, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var materials []*domain.Material
	for _, material := range m.materials {
		if material.SubjectID == subjectID {
			materials = append(materials, material)
		}
	}
	return materials, nil
}

func (m *MockMaterialStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.materials[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.materials, id)
	return nil
}

func (m *MockMaterialStore) SetStatus(ctx context.Context, id string, status domain.MaterialStatus, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	material, ok := m.materials[id]
	if !ok {
		return domain.ErrNotFound
	}
	material.Status = status
	material.Error = reason
	material.UpdatedAt = time.Now()
	return nil
}

// MockNoteStore is an in-memory mock of NoteStore
type MockNoteStore struct {
	mu    sync.RWMutex
	notes map[string]*domain.Note
}

// NewMockNoteStore creates a new MockNoteStore
func NewMockNoteStore() *MockNoteStore {
	return &MockNoteStore{notes: make(map[string]*domain.Note)}
}

func (m *MockNoteStore) Save(ctx context.Context, note *domain.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notes[note.ID] = note
	return nil
}

func (m *MockNoteStore) Get(ctx context.Context, id string) (*domain.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	note, ok := m.notes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return note, nil
}

func (m *MockNoteStore) GetByMaterial(ctx context.Context, materialID string) (*domain.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, note := range m.notes {
		if note.MaterialID == materialID {
			return note, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockNoteStore) ListBySubject(ctx context.Context, subjectID string) ([]*domain.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var notes []*domain.Note
	for _, note := range m.notes {
		if note.SubjectID == subjectID {
			notes = append(notes, note)
		}
	}
	return notes, nil
}

func (m *MockNoteStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.notes, id)
	return nil
}
