package userservice_test

import (
	"context"
	"strings"
	"sync"

	userservice "github.com/goliatone/user-service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockLogger implements userservice.Logger for testing
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Info(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Warn(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Error(format string, args ...any) {
	m.Called(format, args)
}

// noopLogger swallows everything; use it when a test does not care about
// log output.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// memoryUsers is an in-memory Users repository for tests that do not need
// a database.
type memoryUsers struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*userservice.User
	byEmail map[string]*userservice.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{
		byID:    map[uuid.UUID]*userservice.User{},
		byEmail: map[string]*userservice.User{},
	}
}

func (m *memoryUsers) GetByID(_ context.Context, id uuid.UUID) (*userservice.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if user, ok := m.byID[id]; ok {
		return user, nil
	}
	return nil, userservice.ErrUserNotFound
}

func (m *memoryUsers) GetByEmail(_ context.Context, email string) (*userservice.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if user, ok := m.byEmail[strings.ToLower(email)]; ok {
		return user, nil
	}
	return nil, userservice.ErrUserNotFound
}

func (m *memoryUsers) Register(_ context.Context, user *userservice.User) (*userservice.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(user.Email)
	if _, ok := m.byEmail[key]; ok {
		return nil, userservice.ErrDuplicateEmail
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Role == "" {
		user.Role = userservice.RoleMember
	}

	m.byID[user.ID] = user
	m.byEmail[key] = user

	return user, nil
}
