package service

import (
	"context"
	"time"

	"github.com/Ahiya1/mirror-of-dreams-sub003/internal/domain"
)

// MockLogger for testing
type MockLogger struct{}

func NewMockLogger() domain.Logger {
	return &MockLogger{}
}

func (l *MockLogger) Info(msg string, fields ...interface{})             {}
func (l *MockLogger) Error(msg string, err error, fields ...interface{}) {}
func (l *MockLogger) Debug(msg string, fields ...interface{})            {}
func (l *MockLogger) Warn(msg string, fields ...interface{})             {}

// mockUserRepo serves canned users and snapshots.
type mockUserRepo struct {
	users     map[string]*domain.User
	snapshots map[string]*domain.UsageSnapshot
	err       error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:     make(map[string]*domain.User),
		snapshots: make(map[string]*domain.UsageSnapshot),
	}
}

func (m *mockUserRepo) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepo) GetUsageSnapshot(ctx context.Context, userID string) (*domain.UsageSnapshot, error) {
	if m.err != nil {
		return nil, m.err
	}
	snapshot, ok := m.snapshots[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return snapshot, nil
}

// mockRecorder records calls instead of writing to Supabase.
type mockRecorder struct {
	actions []string
	records []*domain.UsageRecord
	err     error
}

func (m *mockRecorder) RecordAction(ctx context.Context, userID string, now time.Time) error {
	if m.err != nil {
		return m.err
	}
	m.actions = append(m.actions, userID)
	return nil
}

func (m *mockRecorder) RecordCost(ctx context.Context, record *domain.UsageRecord) error {
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, record)
	return nil
}
