package title_test

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/narwhalmedia/catalog/internal/application/title"
	"github.com/narwhalmedia/catalog/internal/domain/catalog"
	"github.com/narwhalmedia/catalog/pkg/interfaces"
	"github.com/narwhalmedia/catalog/pkg/pagination"
)

// MockTitleRepository is a mock for the title repository
type MockTitleRepository struct {
	mock.Mock
}

func (m *MockTitleRepository) Insert(ctx context.Context, t *catalog.Title) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTitleRepository) Update(ctx context.Context, t *catalog.Title) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTitleRepository) Get(ctx context.Context, id uuid.UUID) (*catalog.Title, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Title), args.Error(1)
}

func (m *MockTitleRepository) Delete(ctx context.Context, t *catalog.Title) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTitleRepository) Search(ctx context.Context, input pagination.SearchInput) (pagination.SearchOutput[*catalog.Title], error) {
	args := m.Called(ctx, input)
	return args.Get(0).(pagination.SearchOutput[*catalog.Title]), args.Error(1)
}

// MockExistenceChecker is a mock for an authority repository
type MockExistenceChecker struct {
	mock.Mock
}

func (m *MockExistenceChecker) ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

// MockContentStore is a mock for the content store
type MockContentStore struct {
	mock.Mock
}

func (m *MockContentStore) Upload(ctx context.Context, key string, content io.Reader) (string, error) {
	args := m.Called(ctx, key, content)
	if fn, ok := args.Get(0).(func(key string) string); ok {
		return fn(key), args.Error(1)
	}
	return args.String(0), args.Error(1)
}

func (m *MockContentStore) Delete(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *MockContentStore) deletedPaths() []string {
	var paths []string
	for _, call := range m.Calls {
		if call.Method == "Delete" {
			paths = append(paths, call.Arguments.String(1))
		}
	}
	return paths
}

func (m *MockContentStore) uploadedKeys() []string {
	var keys []string
	for _, call := range m.Calls {
		if call.Method == "Upload" {
			keys = append(keys, call.Arguments.String(1))
		}
	}
	return keys
}

// MockUnitOfWork is a mock for the unit of work
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Begin(ctx context.Context) (title.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(title.Transaction), args.Error(1)
}

// MockTransaction is a mock for a transaction
type MockTransaction struct {
	mock.Mock
}

func (m *MockTransaction) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTransaction) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTransaction) Context() context.Context {
	args := m.Called()
	return args.Get(0).(context.Context)
}

// MockPublisher is a mock for the event publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event interfaces.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
