package mockservice

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/mock"
)

// MockBlobStore is a mock implementation of service.BlobStore.
type MockBlobStore struct {
	mock.Mock
}

// NewMockBlobStore creates a mock that asserts its expectations when the test ends.
func NewMockBlobStore(t *testing.T) *MockBlobStore {
	m := &MockBlobStore{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockBlobStore) Put(ctx context.Context, key string, contentType string, r io.Reader) error {
	args := m.Called(ctx, key, contentType, r)

	return args.Error(0)
}

func (m *MockBlobStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)

	return get[io.ReadCloser](args, 0), args.Error(1)
}

func (m *MockBlobStore) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)

	return args.Bool(0), args.Error(1)
}

func (m *MockBlobStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)

	return args.Error(0)
}
