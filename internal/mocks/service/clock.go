package mockservice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockClock is a mock implementation of service.Clock.
type MockClock struct {
	mock.Mock
}

// NewMockClock creates a mock that asserts its expectations when the test ends.
func NewMockClock(t *testing.T) *MockClock {
	m := &MockClock{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockClock) Now() time.Time {
	args := m.Called()

	return get[time.Time](args, 0)
}
