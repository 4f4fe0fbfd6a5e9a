package iocache

import (
	"github.com/arboclima/arboclima/internal/contract"
	"github.com/arboclima/arboclima/schema"
	"github.com/stretchr/testify/mock"
)

// MockCacheManager is a mock implementation of CacheManager for testing.
type MockCacheManager struct {
	mock.Mock
}

var _ contract.CacheManager = &MockCacheManager{} // Compile-time check

// GetResultStore implements the CacheManager interface.
func (m *MockCacheManager) GetResultStore() contract.ResultStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.ResultStore)
	return store
}

// MockResultStore is a mock implementation of ResultStore for testing.
type MockResultStore struct {
	mock.Mock
}

var _ contract.ResultStore = &MockResultStore{} // Compile-time check

// Get implements the ResultStore interface.
func (m *MockResultStore) Get(fingerprint string) ([]byte, int, int64, error) {
	args := m.Called(fingerprint)
	data, _ := args.Get(0).([]byte)
	return data, args.Int(1), args.Get(2).(int64), args.Error(3)
}

// Set implements the ResultStore interface.
func (m *MockResultStore) Set(fingerprint string, value []byte, version int, timestamp int64) error {
	args := m.Called(fingerprint, value, version, timestamp)
	return args.Error(0)
}

// GetAllResults implements the ResultStore interface.
func (m *MockResultStore) GetAllResults() ([]schema.ResultRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.ResultRecord)
	return records, args.Error(1)
}

// GetStatus implements the ResultStore interface.
func (m *MockResultStore) GetStatus() (schema.CacheStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.CacheStatus), args.Error(1)
}

// Close implements the ResultStore interface.
func (m *MockResultStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
