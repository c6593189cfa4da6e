// Package mocks provides mock implementations for database testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTxManager is a mock implementation of database.TxManager.
type MockTxManager struct {
	mock.Mock
}

// WithTx mocks transaction execution.
func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}

// PassthroughTxManager implements database.TxManager by executing the
// transactional function inline, without a real transaction. Use case tests
// rely on it to exercise transactional logic against mocked repositories.
type PassthroughTxManager struct{}

// WithTx runs fn directly and propagates its error.
func (PassthroughTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
