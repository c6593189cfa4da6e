// Package mocks provides mock implementations of auth service interfaces for testing.
package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"

	userDomain "github.com/allisson/analytics/internal/user/domain"
)

// MockTokenService is a mock implementation of service.TokenService.
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Issue(user *userDomain.User) (string, time.Time, error) {
	args := m.Called(user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) ExtractUsername(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) ExtractExpiration(token string) (time.Time, error) {
	args := m.Called(token)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockTokenService) IsValid(token string, user *userDomain.User) bool {
	args := m.Called(token, user)
	return args.Bool(0)
}
