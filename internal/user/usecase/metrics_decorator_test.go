package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/analytics/internal/auth/domain"
	"github.com/allisson/analytics/internal/metrics"
	userDomain "github.com/allisson/analytics/internal/user/domain"
)

// mockBusinessMetrics is a mock implementation of metrics.BusinessMetrics for testing.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

var _ metrics.BusinessMetrics = (*mockBusinessMetrics)(nil)

// mockUserUseCase is a mock implementation of UseCase for decorator tests.
type mockUserUseCase struct {
	mock.Mock
}

func (m *mockUserUseCase) Register(ctx context.Context, input RegisterInput) (*userDomain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

func (m *mockUserUseCase) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*LoginOutput), args.Error(1)
}

func (m *mockUserUseCase) GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

func (m *mockUserUseCase) GetByUsername(ctx context.Context, username string) (*userDomain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

func (m *mockUserUseCase) List(ctx context.Context, offset, limit int) ([]*userDomain.User, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*userDomain.User), args.Error(1)
}

func (m *mockUserUseCase) Delete(ctx context.Context, principal *authDomain.Principal, id uuid.UUID) error {
	args := m.Called(ctx, principal, id)
	return args.Error(0)
}

func TestNewUserUseCaseWithMetrics(t *testing.T) {
	decorator := NewUserUseCaseWithMetrics(&mockUserUseCase{}, &mockBusinessMetrics{})

	assert.NotNil(t, decorator)
	assert.Implements(t, (*UseCase)(nil), decorator)
}

func TestUserMetricsDecorator_Login(t *testing.T) {
	ctx := context.Background()
	input := LoginInput{Username: "alice", Password: "Str0ng!Pass"}

	t.Run("records success", func(t *testing.T) {
		next := &mockUserUseCase{}
		m := &mockBusinessMetrics{}

		expected := &LoginOutput{
			User:  &userDomain.User{ID: uuid.Must(uuid.NewV7()), Username: "alice"},
			Token: "token",
		}
		next.On("Login", ctx, input).Return(expected, nil).Once()
		m.On("RecordOperation", ctx, "user", "user_login", "success").Once()
		m.On("RecordDuration", ctx, "user", "user_login", mock.AnythingOfType("time.Duration"), "success").Once()

		decorator := NewUserUseCaseWithMetrics(next, m)
		output, err := decorator.Login(ctx, input)

		assert.NoError(t, err)
		assert.Equal(t, expected, output)
		next.AssertExpectations(t)
		m.AssertExpectations(t)
	})

	t.Run("records error and passes it through", func(t *testing.T) {
		next := &mockUserUseCase{}
		m := &mockBusinessMetrics{}

		next.On("Login", ctx, input).Return(nil, authDomain.ErrInvalidCredentials).Once()
		m.On("RecordOperation", ctx, "user", "user_login", "error").Once()
		m.On("RecordDuration", ctx, "user", "user_login", mock.AnythingOfType("time.Duration"), "error").Once()

		decorator := NewUserUseCaseWithMetrics(next, m)
		output, err := decorator.Login(ctx, input)

		assert.Error(t, err)
		assert.Nil(t, output)
		next.AssertExpectations(t)
		m.AssertExpectations(t)
	})
}

func TestUserMetricsDecorator_Delete(t *testing.T) {
	ctx := context.Background()
	principal := &authDomain.Principal{ID: uuid.Must(uuid.NewV7()), Username: "alice"}

	t.Run("records success", func(t *testing.T) {
		next := &mockUserUseCase{}
		m := &mockBusinessMetrics{}

		next.On("Delete", ctx, principal, principal.ID).Return(nil).Once()
		m.On("RecordOperation", ctx, "user", "user_delete", "success").Once()
		m.On("RecordDuration", ctx, "user", "user_delete", mock.AnythingOfType("time.Duration"), "success").Once()

		decorator := NewUserUseCaseWithMetrics(next, m)
		err := decorator.Delete(ctx, principal, principal.ID)

		assert.NoError(t, err)
		next.AssertExpectations(t)
		m.AssertExpectations(t)
	})

	t.Run("records error and passes it through", func(t *testing.T) {
		next := &mockUserUseCase{}
		m := &mockBusinessMetrics{}

		id := uuid.Must(uuid.NewV7())
		next.On("Delete", ctx, principal, id).Return(userDomain.ErrUserAccessDenied).Once()
		m.On("RecordOperation", ctx, "user", "user_delete", "error").Once()
		m.On("RecordDuration", ctx, "user", "user_delete", mock.AnythingOfType("time.Duration"), "error").Once()

		decorator := NewUserUseCaseWithMetrics(next, m)
		err := decorator.Delete(ctx, principal, id)

		assert.ErrorIs(t, err, userDomain.ErrUserAccessDenied)
		next.AssertExpectations(t)
		m.AssertExpectations(t)
	})
}
