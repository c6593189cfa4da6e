package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/analytics/internal/auth/domain"
	"github.com/allisson/analytics/internal/metrics"
	userDomain "github.com/allisson/analytics/internal/user/domain"
)

// userUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type userUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewUserUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewUserUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &userUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (u *userUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "user", operation, status)
	u.metrics.RecordDuration(ctx, "user", operation, time.Since(start), status)
}

// Register records metrics for registration operations.
func (u *userUseCaseWithMetrics) Register(ctx context.Context, input RegisterInput) (*userDomain.User, error) {
	start := time.Now()
	user, err := u.next.Register(ctx, input)
	u.record(ctx, "user_register", start, err)
	return user, err
}

// Login records metrics for login operations.
func (u *userUseCaseWithMetrics) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	start := time.Now()
	output, err := u.next.Login(ctx, input)
	u.record(ctx, "user_login", start, err)
	return output, err
}

// GetByID records metrics for user lookup operations.
func (u *userUseCaseWithMetrics) GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	start := time.Now()
	user, err := u.next.GetByID(ctx, id)
	u.record(ctx, "user_get_by_id", start, err)
	return user, err
}

// GetByUsername records metrics for user lookup operations.
func (u *userUseCaseWithMetrics) GetByUsername(ctx context.Context, username string) (*userDomain.User, error) {
	start := time.Now()
	user, err := u.next.GetByUsername(ctx, username)
	u.record(ctx, "user_get_by_username", start, err)
	return user, err
}

// List records metrics for user listing operations.
func (u *userUseCaseWithMetrics) List(ctx context.Context, offset, limit int) ([]*userDomain.User, error) {
	start := time.Now()
	users, err := u.next.List(ctx, offset, limit)
	u.record(ctx, "user_list", start, err)
	return users, err
}

// Delete records metrics for account deletion operations.
func (u *userUseCaseWithMetrics) Delete(ctx context.Context, principal *authDomain.Principal, id uuid.UUID) error {
	start := time.Now()
	err := u.next.Delete(ctx, principal, id)
	u.record(ctx, "user_delete", start, err)
	return err
}
