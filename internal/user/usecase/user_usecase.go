// Package usecase implements the user business logic and orchestrates user domain operations.
package usecase

import (
	"context"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/allisson/go-pwdhash"
	"github.com/google/uuid"

	authDomain "github.com/allisson/analytics/internal/auth/domain"
	"github.com/allisson/analytics/internal/auth/service"
	"github.com/allisson/analytics/internal/database"
	apperrors "github.com/allisson/analytics/internal/errors"
	"github.com/allisson/analytics/internal/user/domain"
	appValidation "github.com/allisson/analytics/internal/validation"
)

// RegisterInput contains the input data for user registration
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput contains the credentials for a login attempt
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginOutput contains the authenticated user and the issued token
type LoginOutput struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// UseCase defines the interface for user business logic operations
type UseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]*domain.User, error)
	Delete(ctx context.Context, principal *authDomain.Principal, id uuid.UUID) error
}

// UserRepository interface defines user repository operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ListAll(ctx context.Context, offset, limit int) ([]*domain.User, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// UserUseCase handles user-related business logic
type UserUseCase struct {
	txManager      database.TxManager
	userRepo       UserRepository
	tokenService   service.TokenService
	passwordHasher *pwdhash.PasswordHasher
}

// NewUserUseCase creates a new UserUseCase
func NewUserUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	tokenService service.TokenService,
) (UseCase, error) {
	// Initialize password hasher with interactive policy for user passwords
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}

	return &UserUseCase{
		txManager:      txManager,
		userRepo:       userRepo,
		tokenService:   tokenService,
		passwordHasher: hasher,
	}, nil
}

// validateRegisterInput validates the registration input using jellydator/validation
func (uc *UserUseCase) validateRegisterInput(input RegisterInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Username,
			validation.Required.Error("username is required"),
			appValidation.NotBlank,
			appValidation.Username,
			validation.Length(3, 64).Error("username must be between 3 and 64 characters"),
		),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
			appValidation.PasswordStrength{
				MinLength:      8,
				RequireUpper:   true,
				RequireLower:   true,
				RequireNumber:  true,
				RequireSpecial: true,
			},
		),
	)
	return appValidation.WrapValidationError(err)
}

// Register creates a new user account with a hashed password
func (uc *UserUseCase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	input.Username = strings.TrimSpace(strings.ToLower(input.Username))
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))

	if err := uc.validateRegisterInput(input); err != nil {
		return nil, err
	}

	hashedPassword, err := uc.passwordHasher.Hash([]byte(input.Password))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash password")
	}

	user := &domain.User{
		ID:       uuid.Must(uuid.NewV7()),
		Username: input.Username,
		Email:    input.Email,
		Password: hashedPassword,
	}

	// The existence checks and the insert run in one transaction; the unique
	// constraints still back them up under concurrent registration.
	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		taken, err := uc.userRepo.ExistsByUsername(ctx, user.Username)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrUsernameTaken
		}

		taken, err = uc.userRepo.ExistsByEmail(ctx, user.Email)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrEmailTaken
		}

		return uc.userRepo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies the credentials and issues an authentication token.
// Unknown usernames and wrong passwords produce the same error so the
// endpoint cannot be used to enumerate accounts.
func (uc *UserUseCase) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	username := strings.TrimSpace(strings.ToLower(input.Username))

	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if apperrors.Is(err, domain.ErrUserNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := uc.passwordHasher.Verify([]byte(input.Password), user.Password)
	if err != nil || !ok {
		return nil, authDomain.ErrInvalidCredentials
	}

	token, expiresAt, err := uc.tokenService.Issue(user)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to issue token")
	}

	return &LoginOutput{
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// GetByID retrieves a user by ID. Soft-deleted accounts are a not-found.
func (uc *UserUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

// GetByUsername retrieves a user by username
func (uc *UserUseCase) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return uc.userRepo.GetByUsername(ctx, username)
}

// List retrieves a page of active user accounts, newest first.
func (uc *UserUseCase) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	return uc.userRepo.ListAll(ctx, offset, limit)
}

// Delete soft-deletes the principal's own account. Existence is decided
// first, so asking to delete an unknown ID reports not-found rather than
// access-denied. A deleted account no longer resolves during authentication,
// which retires any tokens issued for it.
func (uc *UserUseCase) Delete(ctx context.Context, principal *authDomain.Principal, id uuid.UUID) error {
	if principal == nil {
		return apperrors.ErrUnauthorized
	}

	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		user, err := uc.userRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if user.ID != principal.ID {
			return domain.ErrUserAccessDenied
		}
		return uc.userRepo.SoftDelete(ctx, user.ID)
	})
}
