// Package dto provides data transfer objects for the user HTTP layer.
package dto

import (
	"github.com/allisson/analytics/internal/user/domain"
	"github.com/allisson/analytics/internal/user/usecase"
)

// ToRegisterInput converts a RegisterRequest DTO to a RegisterInput use case input
func ToRegisterInput(req RegisterRequest) usecase.RegisterInput {
	return usecase.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}
}

// ToLoginInput converts a LoginRequest DTO to a LoginInput use case input
func ToLoginInput(req LoginRequest) usecase.LoginInput {
	return usecase.LoginInput{
		Username: req.Username,
		Password: req.Password,
	}
}

// ToUserResponse converts a domain User model to a UserResponse DTO
// This enforces the boundary between internal domain models and external API contracts
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// ToListUsersResponse converts a slice of domain users to a list response
func ToListUsersResponse(users []*domain.User) ListUsersResponse {
	data := make([]UserResponse, 0, len(users))
	for _, user := range users {
		data = append(data, ToUserResponse(user))
	}

	return ListUsersResponse{
		Data: data,
	}
}

// ToLoginResponse converts a use case LoginOutput to a LoginResponse DTO
func ToLoginResponse(output *usecase.LoginOutput) LoginResponse {
	return LoginResponse{
		Token:     output.Token,
		ExpiresAt: output.ExpiresAt,
		User:      ToUserResponse(output.User),
	}
}
