package app

import (
	authService "github.com/allisson/analytics/internal/auth/service"
)

// TokenService returns the JWT token service.
func (c *Container) TokenService() authService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = authService.NewJWTTokenService(c.config)
	})
	return c.tokenService
}
