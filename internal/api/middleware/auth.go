package middleware

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskmanager/tasks-api/internal/api/metrics"
	"github.com/taskmanager/tasks-api/internal/core/domain"
	"github.com/taskmanager/tasks-api/internal/core/ports"
)

const identityKey = "identity"

// Auth verifies the bearer token and injects the caller identity into context.
func Auth(verifier ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return fmt.Errorf("%w: missing authorization header", domain.ErrInvalidToken)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				return fmt.Errorf("%w: malformed authorization header", domain.ErrInvalidToken)
			}

			id, err := verifier.Verify(c.Request().Context(), strings.TrimSpace(parts[1]))
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				return err
			}

			metrics.TokenVerificationsTotal.WithLabelValues("valid").Inc()
			SetIdentity(c, id)
			return next(c)
		}
	}
}

// SetIdentity stores the verified caller on the request context.
func SetIdentity(c echo.Context, id *domain.Identity) {
	c.Set(identityKey, id)
}

// IdentityFrom returns the identity stored by Auth, or nil.
func IdentityFrom(c echo.Context) *domain.Identity {
	id, _ := c.Get(identityKey).(*domain.Identity)
	return id
}
