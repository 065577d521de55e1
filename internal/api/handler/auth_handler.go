package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskmanager/tasks-api/internal/api/metrics"
	"github.com/taskmanager/tasks-api/internal/core/domain"
	"github.com/taskmanager/tasks-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	limiter     ports.LoginLimiter
	log         zerolog.Logger
}

// NewAuthHandler builds the login handler. limiter may be nil, which disables
// rate limiting.
func NewAuthHandler(authService ports.AuthService, limiter ports.LoginLimiter, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, limiter: limiter, log: log}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Failure      429   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()

	if h.limiter != nil {
		allowed, err := h.limiter.Allow(ctx, c.RealIP()+":"+req.Email)
		switch {
		case err != nil:
			h.log.Warn().Err(err).Msg("login limiter unavailable, allowing attempt")
		case !allowed:
			metrics.LoginAttemptsTotal.WithLabelValues("rate_limited").Inc()
			return domain.ErrRateLimited
		}
	}

	token, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues("invalid").Inc()
		} else {
			metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}
