package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskmanager/tasks-api/internal/api/middleware"
	"github.com/taskmanager/tasks-api/internal/core/domain"
)

// ctxIdentity returns the identity injected by the Auth middleware and
// fails fast when the route was registered without it.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	id := middleware.IdentityFrom(c)
	if id == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return id, nil
}
