package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/projectmanager/auth-service/internal/api/middleware"
	"github.com/projectmanager/auth-service/internal/core/domain"
)

// ctxUser extracts the authenticated user injected by the Auth middleware.
// Its absence means the route was registered without the middleware — a
// wiring bug, reported as 401 rather than a panic.
func ctxUser(c echo.Context) (domain.PublicUser, error) {
	user, ok := c.Get(middleware.UserContextKey).(domain.PublicUser)
	if !ok {
		return domain.PublicUser{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}
