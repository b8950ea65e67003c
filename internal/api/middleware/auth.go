package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/projectmanager/auth-service/internal/api/metrics"
	"github.com/projectmanager/auth-service/internal/core/domain"
	"github.com/projectmanager/auth-service/internal/core/ports"
	"github.com/projectmanager/auth-service/internal/core/token"
)

// UserContextKey is where Auth stores the authenticated user's public view.
// Handlers read it once; nothing mutates it afterwards.
const UserContextKey = "auth_user"

// Auth validates the bearer token and injects the current user into the echo
// context. The user is re-fetched from the store on every request — the token
// carries only the id, so role changes take effect immediately rather than
// surviving inside old tokens.
func Auth(issuer *token.Issuer, repo ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			userID, err := issuer.Verify(parts[1])
			if err != nil {
				metrics.TokenVerifyDuration.WithLabelValues("invalid_token").Observe(time.Since(start).Seconds())
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			user, err := repo.FindByID(c.Request().Context(), userID)
			if err != nil {
				metrics.TokenVerifyDuration.WithLabelValues("user_missing").Observe(time.Since(start).Seconds())
				if errors.Is(err, domain.ErrUserNotFound) {
					// Valid signature, deleted account.
					return echo.NewHTTPError(http.StatusUnauthorized, "user no longer exists")
				}
				return err
			}

			metrics.TokenVerifyDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
			c.Set(UserContextKey, user.Public())

			return next(c)
		}
	}
}
