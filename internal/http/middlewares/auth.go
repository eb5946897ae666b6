package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"task-board-system.com/task-board-system/internal/auth"
	apperrors "task-board-system.com/task-board-system/internal/errors"
)

const SubjectKey = "subject"

// BearerAuth requires a valid token on every path except the public ones.
func BearerAuth(tokens *auth.TokenManager, public ...string) echo.MiddlewareFunc {
	open := make(map[string]bool, len(public))
	for _, p := range public {
		open[p] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if open[c.Path()] {
				return next(c)
			}

			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				return echo.NewHTTPError(apperrors.ErrMissingToken.StatusCode, apperrors.ErrMissingToken.Message)
			}

			claims, err := tokens.Validate(strings.TrimSpace(raw))
			if err != nil {
				return echo.NewHTTPError(apperrors.StatusCode(err), err.Error())
			}

			c.Set(SubjectKey, claims.Subject)
			return next(c)
		}
	}
}
