package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Deepthi1510/department-association/internal/model"
)

// RequireRole returns a middleware function that enforces that the
// authenticated user has one of the specified roles.  Roles are the
// closed model.Role set, so a misspelled role fails to compile rather
// than silently never matching.  It assumes JWTAuth has already
// stored the parsed role in the context under the key "role"; a
// missing or foreign value is rejected with 403 Forbidden.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(model.Role)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
