package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/Deepthi1510/department-association/internal/handler"
	"github.com/Deepthi1510/department-association/internal/middleware"
	"github.com/Deepthi1510/department-association/internal/model"
)

// RegisterRoutes registers routes that do not require authentication
// on the provided Echo instance. Currently it exposes only a health
// check, used by load balancers to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes. Unauthenticated
// operations live under /v1/auth; /v1/me requires a valid access
// token of any role.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(model.RoleStudent, model.RoleFaculty, model.RoleAssociationMember, model.RoleAdmin))
	auth.GET("/me", a.Me)
}

// RegisterBrowse registers the read-only catalog endpoints shared by
// every authenticated role: associations, events, activities and
// winners. The extra middleware (rate limiting, response caching) is
// applied here so the hot browse paths are the ones cached.
func RegisterBrowse(e *echo.Echo, b *handler.BrowseHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleStudent, model.RoleFaculty, model.RoleAssociationMember, model.RoleAdmin),
	)
	g.Use(extra...)
	g.GET("/associations", b.ListAssociations)
	g.GET("/associations/:id", b.GetAssociation)
	g.GET("/events", b.ListEvents)
	g.GET("/events/:id", b.GetEvent)
	g.GET("/events/:id/activities", b.ListEventActivities)
	g.GET("/activities", b.ListAllActivities)
	g.GET("/activities/:id/winners", b.ListActivityWinners)
}
