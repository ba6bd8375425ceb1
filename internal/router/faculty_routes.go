package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Deepthi1510/department-association/internal/handler"
	"github.com/Deepthi1510/department-association/internal/middleware"
	"github.com/Deepthi1510/department-association/internal/model"
)

// RegisterFaculty registers the faculty endpoints under /v1: activity
// management for events of advised associations, and winner
// recording. Admins share the group and skip the adviser scoping;
// everyone reads winner lists through the browse routes.
func RegisterFaculty(e *echo.Echo, h *handler.FacultyHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleFaculty, model.RoleAdmin),
	)
	g.Use(extra...)
	g.POST("/faculty/events/:id/activities", h.CreateActivity)
	g.PUT("/faculty/activities/:id", h.UpdateActivity)
	g.DELETE("/faculty/activities/:id", h.DeleteActivity)
	g.POST("/activities/:id/winners", h.CreateWinner)
	g.PUT("/winners/:id", h.UpdateWinner)
	g.DELETE("/winners/:id", h.DeleteWinner)
}
