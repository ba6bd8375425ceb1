package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Deepthi1510/department-association/internal/handler"
	"github.com/Deepthi1510/department-association/internal/middleware"
	"github.com/Deepthi1510/department-association/internal/model"
)

// RegisterStudent registers the registration endpoints under /v1.
// All routes require a valid JWT and the STUDENT role. Students can
// list what they may join, register for an activity, cancel a
// registration, inspect change candidates and move a registration to
// another activity of the same event.
func RegisterStudent(e *echo.Echo, h *handler.StudentHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleStudent),
	)
	g.Use(extra...)
	g.GET("/my-registrations", h.ListMyRegistrations)
	g.GET("/activities/available", h.AvailableActivities)
	g.POST("/registrations", h.Register)
	g.DELETE("/registrations/:id", h.Cancel)
	g.GET("/registrations/:id/alternatives", h.ChangeCandidates)
	g.PUT("/registrations/:id", h.Change)
}
