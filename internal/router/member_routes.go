package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Deepthi1510/department-association/internal/handler"
	"github.com/Deepthi1510/department-association/internal/middleware"
	"github.com/Deepthi1510/department-association/internal/model"
)

// RegisterMember registers the association management endpoints under
// /v1/manage. The handler scopes every operation to the member's own
// association; admins share the group without the scoping.
func RegisterMember(e *echo.Echo, h *handler.MemberHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	g := e.Group(
		"/v1/manage",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAssociationMember, model.RoleAdmin),
	)
	g.Use(extra...)
	g.GET("/events", h.ListMyEvents)
	g.POST("/events", h.CreateEvent)
	g.PUT("/events/:id", h.UpdateEvent)
	g.DELETE("/events/:id", h.DeleteEvent)
	g.POST("/events/:id/activities", h.CreateActivity)
	g.PUT("/activities/:id", h.UpdateActivity)
	g.DELETE("/activities/:id", h.DeleteActivity)
	g.GET("/activities/:id/participants", h.ListParticipants)
}
