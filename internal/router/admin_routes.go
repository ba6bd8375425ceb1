package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Deepthi1510/department-association/internal/handler"
	"github.com/Deepthi1510/department-association/internal/middleware"
	"github.com/Deepthi1510/department-association/internal/model"
)

// RegisterAdmin registers the directory maintenance endpoints under
// /v1/admin: associations, faculty, students, association memberships
// and faculty advisers. ADMIN role only.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)
	g.Use(extra...)

	g.POST("/associations", h.CreateAssociation)
	g.PUT("/associations/:id", h.UpdateAssociation)
	g.DELETE("/associations/:id", h.DeleteAssociation)

	g.GET("/faculty", h.ListFaculty)
	g.POST("/faculty", h.CreateFaculty)
	g.PUT("/faculty/:id", h.UpdateFaculty)
	g.DELETE("/faculty/:id", h.DeleteFaculty)

	g.GET("/students", h.ListStudents)
	g.POST("/students", h.CreateStudent)
	g.PUT("/students/:id", h.UpdateStudent)
	g.DELETE("/students/:id", h.DeleteStudent)

	g.GET("/associations/:id/members", h.ListMembers)
	g.POST("/members", h.CreateMember)
	g.PUT("/members/:id", h.UpdateMember)
	g.DELETE("/members/:id", h.DeleteMember)

	g.GET("/associations/:id/advisers", h.ListAdvisers)
	g.POST("/advisers", h.CreateAdviser)
	g.PUT("/advisers/:id", h.UpdateAdviser)
	g.DELETE("/advisers/:id", h.DeleteAdviser)
}
