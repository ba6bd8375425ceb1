package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Deepthi1510/department-association/internal/model"
	"github.com/Deepthi1510/department-association/internal/repository"
)

// AdminHandler holds the directory maintenance surface: associations,
// faculty, students, association memberships and faculty advisers.
// Admin-only; the registration engine is never touched from here.
type AdminHandler struct {
	Associations *repository.AssociationRepo
	Faculty      *repository.FacultyRepo
	Students     *repository.StudentRepo
	Members      *repository.MemberRepo
	Advisers     *repository.AdviserRepo
}

// NewAdminHandler constructs an AdminHandler with the provided
// repositories. All dependencies must be non-nil.
func NewAdminHandler(assoc *repository.AssociationRepo, fac *repository.FacultyRepo, st *repository.StudentRepo, mem *repository.MemberRepo, adv *repository.AdviserRepo) *AdminHandler {
	if assoc == nil || fac == nil || st == nil || mem == nil || adv == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Associations: assoc, Faculty: fac, Students: st, Members: mem, Advisers: adv}
}

type associationReq struct {
	Name              string `json:"assoc_name"`
	EstablishmentYear int    `json:"establishment_year"`
	DepartmentID      uint64 `json:"department_id"`
	Description       string `json:"description"`
}

// CreateAssociation handles POST /v1/admin/associations.
func (h *AdminHandler) CreateAssociation(c echo.Context) error {
	var body associationReq
	if err := c.Bind(&body); err != nil || body.Name == "" || body.DepartmentID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "assoc_name and department_id are required"})
	}
	a := &model.Association{
		Name:              body.Name,
		EstablishmentYear: body.EstablishmentYear,
		DepartmentID:      body.DepartmentID,
		Description:       body.Description,
	}
	if err := h.Associations.Create(c.Request().Context(), a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, a)
}

// UpdateAssociation handles PUT /v1/admin/associations/:id.
func (h *AdminHandler) UpdateAssociation(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid association id"})
	}
	var body associationReq
	if err := c.Bind(&body); err != nil || body.Name == "" || body.DepartmentID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "assoc_name and department_id are required"})
	}
	a := &model.Association{
		ID:                id,
		Name:              body.Name,
		EstablishmentYear: body.EstablishmentYear,
		DepartmentID:      body.DepartmentID,
		Description:       body.Description,
	}
	if err := h.Associations.Update(c.Request().Context(), a); err != nil {
		if errors.Is(err, repository.ErrAssociationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "association not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, a)
}

// DeleteAssociation handles DELETE /v1/admin/associations/:id.
func (h *AdminHandler) DeleteAssociation(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid association id"})
	}
	if err := h.Associations.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrAssociationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "association not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusNoContent)
}

type facultyReq struct {
	Name        string `json:"f_name"`
	Email       string `json:"f_email"`
	Phone       string `json:"f_phone"`
	Designation string `json:"designation"`
}

// CreateFaculty handles POST /v1/admin/faculty.
func (h *AdminHandler) CreateFaculty(c echo.Context) error {
	var body facultyReq
	if err := c.Bind(&body); err != nil || body.Name == "" || body.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "f_name and f_email are required"})
	}
	f := &model.Faculty{Name: body.Name, Email: body.Email, Phone: body.Phone, Designation: body.Designation}
	if err := h.Faculty.Create(c.Request().Context(), f); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, f)
}

// ListFaculty handles GET /v1/admin/faculty.
func (h *AdminHandler) ListFaculty(c echo.Context) error {
	list, err := h.Faculty.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, list)
}

// UpdateFaculty handles PUT /v1/admin/faculty/:id.
func (h *AdminHandler) UpdateFaculty(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid faculty id"})
	}
	var body facultyReq
	if err := c.Bind(&body); err != nil || body.Name == "" || body.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "f_name and f_email are required"})
	}
	f := &model.Faculty{ID: id, Name: body.Name, Email: body.Email, Phone: body.Phone, Designation: body.Designation}
	if err := h.Faculty.Update(c.Request().Context(), f); err != nil {
		if errors.Is(err, repository.ErrFacultyNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "faculty not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, f)
}

// DeleteFaculty handles DELETE /v1/admin/faculty/:id.
func (h *AdminHandler) DeleteFaculty(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid faculty id"})
	}
	if err := h.Faculty.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrFacultyNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "faculty not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusNoContent)
}

type studentReq struct {
	Name  string `json:"s_name"`
	Email string `json:"s_email"`
	Phone string `json:"phone"`
}

// CreateStudent handles POST /v1/admin/students.
func (h *AdminHandler) CreateStudent(c echo.Context) error {
	var body studentReq
	if err := c.Bind(&body); err != nil || body.Name == "" || body.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "s_name and s_email are required"})
	}
	s := &model.Student{Name: body.Name, Email: body.Email, Phone: body.Phone}
	if err := h.Students.Create(c.Request().Context(), s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, s)
}

// ListStudents handles GET /v1/admin/students.
func (h *AdminHandler) ListStudents(c echo.Context) error {
	list, err := h.Students.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, list)
}

// UpdateStudent handles PUT /v1/admin/students/:id.
func (h *AdminHandler) UpdateStudent(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid student id"})
	}
	var body studentReq
	if err := c.Bind(&body); err != nil || body.Name == "" || body.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "s_name and s_email are required"})
	}
	s := &model.Student{ID: id, Name: body.Name, Email: body.Email, Phone: body.Phone}
	if err := h.Students.Update(c.Request().Context(), s); err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "student not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, s)
}

// DeleteStudent handles DELETE /v1/admin/students/:id. Registrations
// and memberships referencing the student are removed by the schema's
// cascading foreign keys; participant counts of affected activities
// are not recounted here.
func (h *AdminHandler) DeleteStudent(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid student id"})
	}
	if err := h.Students.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "student not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusNoContent)
}

type memberReq struct {
	AssociationID uint64 `json:"assoc_id"`
	StudentID     uint64 `json:"student_id"`
	Role          string `json:"role"`
	JoinedDate    string `json:"joined_date"` // YYYY-MM-DD
}

// CreateMember handles POST /v1/admin/members.
func (h *AdminHandler) CreateMember(c echo.Context) error {
	var body memberReq
	if err := c.Bind(&body); err != nil || body.AssociationID == 0 || body.StudentID == 0 || body.Role == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "assoc_id, student_id and role are required"})
	}
	joined := time.Now().UTC()
	if body.JoinedDate != "" {
		d, err := time.Parse("2006-01-02", body.JoinedDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "joined_date must be YYYY-MM-DD"})
		}
		joined = d
	}
	m := &model.AssociationMember{
		AssociationID: body.AssociationID,
		StudentID:     body.StudentID,
		Role:          body.Role,
		JoinedDate:    joined,
	}
	if err := h.Members.Create(c.Request().Context(), m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, m)
}

// ListMembers handles GET /v1/admin/associations/:id/members.
func (h *AdminHandler) ListMembers(c echo.Context) error {
	assocID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid association id"})
	}
	list, err := h.Members.ListByAssociation(c.Request().Context(), assocID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, list)
}

// UpdateMember handles PUT /v1/admin/members/:id. Only the role is
// mutable; moving a student between associations is delete and
// re-create.
func (h *AdminHandler) UpdateMember(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid member id"})
	}
	var body struct {
		Role string `json:"role"`
	}
	if err := c.Bind(&body); err != nil || body.Role == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "role is required"})
	}
	ctx := c.Request().Context()
	m, err := h.Members.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "association member not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	m.Role = body.Role
	if err := h.Members.Update(ctx, m); err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "association member not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, m)
}

// DeleteMember handles DELETE /v1/admin/members/:id.
func (h *AdminHandler) DeleteMember(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid member id"})
	}
	if err := h.Members.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "association member not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusNoContent)
}

type adviserReq struct {
	AssociationID uint64 `json:"assoc_id"`
	FacultyID     uint64 `json:"faculty_id"`
	Role          string `json:"role"`
}

// CreateAdviser handles POST /v1/admin/advisers.
func (h *AdminHandler) CreateAdviser(c echo.Context) error {
	var body adviserReq
	if err := c.Bind(&body); err != nil || body.AssociationID == 0 || body.FacultyID == 0 || body.Role == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "assoc_id, faculty_id and role are required"})
	}
	a := &model.FacultyAdviser{AssociationID: body.AssociationID, FacultyID: body.FacultyID, Role: body.Role}
	if err := h.Advisers.Create(c.Request().Context(), a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, a)
}

// ListAdvisers handles GET /v1/admin/associations/:id/advisers.
func (h *AdminHandler) ListAdvisers(c echo.Context) error {
	assocID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid association id"})
	}
	list, err := h.Advisers.ListByAssociation(c.Request().Context(), assocID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, list)
}

// UpdateAdviser handles PUT /v1/admin/advisers/:id. Only the role is
// mutable.
func (h *AdminHandler) UpdateAdviser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid adviser id"})
	}
	var body struct {
		Role string `json:"role"`
	}
	if err := c.Bind(&body); err != nil || body.Role == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "role is required"})
	}
	ctx := c.Request().Context()
	a, err := h.Advisers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAdviserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "faculty adviser not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	a.Role = body.Role
	if err := h.Advisers.Update(ctx, a); err != nil {
		if errors.Is(err, repository.ErrAdviserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "faculty adviser not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, a)
}

// DeleteAdviser handles DELETE /v1/admin/advisers/:id.
func (h *AdminHandler) DeleteAdviser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid adviser id"})
	}
	if err := h.Advisers.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrAdviserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "faculty adviser not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusNoContent)
}
