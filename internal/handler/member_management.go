package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Deepthi1510/department-association/internal/model"
	"github.com/Deepthi1510/department-association/internal/repository"
)

// MemberHandler lets association members run their association's
// event programme: creating and editing events and activities, and
// inspecting who registered. Every mutation is scoped to the caller's
// own association, resolved from the membership table; events of
// other associations are off limits. Admin callers skip the scoping
// and may manage any association's programme.
type MemberHandler struct {
	Members       *repository.MemberRepo
	Events        *repository.EventRepo
	Activities    *repository.ActivityRepo
	Registrations *repository.RegistrationRepo
}

// NewMemberHandler constructs a MemberHandler with the provided
// repositories. All dependencies must be non-nil.
func NewMemberHandler(mem *repository.MemberRepo, ev *repository.EventRepo, act *repository.ActivityRepo, reg *repository.RegistrationRepo) *MemberHandler {
	if mem == nil || ev == nil || act == nil || reg == nil {
		panic("nil repository passed to NewMemberHandler")
	}
	return &MemberHandler{Members: mem, Events: ev, Activities: act, Registrations: reg}
}

// membership resolves the caller's association membership from the
// principal_id claim. A login with the member role but no membership
// row is treated as forbidden. Admins have no membership; they get a
// nil member and skip the association scoping downstream.
func (h *MemberHandler) membership(c echo.Context) (*model.AssociationMember, error) {
	if role, _ := c.Get("role").(model.Role); role == model.RoleAdmin {
		return nil, nil
	}
	studentID, err := getPrincipalID(c)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	m, err := h.Members.AssociationForStudent(c.Request().Context(), studentID)
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			return nil, echo.NewHTTPError(http.StatusForbidden, "no association membership")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}
	return m, nil
}

// ownedEvent loads an event and verifies it belongs to the caller's
// association. A nil member (admin caller) skips the check.
func (h *MemberHandler) ownedEvent(c echo.Context, m *model.AssociationMember, eventID uint64) (*model.Event, error) {
	e, err := h.Events.GetByID(c.Request().Context(), eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "event not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}
	if m != nil && e.AssociationID != m.AssociationID {
		return nil, echo.NewHTTPError(http.StatusForbidden, "event belongs to another association")
	}
	return e, nil
}

type eventReq struct {
	AssociationID uint64 `json:"assoc_id"` // required for admin callers only
	Name          string `json:"event_name"`
	Date          string `json:"event_date"` // YYYY-MM-DD
	Venue         string `json:"venue"`
	Description   string `json:"description"`
}

func (r *eventReq) parse() (time.Time, error) {
	if r.Name == "" || r.Date == "" || r.Venue == "" {
		return time.Time{}, errors.New("event_name, event_date and venue are required")
	}
	return time.Parse("2006-01-02", r.Date)
}

// CreateEvent handles POST /v1/manage/events. The event is created
// under the caller's association with a zero participant count.
func (h *MemberHandler) CreateEvent(c echo.Context) error {
	m, err := h.membership(c)
	if err != nil {
		return err
	}
	var body eventReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	date, err := body.parse()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	assocID := body.AssociationID
	if m != nil {
		assocID = m.AssociationID
	}
	if assocID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "assoc_id is required"})
	}
	e := &model.Event{
		AssociationID: assocID,
		Name:          body.Name,
		Date:          date,
		Venue:         body.Venue,
		Description:   body.Description,
	}
	if err := h.Events.Create(c.Request().Context(), e); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, e)
}

// ListMyEvents handles GET /v1/manage/events: the caller's
// association's events, or every event for admin callers.
func (h *MemberHandler) ListMyEvents(c echo.Context) error {
	m, err := h.membership(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	var list []model.Event
	if m != nil {
		list, err = h.Events.ListByAssociation(ctx, m.AssociationID)
	} else {
		list, err = h.Events.List(ctx)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, list)
}

// UpdateEvent handles PUT /v1/manage/events/:id.
func (h *MemberHandler) UpdateEvent(c echo.Context) error {
	m, err := h.membership(c)
	if err != nil {
		return err
	}
	eventID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	e, err := h.ownedEvent(c, m, eventID)
	if err != nil {
		return err
	}
	var body eventReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	date, err := body.parse()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	e.Name = body.Name
	e.Date = date
	e.Venue = body.Venue
	e.Description = body.Description
	if err := h.Events.Update(c.Request().Context(), e); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, e)
}

// DeleteEvent handles DELETE /v1/manage/events/:id. Activities and
// registrations under the event go with it via the schema's cascading
// foreign keys.
func (h *MemberHandler) DeleteEvent(c echo.Context) error {
	m, err := h.membership(c)
	if err != nil {
		return err
	}
	eventID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	if _, err := h.ownedEvent(c, m, eventID); err != nil {
		return err
	}
	if err := h.Events.Delete(c.Request().Context(), eventID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusNoContent)
}

type activityReq struct {
	Name        string `json:"activity_name"`
	Description string `json:"description"`
	StartTime   string `json:"start_time"` // HH:MM:SS
	EndTime     string `json:"end_time"`   // HH:MM:SS
}

func (r *activityReq) validate() error {
	if r.Name == "" || r.StartTime == "" || r.EndTime == "" {
		return errors.New("activity_name, start_time and end_time are required")
	}
	if _, err := time.Parse("15:04:05", r.StartTime); err != nil {
		return errors.New("start_time must be HH:MM:SS")
	}
	if _, err := time.Parse("15:04:05", r.EndTime); err != nil {
		return errors.New("end_time must be HH:MM:SS")
	}
	return nil
}

// CreateActivity handles POST /v1/manage/events/:id/activities.
func (h *MemberHandler) CreateActivity(c echo.Context) error {
	m, err := h.membership(c)
	if err != nil {
		return err
	}
	eventID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	if _, err := h.ownedEvent(c, m, eventID); err != nil {
		return err
	}
	var body activityReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := body.validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	a := &model.Activity{
		EventID:     eventID,
		Name:        body.Name,
		Description: body.Description,
		StartTime:   body.StartTime,
		EndTime:     body.EndTime,
	}
	if err := h.Activities.Create(c.Request().Context(), a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, a)
}

// ownedActivity loads an activity and verifies its event belongs to
// the caller's association.
func (h *MemberHandler) ownedActivity(c echo.Context, m *model.AssociationMember, activityID uint64) (*model.Activity, error) {
	a, err := h.Activities.GetByID(c.Request().Context(), activityID)
	if err != nil {
		if errors.Is(err, repository.ErrActivityNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "activity not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}
	if _, err := h.ownedEvent(c, m, a.EventID); err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateActivity handles PUT /v1/manage/activities/:id. The
// participant count is never writable through this path; only the
// registration engine maintains it.
func (h *MemberHandler) UpdateActivity(c echo.Context) error {
	m, err := h.membership(c)
	if err != nil {
		return err
	}
	activityID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid activity id"})
	}
	a, err := h.ownedActivity(c, m, activityID)
	if err != nil {
		return err
	}
	var body activityReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := body.validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	a.Name = body.Name
	a.Description = body.Description
	a.StartTime = body.StartTime
	a.EndTime = body.EndTime
	if err := h.Activities.Update(c.Request().Context(), a); err != nil {
		if errors.Is(err, repository.ErrActivityNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "activity not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, a)
}

// DeleteActivity handles DELETE /v1/manage/activities/:id.
func (h *MemberHandler) DeleteActivity(c echo.Context) error {
	m, err := h.membership(c)
	if err != nil {
		return err
	}
	activityID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid activity id"})
	}
	if _, err := h.ownedActivity(c, m, activityID); err != nil {
		return err
	}
	if err := h.Activities.Delete(c.Request().Context(), activityID); err != nil {
		if errors.Is(err, repository.ErrActivityNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "activity not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListParticipants handles GET /v1/manage/activities/:id/participants:
// the registration roster for one of the association's activities.
func (h *MemberHandler) ListParticipants(c echo.Context) error {
	m, err := h.membership(c)
	if err != nil {
		return err
	}
	activityID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid activity id"})
	}
	if _, err := h.ownedActivity(c, m, activityID); err != nil {
		return err
	}
	parts, err := h.Registrations.ParticipantsInActivity(c.Request().Context(), activityID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, parts)
}
