package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Deepthi1510/department-association/internal/model"
	"github.com/Deepthi1510/department-association/internal/repository"
)

// FacultyHandler covers the faculty surface: managing activities of
// events run by associations the faculty member advises, and
// recording activity winners. A winner must have been a registered
// participant of the activity at the time of recording. Admins pass
// the adviser scoping unconditionally.
type FacultyHandler struct {
	Winners       *repository.WinnerRepo
	Activities    *repository.ActivityRepo
	Events        *repository.EventRepo
	Advisers      *repository.AdviserRepo
	Registrations *repository.RegistrationRepo
}

// NewFacultyHandler constructs a FacultyHandler with the provided
// repositories. All dependencies must be non-nil.
func NewFacultyHandler(win *repository.WinnerRepo, act *repository.ActivityRepo, ev *repository.EventRepo, adv *repository.AdviserRepo, reg *repository.RegistrationRepo) *FacultyHandler {
	if win == nil || act == nil || ev == nil || adv == nil || reg == nil {
		panic("nil repository passed to NewFacultyHandler")
	}
	return &FacultyHandler{Winners: win, Activities: act, Events: ev, Advisers: adv, Registrations: reg}
}

// advisedEvent loads an event and verifies the caller advises its
// association. Admin callers skip the adviser check.
func (h *FacultyHandler) advisedEvent(c echo.Context, eventID uint64) (*model.Event, error) {
	e, err := h.Events.GetByID(c.Request().Context(), eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "event not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}
	if role, _ := c.Get("role").(model.Role); role == model.RoleAdmin {
		return e, nil
	}
	facultyID, err := getPrincipalID(c)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	ok, err := h.Advisers.AdvisesAssociation(c.Request().Context(), facultyID, e.AssociationID)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}
	if !ok {
		return nil, echo.NewHTTPError(http.StatusForbidden, "not an adviser of this association")
	}
	return e, nil
}

// advisedActivity loads an activity and applies advisedEvent to its
// owning event.
func (h *FacultyHandler) advisedActivity(c echo.Context, activityID uint64) (*model.Activity, error) {
	a, err := h.Activities.GetByID(c.Request().Context(), activityID)
	if err != nil {
		if errors.Is(err, repository.ErrActivityNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "activity not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}
	if _, err := h.advisedEvent(c, a.EventID); err != nil {
		return nil, err
	}
	return a, nil
}

// CreateActivity handles POST /v1/faculty/events/:id/activities.
func (h *FacultyHandler) CreateActivity(c echo.Context) error {
	eventID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	if _, err := h.advisedEvent(c, eventID); err != nil {
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

// UpdateActivity handles PUT /v1/faculty/activities/:id.
func (h *FacultyHandler) UpdateActivity(c echo.Context) error {
	activityID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid activity id"})
	}
	a, err := h.advisedActivity(c, activityID)
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

// DeleteActivity handles DELETE /v1/faculty/activities/:id.
func (h *FacultyHandler) DeleteActivity(c echo.Context) error {
	activityID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid activity id"})
	}
	if _, err := h.advisedActivity(c, activityID); err != nil {
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

type winnerReq struct {
	StudentID uint64 `json:"student_id"`
	Position  int    `json:"position"`
}

// registered reports whether studentID holds a live registration for
// activityID.
func (h *FacultyHandler) registered(c echo.Context, activityID, studentID uint64) (bool, error) {
	parts, err := h.Registrations.ParticipantsInActivity(c.Request().Context(), activityID)
	if err != nil {
		return false, err
	}
	for _, p := range parts {
		if p.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

// CreateWinner handles POST /v1/activities/:id/winners.
func (h *FacultyHandler) CreateWinner(c echo.Context) error {
	activityID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid activity id"})
	}
	var body winnerReq
	if err := c.Bind(&body); err != nil || body.StudentID == 0 || body.Position < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "student_id and a position of 1 or higher are required"})
	}
	ctx := c.Request().Context()
	if _, err := h.advisedActivity(c, activityID); err != nil {
		return err
	}
	ok, err := h.registered(c, activityID, body.StudentID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if !ok {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "student is not registered for this activity"})
	}
	w := &model.ActivityWinner{ActivityID: activityID, StudentID: body.StudentID, Position: body.Position}
	if err := h.Winners.Create(ctx, w); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, w)
}

// UpdateWinner handles PUT /v1/winners/:id. Only the position can
// change; re-attributing a win means deleting and recording anew.
func (h *FacultyHandler) UpdateWinner(c echo.Context) error {
	winnerID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid winner id"})
	}
	var body struct {
		Position int `json:"position"`
	}
	if err := c.Bind(&body); err != nil || body.Position < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "a position of 1 or higher is required"})
	}
	ctx := c.Request().Context()
	w, err := h.Winners.GetByID(ctx, winnerID)
	if err != nil {
		if errors.Is(err, repository.ErrWinnerNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "winner not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if _, err := h.advisedActivity(c, w.ActivityID); err != nil {
		return err
	}
	w.Position = body.Position
	if err := h.Winners.Update(ctx, w); err != nil {
		if errors.Is(err, repository.ErrWinnerNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "winner not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, w)
}

// DeleteWinner handles DELETE /v1/winners/:id.
func (h *FacultyHandler) DeleteWinner(c echo.Context) error {
	winnerID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid winner id"})
	}
	w, err := h.Winners.GetByID(c.Request().Context(), winnerID)
	if err != nil {
		if errors.Is(err, repository.ErrWinnerNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "winner not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if _, err := h.advisedActivity(c, w.ActivityID); err != nil {
		return err
	}
	if err := h.Winners.Delete(c.Request().Context(), winnerID); err != nil {
		if errors.Is(err, repository.ErrWinnerNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "winner not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusNoContent)
}
