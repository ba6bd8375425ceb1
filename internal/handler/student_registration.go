package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Deepthi1510/department-association/internal/queue"
	"github.com/Deepthi1510/department-association/internal/repository"
	queue_publisher "github.com/Deepthi1510/department-association/internal/service"
)

// StudentHandler exposes the registration surface for students:
// browsing what they can join, registering, cancelling and moving a
// registration to another activity of the same event. All methods
// assume JWT authentication and role validation have already been
// performed by middleware; the student identity comes from the
// principal_id claim, never from the request body.
type StudentHandler struct {
	Registrations *repository.RegistrationRepo
	Activities    *repository.ActivityRepo
	Events        *repository.EventRepo
	Students      *repository.StudentRepo
}

// NewStudentHandler constructs a StudentHandler with the provided
// repositories. All dependencies must be non-nil.
func NewStudentHandler(reg *repository.RegistrationRepo, act *repository.ActivityRepo, ev *repository.EventRepo, st *repository.StudentRepo) *StudentHandler {
	if reg == nil || act == nil || ev == nil || st == nil {
		panic("nil repository passed to NewStudentHandler")
	}
	return &StudentHandler{Registrations: reg, Activities: act, Events: ev, Students: st}
}

// ListMyRegistrations handles GET /v1/my-registrations. It returns the
// student's registrations joined with activity and event names,
// newest first.
func (h *StudentHandler) ListMyRegistrations(c echo.Context) error {
	studentID, err := getPrincipalID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	regs, err := h.Registrations.RegistrationsForStudent(c.Request().Context(), studentID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, regs)
}

// AvailableActivities handles GET /v1/activities/available. It lists
// every activity the student has no live registration for.
func (h *StudentHandler) AvailableActivities(c echo.Context) error {
	studentID, err := getPrincipalID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	acts, err := h.Registrations.AvailableActivitiesForStudent(c.Request().Context(), studentID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, acts)
}

// Register handles POST /v1/registrations. The body carries only the
// activity ID; the student comes from the session and the timestamp
// is assigned by the engine. A duplicate registration maps to 409, a
// reference to a missing activity to 404.
func (h *StudentHandler) Register(c echo.Context) error {
	studentID, err := getPrincipalID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		ActivityID uint64 `json:"activity_id"`
	}
	if err := c.Bind(&body); err != nil || body.ActivityID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "activity_id is required"})
	}
	ctx := c.Request().Context()
	// Existence check up front gives a clean 404; the engine still
	// defends with the FK constraint against a concurrent delete.
	if _, err := h.Activities.GetByID(ctx, body.ActivityID); err != nil {
		if errors.Is(err, repository.ErrActivityNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "activity not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	participantID, err := h.Registrations.Register(ctx, studentID, body.ActivityID)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyRegistered) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "already registered for this activity"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	h.publishConfirmed(participantID, studentID, body.ActivityID)

	return c.JSON(http.StatusCreated, echo.Map{
		"participant_id": participantID,
		"activity_id":    body.ActivityID,
	})
}

// Cancel handles DELETE /v1/registrations/:id. The registration must
// belong to the calling student; cancelling someone else's row is
// 403 rather than 404 so an owner probing IDs learns nothing extra.
func (h *StudentHandler) Cancel(c echo.Context) error {
	studentID, err := getPrincipalID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	participantID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid registration id"})
	}
	ctx := c.Request().Context()
	reg, err := h.Registrations.GetRegistration(ctx, participantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "registration not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if reg.StudentID != studentID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	if err := h.Registrations.Cancel(ctx, participantID); err != nil {
		if errors.Is(err, repository.ErrRegistrationNotFound) {
			// Raced with another cancel between the ownership check and here.
			return c.JSON(http.StatusNotFound, echo.Map{"error": "registration not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ChangeCandidates handles GET /v1/registrations/:id/alternatives. It
// lists the other activities of the same event, which are the valid
// targets for a Change on this registration.
func (h *StudentHandler) ChangeCandidates(c echo.Context) error {
	studentID, err := getPrincipalID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	participantID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid registration id"})
	}
	ctx := c.Request().Context()
	reg, err := h.Registrations.GetRegistration(ctx, participantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "registration not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if reg.StudentID != studentID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	act, err := h.Activities.GetByID(ctx, reg.ActivityID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	others, err := h.Registrations.OtherActivitiesInEvent(ctx, act.EventID, act.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, others)
}

// Change handles PUT /v1/registrations/:id. The body carries the new
// activity ID; the engine reads the student and old activity from the
// store and swaps the registration atomically, recounting both
// activities.
func (h *StudentHandler) Change(c echo.Context) error {
	studentID, err := getPrincipalID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	participantID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid registration id"})
	}
	var body struct {
		NewActivityID uint64 `json:"new_activity_id"`
	}
	if err := c.Bind(&body); err != nil || body.NewActivityID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "new_activity_id is required"})
	}
	ctx := c.Request().Context()
	reg, err := h.Registrations.GetRegistration(ctx, participantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "registration not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if reg.StudentID != studentID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	// The candidate list constrains changes to the same event; enforce
	// it here too so a handcrafted request cannot hop events.
	oldAct, err := h.Activities.GetByID(ctx, reg.ActivityID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	newAct, err := h.Activities.GetByID(ctx, body.NewActivityID)
	if err != nil {
		if errors.Is(err, repository.ErrActivityNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "activity not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if newAct.EventID != oldAct.EventID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "new activity must belong to the same event"})
	}

	newID, err := h.Registrations.Change(ctx, participantID, body.NewActivityID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRegistrationNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "registration not found"})
		case errors.Is(err, repository.ErrAlreadyRegistered):
			return c.JSON(http.StatusConflict, echo.Map{"error": "already registered for this activity"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "change failed"})
	}

	h.publishConfirmed(newID, studentID, body.NewActivityID)

	return c.JSON(http.StatusOK, echo.Map{
		"participant_id": newID,
		"activity_id":    body.NewActivityID,
	})
}

// publishConfirmed assembles a RegistrationConfirmedEvent and hands it
// to the broker in the background. Publishing is best effort: the
// registration has already committed and a broker outage must not
// fail the request.
func (h *StudentHandler) publishConfirmed(participantID, studentID, activityID uint64) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		ev := queue.RegistrationConfirmedEvent{
			ParticipantID: participantID,
			StudentID:     studentID,
			ActivityID:    activityID,
			RegisteredOn:  time.Now().UTC().Format(time.RFC3339),
		}
		if st, err := h.Students.GetByID(ctx, studentID); err == nil {
			ev.StudentName = st.Name
		}
		if act, err := h.Activities.GetByID(ctx, activityID); err == nil {
			ev.ActivityName = act.Name
			ev.EventID = act.EventID
			if e, err := h.Events.GetByID(ctx, act.EventID); err == nil {
				ev.EventName = e.Name
			}
		}
		_ = queue_publisher.PublishRegistrationConfirmed(ctx, ev)
	}()
}
