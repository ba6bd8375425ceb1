package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Deepthi1510/department-association/internal/repository"
)

// BrowseHandler serves the read-only catalog endpoints shared by every
// authenticated role: associations, events, activities and winners.
type BrowseHandler struct {
	Associations  *repository.AssociationRepo
	Events        *repository.EventRepo
	Registrations *repository.RegistrationRepo
	Winners       *repository.WinnerRepo
}

// NewBrowseHandler constructs a BrowseHandler with the provided
// repositories. All dependencies must be non-nil.
func NewBrowseHandler(assoc *repository.AssociationRepo, ev *repository.EventRepo, reg *repository.RegistrationRepo, win *repository.WinnerRepo) *BrowseHandler {
	if assoc == nil || ev == nil || reg == nil || win == nil {
		panic("nil repository passed to NewBrowseHandler")
	}
	return &BrowseHandler{Associations: assoc, Events: ev, Registrations: reg, Winners: win}
}

// ListAssociations handles GET /v1/associations.
func (h *BrowseHandler) ListAssociations(c echo.Context) error {
	list, err := h.Associations.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, list)
}

// GetAssociation handles GET /v1/associations/:id.
func (h *BrowseHandler) GetAssociation(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid association id"})
	}
	a, err := h.Associations.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrAssociationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "association not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, a)
}

// ListEvents handles GET /v1/events. An optional assoc_id query
// parameter narrows the listing to one association.
func (h *BrowseHandler) ListEvents(c echo.Context) error {
	ctx := c.Request().Context()
	if raw := c.QueryParam("assoc_id"); raw != "" {
		assocID, err := parseUint(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid assoc_id"})
		}
		list, err := h.Events.ListByAssociation(ctx, assocID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		return c.JSON(http.StatusOK, list)
	}
	list, err := h.Events.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, list)
}

// GetEvent handles GET /v1/events/:id.
func (h *BrowseHandler) GetEvent(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	e, err := h.Events.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, e)
}

// ListEventActivities handles GET /v1/events/:id/activities. The list
// is ordered by start time and carries the live participant counts.
func (h *BrowseHandler) ListEventActivities(c echo.Context) error {
	eventID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Events.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	acts, err := h.Registrations.ActivitiesInEvent(ctx, eventID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, acts)
}

// ListAllActivities handles GET /v1/activities. Activities across all
// events, ordered by event date then start time.
func (h *BrowseHandler) ListAllActivities(c echo.Context) error {
	acts, err := h.Registrations.ListAllActivities(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, acts)
}

// ListActivityWinners handles GET /v1/activities/:id/winners, ordered
// by position.
func (h *BrowseHandler) ListActivityWinners(c echo.Context) error {
	activityID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid activity id"})
	}
	winners, err := h.Winners.ListByActivity(c.Request().Context(), activityID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, winners)
}
