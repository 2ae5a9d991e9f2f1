package appointment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// deleteFailedMsg is the stable body returned when a delete cannot complete.
// Details stay in the server log.
const deleteFailedMsg = "appointment could not be deleted"

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/appointments", h.List)
	api.GET("/appointments/:uuid", h.Get)
	api.PUT("/appointments/:uuid", h.Update)
	api.DELETE("/appointments/:uuid", h.Delete)
	api.GET("/patients/:uuid/appointments", h.ListForPatient)
	api.POST("/patients/:uuid/appointments", h.Create)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		// An undecodable UUID is indistinguishable from an unknown one.
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	a, err := h.svc.Get(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) List(c echo.Context) error {
	q := ListQuery{
		PatientUUID: c.QueryParam("patient"),
		Title:       c.QueryParam("title"),
		Date:        c.QueryParam("date"),
		DateFrom:    c.QueryParam("date_from"),
		DateTo:      c.QueryParam("date_to"),
		Status:      c.QueryParam("status"),
	}
	appts, err := h.svc.List(c.Request().Context(), q)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, appts)
}

func (h *Handler) ListForPatient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	appts, err := h.svc.ListForPatient(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, appts)
}

func (h *Handler) Create(c echo.Context) error {
	patientUUID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	a, fieldErrs, err := h.svc.Create(c.Request().Context(), patientUUID, &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if fieldErrs != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"errors": fieldErrs})
	}
	if a == nil {
		// Unresolvable patient: nothing created, empty result rather than
		// an error.
		return c.JSON(http.StatusOK, nil)
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	var req UpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	a, fieldErrs, err := h.svc.Update(c.Request().Context(), id, &req)
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if fieldErrs != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"errors": fieldErrs})
	}
	return c.JSON(http.StatusOK, a)
}

// Delete handles both the plain delete and the recurrence-aware delete. The
// recurrence path is selected by the scope query parameter. Deleting an
// unknown or undecodable UUID is a no-op that returns a null body; a
// successful delete returns a sentinel envelope.
func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		return c.JSON(http.StatusOK, nil)
	}

	ctx := c.Request().Context()
	scope := c.QueryParam("scope")
	if scope == "" {
		err = h.svc.Delete(ctx, id)
	} else {
		err = h.svc.DeleteOccurrence(ctx, id, scope, c.QueryParam("date"))
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return c.JSON(http.StatusOK, nil)
	case errors.Is(err, ErrInvalidScope):
		return echo.NewHTTPError(http.StatusBadRequest, "scope must be one of current, future, all")
	case errors.Is(err, ErrInvalidDate):
		return echo.NewHTTPError(http.StatusBadRequest, "date must be in "+DateFormat+" form")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, deleteFailedMsg)
	}
	return c.JSON(http.StatusOK, map[string]bool{"deleted": true})
}
