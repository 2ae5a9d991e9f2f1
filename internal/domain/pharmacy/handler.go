package pharmacy

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/pharmacies", h.Search)
}

// Search handles GET /pharmacies. Query parameter names follow the legacy
// directory endpoint so existing clients keep working.
func (h *Handler) Search(c echo.Context) error {
	mode := c.QueryParam("searchFor")
	switch mode {
	case "":
		return echo.NewHTTPError(http.StatusBadRequest, "searchFor is required")
	case ModeCity, ModePharmacy, ModeDrop:
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "unknown search mode: "+mode)
	}

	f := Filters{
		Term:         c.QueryParam("term"),
		Coverage:     c.QueryParam("coverage"),
		State:        c.QueryParam("weno_state"),
		City:         c.QueryParam("weno_city"),
		FullDay:      c.QueryParam("full_day"),
		MemberOnly:   c.QueryParam("weno_only"),
		Zip:          c.QueryParam("weno_zipcode"),
		TestPharmacy: c.QueryParam("test_pharmacy"),
	}

	result, err := h.svc.Search(c.Request().Context(), mode, f)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}
