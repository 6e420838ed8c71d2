package visit

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hmis/hospitalcore/pkg/pagination"
)

// Handler provides REST endpoints for visit history reads.
type Handler struct {
	service *Service
}

// NewHandler creates a visit handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers visit routes on the API group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients/:id/last-visit", h.LastVisit)
	api.GET("/patients/:id/obs", h.Observations)
	api.GET("/visits", h.EncountersOn)
}

// LastVisit handles GET /api/v1/patients/:id/last-visit?types=5,6.
func (h *Handler) LastVisit(c echo.Context) error {
	patientID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "patient id must be numeric")
	}
	types, err := parseTypeList(c.QueryParam("types"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	enc, ts, err := h.service.LastVisit(c.Request().Context(), patientID, types)
	if err != nil {
		return visitError(err)
	}
	if enc == nil && ts == nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient has no visit history")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"encounter":       enc,
		"last_visit_time": ts,
	})
}

// EncountersOn handles GET /api/v1/visits?date=YYYY-MM-DD&types=9,10.
func (h *Handler) EncountersOn(c echo.Context) error {
	day, err := time.Parse("2006-01-02", c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter 'date' must be YYYY-MM-DD")
	}
	types, err := parseTypeList(c.QueryParam("types"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	encounters, err := h.service.EncountersOn(c.Request().Context(), day, types)
	if err != nil {
		return visitError(err)
	}
	if encounters == nil {
		encounters = []Encounter{}
	}
	return c.JSON(http.StatusOK, encounters)
}

// Observations handles GET /api/v1/patients/:id/obs?concept=&limit=&offset=.
func (h *Handler) Observations(c echo.Context) error {
	personID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "patient id must be numeric")
	}
	conceptID, err := strconv.Atoi(c.QueryParam("concept"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter 'concept' must be numeric")
	}
	page := pagination.FromContext(c)

	obs, err := h.service.Observations(c.Request().Context(), personID, conceptID, page.Offset, page.Limit)
	if err != nil {
		return visitError(err)
	}
	if obs == nil {
		obs = []Obs{}
	}
	return c.JSON(http.StatusOK, obs)
}

func parseTypeList(raw string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	types := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n <= 0 {
			return nil, errors.New("query parameter 'types' must be a comma-separated list of positive integers")
		}
		types = append(types, n)
	}
	return types, nil
}

func visitError(err error) error {
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
