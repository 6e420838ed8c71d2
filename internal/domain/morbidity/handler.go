package morbidity

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// Handler provides the REST endpoint for the morbidity report.
type Handler struct {
	svc *Service
}

// NewHandler creates a morbidity handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers morbidity routes on the API group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/reports/morbidity", h.Report)
}

// Report handles GET /api/v1/reports/morbidity?month=&year=&ward=&concepts=.
// concepts is a comma-separated list of diagnosis value concept ids.
func (h *Handler) Report(c echo.Context) error {
	month, err := strconv.Atoi(c.QueryParam("month"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter 'month' must be numeric")
	}
	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter 'year' must be numeric")
	}

	concepts, err := parseConceptList(c.QueryParam("concepts"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rows, err := h.svc.Aggregate(c.Request().Context(), concepts, month, year, c.QueryParam("ward"))
	if err != nil {
		var valErr *ValidationError
		if errors.As(err, &valErr) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if rows == nil {
		rows = []Row{}
	}
	return c.JSON(http.StatusOK, rows)
}

func parseConceptList(raw string) ([]int, error) {
	if raw == "" {
		return nil, errors.New("query parameter 'concepts' is required")
	}
	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || id <= 0 {
			return nil, errors.New("query parameter 'concepts' must be a comma-separated list of concept ids")
		}
		out = append(out, id)
	}
	return out, nil
}
