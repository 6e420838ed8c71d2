package incidence

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Handler provides REST endpoints for incidence counting.
type Handler struct {
	counter  *Counter
	registry *Registry
}

// NewHandler creates an incidence handler.
func NewHandler(counter *Counter, registry *Registry) *Handler {
	return &Handler{counter: counter, registry: registry}
}

// RegisterRoutes registers incidence routes on the API group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/reports/incidence", h.ListCategories)
	api.GET("/reports/incidence/:category", h.Count)
	api.GET("/reports/drug-incidence", h.ListDrugCategories)
	api.GET("/reports/drug-incidence/:category", h.CountDrug)
}

// ListCategories handles GET /api/v1/reports/incidence.
func (h *Handler) ListCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, h.registry.Categories())
}

// ListDrugCategories handles GET /api/v1/reports/drug-incidence.
func (h *Handler) ListDrugCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, h.registry.DrugCategories())
}

// Count handles GET /api/v1/reports/incidence/:category?gender=&from=&to=.
func (h *Handler) Count(c echo.Context) error {
	from, to, err := dateWindow(c)
	if err != nil {
		return err
	}

	count, err := h.counter.Count(c.Request().Context(), c.Param("category"), c.QueryParam("gender"), from, to)
	if err != nil {
		return countError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"category": c.Param("category"),
		"count":    count,
	})
}

// CountDrug handles GET /api/v1/reports/drug-incidence/:category?from=&to=.
func (h *Handler) CountDrug(c echo.Context) error {
	from, to, err := dateWindow(c)
	if err != nil {
		return err
	}

	count, err := h.counter.CountDrug(c.Request().Context(), c.Param("category"), from, to)
	if err != nil {
		return countError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"category": c.Param("category"),
		"count":    count,
	})
}

func dateWindow(c echo.Context) (time.Time, time.Time, error) {
	from, err := time.Parse("2006-01-02", c.QueryParam("from"))
	if err != nil {
		return time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "query parameter 'from' must be YYYY-MM-DD")
	}
	to, err := time.Parse("2006-01-02", c.QueryParam("to"))
	if err != nil {
		return time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "query parameter 'to' must be YYYY-MM-DD")
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "'to' must not precede 'from'")
	}
	return from, to, nil
}

func countError(err error) error {
	var cfgErr *ConfigurationError
	if errors.As(err, &cfgErr) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
