package patientsearch

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hmis/hospitalcore/pkg/pagination"
)

// Handler provides REST endpoints for patient search.
type Handler struct {
	svc *Service
}

// NewHandler creates a patient search handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers patient search routes on the API group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients/search", h.Search)
	api.GET("/patients/:id/attributes", h.Attributes)
}

// Search handles GET /api/v1/patients/search.
func (h *Handler) Search(c echo.Context) error {
	cr, err := ParseCriteria(c.QueryParams())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p := pagination.FromContext(c)
	results, total, err := h.svc.Search(c.Request().Context(), cr, p.Limit, p.Offset)
	if err != nil {
		var valErr *ValidationError
		if errors.As(err, &valErr) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, pagination.NewResponse(results, total, p.Limit, p.Offset))
}

// Attributes handles GET /api/v1/patients/:id/attributes.
func (h *Handler) Attributes(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}

	attrs, err := h.svc.Attributes(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, attrs)
}
