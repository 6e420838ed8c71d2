package taxonomy

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler provides REST endpoints for taxonomy import and concept lookup.
type Handler struct {
	svc *Service
}

// NewHandler creates a taxonomy handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers taxonomy routes on the API group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/taxonomy/import", h.Import)
	api.GET("/concepts", h.LookupConcept)
}

// Import handles POST /api/v1/taxonomy/import. The request is multipart with
// three file parts: diagnoses, mappings, synonyms.
func (h *Handler) Import(c echo.Context) error {
	diagFH, err := c.FormFile("diagnoses")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file part: diagnoses")
	}
	mapFH, err := c.FormFile("mappings")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file part: mappings")
	}
	synFH, err := c.FormFile("synonyms")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file part: synonyms")
	}
	diag, err := diagFH.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "open diagnoses: "+err.Error())
	}
	defer diag.Close()
	maps, err := mapFH.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "open mappings: "+err.Error())
	}
	defer maps.Close()
	syns, err := synFH.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "open synonyms: "+err.Error())
	}
	defer syns.Close()

	processed, err := h.svc.ImportStreams(c.Request().Context(), diag, maps, syns)
	if err != nil {
		var parseErr *ParseError
		var valErr *ValidationError
		var impErr *ImportError
		switch {
		case errors.As(err, &parseErr), errors.As(err, &valErr):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.As(err, &impErr):
			// Batches committed before the failure are durable; report how
			// far the import got so the caller can re-run to resume.
			return c.JSON(http.StatusInternalServerError, map[string]interface{}{
				"error":     err.Error(),
				"record":    impErr.Record,
				"processed": processed,
			})
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"processed": processed})
}

// LookupConcept handles GET /api/v1/concepts?datatype=...&class=...&name=...
func (h *Handler) LookupConcept(c echo.Context) error {
	dataType := DataType(c.QueryParam("datatype"))
	class := ConceptClass(c.QueryParam("class"))
	name := c.QueryParam("name")
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter 'name' is required")
	}

	concept, synonyms, mappings, err := h.svc.Lookup(c.Request().Context(), dataType, class, name)
	if err != nil {
		var valErr *ValidationError
		if errors.As(err, &valErr) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if concept == nil {
		return echo.NewHTTPError(http.StatusNotFound, "concept not found")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"concept":  concept,
		"synonyms": synonyms,
		"mappings": mappings,
	})
}
