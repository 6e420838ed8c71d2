package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hmis/hospitalcore/internal/config"
)

func TestBuildServer_RegistersRoutes(t *testing.T) {
	cfg := &config.Config{
		Port:            "8000",
		Env:             "test",
		CORSOrigins:     []string{"http://localhost:3000"},
		ImportBatchSize: 20,
	}
	e := buildServer(cfg, zerolog.Nop(), nil)

	want := map[string]string{
		"/health":                          http.MethodGet,
		"/health/db":                       http.MethodGet,
		"/api/v1/taxonomy/import":          http.MethodPost,
		"/api/v1/concepts":                 http.MethodGet,
		"/api/v1/patients/search":          http.MethodGet,
		"/api/v1/patients/:id/attributes":  http.MethodGet,
		"/api/v1/reports/incidence":        http.MethodGet,
		"/api/v1/reports/drug-incidence":   http.MethodGet,
		"/api/v1/reports/morbidity":        http.MethodGet,
		"/api/v1/patients/:id/last-visit":  http.MethodGet,
		"/api/v1/patients/:id/obs":         http.MethodGet,
		"/api/v1/visits":                   http.MethodGet,
	}

	registered := make(map[string]string)
	for _, r := range e.Routes() {
		registered[r.Path] = r.Method
	}
	for path, method := range want {
		if registered[path] != method {
			t.Errorf("route %s %s not registered", method, path)
		}
	}
}

func TestBuildServer_HealthEndpoint(t *testing.T) {
	cfg := &config.Config{Port: "8000", Env: "test", ImportBatchSize: 20}
	e := buildServer(cfg, zerolog.Nop(), nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestNewLogger(t *testing.T) {
	// Both modes must return a usable logger.
	prod := newLogger("production")
	prod.Info().Msg("")
	dev := newLogger("development")
	dev.Info().Msg("")
}
