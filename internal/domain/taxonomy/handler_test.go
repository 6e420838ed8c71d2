package taxonomy

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func newTestHandler(store *mockStore) *Handler {
	importer := NewImporter(store, 20, zerolog.Nop())
	return NewHandler(NewService(store, importer))
}

func multipartImportBody(t *testing.T, diagnoses, mappings, synonyms string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for name, content := range map[string]string{
		"diagnoses": diagnoses,
		"mappings":  mappings,
		"synonyms":  synonyms,
	} {
		part, err := w.CreateFormFile(name, name+".xml")
		if err != nil {
			t.Fatalf("create form file %s: %v", name, err)
		}
		if _, err := part.Write([]byte(content)); err != nil {
			t.Fatalf("write form file %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return body, w.FormDataContentType()
}

func TestHandler_Import(t *testing.T) {
	store := newMockStore()
	h := newTestHandler(store)

	body, contentType := multipartImportBody(t, diagnosesXML, mappingsXML, synonymsXML)
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/taxonomy/import", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Import(c); err != nil {
		t.Fatalf("Import handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["processed"] != float64(2) {
		t.Errorf("expected processed 2, got %v", resp["processed"])
	}
	if len(store.concepts) != 2 {
		t.Errorf("expected 2 concepts stored, got %d", len(store.concepts))
	}
}

func TestHandler_Import_MissingPart(t *testing.T) {
	h := newTestHandler(newMockStore())

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, _ := w.CreateFormFile("diagnoses", "diagnoses.xml")
	part.Write([]byte(diagnosesXML))
	w.Close()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/taxonomy/import", body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Import(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", httpErr.Code)
	}
}

func TestHandler_Import_MalformedXML(t *testing.T) {
	h := newTestHandler(newMockStore())

	body, contentType := multipartImportBody(t, "<diagnoses><diagnosis>", mappingsXML, synonymsXML)
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/taxonomy/import", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Import(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed input, got %d", httpErr.Code)
	}
}

func TestHandler_LookupConcept(t *testing.T) {
	store := newMockStore()
	concept, _ := store.CreateConcept(context.Background(), DataTypeNA, ClassDiagnosis, "Malaria", "", "")
	store.AddSynonym(context.Background(), concept.ID, "Paludism")
	h := newTestHandler(store)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/concepts?datatype=N/A&class=Diagnosis&name=Malaria", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.LookupConcept(c); err != nil {
		t.Fatalf("LookupConcept error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Concept  Concept   `json:"concept"`
		Synonyms []Synonym `json:"synonyms"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Concept.Name != "Malaria" {
		t.Errorf("expected Malaria, got %s", resp.Concept.Name)
	}
	if len(resp.Synonyms) != 1 {
		t.Errorf("expected 1 synonym, got %d", len(resp.Synonyms))
	}
}

func TestHandler_LookupConcept_NotFound(t *testing.T) {
	h := newTestHandler(newMockStore())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/concepts?datatype=N/A&class=Diagnosis&name=Nothing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.LookupConcept(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", httpErr.Code)
	}
}

func TestHandler_LookupConcept_InvalidEnumerant(t *testing.T) {
	h := newTestHandler(newMockStore())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/concepts?datatype=Bogus&class=Diagnosis&name=Malaria", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.LookupConcept(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", httpErr.Code)
	}
}
