package main

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-medforms"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	eng, err := medforms.NewEngine()
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return newRouter(eng, zerolog.Nop())
}

func get(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRouter_Health(t *testing.T) {
	if rec := get(t, testRouter(t), "/healthz"); rec.Code != http.StatusNoContent {
		t.Fatalf("GET /healthz = %d", rec.Code)
	}
}

func TestRouter_Entities(t *testing.T) {
	rec := get(t, testRouter(t), "/api/entities")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/entities = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"medication"`) {
		t.Fatalf("entities body = %s", rec.Body.String())
	}
}

func TestRouter_RendersForm(t *testing.T) {
	rec := get(t, testRouter(t), "/forms/medication")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /forms/medication = %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), `class="mf-modal`) {
		t.Fatal("response is not a rendered form")
	}
}

func TestRouter_UnknownEntity(t *testing.T) {
	if rec := get(t, testRouter(t), "/forms/starship"); rec.Code != http.StatusNotFound {
		t.Fatalf("GET /forms/starship = %d", rec.Code)
	}
}

func TestRouter_SpecialtyEndpoint(t *testing.T) {
	rec := get(t, testRouter(t), "/forms/api/specialties?q=cardio")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET specialties = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Cardiology") {
		t.Fatalf("specialties body = %s", rec.Body.String())
	}
}

func TestRouter_RuntimeAssets(t *testing.T) {
	rec := get(t, testRouter(t), "/runtime/medforms.css")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET runtime asset = %d", rec.Code)
	}
}

func TestRouter_SubmitCachesCreatedSpecialty(t *testing.T) {
	router := testRouter(t)
	body := url.Values{
		"full_name": {"Dana Reyes"},
		"specialty": {"Space Medicine"},
	}
	req := httptest.NewRequest(http.MethodPost, "/forms/practitioner",
		strings.NewReader(body.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("POST = %d: %s", rec.Code, rec.Body.String())
	}

	// The created specialty must surface on the options endpoint for the
	// next form without a restart.
	rec = get(t, router, "/forms/api/specialties?q=space")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET specialties = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Space Medicine") {
		t.Fatalf("created specialty missing from options: %s", rec.Body.String())
	}
}

func TestRouter_SubmitRejectsBadValues(t *testing.T) {
	router := testRouter(t)
	body := url.Values{
		"medication_name": {"Metformin"},
		"dosage_amount":   {"not-a-number"},
	}
	req := httptest.NewRequest(http.MethodPost, "/forms/medication",
		strings.NewReader(body.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("POST with bad number = %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "mf-error") {
		t.Fatal("re-rendered form missing field error markup")
	}
}

func TestRouter_SubmitAcceptsValues(t *testing.T) {
	router := testRouter(t)
	body := url.Values{
		"medication_name": {"Metformin"},
		"dosage_amount":   {"500"},
		"start_date":      {"2024-03-01"},
	}
	req := httptest.NewRequest(http.MethodPost, "/forms/medication",
		strings.NewReader(body.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("POST = %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"medication_name":"Metformin"`) {
		t.Fatalf("echo body = %s", rec.Body.String())
	}
}
