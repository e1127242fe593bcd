package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"chatgate/internal/models"
)

func TestRespondWithJSONSetsContentType(t *testing.T) {
	rec := httptest.NewRecorder()

	respondWithJSON(rec, http.StatusCreated, map[string]string{"message": "ok"})

	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Expected application/json content type, got %q", got)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if body["message"] != "ok" {
		t.Errorf("Unexpected body: %v", body)
	}
}

func TestRespondWithErrorSetsContentType(t *testing.T) {
	rec := httptest.NewRecorder()

	respondWithError(rec, http.StatusNotFound, ErrMsgAccountNotFound)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Expected application/json content type, got %q", got)
	}
}

func TestJSONResponseNormalizesNilSlices(t *testing.T) {
	rec := httptest.NewRecorder()

	var interactions []models.InteractionRequest
	respondWithJSON(rec, http.StatusOK, interactions)

	if body := rec.Body.String(); body != "[]\n" {
		t.Errorf("Expected empty array, got %q", body)
	}
}
