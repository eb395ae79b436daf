package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/meltforce/ironlog/internal/apierr"
)

func testServer() *Server {
	// Malformed-id and missing-field paths short-circuit before any storage
	// or service access, so nil dependencies are safe here.
	return New(nil, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

func doRequest(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, errorResponse) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	testServer().ServeHTTP(rec, req)

	var errResp errorResponse
	if rec.Code >= 400 {
		if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
			t.Fatalf("decoding error response: %v (body %s)", err, rec.Body.String())
		}
	}
	return rec, errResp
}

func TestMalformedPathIDRejectedBeforeStorage(t *testing.T) {
	for _, tc := range []struct {
		method, path string
	}{
		{http.MethodPut, "/api/exercises/not-a-uuid"},
		{http.MethodGet, "/api/exercises/not-a-uuid/last-session"},
		{http.MethodGet, "/api/exercises/not-a-uuid/history"},
		{http.MethodPut, "/api/program/not-a-uuid"},
		{http.MethodPut, "/api/workouts/not-a-uuid/complete"},
		{http.MethodPut, "/api/workouts/not-a-uuid/exercises/also-bad/start"},
		{http.MethodPut, "/api/sets/not-a-uuid"},
		{http.MethodDelete, "/api/sets/not-a-uuid"},
	} {
		rec, errResp := doRequest(t, tc.method, tc.path, `{}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s %s: status = %d, want 400", tc.method, tc.path, rec.Code)
		}
		if errResp.Error.Code != apierr.CodeValidation {
			t.Errorf("%s %s: code = %q, want %q", tc.method, tc.path, errResp.Error.Code, apierr.CodeValidation)
		}
	}
}

func TestExerciseHistoryMalformedPagination(t *testing.T) {
	base := "/api/exercises/0c7b8f0e-41a2-4a8e-9e1a-0d9c1f2b3a4d/history"
	for _, tc := range []struct {
		query, want string
	}{
		{"?limit=abc", "limit must be an integer"},
		{"?offset=1.5", "offset must be an integer"},
	} {
		rec, errResp := doRequest(t, http.MethodGet, base+tc.query, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tc.query, rec.Code)
		}
		if errResp.Error.Message != tc.want {
			t.Errorf("%s: message = %q, want %q", tc.query, errResp.Error.Message, tc.want)
		}
		if errResp.Error.Code != apierr.CodeValidation {
			t.Errorf("%s: code = %q, want %q", tc.query, errResp.Error.Code, apierr.CodeValidation)
		}
	}
}

func TestCreateExerciseMissingFields(t *testing.T) {
	rec, errResp := doRequest(t, http.MethodPost, "/api/exercises", `{"notes":"x"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if want := "Missing required fields: name, muscle_group"; errResp.Error.Message != want {
		t.Errorf("message = %q, want %q", errResp.Error.Message, want)
	}
}

func TestStartWorkoutMissingProgramDay(t *testing.T) {
	rec, errResp := doRequest(t, http.MethodPost, "/api/workouts", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if want := "Missing required fields: program_day_id"; errResp.Error.Message != want {
		t.Errorf("message = %q, want %q", errResp.Error.Message, want)
	}
}

func TestLogSetMissingFields(t *testing.T) {
	path := "/api/workouts/0c7b8f0e-41a2-4a8e-9e1a-0d9c1f2b3a4d/exercises/1c7b8f0e-41a2-4a8e-9e1a-0d9c1f2b3a4e/sets"
	rec, errResp := doRequest(t, http.MethodPost, path, `{"weight_lbs": 135}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if want := "Missing required fields: set_number, reps, rpe"; errResp.Error.Message != want {
		t.Errorf("message = %q, want %q", errResp.Error.Message, want)
	}
}

func TestInvalidJSONBody(t *testing.T) {
	rec, errResp := doRequest(t, http.MethodPost, "/api/exercises", `{"name":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if want := "Invalid JSON body"; errResp.Error.Message != want {
		t.Errorf("message = %q, want %q", errResp.Error.Message, want)
	}
}

func TestWriteErrorSanitizesUnknownErrors(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/exercises", nil)

	writeError(rec, log, req, errors.New("pq: connection refused to 10.0.0.5"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "10.0.0.5") {
		t.Errorf("internal detail leaked: %s", rec.Body.String())
	}
	var errResp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("decoding error response: %v", err)
	}
	if want := "An unexpected error occurred"; errResp.Error.Message != want {
		t.Errorf("message = %q, want %q", errResp.Error.Message, want)
	}
	if errResp.Error.Code != apierr.CodeServer {
		t.Errorf("code = %q, want %q", errResp.Error.Code, apierr.CodeServer)
	}
}

func TestWriteErrorKeepsAPIErrors(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/exercises", nil)

	writeError(rec, log, req, apierr.Conflict("A workout session is already in progress"))

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	var errResp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("decoding error response: %v", err)
	}
	if errResp.Error.Code != apierr.CodeConflict {
		t.Errorf("code = %q, want %q", errResp.Error.Code, apierr.CodeConflict)
	}
}
