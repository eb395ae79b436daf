package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/meltforce/ironlog/internal/apierr"
	"github.com/meltforce/ironlog/internal/storage"
)

type dataEnvelope struct {
	Data any `json:"data"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// writeData writes a success payload wrapped in a {data: ...} envelope.
func writeData(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(dataEnvelope{Data: v}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError maps an error onto the wire. Known API errors keep their status,
// code and message; anything else is logged in full and sanitized to a
// generic 500 so internals never leak to the client.
func writeError(w http.ResponseWriter, log *slog.Logger, r *http.Request, err error) {
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) {
		log.Error("request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
		apiErr = apierr.New(http.StatusInternalServerError, apierr.CodeServer,
			"An unexpected error occurred")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	if encErr := json.NewEncoder(w).Encode(errorEnvelope{
		Error: errorBody{Message: apiErr.Message, Code: apiErr.Code},
	}); encErr != nil {
		log.Error("failed to encode error response", "error", encErr)
	}
}

// translateNotFound maps the storage not-found sentinel to a 404 with the
// given message, passing every other error through.
func translateNotFound(err error, message string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apierr.NotFound(message)
	}
	return err
}

// decodeBody decodes a JSON request body, translating decode failures into
// a validation error.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apierr.Validation("Invalid JSON body")
	}
	return nil
}
