package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ziadkadry99/sitecraft/internal/generate"
	"github.com/ziadkadry99/sitecraft/internal/site"
)

// envelope is the shape of every JSON API response.
type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    string           `json:"code"`
	Message string           `json:"message"`
	Details []site.Violation `json:"details,omitempty"`
}

var errorCodes = map[site.ErrorKind]struct {
	code   string
	status int
}{
	site.MalformedResponse:  {"MALFORMED_RESPONSE", http.StatusUnprocessableEntity},
	site.SchemaViolation:    {"SCHEMA_VIOLATION", http.StatusUnprocessableEntity},
	site.InvalidMergeResult: {"INVALID_MERGE_RESULT", http.StatusUnprocessableEntity},
	site.ModelUnavailable:   {"GENERATION_FAILED", http.StatusBadGateway},
	site.GenerationFailed:   {"GENERATION_FAILED", http.StatusBadGateway},
	site.InvalidInput:       {"INVALID_INPUT", http.StatusBadRequest},
	site.NotFound:           {"NOT_FOUND", http.StatusNotFound},
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) ok(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	code, status := "INTERNAL_ERROR", http.StatusInternalServerError
	body := &errorBody{}
	var e *site.Error
	if errors.As(err, &e) {
		if c, ok := errorCodes[e.Kind]; ok {
			code, status = c.code, c.status
		}
		if s.cfg.Environment == generate.EnvDevelopment {
			body.Details = e.Details
		}
	}
	if status == http.StatusInternalServerError {
		s.logger.Sugar().Errorw("request failed", "error", err)
	}
	body.Code = code
	body.Message = generate.UserMessage(err, s.cfg.Environment)
	writeJSON(w, status, envelope{Success: false, Error: body})
}

// decode reads a JSON request body into v.
func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return site.Wrap(site.InvalidInput, err, "invalid request body")
	}
	return nil
}
