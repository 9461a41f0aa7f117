package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/promptpix/promptpix/internal/service"
)

// All JSON responses carry a success flag; payload fields ride alongside.
func (s *Server) writeJSON(w http.ResponseWriter, status int, payload map[string]any) {
	if payload == nil {
		payload = map[string]any{}
	}
	if _, ok := payload["success"]; !ok {
		payload["success"] = status < 400
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) fail(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]any{"success": false, "message": message})
}

// failFromError maps service errors onto the response envelope. Anything
// unclassified becomes a generic failure so internals never leak.
func (s *Server) failFromError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrPromptRequired):
		s.fail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrDuplicateEmail):
		s.fail(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		s.fail(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrInsufficientCredit):
		s.fail(w, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, service.ErrNotFound):
		s.fail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden):
		s.fail(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidSignature):
		s.fail(w, http.StatusBadRequest, err.Error())
	default:
		s.log.Error("request failed", "err", err)
		s.fail(w, http.StatusInternalServerError, "something went wrong")
	}
}
