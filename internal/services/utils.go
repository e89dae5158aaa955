package services

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ExpertsInside/Botty-McBotface/internal/graph"
	"github.com/ExpertsInside/Botty-McBotface/models"
	"github.com/lib/pq"
)

// WriteErrResponse writes a JSON response with a specific status code
func WriteErrResponse(w http.ResponseWriter, statusCode int, response interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// HandleErrResponse writes err in the response envelope, with the database
// or directory error code when there is one.
func HandleErrResponse(w http.ResponseWriter, statusCode int, err error) {
	var pqErr *pq.Error
	response := models.Response{
		Success:      0,
		ErrorDetails: err.Error(),
	}

	switch {
	case errors.As(err, &pqErr):
		response.ErrorCode = pqErr.Code.Name()
		response.ErrorDetails = pqErr.Message
	default:
		response.ErrorCode = graphErrorCode(err)
	}

	WriteErrResponse(w, statusCode, response)
}

// StatusForError maps directory and request errors to an HTTP status.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, graph.ErrInvalidEmail), errors.Is(err, graph.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, graph.ErrUserNotFound), errors.Is(err, graph.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, graph.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, graph.ErrTokenUnavailable), errors.Is(err, graph.ErrUnauthorised),
		errors.Is(err, graph.ErrForbidden), errors.Is(err, graph.ErrServerError):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func graphErrorCode(err error) string {
	codes := []struct {
		err  error
		code string
	}{
		{ErrInvalidRequest, "invalid_request"},
		{graph.ErrInvalidEmail, "invalid_email"},
		{graph.ErrTokenUnavailable, "token_unavailable"},
		{graph.ErrUserNotFound, "user_not_found"},
		{graph.ErrMalformedAuthorizationEndpoint, "tenant_unresolved"},
		{graph.ErrUnauthorised, "graph_unauthorised"},
		{graph.ErrForbidden, "graph_forbidden"},
		{graph.ErrNotFound, "graph_not_found"},
		{graph.ErrRateLimited, "graph_rate_limited"},
		{graph.ErrBadRequest, "graph_bad_request"},
		{graph.ErrServerError, "graph_server_error"},
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return ""
}
