package services

import (
	"encoding/json"
	"net/http"

	"github.com/ExpertsInside/Botty-McBotface/api/middleware"
	"github.com/ExpertsInside/Botty-McBotface/internal/authn"
	"github.com/ExpertsInside/Botty-McBotface/internal/graph"
	"github.com/ExpertsInside/Botty-McBotface/models"
)

func WriteResponse(w http.ResponseWriter, statusCode int, response interface{}, location ...string) {

	w.Header().Set("Content-Type", "application/json")

	// We don't want to cache API responses so the client receives most curent data
	w.Header().Set("Cache-Control", "max-age=0")

	if len(location) > 0 && location[0] != "" {
		w.Header().Set("Location", location[0])
	}

	w.WriteHeader(statusCode)

	if response != nil {
		if err := json.NewEncoder(w).Encode(response); err != nil {
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
			return
		}
	}
}

// claimsFromRequest returns the caller's claims or writes a 401.
func claimsFromRequest(w http.ResponseWriter, r *http.Request) (authn.Claims, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		WriteResponse(w, http.StatusUnauthorized, models.Response{ErrorDetails: "missing claims"})
	}
	return claims, ok
}

func toGroupCreationRequest(req models.GroupRequest) graph.GroupCreationRequest {
	return graph.GroupCreationRequest{
		DisplayName:  req.DisplayName,
		Description:  req.Description,
		OwnerEmail:   req.OwnerEmail,
		MemberEmails: req.MemberEmails,
		IsPrivate:    req.IsPrivate,
	}
}
