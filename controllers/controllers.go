package controllers

import (
	"errors"
	"net/http"

	"talkboard_server/services"
)

// writeAuthError maps identity failures onto the response. Allow-list misses
// are a hard 403 so the client knows to sign the account out; everything
// token-shaped is a 401.
func writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotAllowed):
		http.Error(w, `{"error": "This account is not allowed to use the board"}`, http.StatusForbidden)
	case errors.Is(err, services.ErrMissingToken), errors.Is(err, services.ErrInvalidToken):
		http.Error(w, `{"error": "Authentication required"}`, http.StatusUnauthorized)
	default:
		http.Error(w, `{"error": "Failed to verify identity"}`, http.StatusInternalServerError)
	}
}
