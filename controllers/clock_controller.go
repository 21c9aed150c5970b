package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"talkboard_server/services"
)

// ClockController struct
type ClockController struct {
	ClockService *services.ClockService
	AuthService  *services.AuthService
}

// NewClockController initializes the clock controller
func NewClockController(clockService *services.ClockService, authService *services.AuthService) *ClockController {
	return &ClockController{ClockService: clockService, AuthService: authService}
}

// HandleRecordClock - Record an attendance event from a scanned identifier.
// The verifier allow-list check happens in the service; here we only need a
// verified identity from the token.
func (c *ClockController) HandleRecordClock(w http.ResponseWriter, r *http.Request) {
	verifier, err := c.AuthService.IdentityFromRequest(r)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	var request struct {
		Identifier string `json:"identifier"`
		Direction  string `json:"direction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	event, err := c.ClockService.RecordClock(r.Context(), request.Identifier, request.Direction, verifier)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyIdentifier):
			http.Error(w, `{"error": "Identifier is required"}`, http.StatusBadRequest)
		case errors.Is(err, services.ErrInvalidDirection):
			http.Error(w, `{"error": "Direction must be in or out"}`, http.StatusBadRequest)
		case errors.Is(err, services.ErrUnauthorizedVerifier):
			http.Error(w, `{"error": "This account is not allowed to verify clockings"}`, http.StatusForbidden)
		case errors.Is(err, services.ErrUnknownStaff):
			http.Error(w, `{"error": "Staff not found"}`, http.StatusNotFound)
		default:
			log.Printf("❌ Failed to record clock event: %v", err)
			http.Error(w, `{"error": "Failed to record clock event"}`, http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "success",
		"message": fmt.Sprintf("Clock-%s recorded for %s", event.Direction, event.StaffName),
	})
}
