package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"talkboard_server/models"
	"talkboard_server/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clockRouter(t *testing.T, store *fakeStore) *mux.Router {
	t.Helper()
	authService := &services.AuthService{Dynamo: store, Secret: testSecret}
	clockService := &services.ClockService{Dynamo: store}

	r := mux.NewRouter()
	controller := NewClockController(clockService, authService)
	r.HandleFunc("/api/clock", controller.HandleRecordClock).Methods("POST")
	return r
}

func seedVerifier(t *testing.T, store *fakeStore, canVerify bool) {
	t.Helper()
	store.seed(t, models.AllowedUsersTable, "author@example.com", models.AllowedUser{
		Email:          "author@example.com",
		CanVerifyClock: canVerify,
	})
}

func TestHandleRecordClock(t *testing.T) {
	store := newFakeStore()
	seedVerifier(t, store, true)
	store.seed(t, models.StaffTable, "u1", models.StaffRecord{StaffID: "u1", Name: "Matsubara"})
	router := clockRouter(t, store)

	w := doJSON(t, router, http.MethodPost, "/api/clock", bearerToken(t, "author@example.com"), map[string]string{
		"identifier": "u1",
		"direction":  "in",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(t, response["message"], "Matsubara")
	assert.Contains(t, response["message"], "in")

	require.Len(t, store.putCalls, 1)
	assert.Equal(t, models.ClockingsTable, store.putCalls[0].table)
}

func TestHandleRecordClock_UnknownStaffIssuesNoAppend(t *testing.T) {
	store := newFakeStore()
	seedVerifier(t, store, true)
	router := clockRouter(t, store)

	w := doJSON(t, router, http.MethodPost, "/api/clock", bearerToken(t, "author@example.com"), map[string]string{
		"identifier": "u1",
		"direction":  "in",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, store.putCalls)
}

func TestHandleRecordClock_EmptyIdentifier(t *testing.T) {
	store := newFakeStore()
	seedVerifier(t, store, true)
	router := clockRouter(t, store)

	w := doJSON(t, router, http.MethodPost, "/api/clock", bearerToken(t, "author@example.com"), map[string]string{
		"identifier": "   ",
		"direction":  "in",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.putCalls)
}

func TestHandleRecordClock_UnauthorizedVerifier(t *testing.T) {
	store := newFakeStore()
	seedVerifier(t, store, false)
	store.seed(t, models.StaffTable, "u1", models.StaffRecord{StaffID: "u1", Name: "Matsubara"})
	router := clockRouter(t, store)

	w := doJSON(t, router, http.MethodPost, "/api/clock", bearerToken(t, "author@example.com"), map[string]string{
		"identifier": "u1",
		"direction":  "in",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, store.putCalls)
}

func TestHandleRecordClock_RequiresToken(t *testing.T) {
	store := newFakeStore()
	router := clockRouter(t, store)

	w := doJSON(t, router, http.MethodPost, "/api/clock", "", map[string]string{
		"identifier": "u1",
		"direction":  "in",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, store.putCalls)
}
