package routes

import (
	"talkboard_server/controllers"
	"talkboard_server/services"

	"github.com/gorilla/mux"
)

// RegisterClockRoutes sets up routes for attendance recording under /api/clock
func RegisterClockRoutes(r *mux.Router, clockService *services.ClockService, authService *services.AuthService) {
	controller := controllers.NewClockController(clockService, authService)

	r.HandleFunc("/api/clock", controller.HandleRecordClock).Methods("POST")
}
