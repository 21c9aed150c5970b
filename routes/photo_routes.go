package routes

import (
	"talkboard_server/controllers"

	"github.com/gorilla/mux"
)

// RegisterPhotoRoutes sets up routes for avatar photo storage
func RegisterPhotoRoutes(r *mux.Router) {
	r.HandleFunc("/api/photos/upload-url", controllers.GeneratePresignedURL).Methods("POST")
	r.HandleFunc("/api/photos/read-url", controllers.GetPresignedReadURL).Methods("POST")
}
