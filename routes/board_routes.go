package routes

import (
	"talkboard_server/controllers"
	"talkboard_server/services"

	"github.com/gorilla/mux"
)

// RegisterBoardRoutes sets up routes for board operations under /api/board
func RegisterBoardRoutes(r *mux.Router, boardService *services.BoardService, authService *services.AuthService) {
	// Initialize the controller with its services
	controller := controllers.NewBoardController(boardService, authService)

	// Create a subrouter for /api/board
	boardRouter := r.PathPrefix("/api/board").Subrouter()

	// Define routes and their corresponding handlers
	boardRouter.HandleFunc("", controller.HandleGetBoard).Methods("GET")
	boardRouter.HandleFunc("/thread/{id}", controller.HandleGetThread).Methods("GET")
	boardRouter.HandleFunc("/posts", controller.HandleCreatePost).Methods("POST")
	boardRouter.HandleFunc("/replies", controller.HandleCreateReply).Methods("POST")
	boardRouter.HandleFunc("/messages/like", controller.HandleLikeMessage).Methods("PATCH")
	boardRouter.HandleFunc("/messages/delete", controller.HandleDeleteMessage).Methods("POST")
}
