package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"talkboard_server/routes"
	"talkboard_server/services"
	"talkboard_server/socket"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load local overrides; the environment wins in deployment
	_ = godotenv.Load()

	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient()
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Live board feed
	hub := socket.NewHub()
	go hub.Run()
	defer hub.Close()

	// Initialize Services
	authService := &services.AuthService{Dynamo: dynamoService, Secret: []byte(os.Getenv("AUTH_JWT_SECRET"))}
	boardService := &services.BoardService{Dynamo: dynamoService, Notifier: hub}
	clockService := &services.ClockService{Dynamo: dynamoService}

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Using server port: %s\n", port)

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to the ward talk board")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods("GET")

	// Register routes
	routes.RegisterBoardRoutes(r, boardService, authService)
	routes.RegisterClockRoutes(r, clockService, authService)
	routes.RegisterPhotoRoutes(r)

	// Mount the live feed endpoint
	r.Handle("/socket.io/", hub.Server())

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
