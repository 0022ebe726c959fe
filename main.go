package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/ysk-ktok/dynamodb-chatbot/config"
	"github.com/ysk-ktok/dynamodb-chatbot/routes"
	"github.com/ysk-ktok/dynamodb-chatbot/services"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient, err := services.InitializeDynamoDBClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize DynamoDB client: %v", err)
	}
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Create the chat table if it does not exist yet
	if err := dynamoService.EnsureTable(ctx, cfg.TableName); err != nil {
		log.Fatalf("Failed to ensure table: %v", err)
	}

	// Initialize Services
	chatService := &services.ChatService{Dynamo: dynamoService, Table: cfg.TableName}
	sessionService := services.NewSessionService()
	interactionService := &services.InteractionService{Chat: chatService}

	// Initialize the router
	r := mux.NewRouter()

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods("GET")

	// Register routes
	routes.RegisterChatRoutes(r, chatService)
	routes.RegisterUIRoutes(r, sessionService, interactionService)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, corsHandler))
}
