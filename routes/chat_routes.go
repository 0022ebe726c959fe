package routes

import (
	"github.com/gorilla/mux"

	"github.com/ysk-ktok/dynamodb-chatbot/controllers"
	"github.com/ysk-ktok/dynamodb-chatbot/services"
)

// RegisterChatRoutes sets up routes for chat-related operations under /api/chat
func RegisterChatRoutes(r *mux.Router, chatService *services.ChatService) {
	// Initialize the controller with the ChatService
	controller := controllers.NewChatController(chatService)

	// Create a subrouter for /api/chat
	chatRouter := r.PathPrefix("/api/chat").Subrouter()

	// Define routes and their corresponding handlers
	chatRouter.HandleFunc("/message", controller.HandleSendMessage).Methods("POST")
	chatRouter.HandleFunc("/message", controller.HandleHardDeleteMessage).Methods("DELETE")
	chatRouter.HandleFunc("/messages", controller.HandleGetMessages).Methods("GET")
	chatRouter.HandleFunc("/messages/delete", controller.HandleSoftDeleteMessage).Methods("POST")
	chatRouter.HandleFunc("/conversations", controller.HandleListConversations).Methods("GET")
}
