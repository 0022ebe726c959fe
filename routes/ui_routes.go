package routes

import (
	"github.com/gorilla/mux"

	"github.com/ysk-ktok/dynamodb-chatbot/controllers"
	"github.com/ysk-ktok/dynamodb-chatbot/services"
)

// RegisterUIRoutes serves the chat page at the root path. GET renders,
// POST applies one action and re-renders.
func RegisterUIRoutes(r *mux.Router, sessions *services.SessionService, interaction *services.InteractionService) {
	controller := controllers.NewUIController(sessions, interaction)

	r.HandleFunc("/", controller.HandlePage).Methods("GET")
	r.HandleFunc("/", controller.HandleAction).Methods("POST")
}
