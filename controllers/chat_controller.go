package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/ysk-ktok/dynamodb-chatbot/models"
	"github.com/ysk-ktok/dynamodb-chatbot/services"
)

// ChatController struct
type ChatController struct {
	ChatService *services.ChatService
}

// NewChatController initializes the chat controller
func NewChatController(service *services.ChatService) *ChatController {
	return &ChatController{ChatService: service}
}

func validSender(sender string) bool {
	switch sender {
	case models.SenderUser, models.SenderSupport, models.SenderBot:
		return true
	}
	return false
}

// HandleSendMessage - Appends a message to a conversation. A missing
// conversationId starts a new conversation.
func (c *ChatController) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ConversationID string `json:"conversationId"`
		Sender         string `json:"sender"`
		Message        string `json:"message"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if request.Message == "" || !validSender(request.Sender) {
		http.Error(w, `{"error": "Missing or invalid fields: sender, message"}`, http.StatusBadRequest)
		return
	}

	if request.ConversationID == "" {
		request.ConversationID = uuid.New().String()
	}

	message, err := c.ChatService.AppendMessage(context.TODO(), request.ConversationID, request.Sender, request.Message)
	if err != nil {
		log.Printf("Failed to send message: %v", err)
		http.Error(w, `{"error": "Failed to send message"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "success",
		"data":   message,
	})
}

// HandleGetMessages - Fetch messages for a conversation in ascending
// timestamp order. includeDeleted=true also returns soft-deleted rows.
func (c *ChatController) HandleGetMessages(w http.ResponseWriter, r *http.Request) {
	conversationID := r.URL.Query().Get("conversationId")
	includeDeleted := r.URL.Query().Get("includeDeleted") == "true"

	if conversationID == "" {
		http.Error(w, `{"error": "conversationId is required"}`, http.StatusBadRequest)
		return
	}

	messages, err := c.ChatService.GetConversationHistory(context.TODO(), conversationID, includeDeleted)
	if err != nil {
		log.Printf("Error fetching messages: %v", err)
		http.Error(w, `{"error": "Failed to fetch messages"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(messages)
}

type deleteRequest struct {
	ConversationID string `json:"conversationId"`
	Timestamp      int64  `json:"timestamp"`
}

// HandleSoftDeleteMessage - Flags a message as deleted without removing it.
func (c *ChatController) HandleSoftDeleteMessage(w http.ResponseWriter, r *http.Request) {
	var request deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.ConversationID == "" || request.Timestamp == 0 {
		http.Error(w, `{"error": "Missing required fields: conversationId, timestamp"}`, http.StatusBadRequest)
		return
	}

	if err := c.ChatService.SoftDeleteMessage(context.TODO(), request.ConversationID, request.Timestamp); err != nil {
		log.Printf("Failed to soft-delete message: %v", err)
		http.Error(w, `{"error": "Failed to delete message"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "success", "message": "Message deleted"})
}

// HandleHardDeleteMessage - Removes a message permanently. No prior
// soft-delete is required.
func (c *ChatController) HandleHardDeleteMessage(w http.ResponseWriter, r *http.Request) {
	var request deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.ConversationID == "" || request.Timestamp == 0 {
		http.Error(w, `{"error": "Missing required fields: conversationId, timestamp"}`, http.StatusBadRequest)
		return
	}

	if err := c.ChatService.HardDeleteMessage(context.TODO(), request.ConversationID, request.Timestamp); err != nil {
		log.Printf("Failed to hard-delete message: %v", err)
		http.Error(w, `{"error": "Failed to delete message"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "success", "message": "Message permanently deleted"})
}

// HandleListConversations - Returns the distinct conversation ids. The
// list is unordered.
func (c *ChatController) HandleListConversations(w http.ResponseWriter, r *http.Request) {
	ids, err := c.ChatService.ListConversationIDs(context.TODO())
	if err != nil {
		log.Printf("Error listing conversations: %v", err)
		http.Error(w, `{"error": "Failed to list conversations"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"conversations": ids})
}
