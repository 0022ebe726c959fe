package models

// Message is a single chat record. The table keys on conversation_id
// (partition) and timestamp (sort), so the pair identifies a message.
type Message struct {
	ConversationID string `dynamodbav:"conversation_id" json:"conversationId"`
	Timestamp      int64  `dynamodbav:"timestamp" json:"timestamp"`
	Sender         string `dynamodbav:"sender" json:"sender"`
	Message        string `dynamodbav:"message" json:"message"`
	Date           string `dynamodbav:"date" json:"date"`
	IsDeleted      bool   `dynamodbav:"is_deleted" json:"isDeleted"`
}
