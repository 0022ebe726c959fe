package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/ysk-ktok/dynamodb-chatbot/models"
	"github.com/ysk-ktok/dynamodb-chatbot/utils"
)

// ChatService implements the message repository: append, soft-delete,
// hard-delete and ordered reads against a single DynamoDB table.
type ChatService struct {
	Dynamo *DynamoService
	Table  string
}

// messageKey builds the composite key for a message.
func messageKey(conversationID string, timestamp int64) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"conversation_id": &types.AttributeValueMemberS{Value: conversationID},
		"timestamp":       &types.AttributeValueMemberN{Value: strconv.FormatInt(timestamp, 10)},
	}
}

// AppendMessage stores a new message stamped with the current time in
// milliseconds. There is no idempotency key; a retried call writes a
// second message under a new timestamp.
func (s *ChatService) AppendMessage(ctx context.Context, conversationID, sender, text string) (models.Message, error) {
	now := time.Now()
	message := models.Message{
		ConversationID: conversationID,
		Timestamp:      now.UnixMilli(),
		Sender:         sender,
		Message:        text,
		Date:           now.Format(models.DateLayout),
		IsDeleted:      false,
	}

	if err := s.Dynamo.PutItem(ctx, s.Table, message); err != nil {
		return models.Message{}, fmt.Errorf("failed to store message: %w", err)
	}

	log.Printf("Stored message for conversation %s at %d", conversationID, message.Timestamp)
	return message, nil
}

// SoftDeleteMessage flags a message as deleted without removing it. The
// update is unconditional; flagging an already-flagged message is a no-op.
func (s *ChatService) SoftDeleteMessage(ctx context.Context, conversationID string, timestamp int64) error {
	updateExpression := "SET is_deleted = :deleted"
	expressionValues := map[string]types.AttributeValue{
		":deleted": &types.AttributeValueMemberBOOL{Value: true},
	}

	_, err := s.Dynamo.UpdateItem(ctx, s.Table, updateExpression, messageKey(conversationID, timestamp), expressionValues, nil)
	if err != nil {
		return fmt.Errorf("failed to soft-delete message: %w", err)
	}

	log.Printf("Soft-deleted message %d in conversation %s", timestamp, conversationID)
	return nil
}

// HardDeleteMessage removes a message permanently. It does not require a
// prior soft-delete and does not check that the message exists.
func (s *ChatService) HardDeleteMessage(ctx context.Context, conversationID string, timestamp int64) error {
	if err := s.Dynamo.DeleteItem(ctx, s.Table, messageKey(conversationID, timestamp)); err != nil {
		return fmt.Errorf("failed to hard-delete message: %w", err)
	}

	log.Printf("Hard-deleted message %d in conversation %s", timestamp, conversationID)
	return nil
}

// GetConversationHistory returns the messages of a conversation in
// ascending timestamp order. When includeDeleted is false, soft-deleted
// messages are filtered out after the read; DynamoDB still transfers them.
func (s *ChatService) GetConversationHistory(ctx context.Context, conversationID string, includeDeleted bool) ([]models.Message, error) {
	keyCondition := "#cid = :cid"
	expressionValues := map[string]types.AttributeValue{
		":cid": &types.AttributeValueMemberS{Value: conversationID},
	}
	expressionNames := map[string]string{
		"#cid": "conversation_id",
	}

	items, err := s.Dynamo.QueryItems(ctx, s.Table, keyCondition, expressionValues, expressionNames, true)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	var messages []models.Message
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp < messages[j].Timestamp
	})

	if includeDeleted {
		return messages, nil
	}

	visible := make([]models.Message, 0, len(messages))
	for _, message := range messages {
		if !message.IsDeleted {
			visible = append(visible, message)
		}
	}
	return visible, nil
}

// ListConversationIDs returns the distinct conversation ids found in a
// single scan page, unordered. Tables larger than one page return a
// partial set.
func (s *ChatService) ListConversationIDs(ctx context.Context) ([]string, error) {
	items, err := s.Dynamo.ScanProjection(ctx, s.Table, "conversation_id")
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}

	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		id := utils.ExtractString(item, "conversation_id")
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}
