package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ysk-ktok/dynamodb-chatbot/models"
)

func TestSessionService_CreateDefaults(t *testing.T) {
	svc := NewSessionService()

	session := svc.Create()
	require.NotEmpty(t, session.ID)
	require.NotEmpty(t, session.ConversationID)
	require.Equal(t, models.RoleUser, session.Role)
	require.False(t, session.ShowDeleted)
}

func TestSessionService_GetOrCreate(t *testing.T) {
	svc := NewSessionService()

	created := svc.Create()
	require.Same(t, created, svc.GetOrCreate(created.ID))

	// Unknown ids start a fresh session with its own conversation.
	fresh := svc.GetOrCreate("unknown")
	require.NotEqual(t, created.ID, fresh.ID)
	require.NotEqual(t, created.ConversationID, fresh.ConversationID)

	require.Nil(t, svc.Get("unknown"))
}
