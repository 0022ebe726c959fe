package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/require"

	"github.com/ysk-ktok/dynamodb-chatbot/models"
	"github.com/ysk-ktok/dynamodb-chatbot/services"
	"github.com/ysk-ktok/dynamodb-chatbot/utils"
)

func newUI(db *fakeDynamo) (*UIController, *services.SessionService) {
	sessions := services.NewSessionService()
	interaction := &services.InteractionService{Chat: newChatService(db)}
	return NewUIController(sessions, interaction), sessions
}

func postForm(values url.Values, cookie *http.Cookie) *http.Request {
	req := httptest.NewRequest("POST", "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

func sessionCookie(session *models.Session) *http.Cookie {
	return &http.Cookie{Name: sessionCookieName, Value: session.ID}
}

func TestHandlePage_StartsSessionAndRenders(t *testing.T) {
	controller, sessions := newUI(&fakeDynamo{})

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	controller.HandlePage(rec, req)

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "Support Chat")
	require.Contains(t, body, "Start new conversation")
	require.Contains(t, body, "No messages yet")

	var found *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == sessionCookieName {
			found = cookie
		}
	}
	require.NotNil(t, found)
	require.NotNil(t, sessions.Get(found.Value))
}

func TestHandleAction_SendStoresAndRedirects(t *testing.T) {
	db := &fakeDynamo{}
	controller, sessions := newUI(db)
	session := sessions.Create()

	req := postForm(url.Values{
		"action":  {"send"},
		"role":    {"user"},
		"message": {"hello there"},
	}, sessionCookie(session))
	rec := httptest.NewRecorder()
	controller.HandleAction(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.NotNil(t, db.lastPutInput)
	require.Equal(t, "hello there", utils.ExtractString(db.lastPutInput.Item, "message"))
	require.Equal(t, session.ConversationID, utils.ExtractString(db.lastPutInput.Item, "conversation_id"))
	require.Equal(t, models.SenderUser, utils.ExtractString(db.lastPutInput.Item, "sender"))
}

func TestHandleAction_PurgeDeniedForEndUser(t *testing.T) {
	db := &fakeDynamo{}
	controller, sessions := newUI(db)
	session := sessions.Create()

	req := postForm(url.Values{
		"action":    {"purge"},
		"role":      {"user"},
		"timestamp": {"100"},
	}, sessionCookie(session))
	rec := httptest.NewRecorder()
	controller.HandleAction(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Nil(t, db.lastDeleteInput)
}

func TestHandleAction_FailureRendersBanner(t *testing.T) {
	db := &fakeDynamo{putErr: errors.New("boom")}
	controller, sessions := newUI(db)
	session := sessions.Create()

	req := postForm(url.Values{
		"action":  {"send"},
		"role":    {"user"},
		"message": {"hello"},
	}, sessionCookie(session))
	rec := httptest.NewRecorder()
	controller.HandleAction(rec, req)

	require.Equal(t, 200, rec.Code)
	require.Contains(t, rec.Body.String(), "The action failed")
}

func TestHandlePage_AgentSeesDeletedMessages(t *testing.T) {
	db := &fakeDynamo{queryOut: &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{
		messageItem("c1", 100, models.SenderUser, "hidden text", true),
	}}}
	controller, sessions := newUI(db)
	session := sessions.Create()
	session.Role = models.RoleSupport
	session.ShowDeleted = true
	session.ConversationID = "c1"

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(sessionCookie(session))
	rec := httptest.NewRecorder()
	controller.HandlePage(rec, req)

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "Deleted message")
	require.Contains(t, body, "hidden text")
	require.Contains(t, body, "Delete permanently")
	require.Contains(t, body, "Show deleted messages")
}
