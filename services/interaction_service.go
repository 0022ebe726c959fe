package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ysk-ktok/dynamodb-chatbot/models"
)

// Form action names posted by the page
const (
	ActionSend   = "send"
	ActionDelete = "delete"
	ActionPurge  = "purge"
	ActionOpen   = "open"
	ActionNew    = "new"
	ActionPrefs  = "prefs"
)

type CommandKind int

const (
	CommandNone CommandKind = iota
	CommandSend
	CommandSoftDelete
	CommandHardDelete
	CommandOpenConversation
	CommandNewConversation
)

// Command is the one repository action implied by a form submission. The
// dispatcher executes it; deciding and executing are kept separate so the
// loop is testable without a browser.
type Command struct {
	Kind           CommandKind
	Text           string
	ConversationID string
}

// FormInput is the decoded state of a submitted form. Role and the
// toggles are re-read on every pass, the way the page re-posts them.
type FormInput struct {
	Action         string
	Role           string
	Message        string
	Timestamp      int64
	ConversationID string
	ShowDeleted    bool
	AutoResponse   bool
}

// MessageView is one rendered row of the history list.
type MessageView struct {
	Timestamp    int64
	Sender       string
	Text         string
	Date         string
	Deleted      bool
	ShowOriginal bool
	CanDelete    bool
	CanPurge     bool
}

// PageView is everything the template needs for a full re-render.
type PageView struct {
	Role           string
	IsSupport      bool
	ConversationID string
	ShowDeleted    bool
	AutoResponse   bool
	Conversations  []string
	Messages       []MessageView
	Error          string
}

// InteractionService drives the request/response loop: decide a command
// from form input, dispatch it, rebuild the view.
type InteractionService struct {
	Chat *ChatService
}

// Decide applies the session-state side of a form submission (role,
// toggles, pending-delete markers) and returns the repository command the
// action implies, if any.
func (s *InteractionService) Decide(session *models.Session, in FormInput) Command {
	if in.Role == models.RoleSupport {
		session.Role = models.RoleSupport
	} else {
		session.Role = models.RoleUser
	}

	if session.IsSupport() {
		session.ShowDeleted = in.ShowDeleted
		session.AutoResponse = in.AutoResponse
	} else {
		session.ShowDeleted = false
		session.AutoResponse = false
	}

	switch in.Action {
	case ActionSend:
		if strings.TrimSpace(in.Message) == "" {
			return Command{Kind: CommandNone}
		}
		return Command{Kind: CommandSend, Text: in.Message}
	case ActionDelete:
		if in.Timestamp == 0 {
			return Command{Kind: CommandNone}
		}
		session.PendingSoftDelete = in.Timestamp
		return Command{Kind: CommandSoftDelete}
	case ActionPurge:
		// Purge is only reachable from the agent view.
		if !session.IsSupport() || in.Timestamp == 0 {
			return Command{Kind: CommandNone}
		}
		session.PendingHardDelete = in.Timestamp
		return Command{Kind: CommandHardDelete}
	case ActionOpen:
		if !session.IsSupport() || in.ConversationID == "" {
			return Command{Kind: CommandNone}
		}
		return Command{Kind: CommandOpenConversation, ConversationID: in.ConversationID}
	case ActionNew:
		return Command{Kind: CommandNewConversation}
	}
	return Command{Kind: CommandNone}
}

// Dispatch executes the single repository call implied by cmd. Pending
// delete markers are consumed and cleared even when the call fails, so a
// failed delete never replays on the next pass.
func (s *InteractionService) Dispatch(ctx context.Context, session *models.Session, cmd Command) error {
	switch cmd.Kind {
	case CommandSend:
		sender := models.SenderUser
		if session.IsSupport() {
			sender = models.SenderSupport
		}
		_, err := s.Chat.AppendMessage(ctx, session.ConversationID, sender, cmd.Text)
		return err
	case CommandSoftDelete:
		timestamp := session.PendingSoftDelete
		session.PendingSoftDelete = 0
		if timestamp == 0 {
			return nil
		}
		return s.Chat.SoftDeleteMessage(ctx, session.ConversationID, timestamp)
	case CommandHardDelete:
		timestamp := session.PendingHardDelete
		session.PendingHardDelete = 0
		if timestamp == 0 {
			return nil
		}
		return s.Chat.HardDeleteMessage(ctx, session.ConversationID, timestamp)
	case CommandOpenConversation:
		session.ConversationID = cmd.ConversationID
		return nil
	case CommandNewConversation:
		session.ConversationID = uuid.New().String()
		return nil
	}
	return nil
}

// BuildView re-reads the conversation and applies the rendering policy:
// soft-deleted rows are omitted unless the agent shows deleted messages,
// in which case they render as a placeholder with the original text and a
// purge control visible to the agent.
func (s *InteractionService) BuildView(ctx context.Context, session *models.Session) (PageView, error) {
	view := PageView{
		Role:           session.Role,
		IsSupport:      session.IsSupport(),
		ConversationID: session.ConversationID,
		ShowDeleted:    session.ShowDeleted,
		AutoResponse:   session.AutoResponse,
	}

	includeDeleted := session.IsSupport() && session.ShowDeleted
	history, err := s.Chat.GetConversationHistory(ctx, session.ConversationID, includeDeleted)
	if err != nil {
		return view, err
	}

	if session.IsSupport() {
		ids, err := s.Chat.ListConversationIDs(ctx)
		if err != nil {
			return view, err
		}
		view.Conversations = ids
	}

	for _, message := range history {
		row := MessageView{
			Timestamp: message.Timestamp,
			Sender:    message.Sender,
			Date:      message.Date,
			Deleted:   message.IsDeleted,
		}
		if message.IsDeleted {
			row.ShowOriginal = session.IsSupport()
			if row.ShowOriginal {
				row.Text = message.Message
			}
			row.CanPurge = session.IsSupport()
		} else {
			row.Text = message.Message
			ownMessage := (session.Role == models.RoleUser && message.Sender == models.SenderUser) ||
				(session.IsSupport() && message.Sender == models.SenderSupport)
			row.CanDelete = ownMessage || session.IsSupport()
		}
		view.Messages = append(view.Messages, row)
	}
	return view, nil
}
