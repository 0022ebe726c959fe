package services

import (
	"sync"

	"github.com/google/uuid"

	"github.com/ysk-ktok/dynamodb-chatbot/models"
)

// SessionService keeps per-browser session state in memory, keyed by the
// session cookie. Sessions are never persisted and die with the process.
type SessionService struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
}

func NewSessionService() *SessionService {
	return &SessionService{sessions: make(map[string]*models.Session)}
}

// Get returns the session for id, or nil if it is unknown.
func (s *SessionService) Get(id string) *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id]
}

// Create registers a new session with a fresh conversation id and the
// default end-user role.
func (s *SessionService) Create() *models.Session {
	session := &models.Session{
		ID:             uuid.New().String(),
		Role:           models.RoleUser,
		ConversationID: uuid.New().String(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return session
}

// GetOrCreate resolves id to an existing session or starts a new one.
func (s *SessionService) GetOrCreate(id string) *models.Session {
	if id != "" {
		if session := s.Get(id); session != nil {
			return session
		}
	}
	return s.Create()
}
