package models

// Session is the ephemeral per-browser state. Nothing here is persisted;
// it lives only as long as the process and the session cookie.
type Session struct {
	ID             string
	Role           string
	ConversationID string

	// One-shot delete markers: set by a click, consumed and cleared on
	// the next dispatch pass.
	PendingSoftDelete int64
	PendingHardDelete int64

	// Support-agent display toggles. AutoResponse is an inert
	// placeholder; nothing consumes it yet.
	ShowDeleted  bool
	AutoResponse bool
}

// IsSupport reports whether the session acts as the support agent.
func (s *Session) IsSupport() bool {
	return s.Role == RoleSupport
}
