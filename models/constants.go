package models

// Sender tags stored on each message
const (
	SenderUser    = "user"
	SenderSupport = "support"
	SenderBot     = "bot"
)

// Session roles
const (
	RoleUser    = "user"
	RoleSupport = "support"
)

// DateLayout is the human-readable rendering of a message send time.
// Display only; ordering always comes from the timestamp sort key.
const DateLayout = "2006-01-02 15:04:05"
