package domain

// Message represents a single turn in a chat timeline (user or bot).
type Message struct {
	ID        MessageID
	SessionID SessionID
	Sender    Role
	Text      string
	CreatedAt Timestamp
}

// Session represents one chat conversation between a user and the assistant.
type Session struct {
	ID        SessionID
	UserID    UserID
	CreatedAt Timestamp
	UpdatedAt Timestamp

	Title string
}
