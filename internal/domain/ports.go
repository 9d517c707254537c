package domain

import "context"

// LLMClient defines how the core interacts with the opaque reasoning
// backend. Given the conversation so far, the tool catalog and any tool
// results already gathered this turn, it decides the next action.
type LLMClient interface {
	NextStep(
		ctx context.Context,
		input string,
		convCtx ConversationContext,
		tools []ToolDefinition,
		exchanges []ToolExchange,
	) (*AgentStep, error)
}

// ConversationContext gives the reasoning backend minimal context about
// the conversation.
type ConversationContext struct {
	SessionID SessionID
	UserID    UserID
	History   []*Message // last N turns, oldest first
}

// SessionStore defines session persistence.
type SessionStore interface {
	CreateSession(session *Session) error
	UpdateSession(session *Session) error
	GetSession(id SessionID) (*Session, error)
	ListSessionsByUser(userID UserID, limit int) ([]*Session, error)
}

// MessageStore defines chat-history persistence.
type MessageStore interface {
	AppendMessage(msg *Message) error
	GetMessagesBySession(sessionID SessionID, limit int) ([]*Message, error)
	ResetSession(sessionID SessionID) error
}

// BookingStore is an append-only log of confirmed bookings. AppendBooking
// must reject a second booking for the same (service, date, time) with
// ErrSlotTaken; no other dedup logic lives at this layer.
type BookingStore interface {
	AppendBooking(b *Booking) error
	ListBookings(service, date string) ([]*Booking, error)
}
