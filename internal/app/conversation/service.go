package conversation

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/slotline/slotline-agent/internal/app/agentflow"
	"github.com/slotline/slotline-agent/internal/app/tools"
	"github.com/slotline/slotline-agent/internal/domain"
	"github.com/slotline/slotline-agent/internal/observability"
)

// historyWindow is how many past turns the reasoning backend sees.
const historyWindow = 20

var welcomeGreetings = []string{
	"Hello! I'm your booking assistant. How can I help today?",
	"Hi there! Ready to book an appointment?",
	"Welcome! What can I help you schedule today?",
}

var freshStartGreetings = []string{
	"Hello again! What can I help you with now?",
	"Hi there! What would you like to book today?",
	"Let's start fresh. How can I assist you?",
}

type Service struct {
	llm          domain.LLMClient
	sessionStore domain.SessionStore
	messageStore domain.MessageStore
	orchestrator *agentflow.Orchestrator

	now   func() time.Time
	newID func() string
	pick  func(n int) int
}

func NewService(
	llm domain.LLMClient,
	sessionStore domain.SessionStore,
	messageStore domain.MessageStore,
	registry *tools.Registry,
) *Service {
	return &Service{
		llm:          llm,
		sessionStore: sessionStore,
		messageStore: messageStore,
		orchestrator: agentflow.NewOrchestrator(llm, registry),
		now:          time.Now,
		newID:        uuid.NewString,
		pick:         rand.IntN,
	}
}

type StartSessionInput struct {
	UserID domain.UserID
	Title  string
}

type StartSessionOutput struct {
	Session *domain.Session
	Welcome *domain.Message
}

func (s *Service) StartSession(ctx context.Context, in StartSessionInput) (*StartSessionOutput, error) {
	now := s.now()

	log := observability.LoggerFromContext(ctx).With("user_id", in.UserID)
	log.Info("starting new session")

	session := &domain.Session{
		ID:        domain.SessionID(s.newID()),
		UserID:    in.UserID,
		CreatedAt: now,
		UpdatedAt: now,
		Title:     in.Title,
	}

	if err := s.sessionStore.CreateSession(session); err != nil {
		log.Error("failed to create session", "error", err)
		return nil, err
	}

	welcome := &domain.Message{
		ID:        domain.MessageID(s.newID()),
		SessionID: session.ID,
		Sender:    domain.RoleBot,
		Text:      welcomeGreetings[s.pick(len(welcomeGreetings))],
		CreatedAt: now,
	}

	if err := s.messageStore.AppendMessage(welcome); err != nil {
		log.Error("failed to append welcome message", "error", err)
		return nil, err
	}

	log.Info("session started", "session_id", session.ID)

	return &StartSessionOutput{
		Session: session,
		Welcome: welcome,
	}, nil
}

type SendMessageInput struct {
	SessionID domain.SessionID
	UserID    domain.UserID
	Text      string
}

type SendMessageOutput struct {
	UserMessage *domain.Message
	BotMessage  *domain.Message
}

func (s *Service) SendMessage(ctx context.Context, in SendMessageInput) (*SendMessageOutput, error) {
	session, err := s.sessionStore.GetSession(in.SessionID)
	if err != nil {
		return nil, err
	}

	log := observability.LoggerFromContext(ctx).With(
		"session_id", session.ID,
		"user_id", session.UserID,
	)
	log.Info("sending message")

	// history is loaded before the new turn so the backend sees it once,
	// as the current input.
	history, err := s.messageStore.GetMessagesBySession(session.ID, historyWindow)
	if err != nil {
		log.Error("failed to load history", "error", err)
		return nil, err
	}

	userMsg := &domain.Message{
		ID:        domain.MessageID(s.newID()),
		SessionID: session.ID,
		Sender:    domain.RoleUser,
		Text:      in.Text,
		CreatedAt: s.now(),
	}

	if err := s.messageStore.AppendMessage(userMsg); err != nil {
		log.Error("failed to append user message", "error", err)
		return nil, err
	}

	convCtx := domain.ConversationContext{
		SessionID: session.ID,
		UserID:    session.UserID,
		History:   history,
	}

	replyText, err := s.orchestrator.Run(ctx, in.Text, convCtx)
	if err != nil {
		log.Error("orchestrator failed", "error", err)
		return nil, err
	}

	botMsg := &domain.Message{
		ID:        domain.MessageID(s.newID()),
		SessionID: session.ID,
		Sender:    domain.RoleBot,
		Text:      replyText,
		CreatedAt: s.now(),
	}

	if err := s.messageStore.AppendMessage(botMsg); err != nil {
		log.Error("failed to append bot message", "error", err)
		return nil, err
	}

	session.UpdatedAt = s.now()
	if err := s.sessionStore.UpdateSession(session); err != nil {
		log.Error("failed to update session", "error", err)
		return nil, err
	}

	log.Info("send message completed")

	return &SendMessageOutput{
		UserMessage: userMsg,
		BotMessage:  botMsg,
	}, nil
}

// ClearSession wipes a session's history and seeds it with a fresh
// greeting, mirroring the "start over" button in the chat widget.
func (s *Service) ClearSession(ctx context.Context, sessionID domain.SessionID) (*domain.Message, error) {
	session, err := s.sessionStore.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	log := observability.LoggerFromContext(ctx).With("session_id", session.ID)
	log.Info("clearing session history")

	if err := s.messageStore.ResetSession(session.ID); err != nil {
		log.Error("failed to reset session history", "error", err)
		return nil, err
	}

	greeting := &domain.Message{
		ID:        domain.MessageID(s.newID()),
		SessionID: session.ID,
		Sender:    domain.RoleBot,
		Text:      freshStartGreetings[s.pick(len(freshStartGreetings))],
		CreatedAt: s.now(),
	}

	if err := s.messageStore.AppendMessage(greeting); err != nil {
		log.Error("failed to append greeting", "error", err)
		return nil, err
	}

	session.UpdatedAt = s.now()
	if err := s.sessionStore.UpdateSession(session); err != nil {
		log.Error("failed to update session", "error", err)
		return nil, err
	}

	return greeting, nil
}

func (s *Service) GetSessionTimeline(
	ctx context.Context,
	sessionID domain.SessionID,
	limit int,
) (*domain.Session, []*domain.Message, error) {

	log := observability.LoggerFromContext(ctx).With(
		"session_id", sessionID,
		"limit", limit,
	)

	session, err := s.sessionStore.GetSession(sessionID)
	if err != nil {
		log.Error("failed to get session", "error", err)
		return nil, nil, err
	}

	msgs, err := s.messageStore.GetMessagesBySession(sessionID, limit)
	if err != nil {
		log.Error("failed to get messages", "error", err)
		return nil, nil, err
	}

	log.Info("fetched session timeline", "message_count", len(msgs))

	return session, msgs, nil
}

func (s *Service) ListSessions(
	ctx context.Context,
	userID domain.UserID,
	limit int,
) ([]*domain.Session, error) {
	return s.sessionStore.ListSessionsByUser(userID, limit)
}
