package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/slotline/slotline-agent/internal/app/booking"
	"github.com/slotline/slotline-agent/internal/app/conversation"
	"github.com/slotline/slotline-agent/internal/domain"
)

type Server struct {
	conv    *conversation.Service
	booking *booking.Service
}

func NewServer(conv *conversation.Service, bookingSvc *booking.Service) http.Handler {
	s := &Server{conv: conv, booking: bookingSvc}
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handleHealthz)

	// /sessions         → POST: create session, GET: list by user
	// /sessions/{id}          →  GET: session + messages
	// /sessions/{id}/messages → POST: send message
	// /sessions/{id}/clear    → POST: reset history
	mux.HandleFunc("/sessions", s.handleSessions)
	mux.HandleFunc("/sessions/", s.handleSessionWithID)

	// read-only booking views, handy for the chat widget and debugging
	mux.HandleFunc("/services", s.handleListServices)
	mux.HandleFunc("/availability", s.handleAvailability)

	return chainMiddlewares(mux, withLogging, withCORS)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type createSessionRequest struct {
	UserID string `json:"user_id"`
	Title  string `json:"title,omitempty"`
}

type createSessionResponse struct {
	Session sessionResponse  `json:"session"`
	Welcome *messageResponse `json:"welcome_message,omitempty"`
}

type sessionResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type messageResponse struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Sender    string    `json:"sender"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type sendMessageRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

type sendMessageResponse struct {
	UserMessage messageResponse `json:"user_message"`
	BotMessage  messageResponse `json:"bot_message"`
	Response    string          `json:"response"`
}

type getSessionResponse struct {
	Session sessionResponse   `json:"session"`
	History []messageResponse `json:"history"`
}

type clearSessionResponse struct {
	Status   string          `json:"status"`
	Greeting messageResponse `json:"greeting"`
}

type listServicesResponse struct {
	Services []string `json:"services"`
}

type availabilityResponse struct {
	ServiceType string   `json:"service_type"`
	Date        string   `json:"date"`
	Available   []string `json:"available"`
}

// ─────────────────────────────────────────────
// Basic routing
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// /sessions
func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateSession(w, r)
	case http.MethodGet:
		s.handleListSessions(w, r)
	default:
		methodNotAllowed(w)
	}
}

// /sessions/{id}, /sessions/{id}/messages or /sessions/{id}/clear
func (s *Server) handleSessionWithID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/sessions/")
	if path == "" {
		http.NotFound(w, r)
		return
	}

	parts := strings.Split(path, "/")
	id := parts[0]

	if id == "" {
		http.NotFound(w, r)
		return
	}

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			s.handleGetSession(w, r, domain.SessionID(id))
		default:
			methodNotAllowed(w)
		}
		return
	}

	if len(parts) == 2 {
		switch parts[1] {
		case "messages":
			if r.Method != http.MethodPost {
				methodNotAllowed(w)
				return
			}
			s.handleSendMessage(w, r, domain.SessionID(id))
			return
		case "clear":
			if r.Method != http.MethodPost {
				methodNotAllowed(w)
				return
			}
			s.handleClearSession(w, r, domain.SessionID(id))
			return
		}
	}

	http.NotFound(w, r)
}

// ─────────────────────────────────────────────
// Concrete handlers
// ─────────────────────────────────────────────

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	if req.UserID == "" {
		badRequest(w, "user_id is required")
		return
	}

	out, err := s.conv.StartSession(
		r.Context(),
		conversation.StartSessionInput{
			UserID: domain.UserID(req.UserID),
			Title:  req.Title,
		},
	)
	if err != nil {
		internalError(w, err)
		return
	}

	var welcome *messageResponse
	if out.Welcome != nil {
		m := toMessageResponse(out.Welcome)
		welcome = &m
	}

	resp := createSessionResponse{
		Session: toSessionResponse(out.Session),
		Welcome: welcome,
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		badRequest(w, "user_id is required")
		return
	}

	sessions, err := s.conv.ListSessions(r.Context(), domain.UserID(userID), 50)
	if err != nil {
		internalError(w, err)
		return
	}

	out := make([]sessionResponse, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, toSessionResponse(sess))
	}
	writeJSON(w, http.StatusOK, map[string]any{"sessions": out})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request, id domain.SessionID) {
	session, msgs, err := s.conv.GetSessionTimeline(r.Context(), id, 0)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			http.NotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}

	resp := getSessionResponse{
		Session: toSessionResponse(session),
		History: toMessagesResponse(msgs),
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request, sessionID domain.SessionID) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	if req.UserID == "" {
		badRequest(w, "user_id is required")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		badRequest(w, "message is required")
		return
	}

	out, err := s.conv.SendMessage(
		r.Context(),
		conversation.SendMessageInput{
			SessionID: sessionID,
			UserID:    domain.UserID(req.UserID),
			Text:      req.Message,
		},
	)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			http.NotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}

	resp := sendMessageResponse{
		UserMessage: toMessageResponse(out.UserMessage),
		BotMessage:  toMessageResponse(out.BotMessage),
		Response:    out.BotMessage.Text,
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleClearSession(w http.ResponseWriter, r *http.Request, sessionID domain.SessionID) {
	greeting, err := s.conv.ClearSession(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			http.NotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, clearSessionResponse{
		Status:   "success",
		Greeting: toMessageResponse(greeting),
	})
}

func (s *Server) handleListServices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, listServicesResponse{
		Services: s.booking.ListServices(),
	})
}

func (s *Server) handleAvailability(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	serviceType := r.URL.Query().Get("service_type")
	date := r.URL.Query().Get("date")
	if serviceType == "" || date == "" {
		badRequest(w, "service_type and date are required")
		return
	}

	available, err := s.booking.CheckAvailability(serviceType, date)
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, availabilityResponse{
		ServiceType: serviceType,
		Date:        date,
		Available:   available,
	})
}

// ─────────────────────────────────────────────
// Conversation Helpers
// ─────────────────────────────────────────────

func toSessionResponse(s *domain.Session) sessionResponse {
	return sessionResponse{
		ID:        string(s.ID),
		UserID:    string(s.UserID),
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toMessageResponse(m *domain.Message) messageResponse {
	return messageResponse{
		ID:        string(m.ID),
		SessionID: string(m.SessionID),
		Sender:    string(m.Sender),
		Message:   m.Text,
		CreatedAt: m.CreatedAt,
	}
}

func toMessagesResponse(msgs []*domain.Message) []messageResponse {
	out := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageResponse(m))
	}
	return out
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

func internalError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "internal server error",
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": "method not allowed",
	})
}
