// Package chat exposes the widget-facing HTTP and WebSocket API.
package chat

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tekkistudio/salesbot/internal/compose"
	"github.com/tekkistudio/salesbot/internal/config"
	"github.com/tekkistudio/salesbot/internal/engine"
	"github.com/tekkistudio/salesbot/internal/handoff"
)

// Handler serves the chat API over the engine.
type Handler struct {
	engine *engine.Engine
	cfg    *config.Config
	filter *PageFilter
}

// NewHandler creates a chat handler.
func NewHandler(eng *engine.Engine, cfg *config.Config) *Handler {
	return &Handler{
		engine: eng,
		cfg:    cfg,
		filter: NewPageFilter(cfg.Chatbot.PagesInclude, cfg.Chatbot.PagesExclude),
	}
}

// RegisterRoutes mounts the chat API on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/chat", func(r chi.Router) {
		r.Post("/message", h.handleMessage)
		r.Post("/suggestion", h.handleSuggestion)
		r.Get("/config", h.handleConfig)
		r.Get("/ws", h.handleWebSocket)
	})
}

// messageRequest is one incoming chat turn.
type messageRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	Page      string `json:"page"`
}

// messageResponse carries the rendered reply back to the widget.
type messageResponse struct {
	SessionID   string   `json:"session_id"`
	Text        string   `json:"text"`
	HTML        string   `json:"html"`
	Suggestions []string `json:"suggestions"`
	NeedsHuman  bool     `json:"needs_human"`
}

func (h *Handler) handleMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	resp, err := h.engine.ProcessMessage(r.Context(), req.SessionID, req.Message, req.Page)
	switch {
	case errors.Is(err, engine.ErrEmptyMessage):
		writeError(w, http.StatusBadRequest, "message is empty")
		return
	case errors.Is(err, engine.ErrSuperseded):
		// The newer request in this session already answered.
		writeError(w, http.StatusConflict, "superseded by a newer message")
		return
	case err != nil:
		log.Printf("chat: processing message: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toMessageResponse(req.SessionID, resp))
}

// suggestionRequest resolves a clicked suggestion into a widget action.
type suggestionRequest struct {
	Suggestion string `json:"suggestion"`
}

func (h *Handler) handleSuggestion(w http.ResponseWriter, r *http.Request) {
	var req suggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Suggestion == "" {
		writeError(w, http.StatusBadRequest, "suggestion is required")
		return
	}
	writeJSON(w, http.StatusOK, h.engine.ResolveSuggestion(req.Suggestion))
}

// configResponse tells the widget how to present itself.
type configResponse struct {
	WelcomeMessage     string   `json:"welcome_message"`
	InitialSuggestions []string `json:"initial_suggestions"`
	WhatsAppLink       string   `json:"whatsapp_link,omitempty"`
	ShowOnPage         bool     `json:"show_on_page"`
}

func (h *Handler) handleConfig(w http.ResponseWriter, r *http.Request) {
	page := r.URL.Query().Get("page")
	writeJSON(w, http.StatusOK, configResponse{
		WelcomeMessage:     h.cfg.Chatbot.WelcomeMessage,
		InitialSuggestions: h.cfg.Chatbot.InitialSuggestions,
		WhatsAppLink:       handoff.WhatsAppLink(h.cfg.Chatbot.WhatsAppNumber),
		ShowOnPage:         page == "" || h.filter.Allowed(page),
	})
}

func toMessageResponse(sessionID string, resp compose.Response) messageResponse {
	return messageResponse{
		SessionID:   sessionID,
		Text:        resp.Text,
		HTML:        compose.RenderHTML(resp.Text),
		Suggestions: resp.Suggestions,
		NeedsHuman:  resp.NeedsHuman,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("chat: encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
