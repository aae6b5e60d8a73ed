package chat

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/tekkistudio/salesbot/internal/engine"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest is the incoming WebSocket message format.
type wsRequest struct {
	Type      string `json:"type"`       // "message" or "suggestion"
	SessionID string `json:"session_id"` // empty for new sessions
	Content   string `json:"content"`
	Page      string `json:"page"`
}

// wsResponse is the outgoing WebSocket message format.
type wsResponse struct {
	Type        string         `json:"type"` // "response", "action", or "error"
	SessionID   string         `json:"session_id"`
	Text        string         `json:"text,omitempty"`
	HTML        string         `json:"html,omitempty"`
	Suggestions []string       `json:"suggestions,omitempty"`
	NeedsHuman  bool           `json:"needs_human,omitempty"`
	Action      *engine.Action `json:"action,omitempty"`
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("chat: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("chat: websocket read: %v", err)
			}
			return
		}

		var req wsRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			h.sendWSError(conn, "", "invalid message format")
			continue
		}
		if req.SessionID == "" {
			req.SessionID = uuid.NewString()
		}

		switch req.Type {
		case "message":
			h.handleWSMessage(conn, r, req)
		case "suggestion":
			h.sendWS(conn, wsResponse{
				Type:      "action",
				SessionID: req.SessionID,
				Action:    actionPtr(h.engine.ResolveSuggestion(req.Content)),
			})
		default:
			h.sendWSError(conn, req.SessionID, "unknown message type: "+req.Type)
		}
	}
}

func (h *Handler) handleWSMessage(conn *websocket.Conn, r *http.Request, req wsRequest) {
	resp, err := h.engine.ProcessMessage(r.Context(), req.SessionID, req.Content, req.Page)
	switch {
	case errors.Is(err, engine.ErrEmptyMessage):
		h.sendWSError(conn, req.SessionID, "message is empty")
		return
	case errors.Is(err, engine.ErrSuperseded):
		// A newer message in this session already answered; stay quiet.
		return
	case err != nil:
		log.Printf("chat: processing websocket message: %v", err)
		h.sendWSError(conn, req.SessionID, "internal error")
		return
	}

	h.sendWS(conn, wsResponse{
		Type:        "response",
		SessionID:   req.SessionID,
		Text:        resp.Text,
		HTML:        toMessageResponse(req.SessionID, resp).HTML,
		Suggestions: resp.Suggestions,
		NeedsHuman:  resp.NeedsHuman,
	})
}

func (h *Handler) sendWS(conn *websocket.Conn, resp wsResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("chat: websocket write: %v", err)
	}
}

func (h *Handler) sendWSError(conn *websocket.Conn, sessionID, message string) {
	h.sendWS(conn, wsResponse{Type: "error", SessionID: sessionID, Text: message})
}

func actionPtr(a engine.Action) *engine.Action {
	return &a
}
