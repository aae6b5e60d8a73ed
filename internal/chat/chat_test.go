package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/tekkistudio/salesbot/internal/catalog"
	"github.com/tekkistudio/salesbot/internal/compose"
	"github.com/tekkistudio/salesbot/internal/config"
	"github.com/tekkistudio/salesbot/internal/db"
	"github.com/tekkistudio/salesbot/internal/engine"
	"github.com/tekkistudio/salesbot/internal/knowledge"
)

func testHandler(t *testing.T) *Handler {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	store := catalog.NewStore(database)
	if _, err := store.Upsert(context.Background(), catalog.Business{
		Name: "Boutique Chaussures", Slug: "boutique-chaussures", Price: 2500000,
	}); err != nil {
		t.Fatalf("seeding catalog: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Chatbot.WhatsAppNumber = "+221771234567"
	eng := engine.New(engine.Options{
		Catalog: store,
		KB:      knowledge.NewStore(database),
		Config:  cfg,
	})
	return NewHandler(eng, cfg)
}

func testRouter(t *testing.T) chi.Router {
	r := chi.NewRouter()
	testHandler(t).RegisterRoutes(r)
	return r
}

func postJSON(t *testing.T, router chi.Router, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMessageEndpoint(t *testing.T) {
	router := testRouter(t)

	w := postJSON(t, router, "/api/chat/message", messageRequest{
		Message: "Quels business sont disponibles ?",
		Page:    "/nos-business",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}

	var resp messageResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.SessionID == "" {
		t.Error("a session ID must be assigned when none is sent")
	}
	if !strings.Contains(resp.Text, "Boutique Chaussures") {
		t.Errorf("catalog listing missing: %s", resp.Text)
	}
	if !strings.Contains(resp.HTML, "<strong>Boutique Chaussures</strong>") {
		t.Errorf("markdown not rendered to HTML: %s", resp.HTML)
	}
}

func TestMessageEndpointRejectsEmpty(t *testing.T) {
	router := testRouter(t)

	w := postJSON(t, router, "/api/chat/message", messageRequest{Message: "   "})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestMessageEndpointRejectsBadJSON(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/chat/message", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSuggestionEndpoint(t *testing.T) {
	router := testRouter(t)

	w := postJSON(t, router, "/api/chat/suggestion", suggestionRequest{Suggestion: compose.WhatsAppSuggestion})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var action engine.Action
	if err := json.Unmarshal(w.Body.Bytes(), &action); err != nil {
		t.Fatalf("decoding action: %v", err)
	}
	if action.Kind != engine.ActionOpenURL || !strings.Contains(action.URL, "wa.me/221771234567") {
		t.Errorf("unexpected action: %+v", action)
	}
}

func TestConfigEndpoint(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/chat/config?page=/nos-business", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp configResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding config: %v", err)
	}
	if !strings.Contains(resp.WelcomeMessage, "Sara") {
		t.Errorf("welcome message missing persona: %s", resp.WelcomeMessage)
	}
	if len(resp.InitialSuggestions) == 0 {
		t.Error("initial suggestions missing")
	}
	if !resp.ShowOnPage {
		t.Error("widget should show on a catalog page")
	}
}

func TestConfigEndpointExcludedPage(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/chat/config?page=/admin/settings", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp configResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding config: %v", err)
	}
	if resp.ShowOnPage {
		t.Error("widget must stay off admin pages")
	}
}

func TestWebSocketRoundTrip(t *testing.T) {
	router := chi.NewRouter()
	testHandler(t).RegisterRoutes(router)
	srv := httptest.NewServer(router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/chat/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dialing websocket: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(wsRequest{Type: "message", Content: "Quels business sont disponibles ?"}); err != nil {
		t.Fatalf("writing message: %v", err)
	}

	var resp wsResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("reading response: %v", err)
	}
	if resp.Type != "response" || resp.SessionID == "" {
		t.Errorf("unexpected frame: %+v", resp)
	}
	if !strings.Contains(resp.Text, "Boutique Chaussures") {
		t.Errorf("catalog listing missing: %s", resp.Text)
	}
}

func TestWebSocketUnknownType(t *testing.T) {
	router := chi.NewRouter()
	testHandler(t).RegisterRoutes(router)
	srv := httptest.NewServer(router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/chat/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dialing websocket: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(wsRequest{Type: "telepathy", Content: "hello"}); err != nil {
		t.Fatalf("writing message: %v", err)
	}

	var resp wsResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("reading response: %v", err)
	}
	if resp.Type != "error" {
		t.Errorf("expected error frame, got %+v", resp)
	}
}

func TestPageFilter(t *testing.T) {
	f := NewPageFilter([]string{"/**"}, []string{"/admin/**", "/api/**"})

	tests := []struct {
		page string
		want bool
	}{
		{"/", true},
		{"/nos-business", true},
		{"/nos-business/boutique-chaussures", true},
		{"/admin", false},
		{"/admin/settings", false},
		{"/api/chat/message", false},
	}
	for _, tt := range tests {
		if got := f.Allowed(tt.page); got != tt.want {
			t.Errorf("Allowed(%q) = %v, want %v", tt.page, got, tt.want)
		}
	}
}

func TestPageFilterEmptyIncludeAllowsAll(t *testing.T) {
	f := NewPageFilter(nil, nil)
	if !f.Allowed("/anything") {
		t.Error("empty filter must allow every page")
	}
}

func TestPageFilterIncludeOnly(t *testing.T) {
	f := NewPageFilter([]string{"/nos-business/**"}, nil)
	if f.Allowed("/blog/article") {
		t.Error("page outside the include list must be filtered")
	}
	if !f.Allowed("/nos-business/boutique-chaussures") {
		t.Error("included page must be allowed")
	}
}
