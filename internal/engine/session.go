package engine

import (
	"sync"
	"time"

	"github.com/tekkistudio/salesbot/internal/catalog"
	"github.com/tekkistudio/salesbot/internal/compose"
	"github.com/tekkistudio/salesbot/internal/funnel"
	"github.com/tekkistudio/salesbot/internal/intent"
	"github.com/tekkistudio/salesbot/internal/knowledge"
)

// historyWindow bounds how many recent turns are sent to the remote model.
const historyWindow = 5

// Message is one stored conversation turn within a session.
type Message struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// Session holds the per-conversation state: a catalog snapshot taken at
// session start, the fallback knowledge base, the classifier and composer
// over that snapshot, the funnel, and the message history.
type Session struct {
	ID         string
	mu         sync.Mutex
	listings   []catalog.Business
	base       *knowledge.Base
	classifier *intent.Classifier
	composer   *compose.Composer
	funnel     funnel.Funnel
	messages   []Message
	seq        int
	createdAt  time.Time
}

func newSession(id string, listings []catalog.Business, base *knowledge.Base, humanPhrases []string) *Session {
	return &Session{
		ID:         id,
		listings:   listings,
		base:       base,
		classifier: intent.NewClassifier(listings, base, humanPhrases),
		composer:   compose.NewComposer(listings, base),
		funnel:     funnel.New(),
		createdAt:  time.Now(),
	}
}

// nextSeq hands out the sequence number for an incoming request. Only the
// response carrying the latest sequence is recorded; slower superseded
// requests are discarded on return.
func (s *Session) nextSeq() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

func (s *Session) isLatest(seq int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return seq == s.seq
}

// Funnel returns a copy of the session's funnel.
func (s *Session) Funnel() funnel.Funnel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.funnel.Clone()
}

// History returns a copy of the stored messages.
func (s *Session) History() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.messages...)
}

func (s *Session) recentHistory() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.messages)
	if n > historyWindow {
		return append([]Message(nil), s.messages[n-historyWindow:]...)
	}
	return append([]Message(nil), s.messages...)
}

// commitTurn applies the funnel updates and message appends for one
// completed turn under a single lock. Entity detection runs on both sides:
// businesses the assistant enumerates count as viewed too.
func (s *Session) commitTurn(userText, assistantText string, matched []string) funnel.Funnel {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.funnel = funnel.Update(s.funnel, userText, true, matched)
	assistantMatched := listingNames(s.classifier.MatchListings(assistantText))
	s.funnel = funnel.Update(s.funnel, assistantText, false, assistantMatched)
	now := time.Now()
	s.messages = append(s.messages,
		Message{Role: "user", Content: userText, At: now},
		Message{Role: "assistant", Content: assistantText, At: now},
	)
	return s.funnel.Clone()
}

func listingNames(bs []catalog.Business) []string {
	var out []string
	for _, b := range bs {
		out = append(out, b.Name)
	}
	return out
}

func (s *Session) messageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// sessions is a concurrency-safe session registry.
type sessions struct {
	mu   sync.Mutex
	byID map[string]*Session
}

func newSessions() *sessions {
	return &sessions{byID: make(map[string]*Session)}
}

func (r *sessions) get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	return s, ok
}

func (r *sessions) getOrCreate(id string, create func() *Session) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.byID[id]; ok {
		return s
	}
	s := create()
	r.byID[id] = s
	return s
}
