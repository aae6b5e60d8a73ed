// Package engine runs the conversation pipeline: classify the utterance,
// answer locally when a deterministic strategy applies, delegate the rest to
// the remote model, and keep the funnel and analytics up to date.
package engine

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/tekkistudio/salesbot/internal/analytics"
	"github.com/tekkistudio/salesbot/internal/catalog"
	"github.com/tekkistudio/salesbot/internal/compose"
	"github.com/tekkistudio/salesbot/internal/config"
	"github.com/tekkistudio/salesbot/internal/intent"
	"github.com/tekkistudio/salesbot/internal/knowledge"
	"github.com/tekkistudio/salesbot/internal/llm"
	"github.com/tekkistudio/salesbot/internal/notify"
)

var (
	// ErrEmptyMessage rejects blank input before any session state changes.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrSuperseded marks a slow response overtaken by a newer request in
	// the same session. Its result is discarded, not shown.
	ErrSuperseded = errors.New("response superseded by a newer request")
)

// Engine wires the conversation pipeline together. Safe for concurrent use.
type Engine struct {
	catalog  *catalog.Store
	kb       *knowledge.Store
	cfg      *config.Config
	provider llm.Provider
	index    *knowledge.Index
	sink     *analytics.Sink
	notifier *notify.Dispatcher
	sessions *sessions
}

// Options collects the engine's collaborators. Provider, index, sink, and
// notifier are optional; the pipeline degrades rather than fails without
// them.
type Options struct {
	Catalog  *catalog.Store
	KB       *knowledge.Store
	Config   *config.Config
	Provider llm.Provider
	Index    *knowledge.Index
	Sink     *analytics.Sink
	Notifier *notify.Dispatcher
}

// New creates an engine.
func New(opts Options) *Engine {
	return &Engine{
		catalog:  opts.Catalog,
		kb:       opts.KB,
		cfg:      opts.Config,
		provider: opts.Provider,
		index:    opts.Index,
		sink:     opts.Sink,
		notifier: opts.Notifier,
		sessions: newSessions(),
	}
}

// Session returns the session with the given ID, creating it on first use.
// Creation snapshots the available catalog and the knowledge base.
func (e *Engine) Session(ctx context.Context, id string) *Session {
	if existing, ok := e.sessions.get(id); ok {
		return existing
	}

	listings, base := e.loadSnapshot(ctx)
	return e.sessions.getOrCreate(id, func() *Session {
		return newSession(id, listings, base, e.cfg.Chatbot.HumanTriggerPhrases)
	})
}

// loadSnapshot serializes the two data loads: the stored knowledge base
// first, then catalog-synthesized entries merged in with existing keys
// winning. A failed or empty knowledge load falls back to the built-in
// entries before the merge, so the final state never depends on timing.
// A catalog failure degrades to fallback-entry matching only; the session
// stays usable.
func (e *Engine) loadSnapshot(ctx context.Context) ([]catalog.Business, *knowledge.Base) {
	base := knowledge.LoadBase(ctx, e.kb)

	listings, err := e.catalog.ListAvailable(ctx)
	if err != nil {
		log.Printf("engine: loading catalog: %v (continuing without listings)", err)
		listings = nil
	}
	knowledge.SynthesizeFromCatalog(base, listings)
	return listings, base
}

// ProcessMessage runs one turn: validate, classify, answer or delegate,
// update the funnel, and emit analytics. page is the widget's current page
// path, forwarded to the remote model and the analytics log.
func (e *Engine) ProcessMessage(ctx context.Context, sessionID, text, page string) (compose.Response, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return compose.Response{}, ErrEmptyMessage
	}

	session := e.Session(ctx, sessionID)
	seq := session.nextSeq()

	strategy := session.classifier.Classify(trimmed)

	var resp compose.Response
	var usage turnUsage
	if strategy.Kind == intent.KindDelegateToRemote {
		resp, usage = e.delegate(ctx, session, trimmed, page)
	} else {
		resp = session.composer.Compose(strategy)
	}

	// Last request wins: a slower turn overtaken by a newer one in the same
	// session is dropped without touching the funnel or the history.
	if !session.isLatest(seq) {
		return compose.Response{}, ErrSuperseded
	}

	snapshot := session.commitTurn(trimmed, resp.Text, matchedNames(strategy))

	if e.sink != nil {
		e.sink.Emit(analytics.Event{
			SessionID:     sessionID,
			Page:          page,
			UserText:      trimmed,
			AssistantText: resp.Text,
			Strategy:      string(strategy.Kind),
			Funnel:        snapshot,
			MessageCount:  session.messageCount(),
			NeedsHuman:    resp.NeedsHuman,
			InputTokens:   usage.inputTokens,
			OutputTokens:  usage.outputTokens,
			CostUSD:       usage.costUSD,
		})
	}

	if resp.NeedsHuman && e.notifier != nil && e.notifier.Enabled() {
		alert := notify.HandoffAlert{
			SessionID:   sessionID,
			Page:        page,
			UserText:    trimmed,
			FunnelStage: string(snapshot.Stage),
			ReadyToBuy:  snapshot.ReadyToBuy,
		}
		go func() {
			nctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			e.notifier.Notify(nctx, alert)
		}()
	}

	return resp, nil
}

// matchedNames extracts the business names a strategy resolved, for the
// funnel's viewed set.
func matchedNames(s intent.Strategy) []string {
	var out []string
	for _, b := range s.Entities {
		out = append(out, b.Name)
	}
	if s.Entity != nil {
		out = append(out, s.Entity.Name)
	} else if s.Fallback != nil {
		out = append(out, s.Fallback.Name)
	}
	return out
}

// delegate runs the remote call with the configured timeout. On any failure
// the degraded path answers locally: a list request with a non-empty catalog
// gets the catalog listing, everything else the apology.
func (e *Engine) delegate(ctx context.Context, session *Session, text, page string) (compose.Response, turnUsage) {
	if e.provider == nil {
		return e.degraded(session, text), turnUsage{}
	}

	timeout := time.Duration(e.cfg.RemoteTimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	rctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, usage, err := e.completeRemote(rctx, session, text, page)
	if err != nil {
		log.Printf("engine: remote delegation for session %s: %v", session.ID, err)
		return e.degraded(session, text), usage
	}
	return resp, usage
}

func (e *Engine) degraded(session *Session, text string) compose.Response {
	if session.classifier.IsListRequest(text) && len(session.listings) > 0 {
		return session.composer.CatalogList()
	}
	return session.composer.Apology()
}
