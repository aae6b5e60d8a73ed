package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/tekkistudio/salesbot/internal/compose"
	"github.com/tekkistudio/salesbot/internal/knowledge"
	"github.com/tekkistudio/salesbot/internal/llm"
)

// remoteReply is the JSON contract expected from the remote model.
type remoteReply struct {
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions"`
	NeedsHuman  bool     `json:"needs_human"`
}

// turnUsage is the token spend of one delegated turn, recorded in the
// analytics log. Local turns cost nothing and carry a zero value.
type turnUsage struct {
	inputTokens  int
	outputTokens int
	costUSD      float64
}

// completeRemote sends one delegated turn to the remote model and sanitizes
// the reply. Any transport, parse, or empty-reply failure is an error; the
// caller falls back to the degraded local path.
func (e *Engine) completeRemote(ctx context.Context, session *Session, text, page string) (compose.Response, turnUsage, error) {
	messages := []llm.Message{{Role: llm.RoleSystem, Content: e.systemPrompt(ctx, session, text, page)}}
	for _, m := range session.recentHistory() {
		role := llm.RoleUser
		if m.Role == "assistant" {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: m.Content})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: text})

	resp, err := e.provider.Complete(ctx, llm.CompletionRequest{
		Model:       e.cfg.Model,
		Messages:    messages,
		Temperature: 0.7,
		JSONMode:    true,
	})
	if err != nil {
		return compose.Response{}, turnUsage{}, fmt.Errorf("remote completion: %w", err)
	}
	usage := e.usageFor(resp, messages)

	reply, err := parseRemoteReply(resp.Content)
	if err != nil {
		return compose.Response{}, usage, err
	}
	return compose.SanitizeRemote(reply.Message, reply.Suggestions, reply.NeedsHuman), usage, nil
}

// usageFor records what the delegated turn cost. Providers that do not
// report token counts get the character-based estimate instead.
func (e *Engine) usageFor(resp *llm.CompletionResponse, messages []llm.Message) turnUsage {
	in, out := resp.InputTokens, resp.OutputTokens
	if in == 0 {
		for _, m := range messages {
			in += llm.EstimateTokens(m.Content)
		}
	}
	if out == 0 {
		out = llm.EstimateTokens(resp.Content)
	}
	model := resp.Model
	if model == "" {
		model = e.cfg.Model
	}
	return turnUsage{
		inputTokens:  in,
		outputTokens: out,
		costUSD:      llm.EstimateCost(model, in, out),
	}
}

// systemPrompt assembles the delegation context: persona, catalog summary,
// semantically relevant knowledge entries, the funnel snapshot, and the
// current page.
func (e *Engine) systemPrompt(ctx context.Context, session *Session, text, page string) string {
	var sb strings.Builder
	sb.WriteString("Tu es Sara, conseillère commerciale de TEKKI Studio, une fabrique de business e-commerce clé en main au Sénégal. ")
	sb.WriteString("Tu réponds en français, de façon chaleureuse et concise. ")
	sb.WriteString("Tu ne donnes jamais de chiffres qui ne figurent pas dans le contexte ci-dessous.\n\n")

	if len(session.listings) > 0 {
		sb.WriteString("Business actuellement en vente :\n")
		for _, b := range session.listings {
			fmt.Fprintf(&sb, "- %s : %s", b.Name, knowledge.FormatFCFA(b.Price))
			if b.MonthlyPotential > 0 {
				fmt.Fprintf(&sb, ", potentiel %s/mois", knowledge.FormatFCFA(b.MonthlyPotential))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	for _, entry := range e.relevantEntries(ctx, session, text) {
		fmt.Fprintf(&sb, "À propos de %s : %s\n", entry.Name, entry.Description)
	}

	f := session.Funnel()
	fmt.Fprintf(&sb, "\nSession %s — étape du parcours : %s", session.ID, f.Stage)
	if len(f.BusinessesViewed) > 0 {
		fmt.Fprintf(&sb, ", business consultés : %s", strings.Join(f.BusinessesViewed, ", "))
	}
	if f.ReadyToBuy {
		sb.WriteString(", visiteur prêt à acheter")
	}
	if page != "" {
		fmt.Fprintf(&sb, ". Page visitée : %s", page)
	}
	sb.WriteString(".\n\n")

	sb.WriteString(`Réponds uniquement avec un objet JSON de la forme `)
	sb.WriteString(`{"message": "...", "suggestions": ["..."], "needs_human": false}. `)
	sb.WriteString("Propose au plus 5 suggestions courtes.")
	return sb.String()
}

// relevantEntries picks knowledge entries for the prompt via the semantic
// index when one is configured. Retrieval failures only shrink the prompt.
func (e *Engine) relevantEntries(ctx context.Context, session *Session, text string) []knowledge.Entry {
	if e.index == nil {
		return nil
	}
	entries, err := e.index.Search(ctx, session.base, text, 3)
	if err != nil {
		log.Printf("engine: semantic search: %v", err)
		return nil
	}
	return entries
}

// parseRemoteReply decodes the model's JSON reply, tolerating prose around
// the object.
func parseRemoteReply(content string) (remoteReply, error) {
	var reply remoteReply
	raw := strings.TrimSpace(content)

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return reply, fmt.Errorf("remote reply contains no JSON object")
	}

	if err := json.Unmarshal([]byte(raw[start:end+1]), &reply); err != nil {
		return reply, fmt.Errorf("parsing remote reply: %w", err)
	}
	if strings.TrimSpace(reply.Message) == "" {
		return reply, fmt.Errorf("remote reply has an empty message")
	}
	return reply, nil
}
