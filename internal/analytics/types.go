package analytics

import (
	"time"

	"github.com/tekkistudio/salesbot/internal/funnel"
)

// Event captures one processed conversation turn for reporting. Emission is
// fire-and-forget: a dropped event never fails the reply that produced it.
type Event struct {
	SessionID     string
	Page          string
	UserText      string
	AssistantText string
	Strategy      string
	Funnel        funnel.Funnel
	MessageCount  int
	NeedsHuman    bool
	InputTokens   int
	OutputTokens  int
	CostUSD       float64
}

// FunnelSnapshot is a stored point-in-time view of one session's funnel.
type FunnelSnapshot struct {
	ID               string    `json:"id"`
	SessionID        string    `json:"session_id"`
	Page             string    `json:"page"`
	Stage            string    `json:"stage"`
	ReadyToBuy       bool      `json:"ready_to_buy"`
	BusinessesViewed []string  `json:"businesses_viewed"`
	TopicsDiscussed  []string  `json:"topics_discussed"`
	Objections       []string  `json:"objections"`
	MessageCount     int       `json:"message_count"`
	CreatedAt        time.Time `json:"created_at"`
}

// MessageLog is one stored conversation turn.
type MessageLog struct {
	ID            string    `json:"id"`
	SessionID     string    `json:"session_id"`
	Page          string    `json:"page"`
	UserText      string    `json:"user_text"`
	AssistantText string    `json:"assistant_text"`
	Strategy      string    `json:"strategy"`
	FunnelStage   string    `json:"funnel_stage"`
	NeedsHuman    bool      `json:"needs_human"`
	InputTokens   int       `json:"input_tokens"`
	OutputTokens  int       `json:"output_tokens"`
	CostUSD       float64   `json:"cost_usd"`
	CreatedAt     time.Time `json:"created_at"`
}

// Stats summarizes stored activity for the admin dashboard. Token and cost
// totals only count delegated turns; local strategies are free.
type Stats struct {
	TotalMessages     int            `json:"total_messages"`
	TotalSessions     int            `json:"total_sessions"`
	NeedsHumanCount   int            `json:"needs_human_count"`
	ReadyToBuyCount   int            `json:"ready_to_buy_count"`
	TotalInputTokens  int            `json:"total_input_tokens"`
	TotalOutputTokens int            `json:"total_output_tokens"`
	EstimatedCostUSD  float64        `json:"estimated_cost_usd"`
	StageCounts       map[string]int `json:"stage_counts"`
	StrategyCounts    map[string]int `json:"strategy_counts"`
}
