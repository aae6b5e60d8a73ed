package analytics

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/tekkistudio/salesbot/internal/db"
)

// Store persists analytics events and serves the admin read queries.
type Store struct {
	db *db.DB
}

// NewStore creates a store over the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// RecordEvent writes the message log and funnel snapshot for one turn in a
// single transaction.
func (s *Store) RecordEvent(ev Event) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin analytics tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO message_logs (id, session_id, page, user_text, assistant_text, strategy, funnel_stage, needs_human, input_tokens, output_tokens, cost_usd)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), ev.SessionID, ev.Page, ev.UserText, ev.AssistantText,
		ev.Strategy, string(ev.Funnel.Stage), boolToInt(ev.NeedsHuman),
		ev.InputTokens, ev.OutputTokens, ev.CostUSD)
	if err != nil {
		return fmt.Errorf("insert message log: %w", err)
	}

	viewed, _ := json.Marshal(emptyIfNil(ev.Funnel.BusinessesViewed))
	topics, _ := json.Marshal(emptyIfNil(ev.Funnel.TopicsDiscussed))
	objections, _ := json.Marshal(emptyIfNil(ev.Funnel.Objections))

	_, err = tx.Exec(`
		INSERT INTO funnel_snapshots (id, session_id, page, stage, ready_to_buy, businesses_viewed, topics_discussed, objections, message_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), ev.SessionID, ev.Page, string(ev.Funnel.Stage),
		boolToInt(ev.Funnel.ReadyToBuy), string(viewed), string(topics), string(objections), ev.MessageCount)
	if err != nil {
		return fmt.Errorf("insert funnel snapshot: %w", err)
	}

	return tx.Commit()
}

// LatestFunnels returns the most recent snapshot per session, newest first.
func (s *Store) LatestFunnels(limit int) ([]FunnelSnapshot, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, session_id, page, stage, ready_to_buy, businesses_viewed, topics_discussed, objections, message_count, created_at
		FROM funnel_snapshots
		WHERE id IN (
			SELECT id FROM funnel_snapshots fs
			WHERE created_at = (SELECT MAX(created_at) FROM funnel_snapshots WHERE session_id = fs.session_id)
		)
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query funnels: %w", err)
	}
	defer rows.Close()

	var out []FunnelSnapshot
	for rows.Next() {
		var f FunnelSnapshot
		var ready int
		var viewed, topics, objections string
		if err := rows.Scan(&f.ID, &f.SessionID, &f.Page, &f.Stage, &ready,
			&viewed, &topics, &objections, &f.MessageCount, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan funnel snapshot: %w", err)
		}
		f.ReadyToBuy = ready != 0
		json.Unmarshal([]byte(viewed), &f.BusinessesViewed)
		json.Unmarshal([]byte(topics), &f.TopicsDiscussed)
		json.Unmarshal([]byte(objections), &f.Objections)
		out = append(out, f)
	}
	return out, rows.Err()
}

// RecentMessages returns the latest message logs, newest first.
func (s *Store) RecentMessages(limit int) ([]MessageLog, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.Query(`
		SELECT id, session_id, page, user_text, assistant_text, strategy, funnel_stage, needs_human, input_tokens, output_tokens, cost_usd, created_at
		FROM message_logs
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var out []MessageLog
	for rows.Next() {
		var m MessageLog
		var needsHuman int
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Page, &m.UserText, &m.AssistantText,
			&m.Strategy, &m.FunnelStage, &needsHuman,
			&m.InputTokens, &m.OutputTokens, &m.CostUSD, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message log: %w", err)
		}
		m.NeedsHuman = needsHuman != 0
		out = append(out, m)
	}
	return out, rows.Err()
}

// ComputeStats aggregates stored activity.
func (s *Store) ComputeStats() (*Stats, error) {
	st := &Stats{
		StageCounts:    make(map[string]int),
		StrategyCounts: make(map[string]int),
	}

	row := s.db.QueryRow(`
		SELECT COUNT(*), COUNT(DISTINCT session_id), COALESCE(SUM(needs_human), 0),
		       COALESCE(SUM(input_tokens), 0), COALESCE(SUM(output_tokens), 0), COALESCE(SUM(cost_usd), 0)
		FROM message_logs`)
	if err := row.Scan(&st.TotalMessages, &st.TotalSessions, &st.NeedsHumanCount,
		&st.TotalInputTokens, &st.TotalOutputTokens, &st.EstimatedCostUSD); err != nil {
		return nil, fmt.Errorf("scan message totals: %w", err)
	}

	row = s.db.QueryRow(`
		SELECT COUNT(DISTINCT session_id) FROM funnel_snapshots WHERE ready_to_buy = 1`)
	if err := row.Scan(&st.ReadyToBuyCount); err != nil {
		return nil, fmt.Errorf("scan ready-to-buy count: %w", err)
	}

	if err := s.countBy(`SELECT funnel_stage, COUNT(*) FROM message_logs GROUP BY funnel_stage`, st.StageCounts); err != nil {
		return nil, err
	}
	if err := s.countBy(`SELECT strategy, COUNT(*) FROM message_logs GROUP BY strategy`, st.StrategyCounts); err != nil {
		return nil, err
	}

	return st, nil
}

func (s *Store) countBy(query string, dest map[string]int) error {
	rows, err := s.db.Query(query)
	if err != nil {
		return fmt.Errorf("count query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var k string
		var n int
		if err := rows.Scan(&k, &n); err != nil {
			return fmt.Errorf("scan count row: %w", err)
		}
		dest[k] = n
	}
	return rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
