package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/merrysway/baristabot/internal/core"
	"github.com/merrysway/baristabot/pkg/log"
)

type HistoryRepo struct {
	db *sql.DB
}

func NewHistoryRepo(db *sql.DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

func (h *HistoryRepo) AddMessage(ctx context.Context, sessionID string, msg core.Message) error {
	var memStr string
	if msg.Memory != nil {
		data, err := json.Marshal(msg.Memory)
		if err != nil {
			return fmt.Errorf("failed to marshal memory: %w", err)
		}
		memStr = string(data)
	}

	query := `INSERT INTO messages (session_id, role, content, memory) VALUES (?, ?, ?, ?)`
	_, err := h.db.ExecContext(ctx, query, sessionID, msg.Role, msg.Content, memStr)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

func (h *HistoryRepo) GetMessages(ctx context.Context, sessionID string, limit int) ([]core.Message, error) {
	// Fetch the LAST 'limit' messages by ordering DESC
	query := `SELECT role, content, memory FROM messages WHERE session_id = ? ORDER BY id DESC LIMIT ?`

	rows, err := h.db.QueryContext(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []core.Message
	for rows.Next() {
		var msg core.Message
		var content, memStr sql.NullString

		if err := rows.Scan(&msg.Role, &content, &memStr); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}

		msg.Content = content.String

		if memStr.Valid && memStr.String != "" && memStr.String != "null" {
			var mem core.Memory
			if err := json.Unmarshal([]byte(memStr.String), &mem); err != nil {
				return nil, fmt.Errorf("failed to unmarshal memory: %w", err)
			}
			msg.Memory = &mem
		}

		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	// The query returned messages newest first; reverse back to
	// chronological order for the pipeline.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	log.FromCtx(ctx).Debug().Int("count", len(messages)).Msg("loaded history messages")
	return messages, nil
}
