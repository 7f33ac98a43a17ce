package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mana2/mana-cli/internal/models"
)

func (s *Store) LoadTranscript(ctx context.Context, userID int) (models.ChatState, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		"SELECT state FROM chat_transcripts WHERE user_id = ?", userID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ChatState{}, false, nil
	}
	if err != nil {
		return models.ChatState{}, false, fmt.Errorf("failed to load transcript: %w", err)
	}

	var state models.ChatState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return models.ChatState{}, false, fmt.Errorf("failed to decode transcript for user %d: %w", userID, err)
	}
	return state, true, nil
}

func (s *Store) SaveTranscript(ctx context.Context, userID int, state models.ChatState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode transcript: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO chat_transcripts (user_id, state, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at
	`, userID, string(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save transcript: %w", err)
	}
	return nil
}

func (s *Store) DeleteTranscript(ctx context.Context, userID int) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM chat_transcripts WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("failed to delete transcript: %w", err)
	}
	return nil
}
