package postgres

import (
	"context"
	"fmt"
	"time"
)

func (s *Store) MarkReminderSent(ctx context.Context, key string, alarmID int, sentAt time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO reminder_log (occurrence_key, alarm_id, sent_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (occurrence_key) DO NOTHING
	`, key, alarmID, sentAt.UTC())
	if err != nil {
		return false, fmt.Errorf("failed to record reminder: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *Store) PruneReminders(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM reminder_log WHERE sent_at < $1", before.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to prune reminders: %w", err)
	}
	return res.RowsAffected()
}
