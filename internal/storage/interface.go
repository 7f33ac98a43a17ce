package storage

import (
	"context"
	"time"

	"github.com/mana2/mana-cli/internal/models"
)

// TranscriptStore persists chat transcripts keyed by user id
type TranscriptStore interface {
	// LoadTranscript returns the stored state and whether one existed
	LoadTranscript(ctx context.Context, userID int) (models.ChatState, bool, error)
	SaveTranscript(ctx context.Context, userID int, state models.ChatState) error
	DeleteTranscript(ctx context.Context, userID int) error
}

// ReminderLog records which alarm occurrences have already been notified
type ReminderLog interface {
	// MarkReminderSent records key and reports whether it was new
	MarkReminderSent(ctx context.Context, key string, alarmID int, sentAt time.Time) (bool, error)
	// PruneReminders drops entries sent before the cutoff
	PruneReminders(ctx context.Context, before time.Time) (int64, error)
}

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	TranscriptStore
	ReminderLog

	// Utils
	GetConfigPath() string
	// SchemaVersion returns the applied and the newest known migration
	SchemaVersion() (current, latest int, err error)
}
