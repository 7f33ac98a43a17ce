// Package reminder turns due medication alarms into desktop notifications.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/mana2/mana-cli/internal/alarm"
	"github.com/mana2/mana-cli/internal/constants"
	"github.com/mana2/mana-cli/internal/logger"
	"github.com/mana2/mana-cli/internal/models"
	"github.com/mana2/mana-cli/internal/storage"
)

// Source lists the alarms to watch.
type Source interface {
	Alarms(ctx context.Context) ([]models.Alarm, error)
}

// Sender delivers a reminder text.
type Sender interface {
	Notify(ctx context.Context, text string) error
}

type Watcher struct {
	Source Source
	Sender Sender
	Log    storage.ReminderLog
	Now    func() time.Time
	// Window is how far back an occurrence still counts as due
	Window time.Duration

	// end of the previous successful check
	last time.Time
}

// Result summarises one check.
type Result struct {
	Checked int
	Due     int
	Sent    int
	Failed  int
}

// Message is the reminder text for a.
func Message(a models.Alarm) string {
	if a.Dosage == "" {
		return fmt.Sprintf("💊 Hora de tu medicamento: %s", a.MedicationName)
	}
	return fmt.Sprintf("💊 Hora de tu medicamento: %s (%s)", a.MedicationName, a.Dosage)
}

// Check fetches the alarms once and notifies every due occurrence that has
// not been claimed before. An occurrence is claimed in the log before
// delivery, so a failed delivery is not repeated.
//
// The checked range reaches back to the previous check when that is recent,
// so occurrences between two ticks are not skipped when the window is
// shorter than the gap.
func (w *Watcher) Check(ctx context.Context) (Result, error) {
	var res Result
	now := w.now()
	alarms, err := w.Source.Alarms(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to list alarms: %w", err)
	}

	window := w.Window
	if window <= 0 {
		window = constants.DefaultDueWindow
	}
	from := now.Add(-window)
	if !w.last.IsZero() && w.last.Before(from) && now.Sub(w.last) <= constants.MaxCatchUp {
		from = w.last
	}
	w.last = now

	for _, a := range alarms {
		res.Checked++
		at, ok := alarm.DueBetween(a, from, now)
		if !ok {
			continue
		}
		key := alarm.KeyAt(a.ID, at)
		res.Due++

		fresh, err := w.Log.MarkReminderSent(ctx, key, a.ID, now)
		if err != nil {
			return res, fmt.Errorf("failed to record reminder: %w", err)
		}
		if !fresh {
			continue
		}

		if err := w.Sender.Notify(ctx, Message(a)); err != nil {
			res.Failed++
			logger.Warn("Failed to send reminder", "alarm_id", a.ID, "error", err)
			continue
		}
		res.Sent++
	}
	return res, nil
}

// Run checks every interval until ctx is cancelled. Old log entries are
// pruned once per run.
func (w *Watcher) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = constants.DefaultWatchInterval
	}
	if n, err := w.Log.PruneReminders(ctx, w.now().Add(-constants.ReminderRetention)); err != nil {
		logger.Warn("Failed to prune reminder log", "error", err)
	} else if n > 0 {
		logger.Debug("Pruned reminder log", "removed", n)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		res, err := w.Check(ctx)
		if err != nil {
			logger.Warn("Reminder check failed", "error", err)
		} else {
			logger.Debug("Reminder check", "checked", res.Checked, "due", res.Due, "sent", res.Sent, "failed", res.Failed)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (w *Watcher) now() time.Time {
	if w.Now != nil {
		return w.Now()
	}
	return time.Now()
}
