package reminder

import (
	"context"
	"sync"
	"time"
)

// MemoryLog is a process-local reminder log, used for dry runs.
type MemoryLog struct {
	mu   sync.Mutex
	sent map[string]time.Time
}

func NewMemoryLog() *MemoryLog {
	return &MemoryLog{sent: make(map[string]time.Time)}
}

func (m *MemoryLog) MarkReminderSent(_ context.Context, key string, _ int, sentAt time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sent[key]; ok {
		return false, nil
	}
	m.sent[key] = sentAt
	return true, nil
}

func (m *MemoryLog) PruneReminders(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k, at := range m.sent {
		if at.Before(before) {
			delete(m.sent, k)
			n++
		}
	}
	return n, nil
}
