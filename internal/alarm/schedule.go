package alarm

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/mana2/mana-cli/internal/models"
)

// SortByNext orders alarms by their next occurrence, earliest first.
// Alarms whose time cannot be parsed keep their relative order at the end.
func SortByNext(alarms []models.Alarm, now time.Time) {
	type keyed struct {
		alarm models.Alarm
		at    time.Time
		ok    bool
	}
	items := make([]keyed, len(alarms))
	for i, a := range alarms {
		at, err := NextInstant(a.NextAlarmTime, now)
		items[i] = keyed{alarm: a, at: at, ok: err == nil}
	}

	slices.SortStableFunc(items, func(a, b keyed) int {
		switch {
		case a.ok && !b.ok:
			return -1
		case !a.ok && b.ok:
			return 1
		case !a.ok && !b.ok:
			return 0
		}
		return a.at.Compare(b.at)
	})

	for i, it := range items {
		alarms[i] = it.alarm
	}
}

// DueBetween returns the occurrence of a that falls in (from, to]. A bare
// time of day later than to is also tried on the previous day, so a check
// just after midnight still sees an alarm set just before it.
func DueBetween(a models.Alarm, from, to time.Time) (time.Time, bool) {
	at, err := NextInstant(a.NextAlarmTime, to)
	if err != nil {
		return time.Time{}, false
	}
	if at.After(to) {
		if _, bare := parseClock(strings.TrimSpace(a.NextAlarmTime)); bare {
			at = at.AddDate(0, 0, -1)
		}
	}
	if at.After(to) || !at.After(from) {
		return time.Time{}, false
	}
	return at, true
}

// Due reports whether an occurrence of the alarm falls in (now-window, now].
func Due(a models.Alarm, now time.Time, window time.Duration) bool {
	_, ok := DueBetween(a, now.Add(-window), now)
	return ok
}

// OccurrenceKey identifies one firing of an alarm so a reminder is sent once.
func OccurrenceKey(a models.Alarm, now time.Time) (string, bool) {
	at, err := NextInstant(a.NextAlarmTime, now)
	if err != nil {
		return "", false
	}
	return KeyAt(a.ID, at), true
}

// KeyAt is the occurrence key of alarm id firing at at.
func KeyAt(id int, at time.Time) string {
	return strconv.Itoa(id) + "@" + at.UTC().Format(time.RFC3339)
}
