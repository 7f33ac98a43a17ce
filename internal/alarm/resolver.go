// Package alarm derives display projections for medication alarms.
//
// Everything here is pure: no I/O and no shared state, so the functions
// are safe to call concurrently from render paths.
package alarm

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"

	"github.com/mana2/mana-cli/internal/constants"
	"github.com/mana2/mana-cli/internal/models"
	"github.com/mana2/mana-cli/internal/utils"
)

// ErrParse is returned when a next-alarm string matches no known shape
var ErrParse = errors.New("unrecognized alarm time")

// Display is the rendered form of an alarm's next occurrence
type Display struct {
	FormattedTime string
	Status        constants.AlarmStatus
}

// OK reports whether the display was resolved without error
func (d Display) OK() bool {
	return d.Status != constants.AlarmStatusError
}

var (
	invalidDisplay     = Display{FormattedTime: constants.InvalidDateLabel, Status: constants.AlarmStatusError}
	unavailableDisplay = Display{FormattedTime: constants.NotAvailable, Status: constants.AlarmStatusError}

	bareTimeRe      = regexp.MustCompile(`^(\d{2}):(\d{2})(?::(\d{2})(?:\.\d+)?)?Z?$`)
	naiveDateTimeRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}(?::\d{2}(?:\.\d+)?)?$`)

	naiveLayouts = []string{
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
	}
	zonedLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04Z07:00",
		"2006-01-02 15:04:05Z07:00",
		time.RFC1123Z,
		time.RFC1123,
		"2006-01-02",
	}
)

// clock is a wall-clock time of day with no date or zone
type clock struct {
	hour, min, sec int
}

// parseClock parses a bare HH:MM or HH:MM:SS time of day. Fractional
// seconds and a trailing Z are accepted and dropped.
func parseClock(s string) (clock, bool) {
	m := bareTimeRe.FindStringSubmatch(s)
	if m == nil {
		return clock{}, false
	}
	var c clock
	c.hour, _ = strconv.Atoi(m[1])
	c.min, _ = strconv.Atoi(m[2])
	if m[3] != "" {
		c.sec, _ = strconv.Atoi(m[3])
	}
	if c.hour > 23 || c.min > 59 || c.sec > 59 {
		return clock{}, false
	}
	return c, true
}

// NextInstant resolves raw into the absolute instant it denotes, expressed
// in now's location.
//
// A bare time of day is read as a UTC clock on a fixed reference date and
// its hour/minute/second are then applied as local clock fields on today's
// date. No zone conversion happens on that path, so an alarm stored as
// "05:52:00" (UTC) is shown at 05:52 local time.
// TODO: revisit once the backend documents the zone of bare times.
func NextInstant(raw string, now time.Time) (time.Time, error) {
	loc := now.Location()
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, ErrParse
	}

	if c, ok := parseClock(s); ok {
		y, m, d := now.Date()
		return time.Date(y, m, d, c.hour, c.min, c.sec, 0, loc), nil
	}

	if naiveDateTimeRe.MatchString(s) {
		for _, layout := range naiveLayouts {
			if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return t.In(loc), nil
			}
		}
		return time.Time{}, ErrParse
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, ErrParse
}

// Resolve derives the formatted time and status for a raw next-alarm
// string relative to now. It never panics; every failure maps to an
// error Display.
func Resolve(raw string, now time.Time) (d Display) {
	defer func() {
		if r := recover(); r != nil {
			d = unavailableDisplay
		}
	}()

	at, err := NextInstant(raw, now)
	if err != nil {
		return invalidDisplay
	}

	formatted := strftime.Format(constants.AlarmClockFormat, at)
	past := at.Before(now)

	if utils.SameDay(now, at) {
		if past {
			return Display{FormattedTime: formatted, Status: constants.AlarmStatusPendingTodayPast}
		}
		return Display{FormattedTime: formatted, Status: constants.AlarmStatusPendingToday}
	}

	formatted = strftime.Format(constants.AlarmDayMonthFormat, at) + " " + formatted
	if past {
		return Display{FormattedTime: formatted, Status: constants.AlarmStatusPast}
	}
	return Display{FormattedTime: formatted, Status: constants.AlarmStatusUpcoming}
}

// ResolveAlarm resolves the alarm's next_alarm_time.
func ResolveAlarm(a *models.Alarm, now time.Time) Display {
	if a == nil {
		return invalidDisplay
	}
	return Resolve(a.NextAlarmTime, now)
}

// FormatTimeForDisplay renders a bare UTC time of day (HH:MM:SS) as a
// 12-hour clock, e.g. "2:30 PM". Clock fields are used as is, following
// the same rule as NextInstant. Returns "N/A" for anything else.
func FormatTimeForDisplay(utcTime string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = constants.NotAvailable
		}
	}()

	c, ok := parseClock(strings.TrimSpace(utcTime))
	if !ok {
		return constants.NotAvailable
	}
	t := time.Date(1970, time.January, 1, c.hour, c.min, c.sec, 0, time.UTC)
	return strftime.Format(constants.AlarmShortClockFmt, t)
}
