package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mana2/mana-cli/internal/constants"
)

// ErrIncompleteAlarm is returned when a required alarm field is missing
var ErrIncompleteAlarm = errors.New("Por favor, completa todos los campos.")

// Alarm is a medication reminder owned by the backend.
type Alarm struct {
	ID             int    `json:"id"`
	UserID         int    `json:"user_id"`
	MedicationName string `json:"medication_name"`
	Dosage         string `json:"dosage"`
	FrequencyHours int    `json:"frequency_hours"`
	StartTime      string `json:"start_time"`      // HH:MM:SS UTC
	NextAlarmTime  string `json:"next_alarm_time"` // bare time of day or ISO date-time
}

// AlarmList is the response shape of the alarm listing endpoint
type AlarmList struct {
	Alarms []Alarm `json:"alarms"`
}

// NewAlarm is the create payload for a medication alarm
type NewAlarm struct {
	MedicationName string `json:"medication_name"`
	Dosage         string `json:"dosage"`
	FrequencyHours int    `json:"frequency_hours"`
	StartTime      string `json:"start_time"`
}

func (a *NewAlarm) Validate() error {
	if strings.TrimSpace(a.MedicationName) == "" || strings.TrimSpace(a.Dosage) == "" ||
		a.FrequencyHours == 0 || a.StartTime == "" {
		return ErrIncompleteAlarm
	}
	if a.FrequencyHours < constants.MinFrequencyHours || a.FrequencyHours > constants.MaxFrequencyHours {
		return fmt.Errorf("frequency must be between %d and %d hours, got %d",
			constants.MinFrequencyHours, constants.MaxFrequencyHours, a.FrequencyHours)
	}
	return nil
}

// StartTimeForAPI converts user input in HH:MM into the backend's
// UTC time-of-day representation (HH:MM:00.000Z).
func StartTimeForAPI(hhmm string) (string, error) {
	t, err := time.Parse(constants.TimeFormat, strings.TrimSpace(hhmm))
	if err != nil {
		return "", fmt.Errorf("invalid time format (expected HH:MM): %w", err)
	}
	return t.Format(constants.TimeFormat) + constants.AlarmStartTimeSuffix, nil
}
