package models

import (
	"errors"
	"testing"
)

func TestNewAlarm_Validate(t *testing.T) {
	tests := []struct {
		name    string
		alarm   NewAlarm
		wantErr bool
		isEmpty bool
	}{
		{
			name: "valid alarm",
			alarm: NewAlarm{
				MedicationName: "Metformina",
				Dosage:         "500mg",
				FrequencyHours: 8,
				StartTime:      "08:00:00.000Z",
			},
		},
		{
			name:    "missing medication",
			alarm:   NewAlarm{Dosage: "500mg", FrequencyHours: 8, StartTime: "08:00:00.000Z"},
			wantErr: true,
			isEmpty: true,
		},
		{
			name:    "blank dosage",
			alarm:   NewAlarm{MedicationName: "Metformina", Dosage: "  ", FrequencyHours: 8, StartTime: "08:00:00.000Z"},
			wantErr: true,
			isEmpty: true,
		},
		{
			name:    "frequency too high",
			alarm:   NewAlarm{MedicationName: "Metformina", Dosage: "500mg", FrequencyHours: 25, StartTime: "08:00:00.000Z"},
			wantErr: true,
		},
		{
			name:    "negative frequency",
			alarm:   NewAlarm{MedicationName: "Metformina", Dosage: "500mg", FrequencyHours: -1, StartTime: "08:00:00.000Z"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.alarm.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.isEmpty && !errors.Is(err, ErrIncompleteAlarm) {
				t.Errorf("Validate() error = %v, want ErrIncompleteAlarm", err)
			}
		})
	}
}

func TestStartTimeForAPI(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "08:30", want: "08:30:00.000Z"},
		{in: " 21:05 ", want: "21:05:00.000Z"},
		{in: "25:00", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := StartTimeForAPI(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("StartTimeForAPI(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("StartTimeForAPI(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
