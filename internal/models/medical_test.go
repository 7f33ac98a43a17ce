package models

import (
	"errors"
	"testing"
)

func strPtr(s string) *string { return &s }

func validMedicalProfile() MedicalProfile {
	return MedicalProfile{
		DocumentNumber: "1047",
		DocumentType:   "CC",
		City:           "Cartagena",
		Country:        "Colombia",
		HeightCM:       170,
		WeightKG:       72,
		HasDiabetes:    true,
		DiagnosisDate:  "2020-05-01",
		DiabetesType:   DiabetesType{Type: "tipo 2"},
		Insurance: Insurance{
			PolicyName:    "Plan",
			PolicyNumber:  "P-1",
			EPS:           "Sura",
			MedicalCenter: "Centro",
		},
	}
}

func TestMedicalProfile_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*MedicalProfile)
		wantErr error
	}{
		{"valid", func(*MedicalProfile) {}, nil},
		{"zero height", func(m *MedicalProfile) { m.HeightCM = 0 }, ErrMedicalBasicInfo},
		{"no diagnosis date", func(m *MedicalProfile) { m.DiagnosisDate = "" }, ErrMedicalDiagnosis},
		{"doctor without phone", func(m *MedicalProfile) { m.DoctorName = strPtr("Dr. Pérez") }, ErrMedicalDoctor},
		{"doctor complete", func(m *MedicalProfile) {
			m.DoctorName = strPtr("Dr. Pérez")
			m.DoctorPhone = strPtr("300")
		}, nil},
		{"no diabetes type", func(m *MedicalProfile) { m.DiabetesType.Type = "" }, ErrMedicalDiabetes},
		{"missing eps", func(m *MedicalProfile) { m.Insurance.EPS = "" }, ErrMedicalInsurance},
		{"glucometer without brand", func(m *MedicalProfile) { m.GlucometerUsage.UsesGlucometer = true }, ErrMedicalGlucometer},
		{"glucometer without readings", func(m *MedicalProfile) {
			m.GlucometerUsage = GlucometerUsage{UsesGlucometer: true, Brand: "Accu-Chek"}
		}, ErrMedicalNoReadings},
		{"uncontrolled without level", func(m *MedicalProfile) {
			m.GlucometerUsage = GlucometerUsage{UsesGlucometer: true, Brand: "Accu-Chek"}
			m.GlucoseMeasurements = []GlucoseMeasurement{{
				LevelMeasured: 140, MeasurementDate: "2024-01-01", Uncontrolled: true, PeakLevel: "alto",
			}}
		}, ErrMedicalBadReadings},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMedicalProfile()
			tt.mutate(&m)
			if err := m.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestMedicalProfile_Normalize(t *testing.T) {
	m := validMedicalProfile()
	m.GlucoseMeasurements = []GlucoseMeasurement{{LevelMeasured: 120}}
	m.Normalize()
	if m.GlucoseMeasurements == nil || len(m.GlucoseMeasurements) != 0 {
		t.Errorf("Normalize() kept measurements: %+v", m.GlucoseMeasurements)
	}
}

func TestChatState_Clone(t *testing.T) {
	s := ChatState{Messages: []ChatMessage{{ID: "1", Suggestions: []string{"a"}}}}
	c := s.Clone()
	c.Messages[0].Suggestions[0] = "b"
	c.Messages[0].Text = "changed"
	if s.Messages[0].Suggestions[0] != "a" || s.Messages[0].Text != "" {
		t.Error("Clone() shares memory with the original")
	}
}
