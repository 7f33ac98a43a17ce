package models

import "errors"

var (
	ErrMedicalBasicInfo   = errors.New("Por favor, completa todos los campos obligatorios de información básica.")
	ErrMedicalDiagnosis   = errors.New("Por favor, ingresa la fecha de diagnóstico de diabetes.")
	ErrMedicalDoctor      = errors.New("Por favor, completa la información del médico asignado.")
	ErrMedicalDiabetes    = errors.New("Por favor, selecciona el tipo de diabetes.")
	ErrMedicalInsurance   = errors.New("Por favor, completa todos los campos de información del seguro.")
	ErrMedicalGlucometer  = errors.New("Por favor, ingresa la marca del glucómetro.")
	ErrMedicalNoReadings  = errors.New("Por favor, añade al menos una medición de glucosa.")
	ErrMedicalBadReadings = errors.New("Por favor, completa todos los campos de la medición de glucosa.")
)

type DiabetesType struct {
	Type               string `json:"type"`
	InsulinProduction  bool   `json:"insulin_production"`
	InsulinAbsorption  bool   `json:"insulin_absorption"`
	PhysicalInactivity bool   `json:"physical_inactivity"`
	Obesity            bool   `json:"obesity"`
	FamilyHistory      bool   `json:"family_history"`
}

type Insurance struct {
	PolicyName           string `json:"policy_name"`
	PolicyNumber         string `json:"policy_number"`
	EPS                  string `json:"eps"`
	MedicalCenter        string `json:"medical_center"`
	AvailableInCartagena bool   `json:"available_in_cartagena"`
}

type GlucometerUsage struct {
	UsesGlucometer bool   `json:"uses_glucometer"`
	Brand          string `json:"brand"`
}

type GlucoseMeasurement struct {
	LevelMaj130Min110 bool    `json:"level_maj_130_min_110"`
	LevelMeasured     float64 `json:"level_measured"`
	Uncontrolled      bool    `json:"uncontrolled"`
	ControlLevel      string  `json:"control_level"`
	MeasurementDate   string  `json:"measurement_date"`
	PeakLevel         string  `json:"peak_level"`
}

type MedicalProfile struct {
	DocumentNumber      string               `json:"document_number"`
	DocumentType        string               `json:"document_type"`
	City                string               `json:"city"`
	Country             string               `json:"country"`
	HeightCM            float64              `json:"height_cm"`
	WeightKG            float64              `json:"weight_kg"`
	HasPrediabetes      bool                 `json:"has_prediabetes"`
	HasDiabetes         bool                 `json:"has_diabetes"`
	DiagnosisDate       string               `json:"diagnosis_date"`
	DoctorName          *string              `json:"doctor_name"`
	DoctorPhone         *string              `json:"doctor_phone"`
	DiabetesType        DiabetesType         `json:"diabetes_type"`
	Insurance           Insurance            `json:"insurance"`
	GlucometerUsage     GlucometerUsage      `json:"glucometer_usage"`
	GlucoseMeasurements []GlucoseMeasurement `json:"glucose_measurements"`
}

// Validate applies the same checks as the registration wizard, in step order.
func (m *MedicalProfile) Validate() error {
	if m.DocumentNumber == "" || m.DocumentType == "" || m.City == "" || m.Country == "" ||
		m.HeightCM <= 0 || m.WeightKG <= 0 {
		return ErrMedicalBasicInfo
	}
	if m.DiagnosisDate == "" {
		return ErrMedicalDiagnosis
	}
	// doctor is optional but must be complete when given
	if (m.DoctorName != nil || m.DoctorPhone != nil) &&
		(m.DoctorName == nil || *m.DoctorName == "" || m.DoctorPhone == nil || *m.DoctorPhone == "") {
		return ErrMedicalDoctor
	}
	if m.DiabetesType.Type == "" {
		return ErrMedicalDiabetes
	}
	in := m.Insurance
	if in.PolicyName == "" || in.PolicyNumber == "" || in.EPS == "" || in.MedicalCenter == "" {
		return ErrMedicalInsurance
	}
	if m.GlucometerUsage.UsesGlucometer {
		if m.GlucometerUsage.Brand == "" {
			return ErrMedicalGlucometer
		}
		if len(m.GlucoseMeasurements) == 0 {
			return ErrMedicalNoReadings
		}
		gm := m.GlucoseMeasurements[0]
		if gm.LevelMeasured <= 0 || gm.MeasurementDate == "" || (gm.Uncontrolled && gm.ControlLevel == "") || gm.PeakLevel == "" {
			return ErrMedicalBadReadings
		}
	}
	return nil
}

// Normalize drops measurements when no glucometer is used.
func (m *MedicalProfile) Normalize() {
	if !m.GlucometerUsage.UsesGlucometer {
		m.GlucoseMeasurements = []GlucoseMeasurement{}
	}
}
