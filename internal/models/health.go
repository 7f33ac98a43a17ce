package models

type HealthInfo struct {
	Diabetes     bool   `json:"diabetes"`
	Hypertension bool   `json:"hypertension"`
	Obesity      bool   `json:"obesity"`
	Allergies    string `json:"allergies"`
}

// HealthUpdate is a partial health update; nil fields are left unchanged.
type HealthUpdate struct {
	Diabetes     *bool   `json:"diabetes,omitempty"`
	Hypertension *bool   `json:"hypertension,omitempty"`
	Obesity      *bool   `json:"obesity,omitempty"`
	Allergies    *string `json:"allergies,omitempty"`
}

// Empty reports whether the update carries no fields
func (h *HealthUpdate) Empty() bool {
	return h.Diabetes == nil && h.Hypertension == nil && h.Obesity == nil && h.Allergies == nil
}

// Apply returns info with the update's set fields applied
func (h *HealthUpdate) Apply(info HealthInfo) HealthInfo {
	if h.Diabetes != nil {
		info.Diabetes = *h.Diabetes
	}
	if h.Hypertension != nil {
		info.Hypertension = *h.Hypertension
	}
	if h.Obesity != nil {
		info.Obesity = *h.Obesity
	}
	if h.Allergies != nil {
		info.Allergies = *h.Allergies
	}
	return info
}
