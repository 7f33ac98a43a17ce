package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/mana2/mana-cli/internal/constants"
	"github.com/mana2/mana-cli/internal/utils"
)

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s es obligatorio", field)
		}
		return nil
	}
}

// NewLoginForm prompts for the fields still empty.
func NewLoginForm(email, password *string) *huh.Form {
	var fields []huh.Field
	if *email == "" {
		fields = append(fields, huh.NewInput().
			Title("Correo electrónico").
			Value(email).
			Validate(required("el correo electrónico")))
	}
	if *password == "" {
		fields = append(fields, huh.NewInput().
			Title("Contraseña").
			EchoMode(huh.EchoModePassword).
			Value(password).
			Validate(required("la contraseña")))
	}
	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeDracula())
}

// AlarmFormModel holds the raw text of the new-alarm form.
type AlarmFormModel struct {
	MedicationName string
	Dosage         string
	FrequencyHours string
	StartTime      string
}

// ValidateFrequency accepts whole hours within the backend's range.
func ValidateFrequency(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("la frecuencia debe ser un número de horas")
	}
	if n < constants.MinFrequencyHours || n > constants.MaxFrequencyHours {
		return fmt.Errorf("la frecuencia debe estar entre %d y %d horas", constants.MinFrequencyHours, constants.MaxFrequencyHours)
	}
	return nil
}

func NewAlarmForm(fm *AlarmFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Medicamento").
				Placeholder("Ej: Metformina").
				Value(&fm.MedicationName).
				Validate(required("el medicamento")),
			huh.NewInput().
				Title("Dosis").
				Placeholder("Ej: 500mg").
				Value(&fm.Dosage).
				Validate(required("la dosis")),
			huh.NewInput().
				Title("Frecuencia (horas)").
				Value(&fm.FrequencyHours).
				Validate(ValidateFrequency),
			huh.NewInput().
				Title("Hora de inicio (HH:MM)").
				Value(&fm.StartTime).
				Validate(func(s string) error {
					if !utils.ValidateTimeFormat(strings.TrimSpace(s)) {
						return errors.New("usa el formato HH:MM")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewConfirmForm asks a yes/no question.
func NewConfirmForm(title string, confirmed *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Sí").
				Negative("No").
				Value(confirmed),
		),
	).WithTheme(huh.ThemeDracula())
}
