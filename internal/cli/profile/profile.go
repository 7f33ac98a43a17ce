package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mana2/mana-cli/internal/cli"
	"github.com/mana2/mana-cli/internal/models"
)

type ShowCmd struct{}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	user, err := ctx.API.Me(context.Background())
	if err != nil {
		return err
	}

	ctx.Println(cli.HeaderStyle.Render(user.DisplayName()))
	ctx.Printf("  Correo:      %s\n", user.Email)
	if user.Age != nil {
		ctx.Printf("  Edad:        %d\n", *user.Age)
	}
	if user.Gender != "" {
		ctx.Printf("  Género:      %s\n", user.Gender)
	}
	conds := user.Conditions()
	if len(conds) == 0 {
		ctx.Println("  Condiciones: ninguna")
	} else {
		ctx.Printf("  Condiciones: %s\n", strings.Join(conds, ", "))
	}
	if user.Allergies != "" {
		ctx.Printf("  Alergias:    %s\n", user.Allergies)
	}
	if user.IsSuperuser {
		ctx.Println("  Rol:         administrador")
	}
	return nil
}

// EditCmd updates the basic profile and, in the same run, the health flags.
type EditCmd struct {
	FullName     *string `help:"New full name." name:"name"`
	Age          *int    `help:"New age (must be over 18)."`
	Gender       *string `help:"New gender."`
	Diabetes     *bool   `help:"Set diabetes." negatable:""`
	Hypertension *bool   `help:"Set hypertension." negatable:""`
	Obesity      *bool   `help:"Set obesity." negatable:""`
	Allergies    *string `help:"Replace allergies."`
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	basic := models.ProfileUpdate{FullName: c.FullName, Age: c.Age, Gender: c.Gender}
	health := models.HealthUpdate{
		Diabetes:     c.Diabetes,
		Hypertension: c.Hypertension,
		Obesity:      c.Obesity,
		Allergies:    c.Allergies,
	}
	if basic.Empty() && health.Empty() {
		ctx.Println("ℹ Nada que actualizar")
		return nil
	}

	if !basic.Empty() {
		if _, err := ctx.API.UpdateMe(bg, basic); err != nil {
			return err
		}
		ctx.Println("✓ Información básica actualizada")
	}
	if !health.Empty() {
		if _, err := ctx.API.PatchHealth(bg, health); err != nil {
			return err
		}
		ctx.Println("✓ Información de salud actualizada")
	}
	return nil
}

type HealthShowCmd struct{}

func (c *HealthShowCmd) Run(ctx *cli.Context) error {
	info, err := ctx.API.Health(context.Background())
	if err != nil {
		return err
	}
	printHealth(ctx, info)
	return nil
}

// HealthSetCmd replaces the whole health record.
type HealthSetCmd struct {
	Diabetes     bool   `help:"Has diabetes."`
	Hypertension bool   `help:"Has hypertension."`
	Obesity      bool   `help:"Has obesity."`
	Allergies    string `help:"Food allergies."`
}

func (c *HealthSetCmd) Run(ctx *cli.Context) error {
	info, err := ctx.API.UpdateHealth(context.Background(), models.HealthInfo{
		Diabetes:     c.Diabetes,
		Hypertension: c.Hypertension,
		Obesity:      c.Obesity,
		Allergies:    c.Allergies,
	})
	if err != nil {
		return err
	}
	ctx.Println("✓ Información de salud guardada")
	printHealth(ctx, info)
	return nil
}

func printHealth(ctx *cli.Context, info *models.HealthInfo) {
	ctx.Printf("  Diabetes:     %s\n", cli.YesNo(info.Diabetes))
	ctx.Printf("  Hipertensión: %s\n", cli.YesNo(info.Hypertension))
	ctx.Printf("  Obesidad:     %s\n", cli.YesNo(info.Obesity))
	allergies := info.Allergies
	if allergies == "" {
		allergies = "ninguna"
	}
	ctx.Printf("  Alergias:     %s\n", allergies)
}

type MedicalShowCmd struct{}

func (c *MedicalShowCmd) Run(ctx *cli.Context) error {
	p, err := ctx.API.MedicalProfile(context.Background())
	if err != nil {
		return err
	}

	ctx.Println(cli.HeaderStyle.Render("Perfil médico"))
	ctx.Printf("  Documento:    %s %s\n", p.DocumentType, p.DocumentNumber)
	ctx.Printf("  Ubicación:    %s, %s\n", p.City, p.Country)
	ctx.Printf("  Talla/Peso:   %.0f cm / %.1f kg\n", p.HeightCM, p.WeightKG)
	ctx.Printf("  Prediabetes:  %s\n", cli.YesNo(p.HasPrediabetes))
	ctx.Printf("  Diabetes:     %s", cli.YesNo(p.HasDiabetes))
	if p.DiabetesType.Type != "" {
		ctx.Printf(" (%s)", p.DiabetesType.Type)
	}
	ctx.Println()
	if p.DiagnosisDate != "" {
		ctx.Printf("  Diagnóstico:  %s\n", p.DiagnosisDate)
	}
	if p.DoctorName != nil && *p.DoctorName != "" {
		phone := ""
		if p.DoctorPhone != nil {
			phone = *p.DoctorPhone
		}
		ctx.Printf("  Médico:       %s %s\n", *p.DoctorName, phone)
	}
	ctx.Printf("  Seguro:       %s (%s), %s\n", p.Insurance.PolicyName, p.Insurance.EPS, p.Insurance.MedicalCenter)
	if p.GlucometerUsage.UsesGlucometer {
		ctx.Printf("  Glucómetro:   %s\n", p.GlucometerUsage.Brand)
		for _, m := range p.GlucoseMeasurements {
			ctx.Printf("    %s  %.0f mg/dL  pico: %s\n", m.MeasurementDate, m.LevelMeasured, m.PeakLevel)
		}
	}
	return nil
}

// MedicalCreateCmd submits a medical profile written as a JSON document
// with the same fields the API returns.
type MedicalCreateCmd struct {
	File string `arg:"" help:"JSON file with the medical profile." type:"existingfile"`
}

func (c *MedicalCreateCmd) Run(ctx *cli.Context) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.File, err)
	}
	var p models.MedicalProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("failed to parse %s: %w", c.File, err)
	}

	if _, err := ctx.API.CreateMedicalProfile(context.Background(), p); err != nil {
		return err
	}
	ctx.Println("✓ Perfil médico guardado")
	return nil
}
