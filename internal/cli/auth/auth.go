package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/mana2/mana-cli/internal/api"
	"github.com/mana2/mana-cli/internal/cli"
	"github.com/mana2/mana-cli/internal/models"
)

type LoginCmd struct {
	Email    string `help:"Account email." short:"e"`
	Password string `help:"Account password. Prompted when omitted." env:"MANA_PASSWORD"`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	if c.Email == "" || c.Password == "" {
		if err := cli.NewLoginForm(&c.Email, &c.Password).Run(); err != nil {
			return err
		}
	}

	if _, err := ctx.API.Login(context.Background(), c.Email, c.Password); err != nil {
		return err
	}

	ctx.Println("✓ Sesión iniciada como", c.Email)
	return nil
}

type RegisterCmd struct {
	Email        string `help:"Account email." required:""`
	Password     string `help:"Account password." required:"" env:"MANA_PASSWORD"`
	FullName     string `help:"Full name." name:"name"`
	Age          int    `help:"Age in years (must be over 18)."`
	Gender       string `help:"Gender."`
	Diabetes     bool   `help:"I have diabetes."`
	Hypertension bool   `help:"I have hypertension."`
	Obesity      bool   `help:"I have obesity."`
	Allergies    string `help:"Food allergies."`
	AcceptTerms  bool   `help:"Accept the terms and conditions and the data usage authorization." name:"accept-terms"`
}

func (c *RegisterCmd) Request() models.RegisterRequest {
	req := models.RegisterRequest{
		Email:            c.Email,
		Password:         c.Password,
		FullName:         c.FullName,
		Gender:           c.Gender,
		Diabetes:         c.Diabetes,
		Hypertension:     c.Hypertension,
		Obesity:          c.Obesity,
		Allergies:        c.Allergies,
		TermsAccepted:    c.AcceptTerms,
		DataUsageConsent: c.AcceptTerms,
	}
	if c.Age > 0 {
		age := c.Age
		req.Age = &age
	}
	return req
}

func (c *RegisterCmd) Run(ctx *cli.Context) error {
	user, err := ctx.API.Register(context.Background(), c.Request())
	if err != nil {
		if user != nil {
			ctx.Printf("✓ Cuenta creada para %s\n", user.Email)
			return fmt.Errorf("inicia sesión con 'mana login': %w", err)
		}
		return err
	}

	ctx.Printf("✓ Cuenta creada y sesión iniciada como %s\n", user.Email)
	if c.Diabetes {
		ctx.Println("  Completa tu perfil médico para recibir mejores recomendaciones.")
	}
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	if err := ctx.API.Logout(context.Background()); err != nil {
		if errors.Is(err, api.ErrNotAuthenticated) {
			ctx.Println("ℹ No hay una sesión activa")
			return nil
		}
		return err
	}
	ctx.Println("✓ Sesión cerrada")
	return nil
}
