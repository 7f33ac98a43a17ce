package system

import (
	"context"
	"errors"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/mana2/mana-cli/internal/cli"
	"github.com/mana2/mana-cli/internal/reminder"
)

// PushKeygenCmd creates a VAPID key pair for Web Push reminders.
type PushKeygenCmd struct{}

func (c *PushKeygenCmd) Run(ctx *cli.Context) error {
	priv, pub, err := webpush.GenerateVAPIDKeys()
	if err != nil {
		return err
	}
	ctx.Println("✓ Claves VAPID generadas")
	ctx.Printf("MANA_PUSH_VAPID_PUBLIC_KEY=%s\n", pub)
	ctx.Printf("MANA_PUSH_VAPID_PRIVATE_KEY=%s\n", priv)
	ctx.Println("ℹ Usa la clave pública al suscribir el navegador; guarda la privada en secreto.")
	return nil
}

// PushTestCmd sends one notification to the configured subscription.
type PushTestCmd struct {
	Message string `arg:"" optional:"" help:"Text to send." default:"Prueba de recordatorios MANA2"`
}

func (c *PushTestCmd) Run(ctx *cli.Context) error {
	if !ctx.Config.PushEnabled() {
		return errors.New("web push is not configured: set MANA_PUSH_SUBSCRIPTION and the VAPID keys")
	}
	sender, err := reminder.NewPushSender(ctx.Config)
	if err != nil {
		return err
	}
	if err := sender.Notify(context.Background(), c.Message); err != nil {
		return err
	}
	ctx.Println("✓ Notificación enviada")
	return nil
}
