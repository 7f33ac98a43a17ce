package alarms

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mana2/mana-cli/internal/cli"
	"github.com/mana2/mana-cli/internal/logger"
	"github.com/mana2/mana-cli/internal/notifier"
	"github.com/mana2/mana-cli/internal/reminder"
	"github.com/mana2/mana-cli/internal/storage"
)

type WatchCmd struct {
	Interval time.Duration `help:"How often alarms are checked." default:"${watch_interval}"`
	Window   time.Duration `help:"How late a reminder may still be sent." default:"${due_window}"`
	Once     bool          `help:"Check once and exit."`
	DryRun   bool          `help:"Print reminders instead of notifying the tray app." name:"dry-run"`
}

// printSender writes reminders to the command output.
type printSender struct {
	ctx *cli.Context
}

func (p printSender) Notify(_ context.Context, text string) error {
	p.ctx.Printf("[DryRun] %s\n", text)
	return nil
}

func (c *WatchCmd) Run(ctx *cli.Context) error {
	w := &reminder.Watcher{
		Source: ctx.API,
		Now:    ctx.LocalNow,
		Window: c.Window,
	}

	if c.DryRun {
		w.Sender = printSender{ctx: ctx}
		w.Log = reminder.NewMemoryLog()
	} else {
		sender, err := senders(ctx)
		if err != nil {
			return err
		}
		w.Sender = sender
		log, err := c.reminderLog(ctx)
		if err != nil {
			return err
		}
		w.Log = log
	}

	if c.Once {
		res, err := w.Check(context.Background())
		if err != nil {
			return err
		}
		ctx.Printf("✓ %d alarmas revisadas, %d pendientes, %d enviadas", res.Checked, res.Due, res.Sent)
		if res.Failed > 0 {
			ctx.Printf(", %d fallidas", res.Failed)
		}
		ctx.Println()
		return nil
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Watching alarms", "interval", c.Interval, "window", c.Window)
	ctx.Printf("Vigilando alarmas cada %s (Ctrl+C para salir)\n", c.Interval)
	if err := w.Run(runCtx, c.Interval); err != nil && runCtx.Err() == nil {
		return err
	}
	return nil
}

func (c *WatchCmd) reminderLog(ctx *cli.Context) (storage.ReminderLog, error) {
	store, err := ctx.Store()
	if err != nil {
		return nil, fmt.Errorf("failed to open reminder log: %w", err)
	}
	return store, nil
}

// senders is the tray app, plus Web Push when it is configured.
func senders(ctx *cli.Context) (reminder.Sender, error) {
	tray := notifier.New()
	if !ctx.Config.PushEnabled() {
		return tray, nil
	}
	push, err := reminder.NewPushSender(ctx.Config)
	if err != nil {
		return nil, err
	}
	logger.Debug("Web Push reminders enabled", "subscription", ctx.Config.Push.Subscription)
	return reminder.Multi{tray, push}, nil
}
