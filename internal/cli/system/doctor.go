package system

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mana2/mana-cli/internal/cli"
	"github.com/mana2/mana-cli/internal/notifier"
	"github.com/mana2/mana-cli/internal/reminder"
	"github.com/mana2/mana-cli/internal/session"
)

// errWarning marks a check whose failure does not fail the run.
type errWarning struct{ error }

type check struct {
	name string
	run  func(ctx *cli.Context) error
	// opensDB marks the check whose failure skips the needsDB ones
	opensDB bool
	needsDB bool
}

var checks = []check{
	{name: "Database reachable", run: checkDBReachable, opensDB: true},
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Backend reachable", run: checkBackend},
	{name: "Chat service reachable", run: checkChatService},
	{name: "Session", run: checkSession},
	{name: "Tray app", run: checkTray},
	{name: "Web Push", run: checkPush},
	{name: "Clock", run: checkClock},
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := true
	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}

		err := c.run(ctx)
		var warn errWarning
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case errors.As(err, &warn):
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", warn.error)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
			if c.opensDB {
				dbReachable = false
			}
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	_, err := ctx.Store()
	return err
}

func checkSchemaVersion(ctx *cli.Context) error {
	store, err := ctx.Store()
	if err != nil {
		return err
	}
	current, latest, err := store.SchemaVersion()
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("schema version %d, expected %d", current, latest)
	}
	return nil
}

func ping(ctx *cli.Context, base string) error {
	c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := ctx.API.Ping(c, base)
	return err
}

func checkBackend(ctx *cli.Context) error {
	return ping(ctx, ctx.Config.API.BaseURL)
}

func checkChatService(ctx *cli.Context) error {
	if err := ping(ctx, ctx.Config.Chat.BaseURL); err != nil {
		return errWarning{fmt.Errorf("the assistant will answer with an apology: %w", err)}
	}
	return nil
}

func checkSession(ctx *cli.Context) error {
	creds, err := ctx.Session.Load()
	if errors.Is(err, session.ErrNoSession) {
		return errWarning{errors.New("not logged in; run 'mana login'")}
	}
	if err != nil {
		return err
	}
	if creds.Expired(ctx.Now()) {
		return errWarning{errors.New("token expired; run 'mana login'")}
	}
	return nil
}

func checkTray(*cli.Context) error {
	if err := notifier.TrayRunning(); err != nil {
		return errWarning{fmt.Errorf("desktop reminders unavailable: %w", err)}
	}
	return nil
}

func checkPush(ctx *cli.Context) error {
	if !ctx.Config.PushEnabled() {
		return errWarning{errors.New("not configured")}
	}
	_, err := reminder.LoadSubscription(ctx.Config.Push.Subscription)
	return err
}

func checkClock(ctx *cli.Context) error {
	now := ctx.LocalNow()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
