package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mana2/mana-cli/internal/alarm"
	"github.com/mana2/mana-cli/internal/api"
	"github.com/mana2/mana-cli/internal/chat"
	"github.com/mana2/mana-cli/internal/config"
	"github.com/mana2/mana-cli/internal/constants"
	"github.com/mana2/mana-cli/internal/events"
	"github.com/mana2/mana-cli/internal/logger"
	"github.com/mana2/mana-cli/internal/models"
	"github.com/mana2/mana-cli/internal/session"
	"github.com/mana2/mana-cli/internal/storage"
)

type Options struct {
	Config  *config.Config
	Session session.Store
	// DB is a SQLite path or a postgres:// URL
	DB string
	// DBFromKeyring marks DB as read from the OS keyring
	DBFromKeyring bool
	Out           io.Writer
	HTTP          *http.Client
	Now           func() time.Time
}

// Context is shared by every command.
type Context struct {
	Config    *config.Config
	API       *api.Client
	Session   session.Store
	Events    *events.Bus
	Chat      *chat.Cache
	Assistant *chat.Assistant
	Out       io.Writer
	Now       func() time.Time

	db        string
	dbTrusted bool
	storeOnce sync.Once
	store     storage.Provider
	storeErr  error
}

func NewContext(opts Options) *Context {
	c := &Context{
		Config:    opts.Config,
		Session:   opts.Session,
		Events:    events.New(),
		Out:       opts.Out,
		Now:       opts.Now,
		db:        opts.DB,
		dbTrusted: opts.DBFromKeyring,
	}
	if c.Out == nil {
		c.Out = os.Stdout
	}
	if c.Now == nil {
		c.Now = time.Now
	}

	apiOpts := []api.Option{api.WithClock(c.Now)}
	if opts.HTTP != nil {
		apiOpts = append(apiOpts, api.WithHTTPClient(opts.HTTP))
	}
	c.API = api.New(c.Config, c.Session, c.Events, apiOpts...)
	c.Chat = chat.NewCache(transcripts{ctx: c})
	c.Assistant = chat.NewAssistant(c.API, c.Chat, c.Events)
	return c
}

// Store opens the local database on first use.
func (c *Context) Store() (storage.Provider, error) {
	c.storeOnce.Do(func() {
		newStore := storage.New
		if c.dbTrusted {
			newStore = storage.NewFromKeyring
		}
		p, err := newStore(c.db)
		if err != nil {
			c.storeErr = err
			return
		}
		if err := storage.Open(p); err != nil {
			c.storeErr = fmt.Errorf("failed to open storage: %w", err)
			return
		}
		c.store = p
	})
	return c.store, c.storeErr
}

// Close releases the database and detaches the assistant.
func (c *Context) Close() error {
	c.Assistant.Close()
	if c.store != nil {
		return c.store.Close()
	}
	return nil
}

// LocalNow is the current time in the configured display timezone.
func (c *Context) LocalNow() time.Time {
	return c.Now().In(c.Config.Location())
}

// UserID returns the logged-in user's id, asking the backend when the
// session does not carry it.
func (c *Context) UserID(ctx context.Context) (int, error) {
	creds, err := c.Session.Load()
	if err != nil {
		return 0, api.ErrNotAuthenticated
	}
	if creds.UserID > 0 {
		return creds.UserID, nil
	}
	me, err := c.API.Me(ctx)
	if err != nil {
		return 0, err
	}
	creds.UserID = me.ID
	if err := c.Session.Save(creds); err != nil {
		logger.Warn("Failed to store user id", "error", err)
	}
	return me.ID, nil
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// transcripts adapts the lazily opened store to chat.Store.
type transcripts struct {
	ctx *Context
}

func (t transcripts) LoadTranscript(ctx context.Context, userID int) (models.ChatState, bool, error) {
	s, err := t.ctx.Store()
	if err != nil {
		return models.ChatState{}, false, err
	}
	return s.LoadTranscript(ctx, userID)
}

func (t transcripts) SaveTranscript(ctx context.Context, userID int, state models.ChatState) error {
	s, err := t.ctx.Store()
	if err != nil {
		return err
	}
	return s.SaveTranscript(ctx, userID, state)
}

func (t transcripts) DeleteTranscript(ctx context.Context, userID int) error {
	s, err := t.ctx.Store()
	if err != nil {
		return err
	}
	return s.DeleteTranscript(ctx, userID)
}

var (
	pendingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	pastStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	upcomingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	HeaderStyle   = lipgloss.NewStyle().Bold(true)
)

// RenderStatus colours an alarm status label.
func RenderStatus(status constants.AlarmStatus) string {
	switch status {
	case constants.AlarmStatusPendingToday:
		return pendingStyle.Render(string(status))
	case constants.AlarmStatusPendingTodayPast, constants.AlarmStatusPast:
		return pastStyle.Render(string(status))
	case constants.AlarmStatusUpcoming:
		return upcomingStyle.Render(string(status))
	default:
		return errorStyle.Render(string(status))
	}
}

// RenderAlarm is the one-line summary used by the alarm listing.
func RenderAlarm(a models.Alarm, now time.Time) string {
	d := alarm.ResolveAlarm(&a, now)
	return fmt.Sprintf("%-6d %-24s %-12s %2dh desde %-8s  %-16s %s",
		a.ID, Truncate(a.MedicationName, 24), Truncate(a.Dosage, 12), a.FrequencyHours,
		alarm.FormatTimeForDisplay(a.StartTime), d.FormattedTime, RenderStatus(d.Status))
}

// Truncate shortens s to n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

// YesNo renders a boolean the way the profile views do.
func YesNo(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}
