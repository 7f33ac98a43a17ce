// Package clitest builds command contexts against a fake backend.
package clitest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/mana2/mana-cli/internal/cli"
	"github.com/mana2/mana-cli/internal/config"
	"github.com/mana2/mana-cli/internal/session"
)

// Now is the fixed clock of every test context: Monday 10 March 2025, 07:00 UTC.
var Now = time.Date(2025, time.March, 10, 7, 0, 0, 0, time.UTC)

// LoggedIn is a stored session for user 7.
var LoggedIn = &session.Credentials{AccessToken: "tok", TokenType: "bearer", UserID: 7}

type Env struct {
	Ctx     *cli.Context
	Out     *bytes.Buffer
	Session *session.Memory
}

// Output returns everything the commands printed, without styling.
func (e *Env) Output() string {
	return ansi.Strip(e.Out.String())
}

// New points a context at handler, with creds as the stored session and a
// SQLite store in a temp dir.
func New(t *testing.T, handler http.Handler, creds *session.Credentials) *Env {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	t.Setenv("MANA_API_BASE_URL", srv.URL)
	t.Setenv("MANA_AI_CHAT_BASE_URL", srv.URL)
	t.Setenv("MANA_TIMEZONE", "UTC")
	t.Setenv("MANA_CACHE_TTL", "1m")
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}

	out := &bytes.Buffer{}
	store := session.NewMemory(creds)
	ctx := cli.NewContext(cli.Options{
		Config:  cfg,
		Session: store,
		DB:      filepath.Join(t.TempDir(), "mana.db"),
		Out:     out,
		Now:     func() time.Time { return Now },
	})
	t.Cleanup(func() { _ = ctx.Close() })

	return &Env{Ctx: ctx, Out: out, Session: store}
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
