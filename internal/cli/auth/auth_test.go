package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mana2/mana-cli/internal/api"
	"github.com/mana2/mana-cli/internal/cli/clitest"
	"github.com/mana2/mana-cli/internal/models"
)

func TestLoginCmd_WithFlags(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		clitest.JSON(w, http.StatusOK, models.Token{AccessToken: "new", TokenType: "bearer"})
	})
	mux.HandleFunc("GET /api/v1/me", func(w http.ResponseWriter, r *http.Request) {
		clitest.JSON(w, http.StatusOK, models.User{ID: 11, Email: "ana@example.com"})
	})
	env := clitest.New(t, mux, nil)

	require.NoError(t, (&LoginCmd{Email: "ana@example.com", Password: "secret"}).Run(env.Ctx))

	creds, err := env.Session.Load()
	require.NoError(t, err)
	assert.Equal(t, "new", creds.AccessToken)
	assert.Equal(t, 11, creds.UserID)
	assert.Contains(t, env.Output(), "✓ Sesión iniciada como ana@example.com")
}

func TestLoginCmd_InvalidCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		clitest.JSON(w, http.StatusUnauthorized, map[string]string{"detail": "Incorrect email or password"})
	})
	env := clitest.New(t, mux, nil)

	err := (&LoginCmd{Email: "ana@example.com", Password: "bad"}).Run(env.Ctx)
	assert.ErrorIs(t, err, api.ErrInvalidCredentials)
	_, loadErr := env.Session.Load()
	assert.Error(t, loadErr)
}

func TestRegisterCmd_Request(t *testing.T) {
	cmd := &RegisterCmd{Email: "a@b.co", Password: "pw", Age: 30, Diabetes: true, AcceptTerms: true}
	req := cmd.Request()

	require.NotNil(t, req.Age)
	assert.Equal(t, 30, *req.Age)
	assert.True(t, req.TermsAccepted)
	assert.True(t, req.DataUsageConsent)
	assert.NoError(t, req.Validate())

	noAge := (&RegisterCmd{Email: "a@b.co", Password: "pw"}).Request()
	assert.Nil(t, noAge.Age)
	assert.ErrorIs(t, noAge.Validate(), models.ErrTermsNotAccepted)
}

func TestRegisterCmd_CreatesAndLogsIn(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.Diabetes)
		clitest.JSON(w, http.StatusCreated, models.User{ID: 3, Email: req.Email, Diabetes: true})
	})
	mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		clitest.JSON(w, http.StatusOK, models.Token{AccessToken: "reg", TokenType: "bearer"})
	})
	env := clitest.New(t, mux, nil)

	cmd := &RegisterCmd{Email: "eva@example.com", Password: "pw", Age: 40, Diabetes: true, AcceptTerms: true}
	require.NoError(t, cmd.Run(env.Ctx))

	creds, err := env.Session.Load()
	require.NoError(t, err)
	assert.Equal(t, 3, creds.UserID)
	out := env.Output()
	assert.Contains(t, out, "✓ Cuenta creada y sesión iniciada como eva@example.com")
	assert.Contains(t, out, "perfil médico")
}

func TestRegisterCmd_UnderageRejectedLocally(t *testing.T) {
	env := clitest.New(t, http.NotFoundHandler(), nil)

	err := (&RegisterCmd{Email: "a@b.co", Password: "pw", Age: 17, AcceptTerms: true}).Run(env.Ctx)
	assert.ErrorIs(t, err, models.ErrUnderage)
}

func TestLogoutCmd_ClearsSessionAndTranscript(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	env := clitest.New(t, mux, clitest.LoggedIn)

	ctx := context.Background()
	st := env.Ctx.Chat.Get(ctx, 7)
	st.Messages = append(st.Messages, models.ChatMessage{ID: "m1", Text: "hola"})
	st.HasWelcomeMessage = true
	require.NoError(t, env.Ctx.Chat.Save(ctx, 7, st))

	require.NoError(t, (&LogoutCmd{}).Run(env.Ctx))

	_, err := env.Session.Load()
	assert.Error(t, err)
	assert.Empty(t, env.Ctx.Chat.Get(ctx, 7).Messages)
	assert.Contains(t, env.Output(), "✓ Sesión cerrada")
}

func TestLogoutCmd_NoSession(t *testing.T) {
	env := clitest.New(t, http.NotFoundHandler(), nil)

	require.NoError(t, (&LogoutCmd{}).Run(env.Ctx))
	assert.Contains(t, env.Output(), "No hay una sesión activa")
}
