package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mana2/mana-cli/internal/cli/clitest"
	"github.com/mana2/mana-cli/internal/constants"
	"github.com/mana2/mana-cli/internal/models"
)

func chatServer(t *testing.T, reply string, status int) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/me", func(w http.ResponseWriter, r *http.Request) {
		clitest.JSON(w, http.StatusOK, models.User{ID: 7, Email: "ana@example.com", FullName: "Ana"})
	})
	mux.HandleFunc("POST /chat", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		var req models.ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 7, req.UserID)
		clitest.JSON(w, status, models.ChatResponse{Response: reply})
	})
	return mux
}

func TestSendCmd(t *testing.T) {
	env := clitest.New(t, chatServer(t, "Prueba el **mote de queso**.", http.StatusOK), clitest.LoggedIn)

	require.NoError(t, (&SendCmd{Message: []string{"¿qué", "me", "recomiendas?"}}).Run(env.Ctx))
	assert.Contains(t, env.Output(), "Prueba el mote de queso.")

	st := env.Ctx.Chat.Get(context.Background(), 7)
	require.Len(t, st.Messages, 3)
	assert.True(t, st.HasWelcomeMessage)
	assert.Equal(t, "¿qué me recomiendas?", st.Messages[1].Text)
	assert.False(t, st.Messages[1].IsBot)
	assert.True(t, st.Messages[2].IsBot)
}

func TestSendCmd_BackendFailure(t *testing.T) {
	env := clitest.New(t, chatServer(t, "", http.StatusInternalServerError), clitest.LoggedIn)

	err := (&SendCmd{Message: []string{"hola"}}).Run(env.Ctx)
	require.Error(t, err)
	assert.Contains(t, env.Output(), constants.ChatErrorReply)
}

func TestHistoryCmd_ShowsWelcomeAndLimits(t *testing.T) {
	env := clitest.New(t, chatServer(t, "Claro.", http.StatusOK), clitest.LoggedIn)

	require.NoError(t, (&HistoryCmd{}).Run(env.Ctx))
	assert.Contains(t, env.Output(), constants.ChatAssistantName)

	require.NoError(t, (&SendCmd{Message: []string{"hola"}}).Run(env.Ctx))
	env.Out.Reset()
	require.NoError(t, (&HistoryCmd{Last: 1}).Run(env.Ctx))
	out := env.Output()
	assert.Contains(t, out, "Asistente")
	assert.Contains(t, out, "Claro.")
	assert.NotContains(t, out, "Tú")
}

func TestClearCmd(t *testing.T) {
	env := clitest.New(t, chatServer(t, "Claro.", http.StatusOK), clitest.LoggedIn)

	require.NoError(t, (&SendCmd{Message: []string{"hola"}}).Run(env.Ctx))
	require.NoError(t, (&ClearCmd{}).Run(env.Ctx))

	assert.Empty(t, env.Ctx.Chat.Get(context.Background(), 7).Messages)
	assert.Contains(t, env.Output(), "✓ Conversación eliminada")
}

func TestSendCmd_NotLoggedIn(t *testing.T) {
	env := clitest.New(t, chatServer(t, "x", http.StatusOK), nil)

	assert.Error(t, (&SendCmd{Message: []string{"hola"}}).Run(env.Ctx))
}
