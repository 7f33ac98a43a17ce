package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mana2/mana-cli/internal/constants"
	"github.com/mana2/mana-cli/internal/events"
	"github.com/mana2/mana-cli/internal/logger"
	"github.com/mana2/mana-cli/internal/models"
)

const welcomeMessageID = "welcome"

var (
	ErrEmptyMessage = errors.New("message cannot be empty")
	ErrNotStarted   = errors.New("chat session not started")
)

// Backend is the part of the API client the assistant needs.
type Backend interface {
	Me(ctx context.Context) (*models.User, error)
	Chat(ctx context.Context, userID int, message string) (string, error)
}

// Assistant is one user's conversation with MarIA.
type Assistant struct {
	backend Backend
	cache   *Cache
	now     func() time.Time

	mu   sync.Mutex
	user *models.User

	unsubscribe []func()
}

// NewAssistant wires the assistant to bus: a login forgets the current
// user, and a logout also clears the departing user's transcript.
func NewAssistant(backend Backend, cache *Cache, bus *events.Bus) *Assistant {
	a := &Assistant{backend: backend, cache: cache, now: time.Now}
	if bus != nil {
		a.unsubscribe = append(a.unsubscribe,
			bus.OnLoggedIn(a.handleLoggedIn),
			bus.OnLoggedOut(a.handleLoggedOut),
		)
	}
	return a
}

// Close detaches the assistant from the event bus.
func (a *Assistant) Close() {
	for _, fn := range a.unsubscribe {
		fn()
	}
	a.unsubscribe = nil
}

func (a *Assistant) handleLoggedIn(events.UserLoggedIn) {
	logger.Debug("Chat reset after login")
	a.setUser(nil)
}

func (a *Assistant) handleLoggedOut(ev events.UserLoggedOut) {
	userID := ev.UserID
	if u := a.User(); u != nil && userID == 0 {
		userID = u.ID
	}
	a.setUser(nil)
	if userID == 0 {
		return
	}
	if err := a.cache.Clear(context.Background(), userID); err != nil {
		logger.Warn("Failed to clear chat transcript on logout", "user_id", userID, "error", err)
		return
	}
	logger.Debug("Chat transcript cleared", "user_id", userID, "reason", ev.Reason)
}

func (a *Assistant) setUser(u *models.User) {
	a.mu.Lock()
	a.user = u
	a.mu.Unlock()
}

// User returns the user the session was started for, or nil.
func (a *Assistant) User() *models.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user
}

// Start loads the current user, restores their transcript and adds the
// welcome message the first time.
func (a *Assistant) Start(ctx context.Context) (models.ChatState, error) {
	user, err := a.backend.Me(ctx)
	if err != nil {
		return models.ChatState{}, err
	}
	a.setUser(user)

	st, err := a.cache.Update(ctx, user.ID, func(st *models.ChatState) {
		if st.HasWelcomeMessage {
			return
		}
		st.Messages = []models.ChatMessage{{
			ID:          welcomeMessageID,
			Text:        WelcomeText(user),
			IsBot:       true,
			Timestamp:   a.now(),
			Suggestions: append([]string(nil), constants.ChatWelcomeSuggestions...),
		}}
		st.HasWelcomeMessage = true
	})
	if err != nil {
		logger.Warn("Chat transcript not persisted", "user_id", user.ID, "error", err)
	}
	return st, nil
}

// State returns the current transcript.
func (a *Assistant) State(ctx context.Context) (models.ChatState, error) {
	user := a.User()
	if user == nil {
		return models.ChatState{}, ErrNotStarted
	}
	return a.cache.Get(ctx, user.ID), nil
}

// SetWindow records whether the chat window is open and minimized.
func (a *Assistant) SetWindow(ctx context.Context, open, minimized bool) error {
	user := a.User()
	if user == nil {
		return ErrNotStarted
	}
	_, err := a.cache.Update(ctx, user.ID, func(st *models.ChatState) {
		st.IsOpen = open
		st.IsMinimized = minimized
	})
	return err
}

// Send posts text as the user's message and appends the reply. On failure
// an apology is appended instead and the error is returned alongside it.
func (a *Assistant) Send(ctx context.Context, text string) (models.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return models.ChatMessage{}, ErrEmptyMessage
	}
	user := a.User()
	if user == nil {
		return models.ChatMessage{}, ErrNotStarted
	}

	if _, err := a.append(ctx, user.ID, models.ChatMessage{Text: text}); err != nil {
		logger.Warn("Chat transcript not persisted", "user_id", user.ID, "error", err)
	}

	reply, err := a.backend.Chat(ctx, user.ID, text)
	if err != nil {
		logger.Warn("Chat request failed", "user_id", user.ID, "error", err)
		msg, saveErr := a.append(ctx, user.ID, models.ChatMessage{IsBot: true, Text: constants.ChatErrorReply})
		if saveErr != nil {
			logger.Warn("Chat transcript not persisted", "user_id", user.ID, "error", saveErr)
		}
		return msg, fmt.Errorf("chat: %w", err)
	}

	msg, err := a.append(ctx, user.ID, models.ChatMessage{
		IsBot:       true,
		Text:        reply,
		Suggestions: append([]string(nil), constants.ChatReplySuggestions...),
	})
	if err != nil {
		logger.Warn("Chat transcript not persisted", "user_id", user.ID, "error", err)
	}
	return msg, nil
}

// Reset deletes the current user's transcript; the next Start greets again.
func (a *Assistant) Reset(ctx context.Context) error {
	user := a.User()
	if user == nil {
		return ErrNotStarted
	}
	return a.cache.Clear(ctx, user.ID)
}

func (a *Assistant) append(ctx context.Context, userID int, msg models.ChatMessage) (models.ChatMessage, error) {
	msg.ID = uuid.NewString()
	msg.Timestamp = a.now()
	_, err := a.cache.Update(ctx, userID, func(st *models.ChatState) {
		st.Messages = append(st.Messages, msg)
	})
	return msg, err
}

// QuickActions lists the canned prompts offered next to the input.
func QuickActions() []string {
	return append([]string(nil), constants.ChatQuickActions...)
}

// WelcomeText is MarIA's personalised greeting for u.
func WelcomeText(u *models.User) string {
	conditionsText := " Te ayudaré con recomendaciones de alimentación saludable."
	if conds := u.Conditions(); len(conds) > 0 {
		conditionsText = fmt.Sprintf(
			" Veo que tienes %s, así que te ayudaré con recomendaciones personalizadas para tu salud.",
			strings.Join(conds, ", "))
	}
	return fmt.Sprintf("¡Hola %s! 👋\n\nSoy %s, tu asistente de alimentación saludable de %s.%s\n\n¿En qué puedo ayudarte hoy?",
		u.FullName, constants.ChatAssistantName, constants.ChatProductName, conditionsText)
}
