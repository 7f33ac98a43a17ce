// Package session persists the logged-in user's credentials.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/mana2/mana-cli/internal/constants"
	"github.com/mana2/mana-cli/internal/keyring"
)

// ErrNoSession is returned when no access token is stored
var ErrNoSession = errors.New("no active session")

type Credentials struct {
	AccessToken string
	TokenType   string
	UserID      int // 0 when unknown
}

// Authorization returns the Authorization header value
func (c Credentials) Authorization() string {
	tokenType := c.TokenType
	if tokenType == "" || strings.EqualFold(tokenType, "bearer") {
		tokenType = "Bearer"
	}
	return tokenType + " " + c.AccessToken
}

// Store loads and saves credentials
type Store interface {
	Load() (Credentials, error)
	Save(Credentials) error
	Clear() error
}

// KeyringStore keeps credentials in the OS keyring
type KeyringStore struct{}

func NewKeyringStore() *KeyringStore {
	return &KeyringStore{}
}

func (KeyringStore) Load() (Credentials, error) {
	token, err := keyring.Get(constants.KeyringAccessToken)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return Credentials{}, ErrNoSession
		}
		return Credentials{}, err
	}

	creds := Credentials{AccessToken: token}
	if tt, err := keyring.Get(constants.KeyringTokenType); err == nil {
		creds.TokenType = tt
	}
	if raw, err := keyring.Get(constants.KeyringUserID); err == nil {
		if id, convErr := strconv.Atoi(raw); convErr == nil {
			creds.UserID = id
		}
	}
	return creds, nil
}

func (KeyringStore) Save(c Credentials) error {
	if c.AccessToken == "" {
		return fmt.Errorf("access token cannot be empty")
	}
	if err := keyring.Set(constants.KeyringAccessToken, c.AccessToken); err != nil {
		return err
	}
	if c.TokenType != "" {
		if err := keyring.Set(constants.KeyringTokenType, c.TokenType); err != nil {
			return err
		}
	}
	if c.UserID > 0 {
		if err := keyring.Set(constants.KeyringUserID, strconv.Itoa(c.UserID)); err != nil {
			return err
		}
	} else if err := keyring.Delete(constants.KeyringUserID); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}

// Clear removes every stored credential. Missing entries are not an error.
func (KeyringStore) Clear() error {
	for _, key := range []string{constants.KeyringAccessToken, constants.KeyringTokenType, constants.KeyringUserID} {
		if err := keyring.Delete(key); err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return err
		}
	}
	return nil
}

// Memory is an in-process Store, used in tests and for one-shot commands.
type Memory struct {
	mu    sync.Mutex
	creds *Credentials
}

func NewMemory(initial *Credentials) *Memory {
	m := &Memory{}
	if initial != nil {
		c := *initial
		m.creds = &c
	}
	return m
}

func (m *Memory) Load() (Credentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.creds == nil {
		return Credentials{}, ErrNoSession
	}
	return *m.creds, nil
}

func (m *Memory) Save(c Credentials) error {
	if c.AccessToken == "" {
		return fmt.Errorf("access token cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = &c
	return nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = nil
	return nil
}
