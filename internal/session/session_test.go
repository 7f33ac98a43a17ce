package session

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestKeyringStoreRoundTrip(t *testing.T) {
	gokeyring.MockInit()
	store := NewKeyringStore()

	if _, err := store.Load(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("Load() on empty keyring error = %v, want ErrNoSession", err)
	}

	want := Credentials{AccessToken: "abc", TokenType: "bearer", UserID: 12}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := store.Load(); !errors.Is(err, ErrNoSession) {
		t.Errorf("Load() after Clear() error = %v", err)
	}
	// clearing twice is fine
	if err := store.Clear(); err != nil {
		t.Errorf("second Clear() error = %v", err)
	}
}

func TestKeyringStoreSaveWithoutUser(t *testing.T) {
	gokeyring.MockInit()
	store := NewKeyringStore()

	if err := store.Save(Credentials{AccessToken: "a", UserID: 3}); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(Credentials{AccessToken: "b"}); err != nil {
		t.Fatal(err)
	}
	got, _ := store.Load()
	if got.UserID != 0 {
		t.Errorf("stale user id kept: %d", got.UserID)
	}
}

func TestSaveRejectsEmptyToken(t *testing.T) {
	gokeyring.MockInit()

	for name, store := range map[string]Store{"keyring": NewKeyringStore(), "memory": NewMemory(nil)} {
		if err := store.Save(Credentials{}); err == nil {
			t.Errorf("%s: Save() accepted an empty token", name)
		}
	}
}

func TestMemory(t *testing.T) {
	m := NewMemory(&Credentials{AccessToken: "x", UserID: 1})
	c, err := m.Load()
	if err != nil || c.UserID != 1 {
		t.Fatalf("Load() = %+v, %v", c, err)
	}
	_ = m.Clear()
	if _, err := m.Load(); !errors.Is(err, ErrNoSession) {
		t.Errorf("Load() after Clear() error = %v", err)
	}
}

func TestAuthorization(t *testing.T) {
	tests := []struct {
		creds Credentials
		want  string
	}{
		{Credentials{AccessToken: "t"}, "Bearer t"},
		{Credentials{AccessToken: "t", TokenType: "bearer"}, "Bearer t"},
		{Credentials{AccessToken: "t", TokenType: "Token"}, "Token t"},
	}
	for _, tt := range tests {
		if got := tt.creds.Authorization(); got != tt.want {
			t.Errorf("Authorization() = %q, want %q", got, tt.want)
		}
	}
}
