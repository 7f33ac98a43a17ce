package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BaseURL != "http://localhost:8000" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("Timeout = %s, want 30s", cfg.API.Timeout)
	}
	if cfg.Endpoints.Alarms != "/api/v1/notifications/alarms" {
		t.Errorf("Alarms endpoint = %q", cfg.Endpoints.Alarms)
	}
	if got := cfg.URL(cfg.Endpoints.Login); got != "http://localhost:8000/api/v1/auth/login" {
		t.Errorf("URL(login) = %q", got)
	}
	if got := cfg.ChatURL(); got != "http://localhost:8001/chat" {
		t.Errorf("ChatURL() = %q", got)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MANA_API_BASE_URL", "https://api.mana2.test/")
	t.Setenv("MANA_API_DISHES", "/v2/dishes")
	t.Setenv("MANA_TIMEZONE", "America/Bogota")
	t.Setenv("MANA_FANOUT", "3")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := cfg.URL(cfg.Endpoints.Dishes); got != "https://api.mana2.test/v2/dishes" {
		t.Errorf("URL(dishes) = %q", got)
	}
	if cfg.API.Fanout != 3 {
		t.Errorf("Fanout = %d, want 3", cfg.API.Fanout)
	}
	if cfg.Location().String() != "America/Bogota" {
		t.Errorf("Location() = %s", cfg.Location())
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mana.yml")
	content := "api:\n  base_url: https://backend.example\n  cache_ttl: 5m\nchat:\n  base_url: https://chat.example\n  path: /v1/chat\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %s, want 5m", cfg.API.CacheTTL)
	}
	if got := cfg.ChatURL(); got != "https://chat.example/v1/chat" {
		t.Errorf("ChatURL() = %q", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
	}{
		{"bad scheme", map[string]string{"MANA_API_BASE_URL": "ftp://x"}, ErrInvalidBaseURL},
		{"no host", map[string]string{"MANA_AI_CHAT_BASE_URL": "http://"}, ErrInvalidBaseURL},
		{"bad timezone", map[string]string{"MANA_TIMEZONE": "Mars/Olympus"}, ErrInvalidTimezone},
		{"push without keys", map[string]string{"MANA_PUSH_SUBSCRIPTION": "/tmp/sub.json"}, ErrMissingVAPIDKeys},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPushEnabled(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.PushEnabled() {
		t.Error("push enabled with no subscription")
	}
	if cfg.Push.TTL != 300 {
		t.Errorf("Push.TTL = %d, want 300", cfg.Push.TTL)
	}

	t.Setenv("MANA_PUSH_SUBSCRIPTION", "/tmp/sub.json")
	t.Setenv("MANA_PUSH_VAPID_PUBLIC_KEY", "pub")
	t.Setenv("MANA_PUSH_VAPID_PRIVATE_KEY", "priv")
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.PushEnabled() {
		t.Error("push disabled with subscription and keys")
	}
}

func TestYAML_RoundTripsThroughLoad(t *testing.T) {
	t.Setenv("MANA_API_BASE_URL", "https://api.mana2.test")
	t.Setenv("MANA_PUSH_SUBSCRIPTION", "/tmp/sub.json")
	t.Setenv("MANA_PUSH_VAPID_PUBLIC_KEY", "pub")
	t.Setenv("MANA_PUSH_VAPID_PRIVATE_KEY", "very-secret")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	out, err := cfg.YAML()
	if err != nil {
		t.Fatalf("YAML() error = %v", err)
	}
	if strings.Contains(out, "very-secret") {
		t.Error("private key leaked into the dump")
	}
	for _, want := range []string{"base_url: https://api.mana2.test", "timeout: 30s", "login: /api/v1/auth/login"} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
	if cfg.Push.PrivateKey != "very-secret" {
		t.Error("YAML() modified the config")
	}

	path := filepath.Join(t.TempDir(), "dump.yml")
	if err := os.WriteFile(path, []byte(out), 0600); err != nil {
		t.Fatal(err)
	}
	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load(dump) error = %v", err)
	}
	if reloaded.API.Timeout != cfg.API.Timeout || reloaded.Endpoints != cfg.Endpoints {
		t.Errorf("reloaded config differs: %+v", reloaded.API)
	}
}

func TestDescription(t *testing.T) {
	if Description() == "" {
		t.Error("Description() is empty")
	}
}
