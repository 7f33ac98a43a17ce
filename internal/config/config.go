package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"

	"github.com/mana2/mana-cli/internal/utils"
)

type (
	Config struct {
		API       `yaml:"api"`
		Endpoints `yaml:"endpoints"`
		Chat      `yaml:"chat"`
		Push      `yaml:"push"`
		App       `yaml:"app"`
	}

	API struct {
		BaseURL   string        `yaml:"base_url"   env:"MANA_API_BASE_URL" env-default:"http://localhost:8000"`
		Timeout   time.Duration `yaml:"timeout"    env:"MANA_HTTP_TIMEOUT" env-default:"30s"`
		RateLimit float64       `yaml:"rate_limit" env:"MANA_RATE_LIMIT"   env-default:"10"`
		RateBurst int           `yaml:"rate_burst" env:"MANA_RATE_BURST"   env-default:"5"`
		CacheTTL  time.Duration `yaml:"cache_ttl"  env:"MANA_CACHE_TTL"    env-default:"1m"`
		Fanout    int           `yaml:"fanout"     env:"MANA_FANOUT"       env-default:"8"`
	}

	Endpoints struct {
		Login          string `yaml:"login"           env:"MANA_API_AUTH_LOGIN"           env-default:"/api/v1/auth/login"`
		Register       string `yaml:"register"        env:"MANA_API_AUTH_REGISTER"        env-default:"/api/v1/auth/register"`
		Logout         string `yaml:"logout"          env:"MANA_API_AUTH_LOGOUT"          env-default:"/api/v1/auth/logout"`
		Profile        string `yaml:"profile"         env:"MANA_API_USER_PROFILE"         env-default:"/api/v1/me"`
		Health         string `yaml:"health"          env:"MANA_API_USER_HEALTH"          env-default:"/api/v1/me/health"`
		Users          string `yaml:"users"           env:"MANA_API_USER_ALL_USERS"       env-default:"/api/v1/users/"`
		UserRatings    string `yaml:"user_ratings"    env:"MANA_API_USER_RATINGS"         env-default:"/api/v1/users/{id}/califications"`
		MedicalProfile string `yaml:"medical_profile" env:"MANA_API_MEDICAL_PROFILE"      env-default:"/api/v1/medical/profile"`
		Dishes         string `yaml:"dishes"          env:"MANA_API_DISHES"               env-default:"/api/v1/dishes"`
		Restaurants    string `yaml:"restaurants"     env:"MANA_API_RESTAURANTS"          env-default:"/api/v1/restaurants"`
		Routes         string `yaml:"routes"          env:"MANA_API_ROUTES"               env-default:"/api/v1/routes"`
		Alarms         string `yaml:"alarms"          env:"MANA_API_NOTIFICATIONS_ALARMS" env-default:"/api/v1/notifications/alarms"`
		CreateRating   string `yaml:"create_rating"   env:"MANA_API_CREATE_RATING"        env-default:"/api/v1/califications"`
	}

	Chat struct {
		BaseURL string `yaml:"base_url" env:"MANA_AI_CHAT_BASE_URL" env-default:"http://localhost:8001"`
		Path    string `yaml:"path"     env:"MANA_API_CHAT"         env-default:"/chat"`
	}

	// Push configures Web Push delivery of reminders. It is off until a
	// subscription file and both VAPID keys are set.
	Push struct {
		Subscription string `yaml:"subscription" env:"MANA_PUSH_SUBSCRIPTION" env-description:"Path to a Web Push subscription JSON file"`
		PublicKey    string `yaml:"public_key"   env:"MANA_PUSH_VAPID_PUBLIC_KEY"`
		PrivateKey   string `yaml:"private_key"  env:"MANA_PUSH_VAPID_PRIVATE_KEY"`
		Subject      string `yaml:"subject"      env:"MANA_PUSH_SUBJECT" env-default:"soporte@mana2.app"`
		TTL          int    `yaml:"ttl"          env:"MANA_PUSH_TTL"     env-default:"300"`
	}

	App struct {
		Timezone  string `yaml:"timezone"   env:"MANA_TIMEZONE"   env-default:"Local"`
		Debug     bool   `yaml:"debug"      env:"MANA_DEBUG"`
		ConfigDir string `yaml:"config_dir" env:"MANA_CONFIG_DIR" env-default:"~/.config/mana"`
	}
)

var (
	ErrInvalidBaseURL   = errors.New("invalid base URL")
	ErrInvalidTimezone  = errors.New("invalid timezone")
	ErrMissingVAPIDKeys = errors.New("push subscription set but VAPID keys are missing")
)

// Load reads configuration from the YAML file at path (when non-empty)
// and from the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	var err error
	if path != "" {
		err = cleanenv.ReadConfig(utils.ExpandHome(path), cfg)
	} else {
		err = cleanenv.ReadEnv(cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks URLs, limits and the timezone.
func (c *Config) Validate() error {
	if err := validateBaseURL(c.API.BaseURL); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := validateBaseURL(c.Chat.BaseURL); err != nil {
		return fmt.Errorf("chat: %w", err)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %s", c.API.Timeout)
	}
	if c.API.RateLimit < 0 || c.API.RateBurst < 0 {
		return fmt.Errorf("rate limit and burst must be >= 0")
	}
	if c.API.Fanout < 1 {
		return fmt.Errorf("fanout must be >= 1, got %d", c.API.Fanout)
	}
	if c.Push.Subscription != "" && (c.Push.PublicKey == "" || c.Push.PrivateKey == "") {
		return ErrMissingVAPIDKeys
	}
	if c.Push.TTL < 0 {
		return fmt.Errorf("push ttl must be >= 0, got %d", c.Push.TTL)
	}
	if _, err := utils.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimezone, c.App.Timezone)
	}
	return nil
}

// PushEnabled reports whether reminders should also go out via Web Push.
func (c *Config) PushEnabled() bool {
	return c.Push.Subscription != "" && c.Push.PublicKey != "" && c.Push.PrivateKey != ""
}

// Location returns the configured display timezone.
func (c *Config) Location() *time.Location {
	loc, err := utils.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// URL joins an endpoint path onto the API base URL.
func (c *Config) URL(path string) string {
	return joinURL(c.API.BaseURL, path)
}

// ChatURL is the full address of the chat endpoint.
func (c *Config) ChatURL() string {
	return joinURL(c.Chat.BaseURL, c.Chat.Path)
}

// ConfigDirPath returns the config directory with ~ expanded.
func (c *Config) ConfigDirPath() string {
	return utils.ExpandHome(c.App.ConfigDir)
}

// Description renders the environment variable help text.
func Description() string {
	header := "Environment variables:"
	text, err := cleanenv.GetDescription(&Config{}, &header)
	if err != nil {
		return ""
	}
	return text
}

// YAML renders the effective configuration in the config file format,
// with the VAPID private key masked.
func (c *Config) YAML() (string, error) {
	shown := *c
	if shown.Push.PrivateKey != "" {
		shown.Push.PrivateKey = "********"
	}
	out, err := yaml.Marshal(&shown)
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	return string(out), nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, raw)
	}
	return nil
}

func joinURL(base, path string) string {
	if path == "" {
		return base
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
