package storage

import (
	"errors"
	"strings"

	"github.com/mana2/mana-cli/internal/logger"
	"github.com/mana2/mana-cli/internal/storage/postgres"
	"github.com/mana2/mana-cli/internal/storage/sqlite"
	"github.com/mana2/mana-cli/internal/utils"
)

// IsPostgres reports whether config is a PostgreSQL connection URL
func IsPostgres(config string) bool {
	return strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://")
}

// New selects a provider from config: a postgres:// URL or a SQLite file path.
// PostgreSQL connection strings must not embed a password.
func New(config string) (Provider, error) {
	if IsPostgres(config) {
		if _, err := postgres.ValidateConnString(config); err != nil {
			return nil, err
		}
		return postgres.New(config), nil
	}
	return sqlite.NewStore(utils.ExpandHome(config)), nil
}

// NewFromKeyring is New for a connection string read from the OS keyring,
// where an embedded password is allowed.
func NewFromKeyring(config string) (Provider, error) {
	if IsPostgres(config) || strings.Contains(config, "host=") {
		if _, err := postgres.ValidateConnString(config); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, err
		}
		return postgres.New(config), nil
	}
	return New(config)
}

// Open loads p, initializing it first when the backing file does not exist yet.
func Open(p Provider) error {
	err := p.Load()
	if errors.Is(err, sqlite.ErrNotInitialized) {
		logger.Info("Initializing local storage", "path", p.GetConfigPath())
		return p.Init()
	}
	return err
}
