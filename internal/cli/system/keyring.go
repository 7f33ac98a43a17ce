package system

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/mana2/mana-cli/internal/cli"
	"github.com/mana2/mana-cli/internal/constants"
	"github.com/mana2/mana-cli/internal/keyring"
	"github.com/mana2/mana-cli/internal/session"
	"github.com/mana2/mana-cli/internal/storage/postgres"
)

// KeyringStatusCmd reports whether the OS keyring works and what it holds.
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		ctx.Println("❌ OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}
	ctx.Println("✓ OS keyring is available")

	creds, err := ctx.Session.Load()
	switch {
	case err == nil && creds.UserID > 0:
		ctx.Printf("✓ Session stored for user %d\n", creds.UserID)
	case err == nil:
		ctx.Println("✓ Session stored")
	case errors.Is(err, session.ErrNoSession):
		ctx.Println("ℹ No session stored")
	default:
		return fmt.Errorf("failed to read session: %w", err)
	}
	if exp, ok := creds.ExpiresAt(); err == nil && ok {
		if creds.Expired(ctx.Now()) {
			ctx.Println("⚠️  Session token has expired, run 'mana login'")
		} else {
			ctx.Printf("  Token expires %s\n", exp.In(ctx.Config.Location()).Format("2006-01-02 15:04"))
		}
	}

	if _, err := keyring.Get(constants.KeyringDatabaseURL); err == nil {
		ctx.Println("✓ Database connection string stored")
	} else if errors.Is(err, keyring.ErrNotFound) {
		ctx.Println("ℹ No database connection string stored")
	}
	return nil
}

// DBSetCmd stores a PostgreSQL connection string for the local store.
type DBSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in keyring"`
}

func (cmd *DBSetCmd) Run(ctx *cli.Context) error {
	if !postgresLike(cmd.ConnectionString) {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}

	if _, err := postgres.ValidateConnString(cmd.ConnectionString); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		ctx.Println("⚠️  Warning: Connection string contains embedded credentials.")
		ctx.Println("   It will be stored as-is in the encrypted OS keyring.")
	}

	if err := keyring.Set(constants.KeyringDatabaseURL, cmd.ConnectionString); err != nil {
		return err
	}
	ctx.Println("✓ Connection string stored in OS keyring")
	ctx.Println("  It is used whenever --db is not given")
	return nil
}

// DBGetCmd prints the stored connection string with the password masked.
type DBGetCmd struct{}

func (cmd *DBGetCmd) Run(ctx *cli.Context) error {
	connStr, err := keyring.Get(constants.KeyringDatabaseURL)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring. Use 'mana keyring db set' to store one")
		}
		return err
	}
	ctx.Println(maskPassword(connStr))
	return nil
}

type DBDeleteCmd struct{}

func (cmd *DBDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.Delete(constants.KeyringDatabaseURL); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return err
	}
	ctx.Println("✓ Connection string deleted from OS keyring")
	return nil
}

func postgresLike(s string) bool {
	return strings.HasPrefix(s, "postgres://") ||
		strings.HasPrefix(s, "postgresql://") ||
		strings.Contains(s, "host=")
}

// maskPassword hides the password of a URL or key=value connection string.
func maskPassword(connStr string) string {
	if strings.Contains(connStr, "://") {
		u, err := url.Parse(connStr)
		if err != nil || u.User == nil {
			return connStr
		}
		if _, ok := u.User.Password(); !ok {
			return connStr
		}
		return u.Scheme + "://" + u.User.Username() + ":****@" + strings.TrimPrefix(connStr[strings.LastIndex(connStr, "@"):], "@")
	}

	fields := strings.Fields(connStr)
	for i, f := range fields {
		if strings.HasPrefix(f, "password=") {
			fields[i] = "password=****"
		}
	}
	return strings.Join(fields, " ")
}
