package main

import (
	"errors"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/mana2/mana-cli/internal/cli"
	"github.com/mana2/mana-cli/internal/cli/admin"
	"github.com/mana2/mana-cli/internal/cli/alarms"
	"github.com/mana2/mana-cli/internal/cli/auth"
	"github.com/mana2/mana-cli/internal/cli/catalog"
	"github.com/mana2/mana-cli/internal/cli/chat"
	"github.com/mana2/mana-cli/internal/cli/profile"
	"github.com/mana2/mana-cli/internal/cli/system"
	"github.com/mana2/mana-cli/internal/config"
	"github.com/mana2/mana-cli/internal/constants"
	manaerrors "github.com/mana2/mana-cli/internal/errors"
	"github.com/mana2/mana-cli/internal/keyring"
	"github.com/mana2/mana-cli/internal/logger"
	"github.com/mana2/mana-cli/internal/session"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"YAML configuration file. Environment variables override it." type:"path" env:"MANA_CONFIG"`
	DB      string `help:"Local store: SQLite file path or PostgreSQL connection string without password. Falls back to the keyring, then ${default_db}." name:"db" env:"MANA_DB"`
	Debug   bool   `help:"Log debug output to stderr." env:"MANA_DEBUG"`

	Login    auth.LoginCmd    `cmd:"" help:"Log in to MANA2."`
	Register auth.RegisterCmd `cmd:"" help:"Create an account and log in."`
	Logout   auth.LogoutCmd   `cmd:"" help:"Log out and forget the local session."`

	Profile struct {
		Show profile.ShowCmd `cmd:"" help:"Show your profile." default:"1"`
		Edit profile.EditCmd `cmd:"" help:"Update your profile and health flags."`
	} `cmd:"" help:"View and edit your profile."`
	Health struct {
		Show profile.HealthShowCmd `cmd:"" help:"Show your health information." default:"1"`
		Set  profile.HealthSetCmd  `cmd:"" help:"Replace your health information."`
	} `cmd:"" help:"View and replace your health information."`
	Medical struct {
		Show   profile.MedicalShowCmd   `cmd:"" help:"Show your medical profile." default:"1"`
		Create profile.MedicalCreateCmd `cmd:"" help:"Submit your medical profile from a JSON file."`
	} `cmd:"" help:"View and submit your medical profile."`

	Dishes      catalog.DishesCmd      `cmd:"" help:"List dishes."`
	Restaurants catalog.RestaurantsCmd `cmd:"" help:"List restaurants."`
	Routes      struct {
		List catalog.RoutesListCmd `cmd:"" help:"List gastronomic routes." default:"1"`
		Show catalog.RouteShowCmd  `cmd:"" help:"Show the stops of a route."`
	} `cmd:"" help:"Browse gastronomic routes."`

	Alarms struct {
		List   alarms.ListCmd   `cmd:"" help:"List medication alarms." default:"1"`
		Add    alarms.AddCmd    `cmd:"" help:"Create a medication alarm."`
		Delete alarms.DeleteCmd `cmd:"" help:"Delete a medication alarm."`
		Watch  alarms.WatchCmd  `cmd:"" help:"Send desktop reminders when alarms are due."`
	} `cmd:"" help:"Manage medication alarms."`
	Rate cli.RateCmd `cmd:"" help:"Rate the service from 1 to 5 stars."`

	Chat struct {
		Open    chat.OpenCmd    `cmd:"" help:"Open the assistant window." default:"1"`
		Send    chat.SendCmd    `cmd:"" help:"Send one message to the assistant."`
		History chat.HistoryCmd `cmd:"" help:"Show the conversation."`
		Clear   chat.ClearCmd   `cmd:"" help:"Delete the conversation."`
	} `cmd:"" help:"Talk to the nutrition assistant."`

	Admin struct {
		Users admin.UsersListCmd `cmd:"" help:"List users with their latest rating."`
	} `cmd:"" help:"Administration commands."`

	Keyring struct {
		Status system.KeyringStatusCmd `cmd:"" help:"Check the OS keyring and what it stores." default:"1"`
		DB     struct {
			Set    system.DBSetCmd    `cmd:"" help:"Store a database connection string."`
			Get    system.DBGetCmd    `cmd:"" help:"Show the stored connection string."`
			Delete system.DBDeleteCmd `cmd:"" help:"Delete the stored connection string."`
		} `cmd:"" name:"db" help:"Manage the database connection string."`
	} `cmd:"" help:"Manage credentials in the OS keyring."`
	Push struct {
		Keygen system.PushKeygenCmd `cmd:"" help:"Generate a VAPID key pair."`
		Test   system.PushTestCmd   `cmd:"" help:"Send a test notification to the configured subscription."`
	} `cmd:"" help:"Web Push reminders."`
	Env    system.EnvCmd    `cmd:"" help:"Show configuration variables and current values."`
	Doctor system.DoctorCmd `cmd:"" help:"Run diagnostics on storage, backend, session and reminders."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("MANA2 client: healthy dining, medication alarms and the nutrition assistant"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_db":     constants.DefaultConfigPath,
			"watch_interval": constants.DefaultWatchInterval.String(),
			"due_window":     constants.DefaultDueWindow.String(),
			"users_per_page": strconv.Itoa(constants.DefaultUsersPerPage),
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		manaerrors.Fatal(err)
	}
	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug || cfg.App.Debug,
		ConfigDir: cfg.ConfigDirPath(),
	}); err != nil {
		manaerrors.Fatalf("failed to initialize logger: %v", err)
	}

	db, fromKeyring := resolveDB(CLI.DB)
	appCtx := cli.NewContext(cli.Options{
		Config:        cfg,
		Session:       session.NewKeyringStore(),
		DB:            db,
		DBFromKeyring: fromKeyring,
	})

	err = ctx.Run(appCtx)
	if closeErr := appCtx.Close(); closeErr != nil {
		logger.Warn("Failed to close storage", "error", closeErr)
	}
	if err != nil {
		manaerrors.Fatal(err)
	}
}

// resolveDB picks the --db flag, then the keyring, then the default path.
func resolveDB(flag string) (string, bool) {
	if flag != "" {
		return flag, false
	}
	connStr, err := keyring.Get(constants.KeyringDatabaseURL)
	if err == nil {
		return connStr, true
	}
	if !errors.Is(err, keyring.ErrNotFound) {
		logger.Debug("Keyring unavailable, using default database", "error", err)
	}
	return constants.DefaultConfigPath, false
}
