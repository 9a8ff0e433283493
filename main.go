package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/severinoia/central/internal/ai"
	"github.com/severinoia/central/internal/chat"
	"github.com/severinoia/central/internal/chip"
	"github.com/severinoia/central/internal/credential"
	"github.com/severinoia/central/internal/evolution"
	"github.com/severinoia/central/internal/localstore"
	"github.com/severinoia/central/internal/migrate"
	"github.com/severinoia/central/internal/model"
	"github.com/severinoia/central/internal/notify"
	"github.com/severinoia/central/internal/remote"
	"github.com/severinoia/central/internal/repo"
	"github.com/severinoia/central/internal/settings"
	"github.com/severinoia/central/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := model.LoadConfig(model.DefaultConfigPath())
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Storage.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	kv, err := localstore.OpenBolt(filepath.Join(cfg.Storage.DataDir, "central.db"))
	if err != nil {
		return err
	}
	defer kv.Close()

	stores := localstore.NewStores(kv, log)
	settingsStore := settings.NewStore(kv, credential.NewKeyringStore(), log)

	// The remote backend is optional; without it the UseRemote flag has
	// nothing to route to and stays local.
	var remoteStore *remote.Store
	if cfg.Storage.RemoteDSN != "" {
		remoteStore, err = remote.New(cfg.Storage.RemoteDSN)
		if err != nil {
			log.Warn().Err(err).Msg("remote backend unavailable, staying local")
		} else {
			defer remoteStore.Close()
		}
	}

	repository := repo.New(stores, remoteStore, settingsStore)

	notifier := notify.New(16, func() bool {
		current, err := settingsStore.Get()
		return err == nil && current.EnableNotifications
	}, log)

	aiClient := ai.NewClient(
		settingsStore,
		time.Duration(cfg.Chat.TimeoutSec)*time.Second,
		cfg.Chat.CacheSize,
		log,
	)

	chipController := chip.New(repository, func() (chip.Automation, error) {
		current, err := settingsStore.Get()
		if err != nil {
			return nil, err
		}
		if current.WebhookEvolutionURL == "" || current.EvolutionAPIKey == "" {
			return nil, chip.ErrNoCredentials
		}
		return evolution.NewClient(current.WebhookEvolutionURL, current.EvolutionAPIKey), nil
	}, log)

	chatStore := chat.NewStore(kv, log)

	var migrator *migrate.Engine
	if remoteStore != nil {
		migrator = migrate.New(stores, remoteStore, settingsStore, log)
	}

	app := tui.NewApp(tui.Deps{
		Repo:     repository,
		Settings: settingsStore,
		Chat:     chatStore,
		AI:       aiClient,
		Chips:    chipController,
		Migrate:  migrator,
		Notify:   notifier,
		Log:      log,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// newLogger writes structured logs to a file in the data directory so
// they never fight the TUI for the terminal.
func newLogger(cfg *model.AppConfig) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	if err := os.MkdirAll(cfg.Storage.DataDir, 0o755); err != nil {
		return zerolog.Nop(), fmt.Errorf("creating data directory: %w", err)
	}

	logFile, err := os.OpenFile(
		filepath.Join(cfg.Storage.DataDir, "central.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644,
	)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("opening log file: %w", err)
	}

	return zerolog.New(logFile).Level(level).With().Timestamp().Logger(), nil
}
