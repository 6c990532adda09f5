package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jmolenaar/pharmvault/internal/client"
	"github.com/jmolenaar/pharmvault/internal/core/service"
	"github.com/jmolenaar/pharmvault/internal/core/store"
	"github.com/jmolenaar/pharmvault/internal/infrastructure/sqlite"
	"github.com/jmolenaar/pharmvault/internal/scheduler"
	"github.com/jmolenaar/pharmvault/pkg/config"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "pharmvault",
	Short: "Pharmvault - pharmacy data backup service",
	Long: `Pharmvault safeguards the pharmacy ERP's operational data.

It provides:
- Manual and scheduled JSON archive backups (daily/weekly/monthly)
- Point-in-time restore with atomic state replacement
- Persistent backup history and settings
- Retention cleanup on demand
- REST API for the ERP front-end`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger = newLogger(cfg)
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML, optional)")
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var log zerolog.Logger
	if cfg.LogFormat == "json" {
		log = zerolog.New(os.Stderr)
	} else {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	return log.Level(level).With().Timestamp().Logger()
}

// newClient returns an API client for the running server. All CLI
// commands that read or mutate the collections go through the API: the
// store lives in the server process, so wiring a fresh store here would
// operate on (and back up) empty state.
func newClient() *client.Client {
	return client.New(cfg.ServerURL)
}

// Services holds the wired application components.
type Services struct {
	DB            *sqlite.DB
	Store         *store.Store
	BackupService *service.BackupService
	Scheduler     *scheduler.Scheduler
}

// initServices opens the database and wires the store, service, and
// scheduler together.
func initServices() (*Services, error) {
	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	recordRepo := sqlite.NewRecordRepository(db)
	settingsRepo := sqlite.NewSettingsRepository(db)

	st := store.New()
	backupService := service.NewBackupService(st, recordRepo, settingsRepo, cfg.ArchiveDir, logger)
	sched := scheduler.New(backupService, logger)

	return &Services{
		DB:            db,
		Store:         st,
		BackupService: backupService,
		Scheduler:     sched,
	}, nil
}

// Close releases all resources.
func (s *Services) Close() {
	if s.Scheduler != nil {
		s.Scheduler.Stop()
	}
	if s.DB != nil {
		s.DB.Close()
	}
}
