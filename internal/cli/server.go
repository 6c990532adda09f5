package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/jmolenaar/pharmvault/internal/api"
	"github.com/jmolenaar/pharmvault/internal/core/domain"
)

var adminUser string

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the API server",
	Long:  "Start the REST API server and arm the backup schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices()
		if err != nil {
			return err
		}
		defer services.Close()

		// The in-memory store starts empty; optionally seed an initial
		// admin account before serving.
		if adminUser != "" {
			if err := seedAdminUser(services); err != nil {
				return err
			}
		}

		// Arm triggers from the persisted settings before accepting
		// requests.
		if err := services.Scheduler.Reconcile(cmd.Context()); err != nil {
			logger.Error().Err(err).Msg("failed to arm backup schedule")
		}

		server := api.NewServer(cfg, services.BackupService, services.Scheduler, services.Store, logger)

		serverErr := make(chan error, 1)
		go func() {
			if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
		}()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErr:
			return fmt.Errorf("server error: %w", err)
		case <-sigChan:
			logger.Info().Msg("shutting down")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		return nil
	},
}

func seedAdminUser(services *Services) error {
	password, err := promptPassword(
		fmt.Sprintf("Enter password for '%s': ", adminUser),
		"Confirm password: ",
	)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := services.Store.CreateUser(domain.NewUser(adminUser, string(hash), "admin"))
	logger.Info().Str("username", user.Username).Msg("seeded admin user")
	return nil
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().StringVar(&adminUser, "admin-user", "", "seed an initial admin user (prompts for password)")
}
