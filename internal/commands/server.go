package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"evalgo.org/hostreg/internal/api"
	"evalgo.org/hostreg/internal/profile"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the API server",
	Long:  `Start the host registry HTTP API server`,
	RunE:  runServer,
}

func runServer(cmd *cobra.Command, args []string) error {
	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	store, err := openStore(ctx)
	if err != nil {
		return err
	}

	var profiles *profile.Cache
	if cfg.Profile.Enabled() {
		profiles = profile.New(cfg.Profile, logger)
		go profiles.Start(ctx)
	} else {
		logger.Warn("no profile service configured, host admins will not be resolved")
	}

	server := api.New(cfg, store, profiles, logger)

	errChan := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		return nil

	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}
}
