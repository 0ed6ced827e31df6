package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/repo-browser/internal/config"
	"github.com/naka-gawa/repo-browser/internal/render"
	"github.com/naka-gawa/repo-browser/internal/server"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the repository browser page over HTTP",
	Long: `Serves a page with a #repositories and a #commits region. The page loads the
repository list on open; each "Get Commits" link swaps the commit list of that
repository into #commits. Failed fetches leave the region unchanged.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, browser, err := setup(cmd)
		if err != nil {
			return err
		}
		renderer, err := render.New()
		if err != nil {
			return err
		}
		srv := server.NewServer(cfg.Addr, browser, renderer, logger)

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start()
		}()

		// Setup signal handling for graceful shutdown
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(stop)

		select {
		case err := <-errCh:
			return err
		case sig := <-stop:
			logger.Infof("Received %s, shutting down", sig)
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			logger.WithError(err).Error("Error during server shutdown")
			return err
		}
		logger.Info("Server shut down gracefully")
		return <-errCh
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String(config.KeyAddr, config.DefaultAddr, "Address the HTTP server listens on")
}
