// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"gh-contrib-api/internal/config"
	"gh-contrib-api/internal/gateway"
	"gh-contrib-api/internal/logging"
	"gh-contrib-api/internal/server"
	"gh-contrib-api/internal/usecase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the scraping API server",
	Long:  `Starts the HTTP server exposing the contribution, profile and repository scraping endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		logging.Init(verbose)
		logger := log.Logger

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		// Flags override the environment.
		if cmd.Flags().Changed("host") {
			cfg.Host, _ = cmd.Flags().GetString("host")
		}
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}

		fetcher, err := gateway.NewGitHubGateway(cfg.GitHubBaseURL, cfg.UpstreamTimeout, cfg.CacheSize, cfg.DumpDir, logger)
		if err != nil {
			return err
		}
		service := usecase.NewService(fetcher, logger, time.Now)
		srv := server.NewServer(service, cfg.Host, cfg.Port, logger)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		eg, egCtx := errgroup.WithContext(ctx)
		eg.Go(srv.Start)
		eg.Go(func() error {
			<-egCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Stop(shutdownCtx)
		})
		return eg.Wait()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("host", "", "Bind address (overrides HOST)")
	serveCmd.Flags().IntP("port", "p", 0, "Listen port (overrides PORT)")
}
