// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/paperscope/internal/dataset"
	"github.com/pdiddy/paperscope/internal/server"
	"github.com/pdiddy/paperscope/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the browsing API over the exported artifacts",
	Long: `Serve loads papers.json and category_counts.json and exposes the
browsing API: per-session tag filtering, substring search, and pagination,
plus the facet sidebar and dataset status.

The server starts listening immediately and answers 503 on interaction
endpoints until the dataset loads. With --watch it reloads the dataset
whenever the harvester replaces the artifact files.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("host", "0.0.0.0", "listen host")
	serveCmd.Flags().Int("port", 8080, "listen port")
	serveCmd.Flags().String("papers", "output/papers.json", "path to the papers artifact")
	serveCmd.Flags().String("counts", "output/category_counts.json", "path to the category counts artifact")
	serveCmd.Flags().Int("page-size", 0, "page size for browsing sessions (default 10)")
	serveCmd.Flags().Bool("watch", false, "reload the dataset when the artifacts change")

	viper.BindPFlag("serve.host", serveCmd.Flags().Lookup("host"))
	viper.BindPFlag("serve.port", serveCmd.Flags().Lookup("port"))
	viper.BindPFlag("serve.papers_path", serveCmd.Flags().Lookup("papers"))
	viper.BindPFlag("serve.counts_path", serveCmd.Flags().Lookup("counts"))
	viper.BindPFlag("serve.page_size", serveCmd.Flags().Lookup("page-size"))
	viper.BindPFlag("serve.watch", serveCmd.Flags().Lookup("watch"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg := types.ServeConfig{
		Host:       viper.GetString("serve.host"),
		Port:       viper.GetInt("serve.port"),
		PapersPath: viper.GetString("serve.papers_path"),
		CountsPath: viper.GetString("serve.counts_path"),
		PageSize:   viper.GetInt("serve.page_size"),
		Watch:      viper.GetBool("serve.watch"),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(cfg, logger)

	// The listener comes up before the dataset: a failed load leaves the
	// server answering 503 with the failure message rather than exiting.
	go func() {
		if err := srv.LoadInitial(); err != nil {
			logger.Warn("serving without a dataset until the artifacts load", zap.Error(err))
		}
	}()

	if cfg.Watch {
		w := dataset.NewWatcher(cfg.PapersPath, cfg.CountsPath, srv.SetDataset, logger)
		go func() {
			if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("artifact watcher stopped", zap.Error(err))
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Stop(shutdownCtx)
}
