package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/billmap/internal/dashboard"
	"github.com/sells-group/billmap/internal/server"
)

// datasetCacheSize bounds the number of directory snapshots kept in memory.
const datasetCacheSize = 8

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		f, err := newFormatter()
		if err != nil {
			return err
		}
		p, err := newPrinter()
		if err != nil {
			return err
		}

		var cache *dashboard.Cache
		if cfg.Server.Cache {
			cache = dashboard.NewCache(datasetCacheSize, time.Duration(cfg.Server.CacheTTLSecs)*time.Second)
		}
		src := dashboard.NewSource(cfg.Bills.Dir, cache)

		// Fail fast on unreadable bills rather than on the first request.
		if _, err := src.Dataset(ctx); err != nil {
			return err
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           server.New(src, f, p, server.Options{RateLimit: cfg.Server.RateLimit}).Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server",
			zap.Int("port", port),
			zap.String("bills_dir", cfg.Bills.Dir),
			zap.Bool("cache", cfg.Server.Cache),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
