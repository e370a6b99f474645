package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpAdapter "github.com/lumilearn/chalkboard/internal/adapters/http"
	"github.com/lumilearn/chalkboard/internal/adapters/memory"
	redisAdapter "github.com/lumilearn/chalkboard/internal/adapters/redis"
	"github.com/lumilearn/chalkboard/internal/config"
	"github.com/lumilearn/chalkboard/internal/metrics"
	"github.com/lumilearn/chalkboard/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP playback server",
	Long: `Starts the chalkboard engine in server mode: a JSON API for playback
sessions and the explanation library, with per-session SSE frame streams.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.FromEnv()
		if err != nil {
			fmt.Printf("Error reading configuration: %v\n", err)
			os.Exit(1)
		}
		if cmd.Flags().Changed("addr") {
			cfg.Addr, _ = cmd.Flags().GetString("addr")
		}

		logger := newLogger(cmd)

		var library ports.Library
		if cfg.RedisAddr != "" {
			lib := redisAdapter.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
			defer lib.Close()
			library = lib
			logger.Info("using redis explanation library", "addr", cfg.RedisAddr)
		} else {
			library = memory.New()
			logger.Info("using in-memory explanation library")
		}

		apiServer := httpAdapter.NewServer(library, logger, metrics.New())
		defer apiServer.Close()

		srv := &http.Server{
			Addr:    cfg.Addr,
			Handler: apiServer.Handler(),
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("starting chalkboard server", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("shutdown started", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					logger.Error("error killing server", "err", err)
				}
			}
			logger.Info("chalkboard server stopped")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Listen address (overrides CHALKBOARD_ADDR)")
}
