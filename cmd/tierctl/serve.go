package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ryuk2git/tuitiontier/pkg/server"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Fit once, then serve predictions over HTTP",
	Long: `Fit the pipeline once at startup, then serve:

  POST /predict  JSON object of field values -> {"category": ...}
  GET  /healthz  liveness
  GET  /metrics  Prometheus metrics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		addr := a.cfg.ListenAddr
		if listenAddr != "" {
			addr = listenAddr
		}

		srv := &http.Server{
			Addr:         addr,
			Handler:      server.NewHandler(a.engine, a.log),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			a.log.Info().Str("address", addr).Str("policy", a.engine.Policy().String()).Msg("serving predictions")
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		a.log.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "listen address (overrides TIER_LISTEN_ADDR)")
}
