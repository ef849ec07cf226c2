package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/tsawler/cardsheet/assemble"
	"github.com/tsawler/cardsheet/layout"
	"github.com/tsawler/cardsheet/metrics"
	"github.com/tsawler/cardsheet/scancode"
	"github.com/tsawler/cardsheet/server"
)

func newServeCommand(g *globals) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve roster upload, preview and download over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.config()
			if err != nil {
				return err
			}
			if g.capacity > 0 {
				if cfg.Grid.Columns < 1 || g.capacity%cfg.Grid.Columns != 0 {
					return fmt.Errorf("%w: capacity %d is not a multiple of %d columns", layout.ErrGeometry, g.capacity, cfg.Grid.Columns)
				}
				cfg.Grid.Rows = g.capacity / cfg.Grid.Columns
			}
			logger, err := g.logger(cmd)
			if err != nil {
				return err
			}

			grid, err := layout.NewGrid(cfg)
			if err != nil {
				return err
			}
			reg := prometheus.NewRegistry()
			m := metrics.NewWithRegisterer(reg)
			asm, err := assemble.New(cfg, scancode.NewQR(),
				assemble.WithLogger(logger),
				assemble.WithObserver(m),
			)
			if err != nil {
				return err
			}

			h := server.NewHandler(asm, grid, cfg.Text, logger, m)
			srv := server.New(addr, server.NewRouter(h, reg, logger))

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info("listening", "addr", addr, "capacity", grid.Capacity())
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}
