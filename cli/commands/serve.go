package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/adelab-inc/ds-bridge-ui-sub000/core"
	"github.com/adelab-inc/ds-bridge-ui-sub000/httpapi"
	"github.com/adelab-inc/ds-bridge-ui-sub000/notify"
)

func (a *App) newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the UI bridge HTTP service",
		Long: `Run the HTTP service: the chat endpoint with JSON and SSE reply modes,
room history, and object serving. Shuts down gracefully on SIGINT/SIGTERM,
draining in-flight realtime publishes before exit.`,
		RunE: a.runServe,
	}
}

func (a *App) runServe(cmd *cobra.Command, args []string) error {
	if a.provider == "" {
		return fmt.Errorf("no provider configured: set provider in config or pass --provider")
	}
	if a.model == "" {
		return fmt.Errorf("no model configured: set model in config or pass --model")
	}

	apiKey, err := a.cfg.ResolveAPIKey(a.provider)
	if err != nil {
		return err
	}

	p, err := a.createProvider(a.provider, apiKey, a.cfg)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))

	opts := []httpapi.ServerOption{
		httpapi.WithLogger(logger),
		httpapi.WithSecret(a.cfg.Secret),
		httpapi.WithObjectStore(httpapi.NewMemObjectStore(a.cfg.ObjectBaseURL)),
	}
	if a.cfg.PublishURL != "" {
		opts = append(opts, httpapi.WithPublisher(notify.NewWebhookPublisher(a.cfg.PublishURL)))
	}

	srv := httpapi.NewServer(p, core.ModelID(a.model), opts...)

	httpSrv := &http.Server{
		Addr:    a.listenAddr,
		Handler: srv.Handler(),
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- httpSrv.ListenAndServe()
	}()

	logger.Info("listening", "addr", a.listenAddr, "provider", p.ID(), "model", a.model)

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.DrainTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server shutdown incomplete", "error", err)
	}

	// Drain the fan-out before releasing the outbound client.
	if cancelled := srv.Coordinator().Shutdown(a.cfg.DrainTimeout, a.cfg.CancelWait); cancelled > 0 {
		logger.Warn("cancelled stalled publishes", "count", cancelled)
	}
	notify.CloseSharedClient()

	return nil
}
