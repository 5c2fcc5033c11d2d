package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"quiz-progress-service/internal/config"
	transport "quiz-progress-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string, envPort string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the progress server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
	cmd.Flags().StringVar(port, "port", envPort, "port to listen on")
	return cmd
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := newLogger(true)

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	c, err := buildComponents(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	handler := transport.NewHandler(transport.Deps{
		Service:         c.service,
		Views:           c.views,
		Shares:          c.shares,
		Intents:         c.dispatcher(os.Stdout),
		TargetURL:       cfg.Share.TargetURL,
		DefaultLanguage: cfg.Locale.Default,
		Logger:          logger,
	})
	mux := http.NewServeMux()
	handler.Register(mux)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("starting progress service", "port", finalPort, "store", cfg.Store.Engine)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("failed to start server", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Info("shutting down server")
	case <-ctx.Done():
		logger.Info("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return shutdownServer(shutdownCtx, server, logger)
}

func shutdownServer(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "error", err)
		return err
	}
	return nil
}
