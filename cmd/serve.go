package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"analysis-web/handlers"
	"analysis-web/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web client",
	RunE: func(cmd *cobra.Command, args []string) error {
		gin.SetMode(gin.ReleaseMode)

		router, err := handlers.NewServer(newClient(), logger.Log).Router()
		if err != nil {
			return err
		}

		logger.Log.Infof("Starting text analyzer web client on %s (backend %s)", cfg.Web.ListenAddr, cfg.API.BaseURL)
		return listenAndServe(cmd.Context(), cfg.Web.ListenAddr, router)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// listenAndServe runs handler until SIGINT/SIGTERM, then shuts down
// gracefully.
func listenAndServe(ctx context.Context, addr string, handler http.Handler) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Log.Info("shutdown signal received, stopping server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
