package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the course as a JSON HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		origins, _ := cmd.Flags().GetStringSlice("cors-origin")
		if v := os.Getenv("LINGUA_CORS_ORIGINS"); v != "" && len(origins) == 0 {
			origins = strings.Split(v, ",")
		}

		e, err := openEngine(cmd, true)
		if err != nil {
			return err
		}
		defer e.Close()

		gin.SetMode(gin.ReleaseMode)
		router := httpapi.NewRouter(httpapi.RouterConfig{
			Course:       e.course,
			AllowOrigins: origins,
			Log:          e.log,
		})
		srv := &http.Server{Addr: addr, Handler: router, ReadHeaderTimeout: 10 * time.Second}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			e.log.Info("http server listening", "addr", addr, "model", e.model)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		e.log.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().StringSlice("cors-origin", nil, "Allowed CORS origin (repeatable; also LINGUA_CORS_ORIGINS)")
}
