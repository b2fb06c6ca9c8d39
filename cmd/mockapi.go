package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"backoffice/internal/logger"
	"backoffice/internal/mockapi"
)

var (
	mockAddr    string
	mockToken   string
	mockLogFile string
)

var mockAPICmd = &cobra.Command{
	Use:   "mock-api",
	Short: "Serve the admin API from in-memory sample data",
	RunE: func(cmd *cobra.Command, _ []string) error {
		level := "info"
		if verbose {
			level = "debug"
		}
		log, err := logger.Setup(logger.Options{Path: mockLogFile, Level: level})
		if err != nil {
			return err
		}
		defer logger.Sync()

		srv := &http.Server{
			Addr:              mockAddr,
			Handler:           mockapi.NewRouter(mockapi.NewSeededStore(), mockapi.Options{Token: mockToken, Logger: *log}),
			ReadHeaderTimeout: 5 * time.Second,
		}

		cmd.Printf("mock api listening on %s\n", mockAddr)
		return serve(logger.WithLogger(cmd.Context(), log), srv)
	},
}

func init() {
	mockAPICmd.Flags().StringVar(&mockAddr, "addr", "127.0.0.1:8080", "listen address")
	mockAPICmd.Flags().StringVar(&mockToken, "token", "", "require this bearer token")
	mockAPICmd.Flags().StringVar(&mockLogFile, "log-file", "mockapi.log", "request log file, empty to disable")
}

// serve runs srv until ctx is done, then shuts it down
func serve(ctx context.Context, srv *http.Server) error {
	log := logger.FromContext(ctx)
	log.Info("mock api started", "addr", srv.Addr)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info("mock api shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
