// Package serve implements the serve command.
package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fjacquet/finsight/cmd/root"
	"fjacquet/finsight/internal/api"
	"fjacquet/finsight/internal/logging"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

var address string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the insights and voice API over HTTP",
	RunE:  run,
}

func init() {
	Cmd.Flags().StringVarP(&address, "addr", "a", "", "Listen address (default: server.address from config)")
}

func run(cmd *cobra.Command, _ []string) error {
	c, err := root.NewContainer()
	if err != nil {
		return err
	}
	defer c.Close()

	cfg := c.GetConfig()
	addr := cfg.Server.Address
	if address != "" {
		addr = address
	}

	srv := api.New(api.Config{
		Address:        addr,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Store:          c.GetStore(),
		Engine:         c.GetEngine(),
		Voice:          c.GetVoiceManager(),
		Profile:        c.Profile,
		Logger:         c.GetLogger(),
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return Serve(ctx, srv, c.GetLogger())
}

// Server is what Serve runs; *api.Server satisfies it.
type Server interface {
	Start() error
	Shutdown(ctx context.Context) error
}

// Serve runs srv until ctx is cancelled or the server fails, then shuts it
// down gracefully.
func Serve(ctx context.Context, srv Server, logger logging.Logger) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.Start()
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Error("Server shutdown error")
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Server stopped gracefully", logging.F("pid", os.Getpid()))
	return nil
}
