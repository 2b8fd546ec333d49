package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/csslab/internal/catalog"
	"github.com/ziadkadry99/csslab/internal/config"
	"github.com/ziadkadry99/csslab/internal/lab"
	"github.com/ziadkadry99/csslab/internal/notify"
	"github.com/ziadkadry99/csslab/internal/server"
)

var (
	servePort      int
	serveEphemeral bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the lab in your browser",
	Long: `Starts the local lab server. Open the printed address in a browser to
work through the exercises. Progress is saved to the configured store
unless --ephemeral is given.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (overrides config)")
	serveCmd.Flags().BoolVar(&serveEphemeral, "ephemeral", false, "keep progress in memory only")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := openRuntime(ctx, serveEphemeral)
	if err != nil {
		return err
	}
	defer rt.Close()

	port := rt.cfg.Port
	if servePort != 0 {
		port = servePort
	}

	srv := server.New(server.Config{
		Port:     port,
		AllowAll: rt.cfg.AllowAllOrigins,
	}, rt.logger.Named("http"))

	l, err := lab.New(rt.manager, rt.dispatcher, rt.logger.Named("lab"))
	if err != nil {
		return fmt.Errorf("building lab: %w", err)
	}
	l.RegisterRoutes(srv.Router())
	if rt.toasts != nil {
		notify.RegisterRoutes(srv.Router(), rt.toasts)
	}

	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			rt.logger.Warn("shutdown", zap.Error(err))
		}
	}()

	snap := rt.manager.Snapshot()
	fmt.Fprintf(os.Stderr, "csslab %s listening on http://localhost:%d\n", Version, port)
	fmt.Fprintf(os.Stderr, "  Store: %s\n", storeDescription(rt.cfg))
	fmt.Fprintf(os.Stderr, "  Exercise: %d/%d %s\n", snap.Index+1, catalog.Len(), snap.Exercise.Title)
	fmt.Fprintf(os.Stderr, "  Completed: %d/%d\n", len(snap.Completed), catalog.Len())

	return srv.Start()
}

func storeDescription(cfg *config.Config) string {
	switch cfg.Store {
	case config.StoreSQLite:
		return "sqlite (" + cfg.DatabasePath() + ")"
	case config.StoreRedis:
		return "redis"
	default:
		return string(cfg.Store)
	}
}
