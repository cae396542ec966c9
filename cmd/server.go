package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/sitecraft/internal/server"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the editor API and live preview server",
	Long:  `Starts the HTTP server exposing the project REST API and the websocket preview feed used by the visual editor.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = serverPort
		}
		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync()

		ws, err := openWorkspace(cfg, logger)
		if err != nil {
			return err
		}
		defer ws.Close()

		srv := server.New(server.Config{
			Port:        cfg.Port,
			Environment: string(cfg.Environment),
			AllowAll:    true,
		}, ws.manager, ws.store, logger)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		logger.Info("server starting",
			zap.String("version", Version),
			zap.Int("port", cfg.Port),
			zap.String("database", cfg.DatabasePath()),
			zap.String("environment", string(cfg.Environment)))

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serverCmd)
}
