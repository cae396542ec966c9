package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	mcpserver "github.com/ziadkadry99/sitecraft/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing website generation, editing and rendering tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
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

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		logger.Info("MCP server started on stdio", zap.String("database", cfg.DatabasePath()))

		srv := mcpserver.NewServer(ws.manager, ws.store, string(cfg.Environment))
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
