package main

import (
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/javaide/classview/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve member and class completion over MCP on stdio",
	Long: `Run an MCP server on stdin/stdout exposing the suggest_members,
find_member and suggest_classes tools. Logs go to stderr.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	s := server.New(server.NewMemberHandler(registry, cp, logger))

	logger.Info("classview MCP server starting", "version", server.Version, "classpath", cp.Locations())
	if err := mcpserver.ServeStdio(s); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
