package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/gdocs-cli/gdocs/internal/docs"
	"github.com/gdocs-cli/gdocs/internal/google"
	"github.com/gdocs-cli/gdocs/internal/logging"
	"github.com/gdocs-cli/gdocs/internal/tools/docstools"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server for AI assistants",
		Long: `Runs a Model Context Protocol server on stdin/stdout, exposing
document tools to MCP clients such as coding assistants. Accounts are
resolved per tool call: an explicit account argument wins, otherwise
the usual GDOCS_ACCOUNT/default chain applies.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mcpSrv := mcpserver.NewMCPServer("gdocs", version,
				mcpserver.WithToolCapabilities(true),
			)

			docstools.RegisterDocsTools(mcpSrv, func(ctx context.Context, account string) (*docs.Client, error) {
				st, err := openStore()
				if err != nil {
					return nil, err
				}
				if account == "" {
					account = accountFlag
				}
				resolved, err := google.ResolveAccount(st, account)
				if err != nil {
					return nil, err
				}
				return docs.NewClient(ctx, st, resolved)
			})

			slog.Debug("starting MCP server on stdio", logging.Operation("serve"))
			return mcpserver.ServeStdio(mcpSrv)
		},
	}
}
