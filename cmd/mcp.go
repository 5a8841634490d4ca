package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/scorecard/internal/config"
	"github.com/sells-group/scorecard/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the analysis tools over MCP stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context(), config.ModeMCP)
		if err != nil {
			return err
		}
		defer env.Close()

		return mcpserver.ServeStdio(mcpserver.New(env.Service, version))
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
