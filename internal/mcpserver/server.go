// Package mcpserver exposes the analysis service as MCP tools over stdio.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/sells-group/scorecard/internal/analysis"
)

const instructions = "Scorecard scores survey answers for one subcomponent of the 16-block taxonomy. " +
	"Call describe_subcomponent to see the dimensions an id is scored on, then analyze_subcomponent with the answers."

// New creates an MCP server with the scorecard tools registered.
func New(svc *analysis.Service, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"scorecard",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	analyzeTool := NewAnalyzeTool(svc)
	s.AddTool(analyzeTool.Definition(), analyzeTool.Handle)

	describeTool := NewDescribeTool(svc)
	s.AddTool(describeTool.Definition(), describeTool.Handle)

	return s
}

// ServeStdio blocks serving s on stdin and stdout.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
