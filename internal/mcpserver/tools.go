package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/sells-group/scorecard/internal/analysis"
	"github.com/sells-group/scorecard/internal/model"
)

// AnalyzeTool handles the analyze_subcomponent tool.
type AnalyzeTool struct {
	svc *analysis.Service
}

// NewAnalyzeTool creates an AnalyzeTool.
func NewAnalyzeTool(svc *analysis.Service) *AnalyzeTool {
	return &AnalyzeTool{svc: svc}
}

// Definition returns the MCP tool definition for analyze_subcomponent.
func (t *AnalyzeTool) Definition() mcp.Tool {
	return mcp.NewTool("analyze_subcomponent",
		mcp.WithDescription("Score survey answers for a subcomponent and return the dimension analysis and executive summary."),
		mcp.WithString("subcomponent_id",
			mcp.Required(),
			mcp.Description("Subcomponent id such as 3-1"),
		),
		mcp.WithString("responses_json",
			mcp.Required(),
			mcp.Description(`JSON object of question id to answer, e.g. {"q1": "We review weekly", "q2": 4}`),
		),
		mcp.WithString("session_id",
			mcp.Description("Assessment session id; generated when omitted"),
		),
	)
}

// Handle processes the analyze_subcomponent tool call.
func (t *AnalyzeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("subcomponent_id", "")
	if id == "" {
		return mcp.NewToolResultError("'subcomponent_id' is required"), nil
	}

	var responses model.SurveyResponses
	if raw := strings.TrimSpace(req.GetString("responses_json", "")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &responses); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("responses_json is not a JSON object: %v", err)), nil
		}
	}

	res, err := t.svc.Analyze(ctx, model.AnalysisRequest{
		SubcomponentID: id,
		SessionID:      req.GetString("session_id", ""),
		Responses:      responses,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Scorecard %s\n\n", res.SubcomponentID)
	fmt.Fprintf(&sb, "- **Session**: %s\n", res.SessionID)
	fmt.Fprintf(&sb, "- **Overall**: %.0f (%s)\n\n", res.OverallScore, res.OverallBand)
	for _, d := range res.Dimensions {
		fmt.Fprintf(&sb, "### %s: %.0f (%s)\n\n%s\n\n", d.Name, d.Score, d.Band, d.Feedback)
		for _, s := range d.Strengths {
			fmt.Fprintf(&sb, "- + %s\n", s)
		}
		for _, s := range d.Improvements {
			fmt.Fprintf(&sb, "- → %s\n", s)
		}
		sb.WriteString("\n")
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	sb.WriteString("```json\n")
	sb.Write(data)
	sb.WriteString("\n```\n")

	return mcp.NewToolResultText(sb.String()), nil
}

// DescribeTool handles the describe_subcomponent tool.
type DescribeTool struct {
	svc *analysis.Service
}

// NewDescribeTool creates a DescribeTool.
func NewDescribeTool(svc *analysis.Service) *DescribeTool {
	return &DescribeTool{svc: svc}
}

// Definition returns the MCP tool definition for describe_subcomponent.
func (t *DescribeTool) Definition() mcp.Tool {
	return mcp.NewTool("describe_subcomponent",
		mcp.WithDescription("List the scoring dimensions and use cases configured for a subcomponent."),
		mcp.WithString("subcomponent_id",
			mcp.Required(),
			mcp.Description("Subcomponent id such as 3-1"),
		),
	)
}

// Handle processes the describe_subcomponent tool call.
func (t *DescribeTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("subcomponent_id", "")
	if id == "" {
		return mcp.NewToolResultError("'subcomponent_id' is required"), nil
	}

	sub, defaulted, err := t.svc.Subcomponent(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	title := sub.ID
	if sub.Name != "" {
		title += " " + sub.Name
	}
	fmt.Fprintf(&sb, "## %s\n\n", title)
	if defaulted {
		sb.WriteString("_No dimensions configured; block defaults apply._\n\n")
	}
	sb.WriteString("### Dimensions\n\n")
	for i, d := range sub.Dimensions {
		fmt.Fprintf(&sb, "%d. **%s** (weight %.0f)", i+1, d.Name, d.EffectiveWeight())
		if d.Description != "" {
			sb.WriteString(": " + d.Description)
		}
		sb.WriteString("\n")
	}
	if len(sub.UseCases) > 0 {
		sb.WriteString("\n### Use cases\n\n")
		for _, uc := range sub.UseCases {
			fmt.Fprintf(&sb, "- **%s**: %s\n", uc.Company, uc.KeyInsight)
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}
