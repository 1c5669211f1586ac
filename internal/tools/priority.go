package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ksuarez/archadvisor/internal/priority"
)

// PriorityTool handles the get_priority_analysis MCP tool.
type PriorityTool struct {
	engine *priority.Engine
}

// NewPriorityTool creates a PriorityTool.
func NewPriorityTool(engine *priority.Engine) *PriorityTool {
	return &PriorityTool{engine: engine}
}

// Definition returns the MCP tool definition for get_priority_analysis.
func (t *PriorityTool) Definition() mcp.Tool {
	return mcp.NewTool("get_priority_analysis",
		mcp.WithDescription(
			"Return the top priority best practices, ranked by a risk-weighted "+
				"score that also rewards well-connected practices and ones needing "+
				"workload-specific input. Deterministic for an unchanged catalog.",
		),
		mcp.WithString("pillars",
			mcp.Description("Comma-separated pillar filter; empty means all pillars"),
		),
		mcp.WithNumber("count",
			mcp.Description("How many actions to return: 3, 5, or 10 (default: 5)"),
		),
	)
}

// Handle processes the get_priority_analysis tool call.
func (t *PriorityTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pillars, err := pillarsArg(req, "pillars")
	if err != nil {
		return errResult(err)
	}
	count := intArg(req, "count", 5)

	ranked, err := t.engine.TopN(pillars, count)
	if err != nil {
		return errResult(err)
	}
	if len(ranked) == 0 {
		return mcp.NewToolResultText("No practices match the selected pillars."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Top %d priority actions:\n\n", len(ranked))
	for i, sp := range ranked {
		fmt.Fprintf(&b, "%d. [score %d] %s — %s (%s, %s risk)\n",
			i+1, sp.Score, sp.Practice.ID, sp.Practice.Title, sp.Practice.Pillar, sp.Practice.Risk)
	}
	return mcp.NewToolResultText(b.String()), nil
}
