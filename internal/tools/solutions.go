package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ksuarez/archadvisor/internal/knowledge"
	"github.com/ksuarez/archadvisor/internal/smart"
)

// SolutionsTool handles the get_smart_solutions MCP tool.
type SolutionsTool struct {
	store *knowledge.Store
}

// NewSolutionsTool creates a SolutionsTool.
func NewSolutionsTool(store *knowledge.Store) *SolutionsTool {
	return &SolutionsTool{store: store}
}

// Definition returns the MCP tool definition for get_smart_solutions.
func (t *SolutionsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_smart_solutions",
		mcp.WithDescription(
			"Generate SMART solutions (Specific, Measurable, Achievable, Relevant, "+
				"Time-bound) for best practices. Effort and deadline derive from risk "+
				"and whether the practice needs workload input. Quick wins are low "+
				"effort with HIGH or MEDIUM risk.",
		),
		mcp.WithString("pillars",
			mcp.Description("Comma-separated pillar filter; empty means all pillars"),
		),
		mcp.WithString("workload_context",
			mcp.Description("Free-text workload description, woven into each solution's relevance"),
		),
		mcp.WithBoolean("quick_wins_only",
			mcp.Description("Return only quick wins (default: false)"),
		),
	)
}

// Handle processes the get_smart_solutions tool call.
func (t *SolutionsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pillars, err := pillarsArg(req, "pillars")
	if err != nil {
		return errResult(err)
	}
	workloadContext := req.GetString("workload_context", "")
	quickWinsOnly := boolArg(req, "quick_wins_only", false)

	practices := t.store.All()
	if len(pillars) > 0 {
		practices = t.store.ByPillars(pillars)
	}
	solutions := smart.GenerateAll(practices, workloadContext, quickWinsOnly)
	if len(solutions) == 0 {
		if quickWinsOnly {
			return mcp.NewToolResultText("No quick wins in the selected pillars."), nil
		}
		return mcp.NewToolResultText("No practices match the selected pillars."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generated %d SMART solutions:\n", len(solutions))
	for _, s := range solutions {
		fmt.Fprintf(&b, "\n## %s (%s, %s risk)\n\n", s.PracticeID, s.Pillar, s.Risk)
		fmt.Fprintf(&b, "- Specific: %s\n", s.Specific)
		fmt.Fprintf(&b, "- Measurable: %s\n", s.Measurable)
		fmt.Fprintf(&b, "- Achievable: %s effort\n", s.Achievable)
		fmt.Fprintf(&b, "- Relevant: %s\n", s.Relevant)
		fmt.Fprintf(&b, "- Time-bound: %s\n", s.TimeBound)
	}
	return mcp.NewToolResultText(b.String()), nil
}
