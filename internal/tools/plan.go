package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ksuarez/archadvisor/internal/review"
)

// PlanTool handles the create_review_plan MCP tool.
type PlanTool struct {
	reviews *review.Orchestrator
}

// NewPlanTool creates a PlanTool.
func NewPlanTool(reviews *review.Orchestrator) *PlanTool {
	return &PlanTool{reviews: reviews}
}

// Definition returns the MCP tool definition for create_review_plan.
func (t *PlanTool) Definition() mcp.Tool {
	return mcp.NewTool("create_review_plan",
		mcp.WithDescription(
			"Start a review session for a workload. Enumerates the practices for "+
				"the selected pillars and lists which ones need answers collected "+
				"via collect_user_input before the review can be finalized.",
		),
		mcp.WithString("workload_name",
			mcp.Required(),
			mcp.Description("Name of the workload under review"),
		),
		mcp.WithString("pillars",
			mcp.Description("Comma-separated pillar filter; empty means all pillars"),
		),
		mcp.WithString("workload_context",
			mcp.Description("Free-text workload description used for automatic assessment"),
		),
	)
}

// Handle processes the create_review_plan tool call.
func (t *PlanTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workload := strings.TrimSpace(req.GetString("workload_name", ""))
	if workload == "" {
		return mcp.NewToolResultError("'workload_name' is required"), nil
	}
	pillars, err := pillarsArg(req, "pillars")
	if err != nil {
		return errResult(err)
	}

	sess := t.reviews.Plan(workload, pillars, req.GetString("workload_context", ""))

	var b strings.Builder
	b.WriteString("# Review plan created\n\n")
	fmt.Fprintf(&b, "**Session:** `%s`\n", sess.ID)
	fmt.Fprintf(&b, "**Workload:** %s\n", sess.Workload)
	fmt.Fprintf(&b, "**Phase:** %s\n", sess.Phase)
	fmt.Fprintf(&b, "**Practices in scope:** %d\n", len(sess.Practices))

	if len(sess.Pending) == 0 {
		b.WriteString("\nNo practices need user input. Call finalize_review to generate the decision records.\n")
		return mcp.NewToolResultText(b.String()), nil
	}

	fmt.Fprintf(&b, "\n%d practices need answers (collect_user_input):\n", len(sess.Pending))
	for _, bp := range sess.Practices {
		questions, ok := sess.Pending[bp.ID]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "\n## %s — %s\n\n", bp.ID, bp.Title)
		for _, q := range questions {
			fmt.Fprintf(&b, "- %s\n", q)
		}
	}
	return mcp.NewToolResultText(b.String()), nil
}
