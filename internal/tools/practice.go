package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ksuarez/archadvisor/internal/knowledge"
)

// PracticeTool handles the get_best_practice MCP tool.
type PracticeTool struct {
	store *knowledge.Store
}

// NewPracticeTool creates a PracticeTool.
func NewPracticeTool(store *knowledge.Store) *PracticeTool {
	return &PracticeTool{store: store}
}

// Definition returns the MCP tool definition for get_best_practice.
func (t *PracticeTool) Definition() mcp.Tool {
	return mcp.NewTool("get_best_practice",
		mcp.WithDescription(
			"Fetch the full record for one best practice by id, including its "+
				"desired outcome, assessment questions, implementation guidance, and "+
				"related practice ids.",
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Best practice id, e.g. SEC01-BP01"),
		),
	)
}

// Handle processes the get_best_practice tool call.
func (t *PracticeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := strings.TrimSpace(req.GetString("id", ""))
	if id == "" {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	bp, err := t.store.Get(id)
	if err != nil {
		return errResult(err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s: %s\n\n", bp.ID, bp.Title)
	fmt.Fprintf(&b, "**Pillar:** %s | **Risk:** %s | **Lens:** %s\n", bp.Pillar, bp.Risk, bp.Lens)
	if len(bp.Area) > 0 {
		fmt.Fprintf(&b, "**Areas:** %s\n", strings.Join(bp.Area, ", "))
	}
	if bp.RequiresUserInput {
		b.WriteString("**Requires user input** for assessment.\n")
	}
	fmt.Fprintf(&b, "\n%s\n", bp.Description)
	if bp.Outcome != "" {
		fmt.Fprintf(&b, "\n**Desired outcome:** %s\n", bp.Outcome)
	}
	if len(bp.Questions) > 0 {
		b.WriteString("\n## Assessment questions\n\n")
		for _, q := range bp.Questions {
			fmt.Fprintf(&b, "- %s\n", q)
		}
	}
	if len(bp.ImplementationGuidance) > 0 {
		b.WriteString("\n## Implementation guidance\n\n")
		for i, step := range bp.ImplementationGuidance {
			fmt.Fprintf(&b, "%d. %s\n", i+1, step)
		}
	}
	if len(bp.RelatedIDs) > 0 {
		fmt.Fprintf(&b, "\n**Related:** %s\n", strings.Join(bp.RelatedIDs, ", "))
	}
	if bp.HRef != "" {
		fmt.Fprintf(&b, "\nReference: %s\n", bp.HRef)
	}
	return mcp.NewToolResultText(b.String()), nil
}
