package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ksuarez/archadvisor/internal/priority"
)

// MatrixTool handles the get_eisenhower_matrix MCP tool.
type MatrixTool struct {
	engine *priority.Engine
}

// NewMatrixTool creates a MatrixTool.
func NewMatrixTool(engine *priority.Engine) *MatrixTool {
	return &MatrixTool{engine: engine}
}

// Definition returns the MCP tool definition for get_eisenhower_matrix.
func (t *MatrixTool) Definition() mcp.Tool {
	return mcp.NewTool("get_eisenhower_matrix",
		mcp.WithDescription(
			"Classify best practices into the four Eisenhower quadrants "+
				"(DO_FIRST, SCHEDULE, DELEGATE, ELIMINATE) from their risk level, "+
				"graph connectivity, and whether they need workload-specific input.",
		),
		mcp.WithString("pillars",
			mcp.Description("Comma-separated pillar filter; empty means all pillars"),
		),
	)
}

// Handle processes the get_eisenhower_matrix tool call.
func (t *MatrixTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pillars, err := pillarsArg(req, "pillars")
	if err != nil {
		return errResult(err)
	}

	matrix := t.engine.Matrix(pillars)

	var b strings.Builder
	b.WriteString("Eisenhower matrix:\n")
	for _, q := range priority.QuadrantOrder {
		entries := matrix[q]
		fmt.Fprintf(&b, "\n## %s — %s (%d)\n\n", q, priority.Action(q), len(entries))
		if len(entries) == 0 {
			b.WriteString("(none)\n")
			continue
		}
		for _, bp := range entries {
			fmt.Fprintf(&b, "- %s — %s (%s, %s risk)\n", bp.ID, bp.Title, bp.Pillar, bp.Risk)
		}
	}
	return mcp.NewToolResultText(b.String()), nil
}
