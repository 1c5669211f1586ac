package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ksuarez/archadvisor/internal/knowledge"
)

// RelatedTool handles the get_related_practices MCP tool.
type RelatedTool struct {
	store *knowledge.Store
}

// NewRelatedTool creates a RelatedTool.
func NewRelatedTool(store *knowledge.Store) *RelatedTool {
	return &RelatedTool{store: store}
}

// Definition returns the MCP tool definition for get_related_practices.
func (t *RelatedTool) Definition() mcp.Tool {
	return mcp.NewTool("get_related_practices",
		mcp.WithDescription(
			"Walk the relationship graph from one practice. Relationships are "+
				"symmetric, so a practice is reachable from everything that names it. "+
				"Depth 1 returns direct neighbors; higher depths expand hop by hop.",
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Best practice id to start from"),
		),
		mcp.WithNumber("depth",
			mcp.Description("Traversal depth in hops (default: 1)"),
		),
	)
}

// Handle processes the get_related_practices tool call.
func (t *RelatedTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := strings.TrimSpace(req.GetString("id", ""))
	if id == "" {
		return mcp.NewToolResultError("'id' is required"), nil
	}
	depth := intArg(req, "depth", knowledge.DefaultRelatedDepth)

	related, err := t.store.Related(id, depth)
	if err != nil {
		return errResult(err)
	}
	if len(related) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("%s has no related practices.", id)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d practices related to %s (depth %d):\n\n", len(related), id, depth)
	for _, bp := range related {
		fmt.Fprintf(&b, "- %s — %s (%s, %s risk)\n", bp.ID, bp.Title, bp.Pillar, bp.Risk)
	}
	return mcp.NewToolResultText(b.String()), nil
}
