package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ksuarez/archadvisor/internal/knowledge"
)

// SearchTool handles the search_best_practices MCP tool.
type SearchTool struct {
	store *knowledge.Store
}

// NewSearchTool creates a SearchTool.
func NewSearchTool(store *knowledge.Store) *SearchTool {
	return &SearchTool{store: store}
}

// Definition returns the MCP tool definition for search_best_practices.
func (t *SearchTool) Definition() mcp.Tool {
	return mcp.NewTool("search_best_practices",
		mcp.WithDescription(
			"Search the Well-Architected best practice catalog. All filters are "+
				"optional and combine with AND. With a keyword, results are ranked by "+
				"relevance (title matches weigh double); otherwise catalog order.",
		),
		mcp.WithString("pillar",
			mcp.Description("Filter by pillar: OPERATIONAL_EXCELLENCE, SECURITY, RELIABILITY, PERFORMANCE_EFFICIENCY, COST_OPTIMIZATION, SUSTAINABILITY"),
		),
		mcp.WithString("risk",
			mcp.Description("Filter by risk level: HIGH, MEDIUM, LOW"),
		),
		mcp.WithString("lens",
			mcp.Description("Filter by lens: FRAMEWORK (default dataset) or GENERATIVE_AI"),
		),
		mcp.WithString("area",
			mcp.Description("Filter by area label, case-insensitive substring match"),
		),
		mcp.WithString("keyword",
			mcp.Description("Free-text relevance query over titles and descriptions"),
		),
	)
}

// Handle processes the search_best_practices tool call.
func (t *SearchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opts := knowledge.SearchOptions{
		Pillar:  req.GetString("pillar", ""),
		Risk:    req.GetString("risk", ""),
		Lens:    req.GetString("lens", ""),
		Area:    req.GetString("area", ""),
		Keyword: req.GetString("keyword", ""),
	}

	results, err := t.store.Search(opts)
	if err != nil {
		return errResult(err)
	}
	if len(results) == 0 {
		return mcp.NewToolResultText("No best practices match the given filters."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d best practices:\n\n", len(results))
	for i, bp := range results {
		fmt.Fprintf(&b, "[%d] %s — %s\n    pillar: %s | risk: %s | areas: %s\n",
			i+1, bp.ID, bp.Title, bp.Pillar, bp.Risk, strings.Join(bp.Area, ", "))
		if opts.Keyword != "" {
			fmt.Fprintf(&b, "    relevance: %d\n", t.store.Score(bp.ID, opts.Keyword))
		}
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}
