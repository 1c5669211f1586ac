package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ksuarez/archadvisor/internal/history"
)

// HistoryTool handles the get_review_history MCP tool.
type HistoryTool struct {
	store *history.Store
}

// NewHistoryTool creates a HistoryTool.
func NewHistoryTool(store *history.Store) *HistoryTool {
	return &HistoryTool{store: store}
}

// Definition returns the MCP tool definition for get_review_history.
func (t *HistoryTool) Definition() mcp.Tool {
	return mcp.NewTool("get_review_history",
		mcp.WithDescription(
			"Look up past reviews from the archive. With a query, runs full-text "+
				"search over archived decision records; without one, lists the most "+
				"recent reviews.",
		),
		mcp.WithString("query",
			mcp.Description("Full-text query over decision record titles and decisions"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Max results (default: 10)"),
		),
	)
}

// Handle processes the get_review_history tool call.
func (t *HistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := strings.TrimSpace(req.GetString("query", ""))
	limit := intArg(req, "limit", 10)

	if query == "" {
		reviews, err := t.store.Recent(limit)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("history lookup failed: %v", err)), nil
		}
		if len(reviews) == 0 {
			return mcp.NewToolResultText("No archived reviews yet."), nil
		}
		var b strings.Builder
		fmt.Fprintf(&b, "%d recent reviews:\n\n", len(reviews))
		for _, r := range reviews {
			fmt.Fprintf(&b, "- %s — %s (%d records, pillars: %s) `%s`\n",
				r.CreatedAt, r.Workload, r.ADRCount, r.Pillars, r.ID)
		}
		return mcp.NewToolResultText(b.String()), nil
	}

	results, err := t.store.Search(query, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("history search failed: %v", err)), nil
	}
	if len(results) == 0 {
		return mcp.NewToolResultText("No archived decision records match the query."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d archived decision records:\n\n", len(results))
	for i, r := range results {
		fmt.Fprintf(&b, "[%d] %s — %s (%s, %s risk, %s)\n    %s\n    review `%s`, %s\n\n",
			i+1, r.PracticeID, r.Title, r.Pillar, r.Risk, r.Status,
			r.Decision, r.ReviewID, r.CreatedAt)
	}
	return mcp.NewToolResultText(b.String()), nil
}
