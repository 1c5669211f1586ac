package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ksuarez/archadvisor/internal/knowledge"
)

// PillarsTool handles the list_pillars MCP tool.
type PillarsTool struct {
	store *knowledge.Store
}

// NewPillarsTool creates a PillarsTool.
func NewPillarsTool(store *knowledge.Store) *PillarsTool {
	return &PillarsTool{store: store}
}

// Definition returns the MCP tool definition for list_pillars.
func (t *PillarsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_pillars",
		mcp.WithDescription(
			"List the Well-Architected pillars in canonical order with the number "+
				"of catalog practices in each, plus the available lenses.",
		),
	)
}

// Handle processes the list_pillars tool call.
func (t *PillarsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var b strings.Builder
	b.WriteString("Well-Architected pillars:\n\n")
	for _, pc := range t.store.Pillars() {
		fmt.Fprintf(&b, "- %s: %d practices\n", pc.Pillar, pc.Count)
	}

	lenses := t.store.Lenses()
	names := make([]string, len(lenses))
	for i, l := range lenses {
		names[i] = string(l)
	}
	fmt.Fprintf(&b, "\nLenses: %s\n", strings.Join(names, ", "))
	return mcp.NewToolResultText(b.String()), nil
}
