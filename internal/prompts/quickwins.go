package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// QuickWinsPrompt handles the wa-quick-wins MCP prompt. It asks the AI
// to surface the cheapest high-impact improvements.
type QuickWinsPrompt struct{}

// NewQuickWinsPrompt creates a QuickWinsPrompt.
func NewQuickWinsPrompt() *QuickWinsPrompt {
	return &QuickWinsPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *QuickWinsPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("wa-quick-wins",
		mcp.WithPromptDescription(
			"Find the quick wins: low-effort best practices that retire HIGH or "+
				"MEDIUM risk, with a SMART plan for each.",
		),
		mcp.WithArgument("pillars",
			mcp.ArgumentDescription("Comma-separated pillars to focus on; empty covers all six"),
		),
	)
}

// Handle processes the wa-quick-wins prompt request.
func (p *QuickWinsPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	pillars := ""
	if args := req.Params.Arguments; args != nil {
		pillars = args["pillars"]
	}

	scope := "all pillars"
	if pillars != "" {
		scope = pillars
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Quick wins for %s", scope),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"Show me the quick wins for %s.\n\n"+
						"Please:\n"+
						"1. Run `get_smart_solutions` with pillars='%s' and quick_wins_only=true\n"+
						"2. Cross-check against `get_priority_analysis` so the ordering reflects risk\n"+
						"3. Summarize each win in one line: what to do, how long it should take, and what risk it retires\n",
					scope, pillars,
				)),
			},
		},
	}, nil
}
