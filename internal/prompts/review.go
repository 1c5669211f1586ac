// Package prompts implements the MCP prompt handlers.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// ReviewPrompt handles the wa-review MCP prompt. It guides the AI
// through the interactive review workflow for a workload.
type ReviewPrompt struct{}

// NewReviewPrompt creates a ReviewPrompt.
func NewReviewPrompt() *ReviewPrompt {
	return &ReviewPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *ReviewPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("wa-review",
		mcp.WithPromptDescription(
			"Run a Well-Architected review of a workload. "+
				"Walks through planning the review, answering the assessment "+
				"questions, and generating prioritized decision records.",
		),
		mcp.WithArgument("workload_name",
			mcp.ArgumentDescription("Name of the workload to review"),
		),
		mcp.WithArgument("pillars",
			mcp.ArgumentDescription("Comma-separated pillars to focus on; empty reviews all six"),
		),
	)
}

// Handle processes the wa-review prompt request.
func (p *ReviewPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	workload := "my-workload"
	pillars := ""
	if args := req.Params.Arguments; args != nil {
		if w, ok := args["workload_name"]; ok && w != "" {
			workload = w
		}
		pillars = args["pillars"]
	}

	scope := "all six pillars"
	if pillars != "" {
		scope = "the " + pillars + " pillar(s)"
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Well-Architected review: %s", workload),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I want to run a Well-Architected review of '%s' covering %s.\n\n"+
						"Please:\n"+
						"1. Ask me to describe the workload (architecture, data, traffic, team practices)\n"+
						"2. Run `create_review_plan` with workload_name='%s', pillars='%s', and my description as workload_context\n"+
						"3. For each practice the plan lists as needing input, ask me its questions and record my answers with `collect_user_input`\n"+
						"4. When nothing is pending, run `finalize_review` and walk me through the generated decision records, highest priority first\n",
					workload, scope, workload, pillars,
				)),
			},
		},
	}, nil
}
