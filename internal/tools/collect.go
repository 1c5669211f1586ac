package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ksuarez/archadvisor/internal/review"
)

// CollectTool handles the collect_user_input MCP tool.
type CollectTool struct {
	reviews *review.Orchestrator
}

// NewCollectTool creates a CollectTool.
func NewCollectTool(reviews *review.Orchestrator) *CollectTool {
	return &CollectTool{reviews: reviews}
}

// Definition returns the MCP tool definition for collect_user_input.
func (t *CollectTool) Definition() mcp.Tool {
	return mcp.NewTool("collect_user_input",
		mcp.WithDescription(
			"Record the user's answers to one practice's assessment questions in "+
				"an open review session. The first recorded answers move the session "+
				"from LEARN to MEASURE.",
		),
		mcp.WithString("practice_id",
			mcp.Required(),
			mcp.Description("Best practice id the answers belong to"),
		),
		mcp.WithObject("responses",
			mcp.Required(),
			mcp.Description("Question-to-answer map for the practice"),
		),
		mcp.WithString("session_id",
			mcp.Description("Review session id; defaults to the most recent session"),
		),
	)
}

// Handle processes the collect_user_input tool call.
func (t *CollectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	practiceID := strings.TrimSpace(req.GetString("practice_id", ""))
	if practiceID == "" {
		return mcp.NewToolResultError("'practice_id' is required"), nil
	}
	responses := stringMapArg(req, "responses")
	if len(responses) == 0 {
		return mcp.NewToolResultError("'responses' is required and must map questions to answers"), nil
	}
	sessionID := req.GetString("session_id", "")

	sess, err := t.reviews.CollectInput(sessionID, practiceID, responses)
	if err != nil {
		if errors.Is(err, review.ErrSessionClosed) ||
			errors.Is(err, review.ErrSessionNotFound) ||
			errors.Is(err, review.ErrNoActiveSession) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return errResult(err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Recorded %d answers for %s.\n\n", len(responses), practiceID)
	fmt.Fprintf(&b, "**Session:** `%s` | **Phase:** %s\n", sess.ID, sess.Phase)
	if len(sess.Pending) == 0 {
		b.WriteString("\nAll questions are answered. Call finalize_review to generate the decision records.\n")
	} else {
		fmt.Fprintf(&b, "\n%d practices still await input.\n", len(sess.Pending))
	}
	return mcp.NewToolResultText(b.String()), nil
}
