package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ksuarez/archadvisor/internal/review"
)

// ReviewTool handles the review MCP tool, the one-shot path through
// the review workflow.
type ReviewTool struct {
	reviews   *review.Orchestrator
	archive   Archiver
	outputDir string
}

// NewReviewTool creates a ReviewTool. archive may be nil.
func NewReviewTool(reviews *review.Orchestrator, archive Archiver, outputDir string) *ReviewTool {
	return &ReviewTool{reviews: reviews, archive: archive, outputDir: outputDir}
}

// Definition returns the MCP tool definition for review.
func (t *ReviewTool) Definition() mcp.Tool {
	return mcp.NewTool("review",
		mcp.WithDescription(
			"Run a full review in one call: plan, assess, prioritize, and write "+
				"the decision records. Practices needing user input make the call "+
				"fail unless force is set; use create_review_plan plus "+
				"collect_user_input for the interactive path instead.",
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
		mcp.WithArray("documentation_paths",
			mcp.Description("Architecture document files whose contents are folded into the assessment context"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithBoolean("force",
			mcp.Description("Proceed even when practices need unanswered input (default: false)"),
		),
		mcp.WithString("output_directory",
			mcp.Description("Directory for the ADR files; defaults to the configured output dir"),
		),
	)
}

// Handle processes the review tool call.
func (t *ReviewTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workload := strings.TrimSpace(req.GetString("workload_name", ""))
	if workload == "" {
		return mcp.NewToolResultError("'workload_name' is required"), nil
	}
	pillars, err := pillarsArg(req, "pillars")
	if err != nil {
		return errResult(err)
	}
	workloadContext := req.GetString("workload_context", "")
	for _, p := range stringListArg(req, "documentation_paths") {
		data, err := os.ReadFile(p)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("cannot read documentation file %s: %v", p, err)), nil
		}
		workloadContext += "\n\n" + string(data)
	}
	force := boolArg(req, "force", false)
	outDir := req.GetString("output_directory", "")
	if outDir == "" {
		outDir = t.outputDir
	}

	sess, err := t.reviews.RunReview(workload, pillars, workloadContext, force)
	if err != nil {
		if errors.Is(err, review.ErrIncompleteAssessment) {
			return mcp.NewToolResultError(err.Error() +
				" (answer them via create_review_plan and collect_user_input, or retry with force)"), nil
		}
		return errResult(err)
	}

	if err := review.WriteADRs(sess.ADRs, outDir); err != nil {
		return nil, fmt.Errorf("writing decision records: %w", err)
	}
	if t.archive != nil {
		if err := t.archive.RecordReview(sess); err != nil {
			slog.Warn("could not archive review", "session", sess.ID, "error", err)
		}
	}
	return mcp.NewToolResultText(renderReviewSummary(sess, outDir)), nil
}
