package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ksuarez/archadvisor/internal/history"
	"github.com/ksuarez/archadvisor/internal/review"
)

// Archiver records completed reviews. Satisfied by *history.Store; nil
// when the archive is disabled.
type Archiver interface {
	RecordReview(sess *review.Session) error
}

// FinalizeTool handles the finalize_review MCP tool.
type FinalizeTool struct {
	reviews   *review.Orchestrator
	archive   Archiver
	outputDir string
}

// NewFinalizeTool creates a FinalizeTool. archive may be nil.
func NewFinalizeTool(reviews *review.Orchestrator, archive Archiver, outputDir string) *FinalizeTool {
	return &FinalizeTool{reviews: reviews, archive: archive, outputDir: outputDir}
}

// Definition returns the MCP tool definition for finalize_review.
func (t *FinalizeTool) Definition() mcp.Tool {
	return mcp.NewTool("finalize_review",
		mcp.WithDescription(
			"Finish a review session: assess every practice, prioritize, and write "+
				"one architecture decision record per practice plus a README index. "+
				"Fails while questions remain unanswered unless force is set, in "+
				"which case the affected practices are marked INCOMPLETE. Closes the "+
				"session.",
		),
		mcp.WithString("session_id",
			mcp.Description("Review session id; defaults to the most recent session"),
		),
		mcp.WithBoolean("force",
			mcp.Description("Finalize even with unanswered questions (default: false)"),
		),
		mcp.WithString("output_directory",
			mcp.Description("Directory for the ADR files; defaults to the configured output dir"),
		),
	)
}

// Handle processes the finalize_review tool call.
func (t *FinalizeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := req.GetString("session_id", "")
	force := boolArg(req, "force", false)
	outDir := req.GetString("output_directory", "")
	if outDir == "" {
		outDir = t.outputDir
	}

	sess, err := t.reviews.Improve(sessionID, force)
	if err != nil {
		if errors.Is(err, review.ErrIncompleteAssessment) ||
			errors.Is(err, review.ErrSessionClosed) ||
			errors.Is(err, review.ErrSessionNotFound) ||
			errors.Is(err, review.ErrNoActiveSession) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return errResult(err)
	}

	if err := review.WriteADRs(sess.ADRs, outDir); err != nil {
		return nil, fmt.Errorf("writing decision records: %w", err)
	}
	if t.archive != nil {
		if err := t.archive.RecordReview(sess); err != nil {
			// Archive failures never fail the review itself.
			slog.Warn("could not archive review", "session", sess.ID, "error", err)
		}
	}

	return mcp.NewToolResultText(renderReviewSummary(sess, outDir)), nil
}

// renderReviewSummary is shared by finalize_review and the one-shot
// review tool.
func renderReviewSummary(sess *review.Session, outDir string) string {
	counts := make(map[review.Status]int)
	for _, a := range sess.ADRs {
		counts[a.Status]++
	}

	var b strings.Builder
	b.WriteString("# Review complete\n\n")
	fmt.Fprintf(&b, "**Session:** `%s`\n", sess.ID)
	fmt.Fprintf(&b, "**Workload:** %s\n", sess.Workload)
	fmt.Fprintf(&b, "**Decision records:** %d, written to `%s/` (see README.md there)\n\n", len(sess.ADRs), outDir)

	b.WriteString("Assessment breakdown:\n")
	for _, st := range []review.Status{
		review.StatusCompliant, review.StatusNonCompliant,
		review.StatusNeedsReview, review.StatusIncomplete,
	} {
		if counts[st] > 0 {
			fmt.Fprintf(&b, "- %s: %d\n", st, counts[st])
		}
	}

	b.WriteString("\nTop records by priority:\n")
	for i, a := range sess.ADRs {
		if i == 5 {
			break
		}
		fmt.Fprintf(&b, "%d. [score %d] %s — %s (%s, %s)\n",
			i+1, a.Score, a.PracticeID, a.Title, a.Quadrant, a.Status)
	}
	return b.String()
}

// ensure *history.Store keeps satisfying Archiver
var _ Archiver = (*history.Store)(nil)
