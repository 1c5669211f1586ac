package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ksuarez/archadvisor/internal/knowledge"
	"github.com/ksuarez/archadvisor/internal/smart"
)

// FixTool handles the ask_implementation_fix MCP tool.
type FixTool struct {
	store *knowledge.Store
}

// pillarPrerequisites lists what should already be in place before
// starting remediation work on a pillar's practices.
var pillarPrerequisites = map[knowledge.Pillar][]string{
	knowledge.OperationalExcellence: {
		"Runbooks and operational procedures stored as code",
		"A deployment pipeline that records every change",
	},
	knowledge.Security: {
		"CloudTrail enabled in every region",
		"An IAM baseline with MFA on privileged users",
	},
	knowledge.Reliability: {
		"Health checks and alarms on the critical request path",
		"Backups verified by an actual restore test",
	},
	knowledge.PerformanceEfficiency: {
		"Baseline latency and throughput metrics",
		"A load test that mirrors production traffic",
	},
	knowledge.CostOptimization: {
		"Cost allocation tags on all resources",
		"Budgets and billing alerts configured",
	},
	knowledge.Sustainability: {
		"Utilization metrics collected per service",
		"A documented region selection policy",
	},
}

// NewFixTool creates a FixTool.
func NewFixTool(store *knowledge.Store) *FixTool {
	return &FixTool{store: store}
}

// Definition returns the MCP tool definition for ask_implementation_fix.
func (t *FixTool) Definition() mcp.Tool {
	return mcp.NewTool("ask_implementation_fix",
		mcp.WithDescription(
			"Get remediation guidance for one best practice: implementation steps, "+
				"the questions to answer about the workload, a SMART fix plan, and "+
				"where to read more.",
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Best practice id to remediate"),
		),
		mcp.WithString("workload_context",
			mcp.Description("Free-text workload description to tailor the plan"),
		),
		mcp.WithString("preferred_approach",
			mcp.Description("How the caller wants to implement the fix, e.g. 'terraform' or 'console first'"),
		),
	)
}

// Handle processes the ask_implementation_fix tool call.
func (t *FixTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := strings.TrimSpace(req.GetString("id", ""))
	if id == "" {
		return mcp.NewToolResultError("'id' is required"), nil
	}

	bp, err := t.store.Get(id)
	if err != nil {
		return errResult(err)
	}
	sol := smart.Generate(bp, req.GetString("workload_context", ""))
	approach := strings.TrimSpace(req.GetString("preferred_approach", ""))

	var b strings.Builder
	fmt.Fprintf(&b, "# Fix plan for %s: %s\n\n", bp.ID, bp.Title)
	fmt.Fprintf(&b, "Risk: %s | Estimated effort: %s | Deadline: %s\n", bp.Risk, sol.Achievable, sol.TimeBound)
	fmt.Fprintf(&b, "\n%s\n", sol.Specific)
	if approach != "" {
		fmt.Fprintf(&b, "\nPreferred approach: %s. Apply the steps below through it where they allow.\n", approach)
	}
	if prereqs := pillarPrerequisites[bp.Pillar]; len(prereqs) > 0 {
		b.WriteString("\n## Prerequisites\n\n")
		for _, p := range prereqs {
			fmt.Fprintf(&b, "- %s\n", p)
		}
	}
	if len(bp.ImplementationGuidance) > 0 {
		b.WriteString("\n## Steps\n\n")
		for i, step := range bp.ImplementationGuidance {
			fmt.Fprintf(&b, "%d. %s\n", i+1, step)
		}
	}
	if len(bp.Questions) > 0 {
		b.WriteString("\n## Questions to answer first\n\n")
		for _, q := range bp.Questions {
			fmt.Fprintf(&b, "- %s\n", q)
		}
	}
	fmt.Fprintf(&b, "\n## Done when\n\n%s\n", sol.Measurable)
	if bp.HRef != "" {
		fmt.Fprintf(&b, "\nReference: %s\n", bp.HRef)
	}
	return mcp.NewToolResultText(b.String()), nil
}
