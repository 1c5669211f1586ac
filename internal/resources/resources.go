// Package resources implements the MCP resource handlers.
//
// Resources provide read-only data that the host can consume for
// context. They use URI-based addressing (wa://...) following MCP
// conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ksuarez/archadvisor/internal/knowledge"
)

// Handler manages the advisor's resource endpoints.
type Handler struct {
	store *knowledge.Store
}

// NewHandler creates a resource Handler over the knowledge store.
func NewHandler(store *knowledge.Store) *Handler {
	return &Handler{store: store}
}

// pillarInfo is the wire shape of one pillar entry.
type pillarInfo struct {
	Pillar           knowledge.Pillar `json:"pillar"`
	PracticeCount    int              `json:"practice_count"`
	DesignPrinciples []string         `json:"design_principles"`
}

// designPrinciples holds the published principles per pillar.
var designPrinciples = map[knowledge.Pillar][]string{
	knowledge.OperationalExcellence: {
		"Perform operations as code",
		"Make frequent, small, reversible changes",
		"Refine operations procedures frequently",
		"Anticipate failure",
		"Learn from all operational failures",
	},
	knowledge.Security: {
		"Implement a strong identity foundation",
		"Maintain traceability",
		"Apply security at all layers",
		"Automate security best practices",
		"Protect data in transit and at rest",
		"Keep people away from data",
		"Prepare for security events",
	},
	knowledge.Reliability: {
		"Automatically recover from failure",
		"Test recovery procedures",
		"Scale horizontally to increase aggregate workload availability",
		"Stop guessing capacity",
		"Manage change through automation",
	},
	knowledge.PerformanceEfficiency: {
		"Democratize advanced technologies",
		"Go global in minutes",
		"Use serverless architectures",
		"Experiment more often",
		"Consider mechanical sympathy",
	},
	knowledge.CostOptimization: {
		"Implement cloud financial management",
		"Adopt a consumption model",
		"Measure overall efficiency",
		"Stop spending money on undifferentiated heavy lifting",
		"Analyze and attribute expenditure",
	},
	knowledge.Sustainability: {
		"Understand your impact",
		"Establish sustainability goals",
		"Maximize utilization",
		"Anticipate and adopt new, more efficient hardware and software offerings",
		"Use managed services",
		"Reduce the downstream impact of your cloud workloads",
	},
}

// PillarsResource returns the MCP resource definition for the pillar
// overview.
func (h *Handler) PillarsResource() mcp.Resource {
	return mcp.NewResource(
		"wa://pillars",
		"Well-Architected Pillars",
		mcp.WithResourceDescription("The six pillars with their design principles and catalog practice counts"),
		mcp.WithMIMEType("application/json"),
	)
}

// PracticeTemplate returns the MCP resource template that exposes one
// best practice record by id.
func (h *Handler) PracticeTemplate() mcp.ResourceTemplate {
	return mcp.NewResourceTemplate(
		"wa://practice/{id}",
		"Best Practice Record",
		mcp.WithTemplateDescription("One best practice from the catalog, addressed by its id"),
		mcp.WithTemplateMIMEType("application/json"),
	)
}

// HandlePractice resolves a wa://practice/{id} URI to the full record.
func (h *Handler) HandlePractice(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	id := strings.TrimPrefix(req.Params.URI, "wa://practice/")
	bp, err := h.store.Get(id)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(bp, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling practice %s: %w", id, err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// HandlePillars returns the pillar overview as JSON.
func (h *Handler) HandlePillars(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	overview := make([]pillarInfo, 0, len(knowledge.PillarOrder))
	for _, pc := range h.store.Pillars() {
		overview = append(overview, pillarInfo{
			Pillar:           pc.Pillar,
			PracticeCount:    pc.Count,
			DesignPrinciples: designPrinciples[pc.Pillar],
		})
	}

	data, err := json.MarshalIndent(overview, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling pillar overview: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
