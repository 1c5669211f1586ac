// Package server wires all MCP components and creates the server instance.
//
// This is the composition root (DIP): it creates concrete implementations
// and injects them into the tools/prompts/resources that depend on abstractions.
// No business logic lives here — only wiring.
package server

import (
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/ksuarez/archadvisor/internal/config"
	"github.com/ksuarez/archadvisor/internal/history"
	"github.com/ksuarez/archadvisor/internal/knowledge"
	"github.com/ksuarez/archadvisor/internal/priority"
	"github.com/ksuarez/archadvisor/internal/prompts"
	"github.com/ksuarez/archadvisor/internal/resources"
	"github.com/ksuarez/archadvisor/internal/review"
	"github.com/ksuarez/archadvisor/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved.
//
// The returned cleanup function closes the history archive's database
// connection and must be called on shutdown (typically via defer).
// It is always non-nil and safe to call even if archive init failed.
func New() (*server.MCPServer, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, noop, err
	}

	// The base catalog is embedded; a load failure there means a
	// broken build, not a runtime condition, so any failure is fatal.
	// An extra data directory extends the catalog when configured.
	sources := []fs.FS{knowledge.DefaultData()}
	if cfg.ExtraDataDir != "" {
		sources = append(sources, os.DirFS(cfg.ExtraDataDir))
	}
	store, err := knowledge.Load(sources...)
	if err != nil {
		return nil, noop, fmt.Errorf("loading best practice catalog: %w", err)
	}

	engine := priority.NewEngine(store)
	reviews := review.NewOrchestrator(store)

	s := server.NewMCPServer(
		"archadvisor",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Catalog query tools ---

	searchTool := tools.NewSearchTool(store)
	s.AddTool(searchTool.Definition(), searchTool.Handle)

	practiceTool := tools.NewPracticeTool(store)
	s.AddTool(practiceTool.Definition(), practiceTool.Handle)

	pillarsTool := tools.NewPillarsTool(store)
	s.AddTool(pillarsTool.Definition(), pillarsTool.Handle)

	relatedTool := tools.NewRelatedTool(store)
	s.AddTool(relatedTool.Definition(), relatedTool.Handle)

	// --- Prioritization tools ---

	priorityTool := tools.NewPriorityTool(engine)
	s.AddTool(priorityTool.Definition(), priorityTool.Handle)

	matrixTool := tools.NewMatrixTool(engine)
	s.AddTool(matrixTool.Definition(), matrixTool.Handle)

	solutionsTool := tools.NewSolutionsTool(store)
	s.AddTool(solutionsTool.Definition(), solutionsTool.Handle)

	fixTool := tools.NewFixTool(store)
	s.AddTool(fixTool.Definition(), fixTool.Handle)

	// --- Review workflow tools ---
	//
	// The history archive is an independent subsystem: if it fails to
	// initialize, the review tools still work, reviews are just not
	// recorded across restarts. We log a warning and continue.

	cleanup := noop
	var archive tools.Archiver
	if !cfg.HistoryDisabled {
		hs, histErr := history.New(history.Config{Path: cfg.HistoryPath})
		if histErr != nil {
			log.Printf("WARNING: review history disabled: %v", histErr)
		} else {
			archive = hs
			cleanup = func() {
				if err := hs.Close(); err != nil {
					log.Printf("WARNING: history store close: %v", err)
				}
			}
			historyTool := tools.NewHistoryTool(hs)
			s.AddTool(historyTool.Definition(), historyTool.Handle)
		}
	}

	planTool := tools.NewPlanTool(reviews)
	s.AddTool(planTool.Definition(), planTool.Handle)

	collectTool := tools.NewCollectTool(reviews)
	s.AddTool(collectTool.Definition(), collectTool.Handle)

	finalizeTool := tools.NewFinalizeTool(reviews, archive, cfg.OutputDir)
	s.AddTool(finalizeTool.Definition(), finalizeTool.Handle)

	reviewTool := tools.NewReviewTool(reviews, archive, cfg.OutputDir)
	s.AddTool(reviewTool.Definition(), reviewTool.Handle)

	// --- Register prompts ---

	reviewPrompt := prompts.NewReviewPrompt()
	s.AddPrompt(reviewPrompt.Definition(), reviewPrompt.Handle)

	quickWinsPrompt := prompts.NewQuickWinsPrompt()
	s.AddPrompt(quickWinsPrompt.Definition(), quickWinsPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(store)
	s.AddResource(resourceHandler.PillarsResource(), resourceHandler.HandlePillars)
	s.AddResourceTemplate(resourceHandler.PracticeTemplate(), resourceHandler.HandlePractice)

	return s, cleanup, nil
}

// noop is a no-op cleanup function used as the default when the
// history archive is disabled or hasn't been initialized.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to use the advisor effectively.
func serverInstructions() string {
	return `You have access to ArchAdvisor, an AWS Well-Architected review MCP server.

## WHEN TO ACTIVATE ArchAdvisor

Proactively suggest using ArchAdvisor when the user:
- Asks whether their architecture follows AWS best practices
- Asks to review, audit, or assess a workload or system design
- Asks "what should I fix first" about a cloud architecture
- Plans a new AWS workload and wants guidance up front

You do NOT need it for general AWS API questions or service pricing.

## CRITICAL: How Tools Work

The catalog tools are READ tools over a static best practice dataset.
They never call AWS APIs and never see the user's account. Assessments
are driven entirely by what the user tells you about their workload,
so gather a thorough workload description before reviewing.

## Typical flows

Quick lookup:
1. search_best_practices / get_best_practice to answer point questions
2. get_related_practices to widen the picture around one practice

Prioritization:
1. get_priority_analysis for the ranked list (risk-weighted, deterministic)
2. get_eisenhower_matrix to frame the same practices as do/schedule/delegate/eliminate
3. get_smart_solutions (quick_wins_only=true) for cheap high-impact fixes

Full review:
1. create_review_plan with the workload name, pillars, and a rich workload_context
2. Ask the user each pending practice's questions; record answers with collect_user_input
3. finalize_review writes one decision record per practice plus a README index
4. get_review_history recalls past reviews when the user asks "what did we decide"

The review tool does plan plus finalize in one call; it fails when
practices need input unless force is set, so prefer the interactive
flow when any pillar includes practices that ask questions. Pass
documentation_paths to fold architecture documents into the
assessment context.`
}
