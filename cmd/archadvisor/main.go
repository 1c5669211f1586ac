// ArchAdvisor: AWS Well-Architected review MCP server
//
// A universal MCP server that integrates with any AI coding tool
// (Claude Code, OpenCode, Gemini CLI, Codex, Cursor, VS Code Copilot)
// to query AWS Well-Architected best practices, prioritize remediation
// work, and run guided workload reviews that end in architecture
// decision records.
//
// Usage:
//
//	archadvisor serve    # Start MCP server (stdio transport)
package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	advisor "github.com/ksuarez/archadvisor/internal/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("archadvisor v%s\n", advisor.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run() error {
	s, cleanup, err := advisor.New()
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	// The stdio transport owns the process lifecycle: it returns when
	// stdin closes or the process is signalled.
	return server.ServeStdio(s)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `ArchAdvisor v%s - AWS Well-Architected review MCP server

Usage:
  archadvisor serve    Start the MCP server (stdio transport)

Configuration:
  Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "archadvisor": {
        "command": "archadvisor",
        "args": ["serve"]
      }
    }
  }

Settings are read from archadvisor.yaml in the working directory and
ARCHADVISOR_* environment variables (output_dir, history_path,
history_disabled).
`, advisor.Version)
}
