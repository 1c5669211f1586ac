// Package tools provides the MCP tool handlers for the advisor.
//
// Each tool handler follows the same pattern:
// - A struct with dependencies injected via constructor
// - Definition() returns the mcp.Tool schema
// - Handle() processes the request and returns a result
package tools

import (
	"errors"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ksuarez/archadvisor/internal/knowledge"
)

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing or not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// boolArg extracts a boolean argument from a tool request.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}

// stringMapArg extracts an object argument as a string-to-string map.
// Non-string values are skipped.
func stringMapArg(req mcp.CallToolRequest, key string) map[string]string {
	raw, ok := req.GetArguments()[key].(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

// stringListArg extracts an array argument as a string slice.
// Non-string elements are skipped.
func stringListArg(req mcp.CallToolRequest, key string) []string {
	raw, ok := req.GetArguments()[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// pillarsArg parses a comma-separated pillar list argument. An empty
// argument means all pillars.
func pillarsArg(req mcp.CallToolRequest, key string) ([]knowledge.Pillar, error) {
	raw := strings.TrimSpace(req.GetString(key, ""))
	if raw == "" {
		return nil, nil
	}
	var names []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			names = append(names, p)
		}
	}
	return knowledge.ParsePillars(names)
}

// errResult maps domain errors to tool-level results. Validation and
// not-found failures go back to the model as error text so it can
// correct the call; anything else propagates as a protocol error.
func errResult(err error) (*mcp.CallToolResult, error) {
	var verr *knowledge.ValidationError
	if errors.As(err, &verr) || errors.Is(err, knowledge.ErrNotFound) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return nil, err
}
